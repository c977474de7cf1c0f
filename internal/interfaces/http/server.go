package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-console/pkg/config"
)

// NewServer construye la app Fiber de la consola con las rutas registradas.
// La UI de Swagger se monta en /docs solo si cfg.SwaggerFile existe.
func NewServer(appName string, cfg config.HTTPConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			// Swagger UI en local: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Inventario Console",
			}))
		} else if deps.Logger != nil {
			deps.Logger.Debug().Str("file", cfg.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	})

	Router(app, deps)
	return app
}
