package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/access"
	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session   *session.Manager
	Companies resource.Client[entity.Company, string]
	// Products devuelve el cliente de productos; con nit vacío, el catálogo completo.
	Products  func(nit string) resource.Client[entity.Product, string]
	Inventory ports.InventoryGateway
	Renderer  ports.ReportRenderer
	Logger    *logger.Logger
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	controllerDeps := func(confirm bool) resource.Deps {
		return resource.Deps{
			Session:   deps.Session,
			Confirmer: feedback.Always(confirm),
			Logger:    log,
		}
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.Session)
	app.Get(access.RouteLogin, authHandler.Session)
	app.Get("/session", authHandler.Session)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get(access.RouteForbidden, authHandler.Forbidden)

	// Empresas: visible para ADMIN y EXTERNO; las mutaciones solo ADMIN.
	companies := app.Group(access.RouteCompanies, GuardRoute(deps.Session, access.RouteCompanies))
	companyHandler := &ResourceHandler[entity.Company]{
		controller: func(_ *fiber.Ctx, confirm bool) *resource.Controller[entity.Company, string] {
			return resource.NewCompanies(deps.Companies, controllerDeps(confirm))
		},
		withKey: func(e entity.Company, key string) entity.Company {
			e.NIT = key
			return e
		},
		param: "nit",
	}
	admin := RequireRole(entity.RoleAdmin)
	companies.Get("/", companyHandler.List)
	companies.Post("/", admin, companyHandler.Create)
	companies.Put("/:nit", admin, companyHandler.Update)
	companies.Delete("/:nit", admin, companyHandler.Delete)

	// Productos (solo ADMIN). ?empresa= limita el listado a una empresa.
	products := app.Group(access.RouteProducts, GuardRoute(deps.Session, access.RouteProducts))
	productHandler := &ResourceHandler[entity.Product]{
		controller: func(c *fiber.Ctx, confirm bool) *resource.Controller[entity.Product, string] {
			return resource.NewProducts(deps.Products(GetCompanyNIT(c)), controllerDeps(confirm))
		},
		withKey: func(p entity.Product, key string) entity.Product {
			p.ID = entity.ProductID(key)
			return p
		},
		param: "id",
	}
	products.Get("/", CompanyScope("empresa", false), productHandler.List)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Inventario (solo ADMIN)
	inventory := app.Group(access.RouteInventory, GuardRoute(deps.Session, access.RouteInventory))
	inventoryHandler := NewInventoryHandler(deps.Inventory, deps.Renderer, deps.Session, log)
	inventory.Get("/", CompanyScope("nit", false), inventoryHandler.Get)
	inventory.Get("/pdf", CompanyScope("nit", true), inventoryHandler.PDF)
	inventory.Post("/email", inventoryHandler.Email)
	inventory.Post("/reporte", CompanyScope("nit", true), inventoryHandler.Report)
}
