package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/store"
	"github.com/jhoicas/Inventario-console/internal/interfaces/cli"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return 2
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Str("store", cfg.Session.Store).
		Msg("iniciando consola")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	credentials, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("almacén de sesión")
		return 1
	}
	defer closeStore()

	// El cliente lee el token del Manager en cada petición; el Manager usa el cliente para el login.
	var manager *session.Manager
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, api.TokenFunc(func() string {
		return manager.Token()
	}), log)
	nav := ports.NavigatorFunc(func(path string) {
		log.Debug().Str("path", path).Msg("navegar")
	})
	manager = session.NewManager(client, credentials, nav, log)
	if _, err := manager.Restore(ctx); err != nil {
		log.Error().Err(err).Msg("restaurar sesión")
		return 1
	}

	root := cli.NewRootCommand(&cli.App{
		Name:      cfg.App.Name,
		HTTP:      cfg.HTTP,
		Session:   manager,
		Companies: client.Companies(),
		Products: func(nit string) resource.Client[entity.Product, string] {
			return client.ProductsByCompany(nit)
		},
		Inventory: client,
		Saver:     export.NewDirSaver(cfg.Export.DownloadDir),
		Renderer:  infrapdf.NewInventoryReport(),
		Logger:    log,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
