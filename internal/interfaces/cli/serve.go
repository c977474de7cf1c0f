package cli

import (
	"context"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	httpRouter "github.com/jhoicas/Inventario-console/internal/interfaces/http"
)

const addrFlag = "addr"

func newServeCommand(a *App) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		addrFlag: &cobraflags.StringFlag{
			Name:  addrFlag,
			Value: "",
			Usage: "Dirección de escucha host:puerto (por defecto HTTP_HOST:HTTP_PORT)",
		},
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Servir la consola por HTTP a un navegador local",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := httpRouter.NewServer(a.Name, a.HTTP, httpRouter.RouterDeps{
				Session:   a.Session,
				Companies: a.Companies,
				Products:  a.Products,
				Inventory: a.Inventory,
				Renderer:  a.Renderer,
				Logger:    a.Logger,
			})
			addr := stringFlag(cmd, addrFlag)
			if addr == "" {
				addr = a.HTTP.Addr()
			}

			errCh := make(chan error, 1)
			go func() {
				a.Logger.Info().Str("addr", addr).Msg("servidor de consola escuchando")
				errCh <- app.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			a.Logger.Info().Msg("señal de apagado recibida, cerrando servidor...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				a.Logger.Error().Err(err).Msg("apagado del servidor")
				return err
			}
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
