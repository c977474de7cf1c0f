// Package cli comandos de terminal de la consola (cobra). Cada comando arma su controlador,
// ejecuta una operación y muestra el aviso resultante.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// ErrFailed la operación terminó con un aviso de error que ya se mostró.
var ErrFailed = errors.New("operación fallida")

// MsgApplied aviso cuando el cambio se aplicó pero la recarga del listado falló.
const MsgApplied = "Cambio aplicado"

// App dependencias compartidas por los comandos.
type App struct {
	Name      string
	HTTP      config.HTTPConfig
	Session   *session.Manager
	Companies resource.Client[entity.Company, string]
	Products  func(nit string) resource.Client[entity.Product, string]
	Inventory ports.InventoryGateway
	Saver     ports.Saver
	Renderer  ports.ReportRenderer
	Logger    *logger.Logger
	In        io.Reader
	Out       io.Writer

	inOnce sync.Once
	in     *bufio.Reader
}

// NewRootCommand arma el árbol de comandos.
func NewRootCommand(a *App) *cobra.Command {
	if a.Logger == nil {
		a.Logger = logger.Nop()
	}
	root := &cobra.Command{
		Use:           "console",
		Short:         "Consola administrativa de empresas, productos e inventario",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newCompaniesCommand(a),
		newProductsCommand(a),
		newInventoryCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) reader() *bufio.Reader {
	a.inOnce.Do(func() {
		in := a.In
		if in == nil {
			in = os.Stdin
		}
		a.in = bufio.NewReader(in)
	})
	return a.in
}

func (a *App) deps(confirmer feedback.Confirmer) resource.Deps {
	return resource.Deps{
		Session:   a.Session,
		Confirmer: confirmer,
		Logger:    a.Logger,
	}
}

// report muestra el aviso y lo convierte en el resultado del comando.
// reportMutation como report, pero si la API ya aplicó el cambio un fallo posterior
// (la recarga del listado) se muestra sin marcar el comando como fallido.
func (a *App) reportMutation(committed bool, s feedback.State) error {
	if committed && s.IsError() {
		fmt.Fprintln(a.out(), "✔", MsgApplied)
		fmt.Fprintln(a.out(), "✘", s.Message)
		return nil
	}
	return a.report(s)
}

func (a *App) report(s feedback.State) error {
	switch s.Kind {
	case feedback.KindSuccess:
		fmt.Fprintln(a.out(), "✔", s.Message)
	case feedback.KindError:
		fmt.Fprintln(a.out(), "✘", s.Message)
		return ErrFailed
	}
	return nil
}
