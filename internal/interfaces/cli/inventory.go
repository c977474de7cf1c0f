package cli

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-console/internal/application/inventory"
)

const (
	nitFlag = "nit"
	toFlag  = "para"
)

func nitFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		nitFlag: &cobraflags.StringFlag{
			Name:  nitFlag,
			Value: "",
			Usage: "NIT de la empresa",
		},
	}
}

func (a *App) inventoryView() *inventory.View {
	return inventory.NewView(inventory.Deps{
		Gateway:  a.Inventory,
		Saver:    a.Saver,
		Renderer: a.Renderer,
		Session:  a.Session,
		Logger:   a.Logger,
	})
}

func newInventoryCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventario",
		Short: "Inventario por empresa (solo ADMIN)",
		Long: `Sin --nit muestra las empresas disponibles; con --nit muestra el inventario de esa empresa.

Subcomandos:
  pdf      - Descargar el PDF generado por la API
  email    - Enviar el PDF por correo
  reporte  - Generar en local un PDF con las filas del inventario`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := a.inventoryView()
			v.LoadCompanies(cmd.Context())
			nit := stringFlag(cmd, nitFlag)
			if nit == "" {
				if err := a.report(v.State().Feedback); err != nil {
					return err
				}
				return printCompanies(a.out(), v.State().Companies)
			}
			v.SelectCompany(cmd.Context(), nit)
			if err := a.report(v.State().Feedback); err != nil {
				return err
			}
			return printInventory(a.out(), v.Rows())
		},
	}
	cobraflags.RegisterMap(cmd, nitFlags())

	pdf := &cobra.Command{
		Use:   "pdf",
		Short: "Descargar el PDF de inventario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := a.inventoryView()
			v.Preselect(stringFlag(cmd, nitFlag))
			doc, ok := v.ExportDocument(cmd.Context())
			if err := a.report(v.State().Feedback); err != nil || !ok {
				return err
			}
			fmt.Fprintln(a.out(), doc.Location)
			return nil
		},
	}
	cobraflags.RegisterMap(pdf, nitFlags())

	emailFlags := nitFlags()
	emailFlags[toFlag] = &cobraflags.StringFlag{
		Name:  toFlag,
		Value: "",
		Usage: "Correo de destino",
	}
	email := &cobra.Command{
		Use:   "email",
		Short: "Enviar el PDF de inventario por correo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := a.inventoryView()
			v.Preselect(stringFlag(cmd, nitFlag))
			v.DispatchByEmail(cmd.Context(), stringFlag(cmd, toFlag))
			return a.report(v.State().Feedback)
		},
	}
	cobraflags.RegisterMap(email, emailFlags)

	report := &cobra.Command{
		Use:   "reporte",
		Short: "Generar en local el reporte PDF del inventario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := a.inventoryView()
			v.LoadCompanies(cmd.Context())
			v.SelectCompany(cmd.Context(), stringFlag(cmd, nitFlag))
			if err := a.report(v.State().Feedback); err != nil {
				return err
			}
			doc, ok := v.RenderReport(cmd.Context())
			if err := a.report(v.State().Feedback); err != nil || !ok {
				return err
			}
			fmt.Fprintln(a.out(), doc.Location)
			return nil
		},
	}
	cobraflags.RegisterMap(report, nitFlags())

	cmd.AddCommand(pdf, email, report)
	return cmd
}
