package cli

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
)

const yesFlag = "yes"

// Los flags de empresa se llaman igual que los campos del formulario.
var companyFields = []string{"nit", "nombre", "direccion", "telefono"}

func companyFlags(withKey bool) map[string]cobraflags.Flag {
	usage := map[string]string{
		"nit":       "NIT de la empresa (solo dígitos)",
		"nombre":    "Nombre",
		"direccion": "Dirección",
		"telefono":  "Teléfono (solo dígitos)",
	}
	flags := make(map[string]cobraflags.Flag, len(usage))
	for _, name := range companyFields {
		if name == "nit" && !withKey {
			continue
		}
		flags[name] = &cobraflags.StringFlag{Name: name, Value: "", Usage: usage[name]}
	}
	return flags
}

func newCompaniesCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "empresas",
		Short: "Listar y administrar empresas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listCompanies(cmd)
		},
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar empresas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listCompanies(cmd)
		},
	}

	create := &cobra.Command{
		Use:   "crear",
		Short: "Crear una empresa (solo ADMIN)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl := resource.NewCompanies(a.Companies, a.deps(nil))
			ctl.OpenCreate()
			return submitForm(a, cmd, ctl, fieldMap(companyFields))
		},
	}
	cobraflags.RegisterMap(create, companyFlags(true))

	edit := &cobra.Command{
		Use:   "editar <nit>",
		Short: "Editar una empresa; solo cambian los campos indicados (solo ADMIN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := resource.NewCompanies(a.Companies, a.deps(nil))
			ctl.Refresh(cmd.Context())
			if err := a.report(ctl.State().Feedback); err != nil {
				return err
			}
			current, ok := ctl.Find(args[0])
			if !ok {
				return a.report(feedback.Error(fmt.Sprintf("No existe la empresa %s", args[0])))
			}
			ctl.OpenEdit(current)
			return submitForm(a, cmd, ctl, fieldMap(companyFields))
		},
	}
	cobraflags.RegisterMap(edit, companyFlags(false))

	remove := &cobra.Command{
		Use:   "eliminar <nit>",
		Short: "Eliminar una empresa (solo ADMIN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool(yesFlag)
			ctl := resource.NewCompanies(a.Companies, a.deps(a.confirmer(yes)))
			ctl.Remove(cmd.Context(), args[0])
			st := ctl.State()
			return a.reportMutation(st.Committed, st.Feedback)
		},
	}
	remove.Flags().BoolP(yesFlag, "y", false, "No pedir confirmación")

	cmd.AddCommand(list, create, edit, remove)
	return cmd
}

func (a *App) listCompanies(cmd *cobra.Command) error {
	ctl := resource.NewCompanies(a.Companies, a.deps(nil))
	ctl.Refresh(cmd.Context())
	if err := a.report(ctl.State().Feedback); err != nil {
		return err
	}
	return printCompanies(a.out(), ctl.Items())
}
