package cli

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
)

const companyFilterFlag = "empresa"

var productFields = []fieldFlag{
	{flag: "codigo", field: "codigo"},
	{flag: "nombre", field: "nombre"},
	{flag: "caracteristicas", field: "caracteristicas"},
	{flag: "empresa", field: "empresaNIT"},
	{flag: "cop", field: "precios.COP"},
	{flag: "usd", field: "precios.USD"},
	{flag: "eur", field: "precios.EUR"},
}

func productFlags() map[string]cobraflags.Flag {
	usage := map[string]string{
		"codigo":          "Código del producto",
		"nombre":          "Nombre",
		"caracteristicas": "Características",
		"empresa":         "NIT de la empresa dueña del producto",
		"cop":             "Precio en COP",
		"usd":             "Precio en USD",
		"eur":             "Precio en EUR",
	}
	flags := make(map[string]cobraflags.Flag, len(productFields))
	for _, f := range productFields {
		flags[f.flag] = &cobraflags.StringFlag{Name: f.flag, Value: "", Usage: usage[f.flag]}
	}
	return flags
}

func newProductsCommand(a *App) *cobra.Command {
	filter := func() map[string]cobraflags.Flag {
		return map[string]cobraflags.Flag{
			companyFilterFlag: &cobraflags.StringFlag{
				Name:  companyFilterFlag,
				Value: "",
				Usage: "Listar solo los productos de esta empresa (NIT)",
			},
		}
	}

	cmd := &cobra.Command{
		Use:   "productos",
		Short: "Listar y administrar productos (solo ADMIN)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listProducts(cmd)
		},
	}
	cobraflags.RegisterMap(cmd, filter())

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar productos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listProducts(cmd)
		},
	}
	cobraflags.RegisterMap(list, filter())

	create := &cobra.Command{
		Use:   "crear",
		Short: "Crear un producto",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl := resource.NewProducts(a.Products(""), a.deps(nil))
			ctl.OpenCreate()
			return submitForm(a, cmd, ctl, productFields)
		},
	}
	cobraflags.RegisterMap(create, productFlags())

	edit := &cobra.Command{
		Use:   "editar <id>",
		Short: "Editar un producto; solo cambian los campos indicados",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := resource.NewProducts(a.Products(""), a.deps(nil))
			ctl.Refresh(cmd.Context())
			if err := a.report(ctl.State().Feedback); err != nil {
				return err
			}
			current, ok := ctl.Find(args[0])
			if !ok {
				return a.report(feedback.Error(fmt.Sprintf("No existe el producto %s", args[0])))
			}
			ctl.OpenEdit(current)
			return submitForm(a, cmd, ctl, productFields)
		},
	}
	cobraflags.RegisterMap(edit, productFlags())

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool(yesFlag)
			ctl := resource.NewProducts(a.Products(""), a.deps(a.confirmer(yes)))
			ctl.Remove(cmd.Context(), args[0])
			st := ctl.State()
			return a.reportMutation(st.Committed, st.Feedback)
		},
	}
	remove.Flags().BoolP(yesFlag, "y", false, "No pedir confirmación")

	cmd.AddCommand(list, create, edit, remove)
	return cmd
}

func (a *App) listProducts(cmd *cobra.Command) error {
	ctl := resource.NewProducts(a.Products(stringFlag(cmd, companyFilterFlag)), a.deps(nil))
	ctl.Refresh(cmd.Context())
	if err := a.report(ctl.State().Feedback); err != nil {
		return err
	}
	return printProducts(a.out(), ctl.Items())
}
