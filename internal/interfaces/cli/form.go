package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-console/internal/application/feedback"
	"github.com/jhoicas/Inventario-console/internal/application/resource"
)

// fieldFlag relaciona un flag con el campo del formulario que alimenta.
type fieldFlag struct {
	flag  string
	field string
}

func fieldMap(names []string) []fieldFlag {
	out := make([]fieldFlag, 0, len(names))
	for _, n := range names {
		out = append(out, fieldFlag{flag: n, field: n})
	}
	return out
}

// submitForm pasa los flags indicados por la política de cada campo y envía el formulario.
// Un valor que la política no deja intacto se rechaza antes de llamar a la API.
func submitForm[E any](a *App, cmd *cobra.Command, ctl *resource.Controller[E, string], fields []fieldFlag) error {
	if st := ctl.State(); !st.DialogOpen {
		return a.report(st.Feedback)
	}
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		value := stringFlag(cmd, f.flag)
		if got := ctl.Input(f.field, value); got != value {
			return a.report(feedback.Error(fmt.Sprintf("Valor no admitido para --%s", f.flag)))
		}
	}
	ctl.Submit(cmd.Context())
	st := ctl.State()
	return a.reportMutation(st.Committed, st.Feedback)
}
