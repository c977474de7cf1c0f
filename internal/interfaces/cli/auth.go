package cli

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-console/internal/application/session"
)

const (
	emailFlag    = "email"
	passwordFlag = "password"
)

func newLoginCommand(a *App) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		emailFlag: &cobraflags.StringFlag{
			Name:  emailFlag,
			Value: "",
			Usage: "Correo del usuario",
		},
		passwordFlag: &cobraflags.StringFlag{
			Name:  passwordFlag,
			Value: "",
			Usage: "Contraseña (si se omite se pide por la entrada estándar)",
		},
	}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión contra la API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email := stringFlag(cmd, emailFlag)
			password := stringFlag(cmd, passwordFlag)
			if password == "" {
				fmt.Fprint(a.out(), "Contraseña: ")
				line, err := a.readLine()
				if err != nil {
					return fmt.Errorf("leer contraseña: %w", err)
				}
				password = line
			}
			if err := a.report(session.NewLoginForm(a.Session).Submit(cmd.Context(), email, password)); err != nil {
				return err
			}
			if s := a.Session.Current(); s != nil {
				fmt.Fprintf(a.out(), "Usuario: %s (%s)\n", s.Identity, s.Role)
			}
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newLogoutCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.Session.Logout(cmd.Context())
			fmt.Fprintln(a.out(), "Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar el usuario y rol de la sesión actual",
		RunE: func(*cobra.Command, []string) error {
			s := a.Session.Current()
			if s == nil {
				fmt.Fprintln(a.out(), "Sin sesión activa")
				return ErrFailed
			}
			fmt.Fprintf(a.out(), "%s\t%s\n", s.Identity, s.Role)
			return nil
		},
	}
}

// stringFlag valor del flag en el comando que se está ejecutando.
func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
