package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/feedback"
)

// confirmer pregunta en la terminal. Con yes responde que sí sin preguntar.
func (a *App) confirmer(yes bool) feedback.Confirmer {
	if yes {
		return feedback.Always(true)
	}
	return feedback.ConfirmFunc(func(_ context.Context, message string) (bool, error) {
		fmt.Fprintf(a.out(), "%s [s/N]: ", message)
		answer, err := a.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "s", "si", "sí", "y", "yes":
			return true, nil
		}
		return false, nil
	})
}

// readLine lee una línea sin el salto final. Una última línea sin salto cuenta como respuesta.
func (a *App) readLine() (string, error) {
	line, err := a.reader().ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
