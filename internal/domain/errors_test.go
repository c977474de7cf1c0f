package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-console/internal/domain"
)

func TestUserMessage_PrefiereElMensajeDelServidor(t *testing.T) {
	err := fmt.Errorf("crear: %w", &domain.APIError{Status: 409, Message: "El NIT ya existe"})

	assert.Equal(t, "El NIT ya existe", domain.UserMessage(err, "Error guardando empresa"))
}

func TestUserMessage_FallbackSinMensaje(t *testing.T) {
	assert.Equal(t, "Error guardando empresa", domain.UserMessage(&domain.APIError{Status: 500}, "Error guardando empresa"))
	assert.Equal(t, "Error cargando empresas", domain.UserMessage(&domain.NetworkError{Op: "empresas.listar", Err: errors.New("dial")}, "Error cargando empresas"))
}

func TestUserMessage_Sentinelas(t *testing.T) {
	assert.Equal(t, "Acceso denegado", domain.UserMessage(domain.ErrForbidden, ""))
	assert.Equal(t, "Debe iniciar sesión", domain.UserMessage(domain.ErrUnauthenticated, ""))
	assert.Equal(t, "Seleccione una empresa", domain.UserMessage(domain.ErrNoCompanySelected, ""))
}

func TestUserMessage_Validacion(t *testing.T) {
	err := domain.NewValidationError("nit", "El NIT debe contener solo números")

	assert.Equal(t, "El NIT debe contener solo números", domain.UserMessage(err, "otro"))
}
