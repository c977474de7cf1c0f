// Package validation validación de formularios: política de entrada por campo (FieldPolicy)
// y reglas compuestas que se comprueban al enviar.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/money"
	"github.com/jhoicas/Inventario-console/pkg/nit"
)

// Mensajes de validación compartidos con las vistas.
const (
	MsgRequiredAll      = "Todos los campos son obligatorios"
	MsgEmailRequired    = "El correo es obligatorio"
	MsgPasswordRequired = "La contraseña es obligatoria"
	MsgNITNumeric       = "El NIT debe contener solo números"
	MsgNITTooLong       = "El NIT no puede superar 15 dígitos"
	MsgPhoneNumeric     = "El teléfono debe contener solo números"
)

var priceRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func tooLong(s string, max int) bool { return utf8.RuneCountInString(s) > max }

// Login valida el formulario de inicio de sesión.
func Login(email, password string) error {
	if blank(email) {
		return domain.NewValidationError("email", MsgEmailRequired)
	}
	if blank(password) {
		return domain.NewValidationError("password", MsgPasswordRequired)
	}
	return nil
}

// Email valida el destino del envío de inventario.
func Email(address string) error {
	if blank(address) {
		return domain.NewValidationError("email", MsgEmailRequired)
	}
	return nil
}

// Company reglas de envío del formulario de empresa.
func Company(c entity.Company) error {
	if blank(c.NIT) || blank(c.Name) || blank(c.Address) || blank(c.Phone) {
		return domain.NewValidationError("", MsgRequiredAll)
	}
	if !nit.IsDigits(c.NIT) {
		return domain.NewValidationError("nit", MsgNITNumeric)
	}
	if len(c.NIT) > entity.CompanyNITMax {
		return domain.NewValidationError("nit", MsgNITTooLong)
	}
	if tooLong(c.Name, entity.CompanyNameMax) {
		return domain.NewValidationError("nombre", fmt.Sprintf("El nombre no puede superar %d caracteres", entity.CompanyNameMax))
	}
	if tooLong(c.Address, entity.CompanyAddressMax) {
		return domain.NewValidationError("direccion", fmt.Sprintf("La dirección no puede superar %d caracteres", entity.CompanyAddressMax))
	}
	if !nit.IsDigits(c.Phone) {
		return domain.NewValidationError("telefono", MsgPhoneNumeric)
	}
	return nil
}

// Product reglas de envío del formulario de producto.
func Product(p entity.Product) error {
	if blank(p.Code) || blank(p.Name) || blank(p.Description) || blank(p.CompanyNIT) {
		return domain.NewValidationError("", MsgRequiredAll)
	}
	if tooLong(p.Code, entity.ProductCodeMax) {
		return domain.NewValidationError("codigo", fmt.Sprintf("El código no puede superar %d caracteres", entity.ProductCodeMax))
	}
	if tooLong(p.Name, entity.ProductNameMax) {
		return domain.NewValidationError("nombre", fmt.Sprintf("El nombre no puede superar %d caracteres", entity.ProductNameMax))
	}
	if tooLong(p.Description, entity.ProductDescriptionMax) {
		return domain.NewValidationError("caracteristicas", fmt.Sprintf("Las características no pueden superar %d caracteres", entity.ProductDescriptionMax))
	}
	if !nit.IsDigits(p.CompanyNIT) {
		return domain.NewValidationError("empresaNIT", MsgNITNumeric)
	}
	if len(p.CompanyNIT) > entity.CompanyNITMax {
		return domain.NewValidationError("empresaNIT", MsgNITTooLong)
	}
	for _, code := range money.Codes {
		if !priceRe.MatchString(string(p.Prices.ByCode(code))) {
			return domain.NewValidationError("precios."+code, fmt.Sprintf("El precio %s debe ser un número válido", code))
		}
	}
	return nil
}
