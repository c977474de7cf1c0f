// Package money formato de precios por moneda (COP, USD, EUR) para tablas y reportes.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Codes monedas que maneja el catálogo, en el orden en que se muestran.
var Codes = []string{"COP", "USD", "EUR"}

var printer = message.NewPrinter(language.MustParse("es-CO"))

// Format devuelve "COP 1.500,00" con la escala estándar de la moneda.
func Format(code string, amount decimal.Decimal) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("money: moneda inválida %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	value := amount.Round(int32(scale)).InexactFloat64()
	return printer.Sprintf("%s %v", unit.String(), number.Decimal(value, number.Scale(scale))), nil
}

// MustFormat como Format pero devuelve el monto sin formato si la moneda no es válida.
func MustFormat(code string, amount decimal.Decimal) string {
	s, err := Format(code, amount)
	if err != nil {
		return code + " " + amount.String()
	}
	return s
}
