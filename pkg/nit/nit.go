// Package nit utilidades para el NIT colombiano: dígito de verificación (módulo 11 DIAN)
// y formato de presentación.
package nit

import (
	"fmt"
	"strings"
)

// pesos para el cálculo del dígito de verificación (Orden Administrativa 4 de 1989, DIAN).
// Se aplican a los dígitos del NIT de derecha a izquierda.
var weights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// MaxDigits longitud máxima de un NIT sin dígito de verificación.
const MaxDigits = 15

// IsDigits indica si s contiene solo dígitos ASCII (vacío cuenta como false).
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CheckDigit calcula el dígito de verificación de un NIT numérico.
func CheckDigit(base string) (byte, error) {
	if !IsDigits(base) {
		return 0, fmt.Errorf("nit: %q no es numérico", base)
	}
	if len(base) > MaxDigits {
		return 0, fmt.Errorf("nit: máximo %d dígitos, se recibieron %d", MaxDigits, len(base))
	}
	var sum int
	for i := 0; i < len(base); i++ {
		d := int(base[len(base)-1-i] - '0')
		sum += d * weights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder), nil
	}
	return byte('0' + (11 - remainder)), nil
}

// Format agrupa miles con puntos y añade el dígito de verificación: "900123456" → "900.123.456-8".
// Si el NIT no es numérico lo devuelve sin cambios.
func Format(base string) string {
	dv, err := CheckDigit(base)
	if err != nil {
		return base
	}
	var b strings.Builder
	n := len(base)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(base[i])
	}
	b.WriteByte('-')
	b.WriteByte(dv)
	return b.String()
}
