package validation

import (
	"regexp"
	"unicode/utf8"
)

// Charset clase de caracteres admitida por un campo.
type Charset int

// Clases de caracteres.
const (
	AnyText Charset = iota
	Digits
	Decimal
)

var (
	digitsRe  = regexp.MustCompile(`^\d*$`)
	partialRe = regexp.MustCompile(`^\d*(\.\d*)?$`)
)

// FieldPolicy política de entrada por tecla: una edición con caracteres fuera de la clase
// no se aplica; una edición más larga que MaxLen se trunca. MaxLen cero = sin límite.
type FieldPolicy struct {
	Charset Charset
	MaxLen  int
}

// Apply devuelve el valor que debe quedar en el campo tras intentar pasar de current a next.
func (p FieldPolicy) Apply(current, next string) string {
	switch p.Charset {
	case Digits:
		if !digitsRe.MatchString(next) {
			return current
		}
	case Decimal:
		if !partialRe.MatchString(next) {
			return current
		}
	}
	if p.MaxLen > 0 && utf8.RuneCountInString(next) > p.MaxLen {
		return truncate(next, p.MaxLen)
	}
	return next
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
