package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount precio como texto decimal tal como lo edita el usuario ("1500", "2.5").
// Se envía a la API como número JSON.
type Amount string

// Decimal convierte el texto a decimal.Decimal.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(a))
}

// MarshalJSON emite un número JSON normalizado; si el texto no es numérico lo envía como string
// y deja que la API lo rechace.
func (a Amount) MarshalJSON() ([]byte, error) {
	d, err := a.Decimal()
	if err != nil {
		return json.Marshal(string(a))
	}
	return []byte(d.String()), nil
}

// UnmarshalJSON acepta número o string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("precio inválido %s: %w", data, err)
	}
	*a = Amount(d.String())
	return nil
}

// Prices precios del producto en las tres monedas del catálogo.
type Prices struct {
	COP Amount `json:"COP"`
	USD Amount `json:"USD"`
	EUR Amount `json:"EUR"`
}

// ByCode devuelve el precio de la moneda indicada.
func (p Prices) ByCode(code string) Amount {
	switch code {
	case "COP":
		return p.COP
	case "USD":
		return p.USD
	case "EUR":
		return p.EUR
	}
	return ""
}

// ProductID identificador opaco que asigna el servidor. Llega como string o como número.
type ProductID string

// UnmarshalJSON acepta string o número y lo guarda como texto.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id de producto inválido %s: %w", data, err)
	}
	*id = ProductID(n.String())
	return nil
}

// Product producto de una empresa. ID lo asigna el servidor.
type Product struct {
	ID          ProductID `json:"id,omitempty"`
	Code        string    `json:"codigo"`
	Name        string    `json:"nombre"`
	Description string    `json:"caracteristicas"`
	CompanyNIT  string    `json:"empresaNIT"`
	Prices      Prices    `json:"precios"`
}

// Límites de campos de Product.
const (
	ProductCodeMax        = 20
	ProductNameMax        = 50
	ProductDescriptionMax = 200
)

// NewProduct borrador vacío con precios en cero (como el formulario de creación).
func NewProduct() Product {
	return Product{Prices: Prices{COP: "0", USD: "0", EUR: "0"}}
}

// Payload copia sin ID: el ID viaja en la URL, nunca en el cuerpo.
func (p Product) Payload() Product {
	p.ID = ""
	return p
}
