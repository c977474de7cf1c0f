package resource

import (
	"github.com/jhoicas/Inventario-console/internal/application/validation"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Products controlador de productos. La clave es el ID asignado por el servidor.
type Products = Controller[entity.Product, string]

func priceField(get func(entity.Prices) entity.Amount, set func(*entity.Prices, entity.Amount)) Field[entity.Product] {
	return Field[entity.Product]{
		Policy: validation.FieldPolicy{Charset: validation.Decimal},
		Get:    func(p entity.Product) string { return string(get(p.Prices)) },
		Set:    func(p *entity.Product, v string) { set(&p.Prices, entity.Amount(v)) },
	}
}

// ProductSpec parametrización de productos. Prices es un valor, así que la copia del struct
// ya es profunda.
func ProductSpec() Spec[entity.Product, string] {
	return Spec[entity.Product, string]{
		Noun:     "productos",
		KeyField: "id",
		Key:      func(p entity.Product) string { return string(p.ID) },
		New:      entity.NewProduct,
		Clone:    func(p entity.Product) entity.Product { return p },
		Validate: func(p entity.Product) error { return validation.Product(p) },
		Fields: map[string]Field[entity.Product]{
			"codigo": {
				Policy: validation.FieldPolicy{MaxLen: entity.ProductCodeMax},
				Get:    func(p entity.Product) string { return p.Code },
				Set:    func(p *entity.Product, v string) { p.Code = v },
			},
			"nombre": {
				Policy: validation.FieldPolicy{MaxLen: entity.ProductNameMax},
				Get:    func(p entity.Product) string { return p.Name },
				Set:    func(p *entity.Product, v string) { p.Name = v },
			},
			"caracteristicas": {
				Policy: validation.FieldPolicy{MaxLen: entity.ProductDescriptionMax},
				Get:    func(p entity.Product) string { return p.Description },
				Set:    func(p *entity.Product, v string) { p.Description = v },
			},
			"empresaNIT": {
				Policy: validation.FieldPolicy{Charset: validation.Digits, MaxLen: entity.CompanyNITMax},
				Get:    func(p entity.Product) string { return p.CompanyNIT },
				Set:    func(p *entity.Product, v string) { p.CompanyNIT = v },
			},
			"precios.COP": priceField(
				func(p entity.Prices) entity.Amount { return p.COP },
				func(p *entity.Prices, v entity.Amount) { p.COP = v },
			),
			"precios.USD": priceField(
				func(p entity.Prices) entity.Amount { return p.USD },
				func(p *entity.Prices, v entity.Amount) { p.USD = v },
			),
			"precios.EUR": priceField(
				func(p entity.Prices) entity.Amount { return p.EUR },
				func(p *entity.Prices, v entity.Amount) { p.EUR = v },
			),
		},
		Messages: Messages{
			LoadFailed:    "Error cargando productos",
			Created:       "Producto creado",
			Updated:       "Producto actualizado",
			Deleted:       "Producto eliminado",
			SaveFailed:    "Error guardando producto",
			DeleteFailed:  "Error eliminando producto",
			ConfirmDelete: "¿Seguro que deseas eliminar este producto?",
		},
		MutateRoles: []entity.Role{entity.RoleAdmin},
	}
}

// NewProducts construye el controlador de productos.
func NewProducts(client Client[entity.Product, string], deps Deps) *Products {
	return New(ProductSpec(), client, deps)
}
