package resource

import (
	"github.com/jhoicas/Inventario-console/internal/application/validation"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Companies controlador de empresas. La clave es el NIT.
type Companies = Controller[entity.Company, string]

// CompanySpec parametrización de empresas: solo ADMIN crea, edita o borra.
func CompanySpec() Spec[entity.Company, string] {
	return Spec[entity.Company, string]{
		Noun:     "empresas",
		KeyField: "nit",
		Key:      func(c entity.Company) string { return c.NIT },
		New:      func() entity.Company { return entity.Company{} },
		Clone:    func(c entity.Company) entity.Company { return c },
		Validate: func(c entity.Company) error { return validation.Company(c) },
		Fields: map[string]Field[entity.Company]{
			"nit": {
				Policy: validation.FieldPolicy{Charset: validation.Digits, MaxLen: entity.CompanyNITMax},
				Get:    func(c entity.Company) string { return c.NIT },
				Set:    func(c *entity.Company, v string) { c.NIT = v },
			},
			"nombre": {
				Policy: validation.FieldPolicy{MaxLen: entity.CompanyNameMax},
				Get:    func(c entity.Company) string { return c.Name },
				Set:    func(c *entity.Company, v string) { c.Name = v },
			},
			"direccion": {
				Policy: validation.FieldPolicy{MaxLen: entity.CompanyAddressMax},
				Get:    func(c entity.Company) string { return c.Address },
				Set:    func(c *entity.Company, v string) { c.Address = v },
			},
			"telefono": {
				Policy: validation.FieldPolicy{Charset: validation.Digits, MaxLen: entity.CompanyPhoneMax},
				Get:    func(c entity.Company) string { return c.Phone },
				Set:    func(c *entity.Company, v string) { c.Phone = v },
			},
		},
		Messages: Messages{
			LoadFailed:    "Error cargando empresas",
			Created:       "Empresa creada",
			Updated:       "Empresa actualizada",
			Deleted:       "Empresa eliminada",
			SaveFailed:    "Error guardando empresa",
			DeleteFailed:  "Error eliminando empresa",
			ConfirmDelete: "¿Seguro que deseas eliminar esta empresa?",
		},
		MutateRoles: []entity.Role{entity.RoleAdmin},
	}
}

// NewCompanies construye el controlador de empresas.
func NewCompanies(client Client[entity.Company, string], deps Deps) *Companies {
	return New(CompanySpec(), client, deps)
}
