package dto

import (
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/money"
)

// EmailInventoryRequest entrada de POST /inventario/email.
type EmailInventoryRequest struct {
	EmailDestino string `json:"emailDestino"`
	EmpresaNIT   string `json:"empresaNIT"`
}

// InventoryResponse estado de la vista de inventario de la consola.
type InventoryResponse struct {
	Empresas    []entity.Company  `json:"empresas"`
	SelectedNIT string            `json:"selected_nit"`
	Rows        []InventoryRowDTO `json:"rows"`
	Feedback    *FeedbackResponse `json:"feedback,omitempty"`
}

// InventoryRowDTO fila con su clave de presentación.
type InventoryRowDTO struct {
	Key             string            `json:"key"`
	Codigo          string            `json:"codigo"`
	Nombre          string            `json:"nombre"`
	Caracteristicas string            `json:"caracteristicas"`
	Precios         map[string]string `json:"precios"`
}

// ToInventoryRows convierte las filas de la vista en el orden recibido.
func ToInventoryRows(rows []entity.InventoryRow) []InventoryRowDTO {
	out := make([]InventoryRowDTO, 0, len(rows))
	for _, r := range rows {
		precios := make(map[string]string, len(money.Codes))
		for _, code := range money.Codes {
			precios[code] = string(r.Product.Prices.ByCode(code))
		}
		out = append(out, InventoryRowDTO{
			Key:             r.Key,
			Codigo:          r.Product.Code,
			Nombre:          r.Product.Name,
			Caracteristicas: r.Product.Description,
			Precios:         precios,
		})
	}
	return out
}
