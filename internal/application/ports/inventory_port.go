package ports

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// InventoryGateway lecturas de inventario y entregas del reporte que resuelve la API.
type InventoryGateway interface {
	ListCompanies(ctx context.Context) ([]entity.Company, error)
	Inventory(ctx context.Context, nit string) ([]entity.Product, error)
	InventoryPDF(ctx context.Context, nit string) ([]byte, error)
	SendInventoryEmail(ctx context.Context, address, nit string) error
}

// Saver entrega un documento al usuario (disco, descarga del navegador).
// Devuelve la ubicación final.
type Saver interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
}

// ReportRenderer genera localmente el PDF de las filas visibles del inventario.
type ReportRenderer interface {
	RenderInventory(company entity.Company, rows []entity.InventoryRow) ([]byte, error)
}
