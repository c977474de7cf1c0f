package entity

import (
	"strconv"

	"github.com/google/uuid"
)

// rowNamespace espacio UUIDv5 para claves de fila generadas en el cliente.
var rowNamespace = uuid.MustParse("6f1c7c8e-2b9a-4d51-9a57-0c1e4b5d7f21")

// InventoryRow proyección de solo lectura de un producto dentro del inventario de una empresa.
type InventoryRow struct {
	Key     string
	Product Product
}

// RowKey clave estable de una fila: el ID del servidor si existe, si no un UUIDv5 derivado
// de (nit, código, posición).
func RowKey(nit string, p Product, position int) string {
	if p.ID != "" {
		return string(p.ID)
	}
	return uuid.NewSHA1(rowNamespace, []byte(nit+"/"+p.Code+"/"+strconv.Itoa(position))).String()
}

// NewInventoryRows materializa las filas de una respuesta en el orden recibido.
func NewInventoryRows(nit string, products []Product) []InventoryRow {
	rows := make([]InventoryRow, 0, len(products))
	for i, p := range products {
		rows = append(rows, InventoryRow{Key: RowKey(nit, p, i), Product: p})
	}
	return rows
}
