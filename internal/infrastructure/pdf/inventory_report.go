// Package pdf genera en local el reporte de inventario de una empresa con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  INVENTARIO + Fecha          │
//	│  EMPRESA: Dirección / Tel                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Nombre | Características | COP | USD | EUR │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES por moneda                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/money"
	"github.com/jhoicas/Inventario-console/pkg/nit"
)

var _ ports.ReportRenderer = (*InventoryReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// InventoryReport implementa ports.ReportRenderer usando Maroto v2.
type InventoryReport struct {
	now func() time.Time
}

// NewInventoryReport construye el generador.
func NewInventoryReport() *InventoryReport {
	return &InventoryReport{now: time.Now}
}

// RenderInventory genera el PDF de las filas y devuelve sus bytes.
func (g *InventoryReport) RenderInventory(company entity.Company, rows []entity.InventoryRow) ([]byte, error) {
	author := company.Name
	if author == "" {
		author = company.NIT
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventario "+company.NIT, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, g.now()))
	m.AddRows(companyRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("La empresa no tiene productos registrados.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	totals, err := totalsRow(rows)
	if err != nil {
		return nil, err
	}
	m.AddRows(totals)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT con dígito de verificación (izq), título y fecha (der).
func headerRow(company entity.Company, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company.Name, "Empresa"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nit.Format(company.NIT), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVENTARIO DE PRODUCTOS", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func companyRow(company entity.Company) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Código", 2, align.Left),
		h("Nombre", 2, align.Left),
		h("Características", 2, align.Left),
		h("COP", 2, align.Right),
		h("USD", 2, align.Right),
		h("EUR", 2, align.Right),
	)
}

func tableDetailRows(rows []entity.InventoryRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		p := r.Product
		cols := []core.Col{
			col.New(2).Add(text.New(p.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.Description, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		}
		for _, code := range money.Codes {
			cols = append(cols, col.New(2).Add(text.New(
				priceText(code, p.Prices.ByCode(code)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)))
		}
		result = append(result, row.New(7).Add(cols...))
	}
	return result
}

// totalsRow: cantidad de productos y suma de precios por moneda.
func totalsRow(rows []entity.InventoryRow) (core.Row, error) {
	sums := make(map[string]decimal.Decimal, len(money.Codes))
	for _, r := range rows {
		for _, code := range money.Codes {
			amount := r.Product.Prices.ByCode(code)
			if amount == "" {
				continue
			}
			d, err := amount.Decimal()
			if err != nil {
				return nil, fmt.Errorf("pdf: precio %s inválido en %s: %w", code, r.Product.Code, err)
			}
			sums[code] = sums[code].Add(d)
		}
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Left, Left: 1, Top: 1})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 1, Color: colorPrimary})
	}

	cols := []core.Col{col.New(6).Add(label("Productos: " + strconv.Itoa(len(rows))))}
	for _, code := range money.Codes {
		cols = append(cols, col.New(2).Add(value(money.MustFormat(code, sums[code]))))
	}
	return row.New(10).Add(cols...), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func priceText(code string, amount entity.Amount) string {
	d, err := amount.Decimal()
	if err != nil {
		return string(amount)
	}
	return money.MustFormat(code, d)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
