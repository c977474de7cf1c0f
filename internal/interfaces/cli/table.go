package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/money"
	"github.com/jhoicas/Inventario-console/pkg/nit"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// formatPrice precio con el formato de su moneda; si no es un número válido se muestra tal cual.
func formatPrice(code string, a entity.Amount) string {
	d, err := a.Decimal()
	if err != nil {
		return string(a)
	}
	s, err := money.Format(code, d)
	if err != nil {
		return string(a)
	}
	return s
}

func printCompanies(w io.Writer, items []entity.Company) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No hay empresas registradas")
		return err
	}
	t := newTable(w)
	fmt.Fprintln(t, "NIT\tNOMBRE\tDIRECCIÓN\tTELÉFONO")
	for _, c := range items {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", nit.Format(c.NIT), c.Name, c.Address, c.Phone)
	}
	return t.Flush()
}

func printProducts(w io.Writer, items []entity.Product) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No hay productos registrados")
		return err
	}
	t := newTable(w)
	fmt.Fprintln(t, "ID\tCÓDIGO\tNOMBRE\tEMPRESA\tCOP\tUSD\tEUR")
	for i, p := range items {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entity.RowKey(p.CompanyNIT, p, i), p.Code, p.Name, p.CompanyNIT,
			formatPrice("COP", p.Prices.COP), formatPrice("USD", p.Prices.USD), formatPrice("EUR", p.Prices.EUR))
	}
	return t.Flush()
}

func printInventory(w io.Writer, rows []entity.InventoryRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "La empresa no tiene productos en inventario")
		return err
	}
	t := newTable(w)
	fmt.Fprintln(t, "CÓDIGO\tNOMBRE\tCARACTERÍSTICAS\tCOP\tUSD\tEUR")
	for _, r := range rows {
		p := r.Product
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%s\n", p.Code, p.Name, p.Description,
			formatPrice("COP", p.Prices.COP), formatPrice("USD", p.Prices.USD), formatPrice("EUR", p.Prices.EUR))
	}
	return t.Flush()
}
