package api

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/application/resource"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

var (
	_ resource.Client[entity.Company, string] = CompaniesClient{}
	_ resource.Client[entity.Product, string] = ProductsClient{}
)

// CompaniesClient capacidades de empresas para el controlador genérico.
type CompaniesClient struct{ c *Client }

// Companies adaptador de empresas.
func (c *Client) Companies() CompaniesClient { return CompaniesClient{c: c} }

// List lista las empresas.
func (a CompaniesClient) List(ctx context.Context) ([]entity.Company, error) {
	return a.c.ListCompanies(ctx)
}

// Create crea la empresa.
func (a CompaniesClient) Create(ctx context.Context, e entity.Company) error {
	return a.c.CreateCompany(ctx, e)
}

// Update actualiza la empresa con el NIT dado.
func (a CompaniesClient) Update(ctx context.Context, nit string, e entity.Company) error {
	return a.c.UpdateCompany(ctx, nit, e)
}

// Remove elimina la empresa con el NIT dado.
func (a CompaniesClient) Remove(ctx context.Context, nit string) error {
	return a.c.DeleteCompany(ctx, nit)
}

// ProductsClient capacidades de productos. Con nit, el listado se limita a esa empresa.
type ProductsClient struct {
	c   *Client
	nit string
}

// Products adaptador del catálogo completo de productos.
func (c *Client) Products() ProductsClient { return ProductsClient{c: c} }

// ProductsByCompany adaptador de productos de una empresa.
func (c *Client) ProductsByCompany(nit string) ProductsClient {
	return ProductsClient{c: c, nit: nit}
}

// List lista los productos, solo los de la empresa si el adaptador tiene NIT.
func (a ProductsClient) List(ctx context.Context) ([]entity.Product, error) {
	if a.nit != "" {
		return a.c.ListProductsByCompany(ctx, a.nit)
	}
	return a.c.ListProducts(ctx)
}

// Create crea el producto.
func (a ProductsClient) Create(ctx context.Context, p entity.Product) error {
	return a.c.CreateProduct(ctx, p)
}

// Update actualiza el producto con el ID dado.
func (a ProductsClient) Update(ctx context.Context, id string, p entity.Product) error {
	return a.c.UpdateProduct(ctx, id, p)
}

// Remove elimina el producto con el ID dado.
func (a ProductsClient) Remove(ctx context.Context, id string) error {
	return a.c.DeleteProduct(ctx, id)
}
