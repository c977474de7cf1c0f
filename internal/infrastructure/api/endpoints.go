package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.AuthGateway      = (*Client)(nil)
	_ ports.InventoryGateway = (*Client)(nil)
)

// Mensajes de respaldo por operación cuando el servidor no trae uno.
const (
	fbLogin          = "Error en login"
	fbListCompanies  = "Error obteniendo empresas"
	fbCreateCompany  = "Error creando empresa"
	fbUpdateCompany  = "Error editando empresa"
	fbDeleteCompany  = "Error eliminando empresa"
	fbListProducts   = "Error obteniendo productos"
	fbCreateProduct  = "Error creando producto"
	fbUpdateProduct  = "Error editando producto"
	fbDeleteProduct  = "Error eliminando producto"
	fbInventory      = "Error obteniendo inventario"
	fbInventoryPDF   = "Error descargando PDF"
	fbInventoryEmail = "Error enviando correo"
)

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login POST /auth/login. No envía token.
func (c *Client) Login(ctx context.Context, email, password string) (string, string, error) {
	var out dto.LoginResponse
	err := c.sendJSON(ctx, request{
		op:       "login",
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     dto.LoginRequest{Email: email, Password: password},
		fallback: fbLogin,
		anon:     true,
	}, &out)
	if err != nil {
		return "", "", err
	}
	return out.Token, out.Role, nil
}

// ── Empresas ──────────────────────────────────────────────────────────────────

// ListCompanies GET /empresas.
func (c *Client) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	var out []entity.Company
	err := c.sendJSON(ctx, request{op: "empresas.listar", method: http.MethodGet, path: "/empresas", fallback: fbListCompanies}, &out)
	return out, err
}

// CreateCompany POST /empresas.
func (c *Client) CreateCompany(ctx context.Context, e entity.Company) error {
	return c.sendJSON(ctx, request{op: "empresas.crear", method: http.MethodPost, path: "/empresas", body: e, fallback: fbCreateCompany}, nil)
}

// UpdateCompany PUT /empresas/{nit}.
func (c *Client) UpdateCompany(ctx context.Context, nit string, e entity.Company) error {
	return c.sendJSON(ctx, request{
		op:       "empresas.editar",
		method:   http.MethodPut,
		path:     "/empresas/" + url.PathEscape(nit),
		body:     e,
		fallback: fbUpdateCompany,
	}, nil)
}

// DeleteCompany DELETE /empresas/{nit}.
func (c *Client) DeleteCompany(ctx context.Context, nit string) error {
	return c.sendJSON(ctx, request{
		op:       "empresas.eliminar",
		method:   http.MethodDelete,
		path:     "/empresas/" + url.PathEscape(nit),
		fallback: fbDeleteCompany,
	}, nil)
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ListProducts GET /productos.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	err := c.sendJSON(ctx, request{op: "productos.listar", method: http.MethodGet, path: "/productos", fallback: fbListProducts}, &out)
	return out, err
}

// ListProductsByCompany GET /productos/empresa/{nit}.
func (c *Client) ListProductsByCompany(ctx context.Context, nit string) ([]entity.Product, error) {
	var out []entity.Product
	err := c.sendJSON(ctx, request{
		op:       "productos.listar_empresa",
		method:   http.MethodGet,
		path:     "/productos/empresa/" + url.PathEscape(nit),
		fallback: fbListProducts,
	}, &out)
	return out, err
}

// CreateProduct POST /productos. El ID lo asigna el servidor.
func (c *Client) CreateProduct(ctx context.Context, p entity.Product) error {
	return c.sendJSON(ctx, request{op: "productos.crear", method: http.MethodPost, path: "/productos", body: p.Payload(), fallback: fbCreateProduct}, nil)
}

// UpdateProduct PUT /productos/{id}.
func (c *Client) UpdateProduct(ctx context.Context, id string, p entity.Product) error {
	return c.sendJSON(ctx, request{
		op:       "productos.editar",
		method:   http.MethodPut,
		path:     "/productos/" + url.PathEscape(id),
		body:     p.Payload(),
		fallback: fbUpdateProduct,
	}, nil)
}

// DeleteProduct DELETE /productos/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.sendJSON(ctx, request{
		op:       "productos.eliminar",
		method:   http.MethodDelete,
		path:     "/productos/" + url.PathEscape(id),
		fallback: fbDeleteProduct,
	}, nil)
}

// ── Inventario ────────────────────────────────────────────────────────────────

// Inventory GET /inventario/{nit}.
func (c *Client) Inventory(ctx context.Context, nit string) ([]entity.Product, error) {
	var out []entity.Product
	err := c.sendJSON(ctx, request{
		op:       "inventario.listar",
		method:   http.MethodGet,
		path:     "/inventario/" + url.PathEscape(nit),
		fallback: fbInventory,
	}, &out)
	return out, err
}

// InventoryPDF GET /inventario/{nit}/pdf (binario).
func (c *Client) InventoryPDF(ctx context.Context, nit string) ([]byte, error) {
	return c.send(ctx, request{
		op:       "inventario.pdf",
		method:   http.MethodGet,
		path:     "/inventario/" + url.PathEscape(nit) + "/pdf",
		fallback: fbInventoryPDF,
	})
}

// SendInventoryEmail POST /inventario/email. La API responde los errores como texto.
func (c *Client) SendInventoryEmail(ctx context.Context, address, nit string) error {
	_, err := c.send(ctx, request{
		op:       "inventario.email",
		method:   http.MethodPost,
		path:     "/inventario/email",
		body:     dto.EmailInventoryRequest{EmailDestino: address, EmpresaNIT: nit},
		fallback: fbInventoryEmail,
	})
	return err
}
