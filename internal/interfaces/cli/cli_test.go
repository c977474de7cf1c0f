package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/resource"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/export"
	"github.com/jhoicas/Inventario-console/internal/interfaces/cli"
	pkgjwt "github.com/jhoicas/Inventario-console/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testNIT = "900123456"

type fakeAuth struct {
	token string
	role  string
}

func (f *fakeAuth) Login(context.Context, string, string) (string, string, error) {
	return f.token, f.role, nil
}

type memStore struct {
	mu sync.Mutex
	s  *entity.Session
}

func (m *memStore) Load(context.Context) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *memStore) Save(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}

// fakeClient cliente genérico en memoria indexado por key.
type fakeClient[E any] struct {
	mu      sync.Mutex
	key     func(E) string
	items   []E
	created []E
	updated []E
	removed []string
	listErr error
}

func (f *fakeClient[E]) List(context.Context) ([]E, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]E(nil), f.items...), nil
}

func (f *fakeClient[E]) Create(_ context.Context, e E) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, e)
	f.items = append(f.items, e)
	return nil
}

func (f *fakeClient[E]) Update(_ context.Context, key string, e E) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, e)
	for i := range f.items {
		if f.key(f.items[i]) == key {
			f.items[i] = e
		}
	}
	return nil
}

func (f *fakeClient[E]) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, key)
	return nil
}

type fakeInventory struct {
	emails []string
}

func (f *fakeInventory) ListCompanies(context.Context) ([]entity.Company, error) {
	return []entity.Company{{NIT: testNIT, Name: "Acme"}}, nil
}

func (f *fakeInventory) Inventory(context.Context, string) ([]entity.Product, error) {
	return []entity.Product{{ID: "p-1", Code: "A1", Name: "Tornillo", Prices: entity.Prices{COP: "1500", USD: "0.4", EUR: "0.35"}}}, nil
}

func (f *fakeInventory) InventoryPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func (f *fakeInventory) SendInventoryEmail(_ context.Context, address, _ string) error {
	f.emails = append(f.emails, address)
	return nil
}

type harness struct {
	auth      *fakeAuth
	manager   *session.Manager
	companies *fakeClient[entity.Company]
	products  *fakeClient[entity.Product]
	inventory *fakeInventory
	saver     *export.MemorySaver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		auth: &fakeAuth{},
		companies: &fakeClient[entity.Company]{
			key:   func(c entity.Company) string { return c.NIT },
			items: []entity.Company{{NIT: testNIT, Name: "Acme", Address: "Calle 1", Phone: "300"}},
		},
		products: &fakeClient[entity.Product]{
			key: func(p entity.Product) string { return string(p.ID) },
			items: []entity.Product{{
				ID: "p-1", Code: "A1", Name: "Tornillo", Description: "Acero", CompanyNIT: testNIT,
				Prices: entity.Prices{COP: "1500", USD: "0.4", EUR: "0.35"},
			}},
		},
		inventory: &fakeInventory{},
		saver:     &export.MemorySaver{},
	}
	h.manager = session.NewManager(h.auth, &memStore{}, nil, nil)
	return h
}

func (h *harness) loginAs(t *testing.T, role string) {
	t.Helper()
	tok, err := pkgjwt.Generate("test-secret", "user@acme.co", role, "test", 60)
	require.NoError(t, err)
	h.auth.token, h.auth.role = tok, role
	_, err = h.manager.Login(context.Background(), "user@acme.co", "secreto")
	require.NoError(t, err)
}

// run ejecuta la CLI con args y la entrada estándar indicada; devuelve la salida y el error.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.App{
		Name:      "test",
		Session:   h.manager,
		Companies: h.companies,
		Products: func(string) resource.Client[entity.Product, string] {
			return h.products
		},
		Inventory: h.inventory,
		Saver:     h.saver,
		In:        strings.NewReader(stdin),
		Out:       &out,
	}
	root := cli.NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PideContrasenaPorEntradaEstandar(t *testing.T) {
	h := newHarness(t)
	tok, err := pkgjwt.Generate("test-secret", "admin@acme.co", "ADMIN", "test", 60)
	require.NoError(t, err)
	h.auth.token, h.auth.role = tok, "ADMIN"

	out, err := h.run(t, "secreto\n", "login", "--email", "admin@acme.co")

	require.NoError(t, err)
	assert.Contains(t, out, session.MsgLoginOK)
	assert.Contains(t, out, "admin@acme.co (ADMIN)")
}

func TestLogin_CorreoVacioNoLlamaALaAPI(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "login", "--password", "x")

	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "El correo es obligatorio")
	assert.Nil(t, h.manager.Current())
}

func TestWhoami_SinSesion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "whoami")

	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "Sin sesión activa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresas_ListaConNITFormateado(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "EXTERNO")

	out, err := h.run(t, "", "empresas")

	require.NoError(t, err)
	assert.Contains(t, out, "900.123.456-8")
	assert.Contains(t, out, "Acme")
}

func TestEmpresasCrear_NITConLetrasSeRechazaSinLlamarALaAPI(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "empresas", "crear", "--nit", "12a", "--nombre", "B", "--direccion", "C", "--telefono", "3")

	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "Valor no admitido para --nit")
	assert.Empty(t, h.companies.created)
}

func TestEmpresasCrear_Exito(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "empresas", "crear", "--nit", "800111222", "--nombre", "Beta", "--direccion", "Cra 2", "--telefono", "311")

	require.NoError(t, err)
	assert.Contains(t, out, "Empresa creada")
	assert.Equal(t, []entity.Company{{NIT: "800111222", Name: "Beta", Address: "Cra 2", Phone: "311"}}, h.companies.created)
}

func TestEmpresasCrear_ExternoNoPuede(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "EXTERNO")

	out, err := h.run(t, "", "empresas", "crear", "--nit", "1", "--nombre", "B", "--direccion", "C", "--telefono", "3")

	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "Acceso denegado")
	assert.Empty(t, h.companies.created)
}

func TestEmpresasEditar_SoloCambiaLosCamposIndicados(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "empresas", "editar", testNIT, "--telefono", "3105550000")

	require.NoError(t, err)
	assert.Contains(t, out, "Empresa actualizada")
	assert.Equal(t, []entity.Company{{NIT: testNIT, Name: "Acme", Address: "Calle 1", Phone: "3105550000"}}, h.companies.updated)
}

func TestEmpresasEliminar_RespuestaNegativaNoBorra(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "n\n", "empresas", "eliminar", testNIT)

	require.NoError(t, err)
	assert.Contains(t, out, "¿Seguro que deseas eliminar esta empresa?")
	assert.NotContains(t, out, "Empresa eliminada")
	assert.Empty(t, h.companies.removed)
}

func TestEmpresasEliminar_ConfirmadoBorra(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "s\n", "empresas", "eliminar", testNIT)

	require.NoError(t, err)
	assert.Contains(t, out, "Empresa eliminada")
	assert.Equal(t, []string{testNIT}, h.companies.removed)
}

func TestEmpresasEliminar_YesNoPregunta(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "empresas", "eliminar", testNIT, "--yes")

	require.NoError(t, err)
	assert.NotContains(t, out, "¿Seguro")
	assert.Equal(t, []string{testNIT}, h.companies.removed)
}

func TestEmpresasEliminar_RecargaFallidaNoMarcaFallo(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")
	h.companies.listErr = errors.New("timeout")

	out, err := h.run(t, "", "empresas", "eliminar", testNIT, "--yes")

	require.NoError(t, err, "el borrado se aplicó")
	assert.Equal(t, []string{testNIT}, h.companies.removed)
	assert.Contains(t, out, cli.MsgApplied)
	assert.Contains(t, out, "Error cargando empresas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductosEditar_PrecioNumerico(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "productos", "editar", "p-1", "--cop", "2000")

	require.NoError(t, err)
	assert.Contains(t, out, "Producto actualizado")
	require.Len(t, h.products.updated, 1)
	assert.Equal(t, entity.Amount("2000"), h.products.updated[0].Prices.COP)
	assert.Equal(t, entity.Amount("0.4"), h.products.updated[0].Prices.USD)
}

func TestProductosEditar_NoExiste(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "productos", "editar", "p-9", "--cop", "2000")

	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "No existe el producto p-9")
	assert.Empty(t, h.products.updated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_MuestraFilas(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "inventario", "--nit", testNIT)

	require.NoError(t, err)
	assert.Contains(t, out, "Tornillo")
}

func TestInventarioPDF_GuardaElDocumento(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "inventario", "pdf", "--nit", testNIT)

	require.NoError(t, err)
	assert.Contains(t, out, "PDF descargado")
	assert.Equal(t, "inventario_"+testNIT+".pdf", h.saver.Filename)
	assert.Equal(t, "%PDF-1.4", string(h.saver.Content))
}

func TestInventarioEmail_SinDestinoNoEnvia(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "inventario", "email", "--nit", testNIT)

	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "El correo es obligatorio")
	assert.Empty(t, h.inventory.emails)
}

func TestInventarioEmail_Envia(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "ADMIN")

	out, err := h.run(t, "", "inventario", "email", "--nit", testNIT, "--para", "x@y.co")

	require.NoError(t, err)
	assert.Contains(t, out, "Correo enviado")
	assert.Equal(t, []string{"x@y.co"}, h.inventory.emails)
}
