package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/resource"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	apphttp "github.com/jhoicas/Inventario-console/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-console/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventario-console-test"
	testExpMin    = 60
	testNIT       = "900123456"
)

// fakeAuth API de login: acepta cualquier credencial salvo que err esté definido.
type fakeAuth struct {
	token string
	role  string
	err   error
}

func (f *fakeAuth) Login(context.Context, string, string) (string, string, error) {
	return f.token, f.role, f.err
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

// fakeCompanies cliente de empresas en memoria.
type fakeCompanies struct {
	mu      sync.Mutex
	items   []entity.Company
	creates int
	removed []string
	listErr error
}

func (f *fakeCompanies) List(context.Context) ([]entity.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Company(nil), f.items...), nil
}

func (f *fakeCompanies) Create(_ context.Context, e entity.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.items = append(f.items, e)
	return nil
}

func (f *fakeCompanies) Update(_ context.Context, nit string, e entity.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].NIT == nit {
			f.items[i] = e
		}
	}
	return nil
}

func (f *fakeCompanies) Remove(_ context.Context, nit string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, nit)
	kept := f.items[:0]
	for _, c := range f.items {
		if c.NIT != nit {
			kept = append(kept, c)
		}
	}
	f.items = kept
	return nil
}

// fakeProducts registra el NIT con el que se pidió el cliente.
type fakeProducts struct {
	scopes []string
}

func (f *fakeProducts) client(nit string) resource.Client[entity.Product, string] {
	f.scopes = append(f.scopes, nit)
	return productsList{}
}

type productsList struct{}

func (productsList) List(context.Context) ([]entity.Product, error) {
	return []entity.Product{{ID: "p-1", Code: "A1", Name: "Tornillo", CompanyNIT: testNIT}}, nil
}

func (productsList) Create(context.Context, entity.Product) error { return nil }

func (productsList) Update(context.Context, string, entity.Product) error { return nil }

func (productsList) Remove(context.Context, string) error { return nil }

// fakeInventory gateway de inventario en memoria.
type fakeInventory struct {
	pdfErr  error
	emailTo []string
}

func (f *fakeInventory) ListCompanies(context.Context) ([]entity.Company, error) {
	return []entity.Company{{NIT: testNIT, Name: "Acme"}}, nil
}

func (f *fakeInventory) Inventory(context.Context, string) ([]entity.Product, error) {
	return []entity.Product{{ID: "p-1", Code: "A1", Name: "Tornillo", Prices: entity.Prices{COP: "1500", USD: "0.4", EUR: "0.35"}}}, nil
}

func (f *fakeInventory) InventoryPDF(context.Context, string) ([]byte, error) {
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return []byte("%PDF-1.4 remoto"), nil
}

func (f *fakeInventory) SendInventoryEmail(_ context.Context, address, _ string) error {
	f.emailTo = append(f.emailTo, address)
	return nil
}

type fakeRenderer struct{}

func (fakeRenderer) RenderInventory(entity.Company, []entity.InventoryRow) ([]byte, error) {
	return []byte("%PDF-1.7 local"), nil
}

type testEnv struct {
	app       *fiber.App
	auth      *fakeAuth
	manager   *session.Manager
	companies *fakeCompanies
	products  *fakeProducts
	inventory *fakeInventory
}

// newTestEnv monta el router con fakes y sin sesión iniciada.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		auth:      &fakeAuth{},
		companies: &fakeCompanies{items: []entity.Company{{NIT: testNIT, Name: "Acme", Address: "Calle 1", Phone: "300"}}},
		products:  &fakeProducts{},
		inventory: &fakeInventory{},
	}
	env.manager = session.NewManager(env.auth, &memStore{}, nil, nil)
	env.app = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(env.app, apphttp.RouterDeps{
		Session:   env.manager,
		Companies: env.companies,
		Products:  env.products.client,
		Inventory: env.inventory,
		Renderer:  fakeRenderer{},
	})
	return env
}

// loginAs inicia sesión en el Manager con el rol indicado.
func (e *testEnv) loginAs(t *testing.T, role string) {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "user@acme.co", role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	e.auth.token, e.auth.role = tok, role
	_, err = e.manager.Login(context.Background(), "user@acme.co", "secreto")
	require.NoError(t, err)
}

func (e *testEnv) do(t *testing.T, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func feedbackMessage(t *testing.T, body map[string]any) string {
	t.Helper()
	fb, ok := body["feedback"].(map[string]any)
	require.True(t, ok, "la respuesta debe traer feedback")
	msg, _ := fb["message"].(string)
	return msg
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GuardRoute
// ──────────────────────────────────────────────────────────────────────────────

// Sin sesión, cualquier vista protegida redirige al login.
func TestGuardRoute_SinSesionRedirigeAlLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/empresas", "/productos", "/inventario"} {
		resp := env.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}

// EXTERNO puede ver empresas pero no productos ni inventario.
func TestGuardRoute_ExternoRedirigeAForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "EXTERNO")

	resp := env.do(t, http.MethodGet, "/productos", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/forbidden", resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/inventario", "")
	assert.Equal(t, "/forbidden", resp.Header.Get("Location"))
	assert.Empty(t, env.products.scopes, "no debe pedirse ningún listado")
}

func TestForbidden_EnlaceAEmpresas(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/forbidden", "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "/empresas", decode(t, resp)["link"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CamposVaciosDevuelve400(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/login", `{"email":"","password":"x"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, env.manager.Current())
}

func TestLogin_RechazoDelServidorDevuelve401(t *testing.T) {
	env := newTestEnv(t)
	env.auth.err = &domain.APIError{Status: http.StatusUnauthorized, Message: "Credenciales inválidas"}

	resp := env.do(t, http.MethodPost, "/login", `{"email":"a@a.co","password":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, session.MsgBadCredentials, feedbackMessage(t, decode(t, resp)))
}

func TestLogin_ExitoRedirigeAEmpresas(t *testing.T) {
	env := newTestEnv(t)
	tok, err := pkgjwt.Generate(testJWTSecret, "admin@acme.co", "ADMIN", testIssuer, testExpMin)
	require.NoError(t, err)
	env.auth.token, env.auth.role = tok, "ADMIN"

	resp := env.do(t, http.MethodPost, "/login", `{"email":"admin@acme.co","password":"x"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "/empresas", body["redirect"])
	assert.Equal(t, session.MsgLoginOK, feedbackMessage(t, body))
	sess, _ := body["session"].(map[string]any)
	assert.Equal(t, "ADMIN", sess["role"])
	assert.NotContains(t, sess, "token")

	resp = env.do(t, http.MethodGet, "/empresas", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogout_VuelveAlLogin(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodPost, "/logout", "")

	assert.Equal(t, "/", decode(t, resp)["redirect"])
	assert.Nil(t, env.manager.Current())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresas_ExternoListaPeroNoCrea(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "EXTERNO")

	resp := env.do(t, http.MethodGet, "/empresas", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ := decode(t, resp)["items"].([]any)
	assert.Len(t, items, 1)

	resp = env.do(t, http.MethodPost, "/empresas", `{"nit":"1","nombre":"B","direccion":"C","telefono":"3"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, env.companies.creates)
}

func TestEmpresas_NITInvalidoNoLlamaALaAPI(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodPost, "/empresas", `{"nit":"12a","nombre":"B","direccion":"C","telefono":"3"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, feedbackMessage(t, decode(t, resp)))
	assert.Equal(t, 0, env.companies.creates)
}

func TestEmpresas_CrearDevuelveListadoRecargado(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodPost, "/empresas", `{"nit":"800111222","nombre":"Beta","direccion":"Cra 2","telefono":"311"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Empresa creada", feedbackMessage(t, body))
	items, _ := body["items"].([]any)
	assert.Len(t, items, 2)
}

// El alta ya se aplicó aunque la recarga falle: no se responde como error de la petición.
func TestEmpresas_CrearConRecargaFallidaDevuelve201(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")
	env.companies.listErr = errors.New("timeout")

	resp := env.do(t, http.MethodPost, "/empresas", `{"nit":"800111222","nombre":"Beta","direccion":"Cra 2","telefono":"311"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, env.companies.creates)
	assert.Equal(t, "Error cargando empresas", feedbackMessage(t, decode(t, resp)))
}

func TestEmpresas_EliminarConRecargaFallidaDevuelve200(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")
	env.companies.listErr = errors.New("timeout")

	resp := env.do(t, http.MethodDelete, "/empresas/"+testNIT+"?confirm=true", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{testNIT}, env.companies.removed)
}

func TestEmpresas_EliminarExigeConfirmacion(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodDelete, "/empresas/"+testNIT, "")
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	assert.Empty(t, env.companies.removed)

	resp = env.do(t, http.MethodDelete, "/empresas/"+testNIT+"?confirm=true", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{testNIT}, env.companies.removed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_FiltroPorEmpresa(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodGet, "/productos?empresa="+testNIT, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/productos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{testNIT, ""}, env.products.scopes)
}

func TestProductos_EmpresaNoNumericaDevuelve400(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodGet, "/productos?empresa=abc", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.products.scopes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_FilasDeLaEmpresa(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodGet, "/inventario?nit="+testNIT, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, testNIT, body["selected_nit"])
	rows, _ := body["rows"].([]any)
	require.Len(t, rows, 1)
	row, _ := rows[0].(map[string]any)
	assert.Equal(t, map[string]any{"COP": "1500", "USD": "0.4", "EUR": "0.35"}, row["precios"])
}

func TestInventarioPDF_SinEmpresaDevuelve400(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodGet, "/inventario/pdf", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventarioPDF_AdjuntaElDocumento(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodGet, "/inventario/pdf?nit="+testNIT, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario_"+testNIT+".pdf")
	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 remoto", string(content))
}

func TestInventarioPDF_ErrorDeLaAPIDevuelve502(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")
	env.inventory.pdfErr = &domain.APIError{Status: http.StatusInternalServerError, Message: "boom"}

	resp := env.do(t, http.MethodGet, "/inventario/pdf?nit="+testNIT, "")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestInventarioEmail_DestinoVacioNoEnvia(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodPost, "/inventario/email", `{"emailDestino":"  ","empresaNIT":"`+testNIT+`"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.inventory.emailTo)
}

func TestInventarioEmail_Envia(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodPost, "/inventario/email", `{"emailDestino":"x@y.co","empresaNIT":"`+testNIT+`"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"x@y.co"}, env.inventory.emailTo)
}

func TestInventarioReporte_GeneraPDFLocal(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "ADMIN")

	resp := env.do(t, http.MethodPost, "/inventario/reporte?nit="+testNIT, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario_"+testNIT+"_local.pdf")
}
