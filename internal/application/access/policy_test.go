package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-console/internal/application/access"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

func sessionWith(role entity.Role) *entity.Session {
	return &entity.Session{Token: "t", Role: role, Identity: "user@acme.co"}
}

func TestAuthorize(t *testing.T) {
	admin := sessionWith(entity.RoleAdmin)
	externo := sessionWith(entity.RoleExterno)

	tests := []struct {
		name    string
		session *entity.Session
		roles   []entity.Role
		want    access.Decision
	}{
		{"sin sesión va al login", nil, []entity.Role{entity.RoleAdmin}, access.RedirectTo(access.RouteLogin)},
		{"sin sesión y sin roles exigidos", nil, nil, access.RedirectTo(access.RouteLogin)},
		{"autenticado sin roles exigidos", externo, nil, access.Allow},
		{"rol permitido", admin, []entity.Role{entity.RoleAdmin}, access.Allow},
		{"rol no permitido", externo, []entity.Role{entity.RoleAdmin}, access.RedirectTo(access.RouteForbidden)},
		{"uno de varios roles", externo, []entity.Role{entity.RoleAdmin, entity.RoleExterno}, access.Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.Authorize(tt.session, tt.roles...))
		})
	}
}

func TestGuard_TablaDeRutas(t *testing.T) {
	externo := sessionWith(entity.RoleExterno)
	admin := sessionWith(entity.RoleAdmin)

	assert.True(t, access.Guard(externo, access.RouteCompanies).Allowed)
	assert.Equal(t, access.RouteForbidden, access.Guard(externo, access.RouteProducts).Redirect)
	assert.Equal(t, access.RouteForbidden, access.Guard(externo, access.RouteInventory).Redirect)
	for _, r := range access.Routes {
		assert.True(t, access.Guard(admin, r.Path).Allowed, r.Path)
		assert.Equal(t, access.RouteLogin, access.Guard(nil, r.Path).Redirect, r.Path)
	}
}

func TestCan(t *testing.T) {
	assert.False(t, access.Can(nil))
	assert.True(t, access.Can(sessionWith(entity.RoleExterno)))
	assert.False(t, access.Can(sessionWith(entity.RoleExterno), entity.RoleAdmin))
}
