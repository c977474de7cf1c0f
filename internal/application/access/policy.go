// Package access política de acceso por rol. Es una función pura: decide, nunca navega.
// La misma decisión sirve para proteger vistas completas y controles individuales.
package access

import (
	"slices"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Rutas de la consola.
const (
	RouteLogin     = "/"
	RouteForbidden = "/forbidden"
	RouteHome      = "/empresas"
	RouteCompanies = "/empresas"
	RouteProducts  = "/productos"
	RouteInventory = "/inventario"
)

// Decision resultado de Authorize. Si Allowed es false, Redirect indica a dónde ir.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Allow decisión positiva.
var Allow = Decision{Allowed: true}

// RedirectTo decisión negativa con destino.
func RedirectTo(target string) Decision {
	return Decision{Redirect: target}
}

// Authorize decide si la sesión puede acceder a algo que exige alguno de roles.
//   - Sin sesión → login.
//   - Sin roles exigidos → cualquier rol autenticado.
//   - Rol fuera de roles → forbidden.
func Authorize(session *entity.Session, roles ...entity.Role) Decision {
	if session == nil {
		return RedirectTo(RouteLogin)
	}
	if len(roles) == 0 {
		return Allow
	}
	if !slices.Contains(roles, session.Role) {
		return RedirectTo(RouteForbidden)
	}
	return Allow
}

// Can atajo booleano para mostrar u ocultar controles.
func Can(session *entity.Session, roles ...entity.Role) bool {
	return Authorize(session, roles...).Allowed
}

// Route vista navegable y los roles que exige.
type Route struct {
	Path  string
	Roles []entity.Role
}

// Routes tabla de vistas protegidas.
var Routes = []Route{
	{Path: RouteCompanies, Roles: []entity.Role{entity.RoleAdmin, entity.RoleExterno}},
	{Path: RouteProducts, Roles: []entity.Role{entity.RoleAdmin}},
	{Path: RouteInventory, Roles: []entity.Role{entity.RoleAdmin}},
}

// RolesFor roles exigidos por una ruta; nil si la ruta solo exige autenticación.
func RolesFor(path string) []entity.Role {
	for _, r := range Routes {
		if r.Path == path {
			return r.Roles
		}
	}
	return nil
}

// Guard decisión de navegación para una ruta de la tabla.
func Guard(session *entity.Session, path string) Decision {
	return Authorize(session, RolesFor(path)...)
}
