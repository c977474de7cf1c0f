package ports

import "context"

// AuthGateway define el puerto de salida hacia el endpoint de login de la API.
// El adaptador HTTP vive en infrastructure/api; los tests usan dobles en memoria.
type AuthGateway interface {
	// Login intercambia credenciales por un token y el rol asignado por el servidor.
	Login(ctx context.Context, email, password string) (token, role string, err error)
}

// Navigator mueve la vista activa a una ruta de la consola ("/", "/empresas", ...).
// En la CLI solo informa; en el servidor de consola se traduce en una redirección.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapta una función a Navigator.
type NavigatorFunc func(path string)

// Navigate implementa Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }
