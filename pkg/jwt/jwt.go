package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims que emite la API de inventario. Subject es el email del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// ErrMissingSubject el token no trae el claim sub.
var ErrMissingSubject = errors.New("jwt: token sin claim sub")

// Generate genera un token firmado HS256 con subject y role. Lo usan los fixtures de prueba
// y la API simulada; la consola nunca firma tokens propios.
func Generate(secret, subject, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Decode lee los claims de un token SIN verificar firma ni expiración.
// La consola no tiene el secreto: la API es quien valida el token en cada petición.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token mal formado: %w", err)
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
