// Package api adaptador HTTP de la API remota de inventario.
// Usa net/http de la stdlib, igual que los demás clientes salientes del proyecto.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// maxBody tope de lectura de respuestas (el PDF del inventario es lo más grande).
const maxBody = 32 << 20

// ErrBodyTooLarge la respuesta supera maxBody; nunca se entrega truncada.
var ErrBodyTooLarge = errors.New("api: respuesta demasiado grande")

// TokenSource entrega el token de la sesión actual ("" = sin sesión).
type TokenSource interface {
	Token() string
}

// TokenFunc adapta una función a TokenSource.
type TokenFunc func() string

// Token implementa TokenSource.
func (f TokenFunc) Token() string { return f() }

// Client cliente de la API remota. Cada petición autenticada lleva Authorization: Bearer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logger.Logger
}

// NewClient construye el cliente. tokens puede ser nil (sin sesión).
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) *Client {
	if tokens == nil {
		tokens = TokenFunc(func() string { return "" })
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log.Named("api"),
	}
}

// request descripción de una llamada.
type request struct {
	op       string
	method   string
	path     string
	body     any
	fallback string
	anon     bool
}

// send ejecuta la petición y devuelve el cuerpo de una respuesta 2xx.
// Errores: *domain.NetworkError si no hubo respuesta, *domain.APIError si no fue 2xx.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	var reader io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("api: serializar %s: %w", r.op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, reader)
	if err != nil {
		return nil, &domain.NetworkError{Op: r.op, Err: err}
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if !r.anon {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		c.log.Warn().Err(err).Str("op", r.op).Str("method", r.method).Str("path", r.path).Msg("petición fallida")
		return nil, &domain.NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, &domain.NetworkError{Op: r.op, Err: err}
	}
	if len(raw) > maxBody {
		c.log.Warn().Str("op", r.op).Str("path", r.path).Msg("respuesta demasiado grande")
		return nil, &domain.NetworkError{Op: r.op, Err: ErrBodyTooLarge}
	}
	c.log.Debug().
		Str("op", r.op).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.APIError{Status: resp.StatusCode, Message: errorMessage(raw, r.fallback)}
	}
	return raw, nil
}

// sendJSON como send, decodificando la respuesta en out (si out no es nil).
func (c *Client) sendJSON(ctx context.Context, r request, out any) error {
	raw, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.APIError{Status: http.StatusOK, Message: r.fallback}
	}
	return nil
}

// errorMessage extrae el mensaje del servidor: JSON {message}/{error}, texto plano, o fallback.
func errorMessage(raw []byte, fallback string) string {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return fallback
	}
	if body[0] == '{' {
		var er struct {
			dto.ErrorResponse
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &er) == nil {
			if er.Message != "" {
				return er.Message
			}
			if er.Error != "" {
				return er.Error
			}
		}
		return fallback
	}
	if body[0] == '<' || len(body) > 300 {
		return fallback
	}
	return string(body)
}

// IsStatus indica si err es un *domain.APIError con el status dado.
func IsStatus(err error, status int) bool {
	var aerr *domain.APIError
	return errors.As(err, &aerr) && aerr.Status == status
}
