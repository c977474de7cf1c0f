// Package store backends del almacén de credenciales (CredentialStore):
// archivo local, Redis y PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.CredentialStore = (*FileStore)(nil)

// fileRecord forma en disco: los mismos nombres que el almacenamiento del navegador ("user" y "token").
type fileRecord struct {
	User  *entity.Session `json:"user"`
	Token string          `json:"token"`
}

// FileStore guarda la sesión en un archivo JSON con permisos 0600.
// La escritura va a un temporal y luego se renombra, así nunca queda un archivo a medias.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore crea el almacén en path. El directorio se crea al guardar.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path ruta del archivo.
func (s *FileStore) Path() string { return s.path }

// Load devuelve la sesión guardada o nil si no hay archivo.
func (s *FileStore) Load(ctx context.Context) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer %s: %w", s.path, err)
	}
	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", s.path, err)
	}
	if rec.User == nil {
		return nil, nil
	}
	if rec.User.Token == "" {
		rec.User.Token = rec.Token
	}
	return rec.User, nil
}

// Save reemplaza la sesión guardada.
func (s *FileStore) Save(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return s.Clear(ctx)
	}
	raw, err := json.MarshalIndent(fileRecord{User: session, Token: session.Token}, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar sesión: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("crear %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir temporal: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("permisos temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("reemplazar %s: %w", s.path, err)
	}
	return nil
}

// Clear borra el archivo. No existir no es un error.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", s.path, err)
	}
	return nil
}
