// Package export entrega de documentos descargados al disco local.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Inventario-console/internal/application/ports"
)

var _ ports.Saver = (*DirSaver)(nil)

// DirSaver guarda los documentos en un directorio (DOWNLOAD_DIR). Si el archivo existe se reemplaza.
type DirSaver struct {
	dir string
}

// NewDirSaver crea el saver sobre dir.
func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{dir: dir}
}

// Save escribe content como dir/filename y devuelve la ruta absoluta.
func (s *DirSaver) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename != filepath.Base(filename) {
		return "", fmt.Errorf("export: nombre de archivo inválido %q", filename)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: crear %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("export: escribir %s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// MemorySaver retiene el último documento en memoria. Lo usa el servidor de consola para
// devolverlo como descarga en la misma respuesta.
type MemorySaver struct {
	Filename string
	Content  []byte
}

// Save implementa ports.Saver.
func (s *MemorySaver) Save(_ context.Context, filename string, content []byte) (string, error) {
	s.Filename = filename
	s.Content = content
	return filename, nil
}
