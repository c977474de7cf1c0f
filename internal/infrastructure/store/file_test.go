package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/store"
)

var sample = &entity.Session{Token: "tok", Role: entity.RoleAdmin, Identity: "admin@acme.co"}

func TestFileStore_SinArchivoDevuelveNil(t *testing.T) {
	s := store.NewFileStore(filepath.Join(t.TempDir(), "nada.json"))

	got, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStore_GuardarCargarBorrar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "session.json")
	s := store.NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx), "borrar dos veces no es error")
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStore_FormatoDelNavegador(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw := `{"user":{"token":"","role":"EXTERNO","email":"e@x.co"},"token":"abc"}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	got, err := store.NewFileStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &entity.Session{Token: "abc", Role: entity.RoleExterno, Identity: "e@x.co"}, got)
}

func TestFileStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no json"), 0o600))

	_, err := store.NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}
