package clients

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rootservices "github.com/udistrital/inmobiliaria_mid/services"
)

func TestNewStore(t *testing.T) {
	store, err := NewStore(rootservices.Config{Backend: rootservices.BackendMemoria})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = NewStore(rootservices.Config{Backend: rootservices.BackendCRUD, InmueblesCRUDBaseURL: "http://crud"})
	require.NoError(t, err)
	assert.IsType(t, &CRUDClient{}, store)

	_, err = NewStore(rootservices.Config{Backend: "redis"})
	assert.Error(t, err)
}

func TestNewStore_LoadsSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semilla.yaml")
	require.NoError(t, os.WriteFile(path, []byte(semillaPrueba), 0o644))

	store, err := NewStore(rootservices.Config{Backend: rootservices.BackendMemoria, SeedFile: path})
	require.NoError(t, err)
	mem := store.(*MemoryStore)
	assert.Len(t, mem.ofertas, 2)

	_, err = NewStore(rootservices.Config{SeedFile: filepath.Join(t.TempDir(), "no-existe.yaml")})
	assert.Error(t, err)
}
