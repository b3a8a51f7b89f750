package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_DefaultsToMemoryBackend(t *testing.T) {
	t.Setenv("OFERTAS_BACKEND", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("REQUEST_TIMEOUT_MS", "2500")

	c, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendMemoria, c.Backend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowOrigins)
	assert.Equal(t, int64(2500), c.RequestTimeout.Milliseconds())
}

func TestReadConfig_ValidatesSelectedBackend(t *testing.T) {
	t.Setenv("OFERTAS_BACKEND", "crud")
	t.Setenv("INMUEBLES_CRUD_BASE_URL", "")
	_, err := readConfig()
	assert.ErrorContains(t, err, "INMUEBLES_CRUD_BASE_URL")

	t.Setenv("INMUEBLES_CRUD_BASE_URL", "http://crud.test/v1/")
	c, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://crud.test/v1", c.InmueblesCRUDBaseURL)

	t.Setenv("OFERTAS_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	_, err = readConfig()
	assert.ErrorContains(t, err, "POSTGRES_DSN")

	t.Setenv("OFERTAS_BACKEND", "mongo")
	_, err = readConfig()
	assert.ErrorContains(t, err, "no soportado")
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "http://crud/v1/oferta/7", BuildURL("http://crud/v1/", "/oferta/", "7"))
}

func TestAddBearerAuth(t *testing.T) {
	h := AddBearerAuth(nil, "tok")
	assert.Equal(t, "Bearer tok", h["Authorization"])

	h = AddBearerAuth(map[string]string{"Authorization": "Bearer propio"}, "tok")
	assert.Equal(t, "Bearer propio", h["Authorization"])

	assert.Empty(t, AddBearerAuth(nil, ""))
}
