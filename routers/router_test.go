package routers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udistrital/inmobiliaria_mid/internal/clients"
	internalservices "github.com/udistrital/inmobiliaria_mid/internal/services"
	"github.com/udistrital/inmobiliaria_mid/models"

	beego "github.com/beego/beego/v2/server/web"
)

type envelope struct {
	Success bool            `json:"Success"`
	Status  int             `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

func setup(t *testing.T) {
	t.Helper()
	store := clients.NewMemoryStore()
	store.Put(models.Oferta{
		Id:                7,
		InmuebleId:        70,
		Cliente:           "Marta León",
		Etapa:             models.EtapaEnviada,
		FechaModificacion: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	})
	internalservices.SetStore(store)
	t.Cleanup(func() { internalservices.SetStore(nil) })
}

func do(t *testing.T, method, path, body string) envelope {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	beego.BeeApp.Handlers.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, rec.Code, env.Status)
	return env
}

func TestRoutes_OfertaLifecycle(t *testing.T) {
	setup(t)

	env := do(t, http.MethodGet, "/v1/ofertas/7", "")
	require.True(t, env.Success)
	var detalle struct {
		Etapa            string `json:"etapa"`
		IndiceFlujo      int    `json:"indice_flujo"`
		EtapasSiguientes []struct {
			Code string `json:"code"`
		} `json:"etapas_siguientes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detalle))
	assert.Equal(t, "ENVIADA", detalle.Etapa)
	assert.Equal(t, 1, detalle.IndiceFlujo)
	require.NotEmpty(t, detalle.EtapasSiguientes)
	assert.Equal(t, "PENDIENTE_APROBACION_CLIENTE", detalle.EtapasSiguientes[0].Code)

	env = do(t, http.MethodPut, "/v1/ofertas/7/etapa", `{"etapa":"ACEPTADA","nota":"directo","usuario":"ops"}`)
	require.True(t, env.Success, env.Message)
	var cambio struct {
		FueraDeTabla bool `json:"fuera_de_tabla"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cambio))
	assert.True(t, cambio.FueraDeTabla)

	env = do(t, http.MethodGet, "/v1/ofertas/7/auditoria", "")
	require.True(t, env.Success)
	var registros []models.RegistroAuditoria
	require.NoError(t, json.Unmarshal(env.Data, &registros))
	require.Len(t, registros, 1)
	assert.Equal(t, models.EtapaAceptada, registros[0].EtapaNueva)

	env = do(t, http.MethodGet, "/v1/ofertas/7/transiciones", "")
	assert.True(t, env.Success)
}

func TestRoutes_Errors(t *testing.T) {
	setup(t)

	env := do(t, http.MethodGet, "/v1/ofertas/999", "")
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.Status)

	env = do(t, http.MethodGet, "/v1/ofertas/abc", "")
	assert.Equal(t, http.StatusBadRequest, env.Status)

	env = do(t, http.MethodPut, "/v1/ofertas/7/etapa", `{"nota":"sin etapa"}`)
	assert.Equal(t, http.StatusBadRequest, env.Status)

	env = do(t, http.MethodPut, "/v1/ofertas/7/etapa", `{`)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestRoutes_ListadoYDashboard(t *testing.T) {
	setup(t)

	env := do(t, http.MethodGet, "/v1/ofertas?estado=enviada&page=1&size=10", "")
	require.True(t, env.Success)
	var page struct {
		Total int `json:"total"`
		Size  int `json:"size"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 10, page.Size)

	env = do(t, http.MethodGet, "/v1/ofertas/dashboard", "")
	require.True(t, env.Success)
	var resumen struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resumen))
	assert.Equal(t, 1, resumen.Total)
}

func TestRoutes_ListadoPageOutOfRange(t *testing.T) {
	setup(t)

	env := do(t, http.MethodGet, "/v1/ofertas?page=9223372036854775807", "")
	require.True(t, env.Success, env.Message)
	var page struct {
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Total)
}

func TestRoutes_Etapas(t *testing.T) {
	env := do(t, http.MethodGet, "/v1/etapas", "")
	require.True(t, env.Success)
	var catalogo []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &catalogo))
	assert.Len(t, catalogo, len(models.EtapasConocidas))

	env = do(t, http.MethodGet, "/v1/etapas/flujo?etapa=aceptada", "")
	var flujo struct {
		IndiceFlujo int `json:"indice_flujo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &flujo))
	assert.Equal(t, 3, flujo.IndiceFlujo)

	env = do(t, http.MethodGet, "/v1/etapas/finalizado/siguientes", "")
	var siguientes struct {
		EtapasSiguientes []json.RawMessage `json:"etapas_siguientes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &siguientes))
	assert.Empty(t, siguientes.EtapasSiguientes)
}
