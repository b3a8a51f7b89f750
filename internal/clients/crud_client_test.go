package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udistrital/inmobiliaria_mid/models"
	rootservices "github.com/udistrital/inmobiliaria_mid/services"
)

type fakeCRUD struct {
	mu        sync.Mutex
	oferta    map[string]interface{}
	lastPut   map[string]interface{}
	lastPost  map[string]interface{}
	queries   []string
	authSeen  string
	auditoria string
}

func (f *fakeCRUD) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oferta/7", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.authSeen = r.Header.Get("Authorization")
		switch r.Method {
		case http.MethodGet:
			writeWrapped(t, w, f.oferta)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &f.lastPut))
			writeWrapped(t, w, f.lastPut)
		}
	})
	mux.HandleFunc("/v1/oferta/404", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"Success":false}`, http.StatusNotFound)
	})
	mux.HandleFunc("/v1/oferta", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.queries = append(f.queries, r.URL.Query().Get("query"))
		f.mu.Unlock()
		switch {
		case strings.Contains(r.URL.Query().Get("query"), "Observacion__icontains:"):
			writeWrapped(t, w, []map[string]interface{}{{"Id": 10, "Etapa": "BORRADOR", "Cliente": "Otro", "Observacion": "llamar a Carolina"}})
		case strings.Contains(r.URL.Query().Get("query"), "Etapa:ENVIADA"):
			writeWrapped(t, w, []map[string]interface{}{{"Id": 7, "Etapa": "ENVIADA"}, {"Id": "8", "Etapa": "enviada"}})
		default:
			writeWrapped(t, w, []map[string]interface{}{{"Id": 8, "Etapa": "ENVIADA"}, {"Id": 9, "Etapa": "BORRADOR"}})
		}
	})
	mux.HandleFunc("/v1/oferta_auditoria", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			f.mu.Lock()
			f.auditoria = r.URL.RawQuery
			f.mu.Unlock()
			writeWrapped(t, w, []map[string]interface{}{
				{"Id": "a", "OfertaId": 7, "EtapaNueva": "ENVIADA", "Fecha": "2024-01-01T00:00:00Z"},
				{"Id": "b", "OfertaId": 7, "EtapaNueva": "CONTRAOFERTA", "Fecha": "2024-02-01T00:00:00Z"},
			})
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			require.NoError(t, json.Unmarshal(body, &f.lastPost))
			f.mu.Unlock()
			writeWrapped(t, w, map[string]interface{}{"Id": "generado"})
		}
	})
	return mux
}

func writeWrapped(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
		"Success": true,
		"Status":  "200",
		"Message": "ok",
		"Data":    data,
	}))
}

func newTestCRUDClient(t *testing.T) (*CRUDClient, *fakeCRUD) {
	fake := &fakeCRUD{oferta: map[string]interface{}{
		"Id":          7,
		"InmuebleId":  map[string]interface{}{"Id": 33},
		"Cliente":     " Carla ",
		"Etapa":       "ENVIADA",
		"Observacion": "previa",
		"CampoCRUD":   "se conserva",
	}}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	client := NewCRUDClient(rootservices.Config{
		InmueblesCRUDBaseURL: srv.URL + "/v1",
		OASBearerToken:       "secreto",
		RequestTimeout:       2 * time.Second,
	})
	return client, fake
}

func TestCRUDClient_GetOfertaByID(t *testing.T) {
	client, fake := newTestCRUDClient(t)

	o, err := client.GetOfertaByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), o.Id)
	assert.Equal(t, int64(33), o.InmuebleId)
	assert.Equal(t, "Carla", o.Cliente)
	assert.Equal(t, models.EtapaEnviada, o.Etapa)
	assert.Equal(t, "Bearer secreto", fake.authSeen)

	_, err = client.GetOfertaByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCRUDClient_UpdateOfertaMergesRecord(t *testing.T) {
	client, fake := newTestCRUDClient(t)

	o, err := client.UpdateOferta(context.Background(), 7, models.OfertaPatch{
		Etapa:       models.EtapaContraoferta,
		Observacion: "previa\n[2024-01-01 10:00] nota",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EtapaContraoferta, o.Etapa)
	assert.Equal(t, "se conserva", fake.lastPut["CampoCRUD"])
	assert.Equal(t, "CONTRAOFERTA", fake.lastPut["Etapa"])
	assert.NotEmpty(t, fake.lastPut["FechaModificacion"])
}

func TestCRUDClient_ListOfertasDedupesAcrossStages(t *testing.T) {
	client, fake := newTestCRUDClient(t)

	list, err := client.ListOfertas(context.Background(), models.FiltroOfertas{
		Etapas:     []models.EtapaOferta{models.EtapaEnviada, models.EtapaBorrador},
		InmuebleId: 5,
		Texto:      "car",
	})
	require.NoError(t, err)

	ids := make([]int64, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.Id)
	}
	assert.Equal(t, []int64{7, 8, 9, 10}, ids)
	assert.Equal(t, []string{
		"Etapa:ENVIADA,InmuebleId:5,Cliente__icontains:car",
		"Etapa:ENVIADA,InmuebleId:5,Observacion__icontains:car",
		"Etapa:BORRADOR,InmuebleId:5,Cliente__icontains:car",
		"Etapa:BORRADOR,InmuebleId:5,Observacion__icontains:car",
	}, fake.queries)
}

func TestCRUDClient_ListOfertasTextMatchesObservacion(t *testing.T) {
	client, fake := newTestCRUDClient(t)

	list, err := client.ListOfertas(context.Background(), models.FiltroOfertas{Texto: "carolina"})
	require.NoError(t, err)

	var encontrada *models.Oferta
	for i := range list {
		if list[i].Id == 10 {
			encontrada = &list[i]
		}
	}
	require.NotNil(t, encontrada, "la oferta que solo coincide por observación debe listarse")
	assert.True(t, models.FiltroOfertas{Texto: "carolina"}.Coincide(*encontrada))
	assert.Contains(t, fake.queries, "Observacion__icontains:carolina")
}

func TestCRUDClient_ListOfertasWithoutTextSendsOneQueryPerStage(t *testing.T) {
	client, fake := newTestCRUDClient(t)

	_, err := client.ListOfertas(context.Background(), models.FiltroOfertas{Etapas: []models.EtapaOferta{models.EtapaEnviada}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Etapa:ENVIADA"}, fake.queries)
}

func TestCRUDClient_AuditLogsUnknownOferta(t *testing.T) {
	client, fake := newTestCRUDClient(t)

	_, err := client.GetAuditLogsByOfertaID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, fake.auditoria)
}

func TestCRUDClient_AuditLogs(t *testing.T) {
	client, fake := newTestCRUDClient(t)
	ctx := context.Background()

	logs, err := client.GetAuditLogsByOfertaID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "b", logs[0].Id)
	assert.Contains(t, fake.auditoria, "OfertaId%3A7")

	created, err := client.AddAuditLog(ctx, models.RegistroAuditoria{
		OfertaId:   7,
		Accion:     models.AccionCambioEtapa,
		EtapaNueva: models.EtapaRechazada,
		Nota:       "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "generado", created.Id)
	assert.Equal(t, "RECHAZADA", fake.lastPost["EtapaNueva"])
	_, hasNota := fake.lastPost["Nota"]
	assert.False(t, hasNota)
}
