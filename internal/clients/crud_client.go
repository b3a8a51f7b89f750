package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beego/beego/v2/core/logs"

	"github.com/udistrital/inmobiliaria_mid/helpers"
	"github.com/udistrital/inmobiliaria_mid/models"
	rootservices "github.com/udistrital/inmobiliaria_mid/services"
)

// CRUDClient implementa OfertasStore contra el servicio inmuebles_crud.
type CRUDClient struct {
	cfg rootservices.Config
}

// NewCRUDClient crea el cliente con la configuración dada.
func NewCRUDClient(cfg rootservices.Config) *CRUDClient {
	return &CRUDClient{cfg: cfg}
}

type crudOferta struct {
	Id                models.FlexInt64 `json:"Id"`
	InmuebleId        models.FlexInt64 `json:"InmuebleId"`
	OportunidadId     models.FlexInt64 `json:"OportunidadId"`
	Cliente           string           `json:"Cliente"`
	Monto             float64          `json:"Monto"`
	Moneda            string           `json:"Moneda"`
	Etapa             string           `json:"Etapa"`
	Observacion       string           `json:"Observacion"`
	FechaCreacion     string           `json:"FechaCreacion"`
	FechaModificacion string           `json:"FechaModificacion"`
}

type crudAuditoria struct {
	Id            string           `json:"Id"`
	OfertaId      models.FlexInt64 `json:"OfertaId"`
	Accion        string           `json:"Accion"`
	EtapaAnterior string           `json:"EtapaAnterior"`
	EtapaNueva    string           `json:"EtapaNueva"`
	Nota          string           `json:"Nota"`
	Usuario       string           `json:"Usuario"`
	FueraDeTabla  bool             `json:"FueraDeTabla"`
	Fecha         string           `json:"Fecha"`
}

func (c *CRUDClient) headers() map[string]string {
	return rootservices.AddBearerAuth(nil, c.cfg.OASBearerToken)
}

func (c *CRUDClient) endpoint(elems ...string) string {
	return rootservices.BuildURL(c.cfg.InmueblesCRUDBaseURL, elems...)
}

// GetOfertaByID consulta una oferta por id.
func (c *CRUDClient) GetOfertaByID(ctx context.Context, id int64) (*models.Oferta, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	var raw crudOferta
	err := helpers.DoJSONWithHeaders(ctx, http.MethodGet, c.endpoint("oferta", strconv.FormatInt(id, 10)), c.headers(), nil, &raw, c.cfg.RequestTimeout, true)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if raw.Id.Int64() == 0 {
		return nil, ErrNotFound
	}
	oferta := mapCRUDOferta(raw)
	return &oferta, nil
}

// UpdateOferta hace GET, aplica el patch sobre el registro completo y luego PUT
// para no perder campos que el MID no conoce.
func (c *CRUDClient) UpdateOferta(ctx context.Context, id int64, patch models.OfertaPatch) (*models.Oferta, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := c.endpoint("oferta", strconv.FormatInt(id, 10))

	var current map[string]interface{}
	if err := helpers.DoJSONWithHeaders(ctx, http.MethodGet, endpoint, c.headers(), nil, &current, c.cfg.RequestTimeout, true); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(current) == 0 {
		return nil, ErrNotFound
	}

	current["Etapa"] = string(patch.Etapa)
	current["Observacion"] = patch.Observacion
	current["FechaModificacion"] = time.Now().UTC().Format(time.RFC3339)

	var updated crudOferta
	if err := helpers.DoJSONWithHeaders(ctx, http.MethodPut, endpoint, c.headers(), current, &updated, c.cfg.RequestTimeout, true); err != nil {
		logs.Error("UpdateOferta PUT error: id=%d err=%v", id, err)
		return nil, err
	}
	if updated.Id.Int64() == 0 {
		return c.GetOfertaByID(ctx, id)
	}
	oferta := mapCRUDOferta(updated)
	return &oferta, nil
}

// ListOfertas consulta el CRUD una vez por etapa solicitada y deduplica por id.
func (c *CRUDClient) ListOfertas(ctx context.Context, filtro models.FiltroOfertas) ([]models.Oferta, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	etapas := filtro.Etapas
	if len(etapas) == 0 {
		etapas = []models.EtapaOferta{""}
	}

	// el CRUD combina condiciones con AND; el texto libre se busca en cada campo por separado
	camposTexto := []string{""}
	if strings.TrimSpace(filtro.Texto) != "" {
		camposTexto = camposTextoOferta
	}

	seen := make(map[int64]struct{})
	out := make([]models.Oferta, 0)
	for _, etapa := range etapas {
		for _, campo := range camposTexto {
			var raw []crudOferta
			urlWithQuery := c.endpoint("oferta") + "?" + buildOfertaQuery(filtro, etapa, campo).Encode()
			if err := helpers.DoJSONWithHeaders(ctx, http.MethodGet, urlWithQuery, c.headers(), nil, &raw, c.cfg.RequestTimeout, true); err != nil {
				return nil, err
			}
			for _, item := range raw {
				oferta := mapCRUDOferta(item)
				if oferta.Id == 0 {
					continue
				}
				if _, ok := seen[oferta.Id]; ok {
					continue
				}
				seen[oferta.Id] = struct{}{}
				out = append(out, oferta)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

// GetAuditLogsByOfertaID consulta el historial y lo ordena del más reciente al más antiguo.
// Retorna ErrNotFound si la oferta no existe.
func (c *CRUDClient) GetAuditLogsByOfertaID(ctx context.Context, id int64) ([]models.RegistroAuditoria, error) {
	if _, err := c.GetOfertaByID(ctx, id); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("limit", "0")
	values.Set("query", fmt.Sprintf("OfertaId:%d", id))
	values.Set("sortby", "Fecha")
	values.Set("order", "desc")

	var raw []crudAuditoria
	if err := helpers.DoJSONWithHeaders(ctx, http.MethodGet, c.endpoint("oferta_auditoria")+"?"+values.Encode(), c.headers(), nil, &raw, c.cfg.RequestTimeout, true); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return []models.RegistroAuditoria{}, nil
		}
		return nil, err
	}
	out := make([]models.RegistroAuditoria, 0, len(raw))
	for _, r := range raw {
		if r.OfertaId.Int64() == 0 && r.Id == "" {
			continue
		}
		out = append(out, mapCRUDAuditoria(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

// AddAuditLog registra una entrada en oferta_auditoria.
func (c *CRUDClient) AddAuditLog(ctx context.Context, entry models.RegistroAuditoria) (*models.RegistroAuditoria, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	if entry.Fecha.IsZero() {
		entry.Fecha = time.Now().UTC()
	}
	body := map[string]interface{}{
		"OfertaId":      entry.OfertaId,
		"Accion":        entry.Accion,
		"EtapaAnterior": string(entry.EtapaAnterior),
		"EtapaNueva":    string(entry.EtapaNueva),
		"FueraDeTabla":  entry.FueraDeTabla,
		"Fecha":         entry.Fecha.UTC().Format(time.RFC3339),
	}
	if entry.Id != "" {
		body["Id"] = entry.Id
	}
	if note := strings.TrimSpace(entry.Nota); note != "" {
		body["Nota"] = note
	}
	if usuario := strings.TrimSpace(entry.Usuario); usuario != "" {
		body["Usuario"] = usuario
	}

	var created crudAuditoria
	if err := helpers.DoJSONWithHeaders(ctx, http.MethodPost, c.endpoint("oferta_auditoria"), c.headers(), body, &created, c.cfg.RequestTimeout, true); err != nil {
		return nil, err
	}
	if created.Id != "" {
		entry.Id = created.Id
	}
	return &entry, nil
}

// camposTextoOferta son los campos donde busca el texto libre, igual que FiltroOfertas.Coincide.
var camposTextoOferta = []string{"Cliente", "Observacion"}

func buildOfertaQuery(filtro models.FiltroOfertas, etapa models.EtapaOferta, campoTexto string) url.Values {
	values := url.Values{}
	values.Set("limit", "0")

	var parts []string
	if etapa != "" {
		parts = append(parts, "Etapa:"+string(etapa))
	}
	if filtro.InmuebleId > 0 {
		parts = append(parts, fmt.Sprintf("InmuebleId:%d", filtro.InmuebleId))
	}
	if texto := strings.TrimSpace(filtro.Texto); texto != "" && campoTexto != "" {
		parts = append(parts, campoTexto+"__icontains:"+texto)
	}
	if len(parts) > 0 {
		values.Set("query", strings.Join(parts, ","))
	}
	return values
}

func mapCRUDOferta(raw crudOferta) models.Oferta {
	return models.Oferta{
		Id:                raw.Id.Int64(),
		InmuebleId:        raw.InmuebleId.Int64(),
		OportunidadId:     raw.OportunidadId.Int64(),
		Cliente:           strings.TrimSpace(raw.Cliente),
		Monto:             raw.Monto,
		Moneda:            strings.TrimSpace(raw.Moneda),
		Etapa:             models.ParseEtapa(raw.Etapa),
		Observacion:       raw.Observacion,
		FechaCreacion:     parseCRUDDate(raw.FechaCreacion),
		FechaModificacion: parseCRUDDate(raw.FechaModificacion),
	}
}

func mapCRUDAuditoria(raw crudAuditoria) models.RegistroAuditoria {
	return models.RegistroAuditoria{
		Id:            raw.Id,
		OfertaId:      raw.OfertaId.Int64(),
		Accion:        strings.TrimSpace(raw.Accion),
		EtapaAnterior: models.ParseEtapa(raw.EtapaAnterior),
		EtapaNueva:    models.ParseEtapa(raw.EtapaNueva),
		Nota:          raw.Nota,
		Usuario:       raw.Usuario,
		FueraDeTabla:  raw.FueraDeTabla,
		Fecha:         parseCRUDDate(raw.Fecha),
	}
}

func parseCRUDDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
