package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/udistrital/inmobiliaria_mid/helpers"
	"github.com/udistrital/inmobiliaria_mid/internal/clients"
	internaldto "github.com/udistrital/inmobiliaria_mid/internal/dto"
	internalhelpers "github.com/udistrital/inmobiliaria_mid/internal/helpers"
	"github.com/udistrital/inmobiliaria_mid/internal/lifecycle"
	"github.com/udistrital/inmobiliaria_mid/models"

	"github.com/beego/beego/v2/core/logs"
	"github.com/beego/beego/v2/core/validation"
)

// ahora se reemplaza en pruebas para fijar la marca de tiempo de las notas.
var ahora = time.Now

// ParseEtapasCSV convierte "ENVIADA, aceptada" en etapas normalizadas sin repetidos.
func ParseEtapasCSV(csv string) []models.EtapaOferta {
	trimmed := strings.TrimSpace(csv)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	result := make([]models.EtapaOferta, 0, len(parts))
	seen := make(map[models.EtapaOferta]struct{})
	for _, part := range parts {
		etapa := models.ParseEtapa(part)
		if etapa == "" {
			continue
		}
		if _, ok := seen[etapa]; ok {
			continue
		}
		seen[etapa] = struct{}{}
		result = append(result, etapa)
	}
	return result
}

// ListarOfertas consulta el colaborador con el filtro y pagina el resultado.
func ListarOfertas(ctx context.Context, filtro models.FiltroOfertas, page, size int) (*internaldto.PageDTO[internaldto.OfertaItem], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ofertas, err := Store().ListOfertas(ctx, filtro)
	if err != nil {
		return nil, storeError(err, "error consultando ofertas")
	}

	items := make([]internaldto.OfertaItem, 0, len(ofertas))
	for _, o := range ofertas {
		items = append(items, mapOfertaItem(o))
	}

	return &internaldto.PageDTO[internaldto.OfertaItem]{
		Items: internalhelpers.Paginate(items, page, size),
		Page:  page,
		Size:  size,
		Total: len(items),
	}, nil
}

// GetOfertaDetalle arma la vista de detalle con acciones disponibles y stepper.
func GetOfertaDetalle(ctx context.Context, ofertaID int64) (*internaldto.OfertaDetalle, error) {
	if ofertaID <= 0 {
		return nil, helpers.BadRequest("id inválido", nil)
	}
	oferta, err := Store().GetOfertaByID(ctx, ofertaID)
	if err != nil {
		return nil, storeError(err, "error consultando oferta")
	}
	detalle := mapOfertaDetalle(*oferta)
	return &detalle, nil
}

// TransicionesOferta lista las etapas a las que puede pasar la oferta.
func TransicionesOferta(ctx context.Context, ofertaID int64) (*internaldto.TransicionesResp, error) {
	if ofertaID <= 0 {
		return nil, helpers.BadRequest("id inválido", nil)
	}
	oferta, err := Store().GetOfertaByID(ctx, ofertaID)
	if err != nil {
		return nil, storeError(err, "error consultando oferta")
	}
	resp := EtapasSiguientesDe(string(oferta.Etapa))
	return &resp, nil
}

// CambiarEtapaOferta mueve la oferta a req.Etapa y deja registro en la auditoría.
// La tabla de transiciones no se exige: un destino fuera de ella se registra con
// FueraDeTabla y se reporta en el log.
func CambiarEtapaOferta(ctx context.Context, ofertaID int64, req internaldto.CambioEtapaReq) (*internaldto.CambioEtapaResp, error) {
	if ofertaID <= 0 {
		return nil, helpers.BadRequest("id inválido", nil)
	}
	req.Etapa = strings.TrimSpace(req.Etapa)
	req.Usuario = strings.TrimSpace(req.Usuario)
	if err := validarCambioEtapa(req); err != nil {
		return nil, err
	}

	// la observación se lee y se reescribe completa; dos cambios simultáneos perderían una nota
	unlock := cambiosEtapa.lock(ofertaID)
	defer unlock()

	oferta, err := Store().GetOfertaByID(ctx, ofertaID)
	if err != nil {
		return nil, storeError(err, "error consultando oferta")
	}

	nueva := models.ParseEtapa(req.Etapa)
	anterior := oferta.Etapa
	fueraDeTabla := !lifecycle.TransicionPermitida(anterior, nueva)
	if fueraDeTabla {
		logs.Warn("oferta %d: cambio %s -> %s fuera de la tabla de transiciones", ofertaID, anterior, nueva)
	}
	if !models.EtapaConocida(nueva) {
		logs.Warn("oferta %d: etapa desconocida %q", ofertaID, nueva)
	}

	momento := ahora()
	patch := lifecycle.AplicarCambioEtapa(*oferta, nueva, req.Nota, momento)
	actualizada, err := Store().UpdateOferta(ctx, ofertaID, patch)
	if err != nil {
		return nil, storeError(err, "error actualizando oferta")
	}

	registro, err := Store().AddAuditLog(ctx, models.RegistroAuditoria{
		OfertaId:      ofertaID,
		Accion:        models.AccionCambioEtapa,
		EtapaAnterior: anterior,
		EtapaNueva:    nueva,
		Nota:          strings.TrimSpace(req.Nota),
		Usuario:       req.Usuario,
		FueraDeTabla:  fueraDeTabla,
		Fecha:         momento.UTC(),
	})
	if err != nil {
		// la oferta ya quedó actualizada; el historial queda incompleto
		logs.Error("oferta %d: etapa cambiada a %s pero falló la auditoría: %v", ofertaID, nueva, err)
		return nil, storeError(err, "etapa actualizada pero no se pudo registrar la auditoría")
	}

	logs.Info("oferta %d: etapa %s -> %s", ofertaID, anterior, nueva)
	return &internaldto.CambioEtapaResp{
		Oferta:       mapOfertaDetalle(*actualizada),
		Auditoria:    *registro,
		FueraDeTabla: fueraDeTabla,
	}, nil
}

// ListarAuditoria retorna el historial de la oferta, más reciente primero.
func ListarAuditoria(ctx context.Context, ofertaID int64) ([]models.RegistroAuditoria, error) {
	if ofertaID <= 0 {
		return nil, helpers.BadRequest("id inválido", nil)
	}
	registros, err := Store().GetAuditLogsByOfertaID(ctx, ofertaID)
	if err != nil {
		return nil, storeError(err, "error consultando auditoría")
	}
	if registros == nil {
		registros = []models.RegistroAuditoria{}
	}
	return registros, nil
}

func validarCambioEtapa(req internaldto.CambioEtapaReq) error {
	valid := validation.Validation{}
	ok, err := valid.Valid(&req)
	if err != nil {
		return helpers.NewAppError(http.StatusInternalServerError, "error validando solicitud", err)
	}
	if !ok {
		msgs := make([]string, 0, len(valid.Errors))
		for _, e := range valid.Errors {
			msgs = append(msgs, strings.ToLower(e.Field)+": "+e.Message)
		}
		return helpers.BadRequest(strings.Join(msgs, "; "), nil)
	}
	return nil
}

func storeError(err error, fallback string) error {
	if errors.Is(err, clients.ErrNotFound) {
		return helpers.NotFound("oferta no encontrada")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logs.Error("%s: %v", fallback, err)
	return helpers.AsAppError(err, fallback)
}

func mapOfertaItem(o models.Oferta) internaldto.OfertaItem {
	return internaldto.OfertaItem{
		Id:                o.Id,
		InmuebleId:        o.InmuebleId,
		OportunidadId:     o.OportunidadId,
		Cliente:           o.Cliente,
		Monto:             o.Monto,
		Moneda:            o.Moneda,
		Etapa:             o.Etapa,
		EtapaDet:          lifecycle.Metadatos(o.Etapa),
		FechaModificacion: o.FechaModificacion,
	}
}

func mapOfertaDetalle(o models.Oferta) internaldto.OfertaDetalle {
	return internaldto.OfertaDetalle{
		OfertaItem:       mapOfertaItem(o),
		Observacion:      o.Observacion,
		FechaCreacion:    o.FechaCreacion,
		EtapasSiguientes: metadatosDe(lifecycle.EtapasSiguientes(o.Etapa)),
		IndiceFlujo:      lifecycle.IndiceFlujo(o.Etapa),
		Flujo:            lifecycle.PasosFlujo(o.Etapa),
	}
}

func metadatosDe(etapas []models.EtapaOferta) []lifecycle.MetadatosEtapa {
	out := make([]lifecycle.MetadatosEtapa, 0, len(etapas))
	for _, e := range etapas {
		out = append(out, lifecycle.Metadatos(e))
	}
	return out
}
