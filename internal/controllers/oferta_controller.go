package controllers

import (
	"strings"

	rootcontrollers "github.com/udistrital/inmobiliaria_mid/controllers"
	"github.com/udistrital/inmobiliaria_mid/helpers"
	internaldto "github.com/udistrital/inmobiliaria_mid/internal/dto"
	internalhelpers "github.com/udistrital/inmobiliaria_mid/internal/helpers"
	internalservices "github.com/udistrital/inmobiliaria_mid/internal/services"
	"github.com/udistrital/inmobiliaria_mid/models"
)

// OfertaController expone el ciclo de vida de las ofertas inmobiliarias.
type OfertaController struct {
	rootcontrollers.BaseController
}

// @Summary Listar ofertas
// @Description Filtra por etapa (CSV), inmueble y texto libre sobre cliente u observación.
// @Tags Ofertas
// @Produce json
// @Param estado query string false "Etapas separadas por coma"
// @Param inmueble_id query int false "Inmueble"
// @Param q query string false "Texto libre"
// @Param page query int false "Página"
// @Param size query int false "Tamaño de página"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
// GetListado lista ofertas paginadas.
func (c *OfertaController) GetListado() {
	filtro := models.FiltroOfertas{
		Etapas:     internalservices.ParseEtapasCSV(c.GetString("estado")),
		InmuebleId: internalhelpers.QueryInt64(c.GetString("inmueble_id")),
		Texto:      strings.TrimSpace(c.GetString("q")),
	}
	page, size := internalhelpers.ParsePageSize(c.GetString("page"), c.GetString("size"))

	data, err := internalservices.ListarOfertas(c.Ctx.Request.Context(), filtro, page, size)
	if err != nil {
		c.RespondError(err, "error listando ofertas")
		return
	}
	c.RespondOK(data)
}

// @Summary Detalle de oferta
// @Tags Ofertas
// @Produce json
// @Param id path int true "Id de la oferta"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// GetById retorna la oferta con sus acciones disponibles y el stepper.
func (c *OfertaController) GetById() {
	ofertaID, ok := c.parseOfertaID()
	if !ok {
		return
	}
	data, err := internalservices.GetOfertaDetalle(c.Ctx.Request.Context(), ofertaID)
	if err != nil {
		c.RespondError(err, "error consultando oferta")
		return
	}
	c.RespondOK(data)
}

// GetTransiciones GET /v1/ofertas/:id/transiciones
func (c *OfertaController) GetTransiciones() {
	ofertaID, ok := c.parseOfertaID()
	if !ok {
		return
	}
	data, err := internalservices.TransicionesOferta(c.Ctx.Request.Context(), ofertaID)
	if err != nil {
		c.RespondError(err, "error consultando transiciones")
		return
	}
	c.RespondOK(data)
}

// @Summary Cambiar etapa
// @Description Mueve la oferta a otra etapa y agrega la nota a la observación. No exige la tabla de transiciones.
// @Tags Ofertas
// @Accept json
// @Produce json
// @Param id path int true "Id de la oferta"
// @Param body body internaldto.CambioEtapaReq true "Etapa destino y nota"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// PutEtapa aplica el cambio de etapa.
func (c *OfertaController) PutEtapa() {
	ofertaID, ok := c.parseOfertaID()
	if !ok {
		return
	}
	var req internaldto.CambioEtapaReq
	if err := c.ParseJSONBody(&req); err != nil {
		c.RespondError(helpers.BadRequest("JSON inválido", err), "JSON inválido")
		return
	}
	data, err := internalservices.CambiarEtapaOferta(c.Ctx.Request.Context(), ofertaID, req)
	if err != nil {
		c.RespondError(err, "error cambiando etapa")
		return
	}
	c.RespondOK(data)
}

// GetAuditoria GET /v1/ofertas/:id/auditoria
func (c *OfertaController) GetAuditoria() {
	ofertaID, ok := c.parseOfertaID()
	if !ok {
		return
	}
	data, err := internalservices.ListarAuditoria(c.Ctx.Request.Context(), ofertaID)
	if err != nil {
		c.RespondError(err, "error consultando auditoría")
		return
	}
	c.RespondOK(data)
}

func (c *OfertaController) parseOfertaID() (int64, bool) {
	id, err := internalhelpers.ParamInt64(c.Ctx, ":id")
	if err != nil {
		c.RespondError(helpers.BadRequest("id inválido", err), "id inválido")
		return 0, false
	}
	return id, true
}
