package dto

import (
	"time"

	"github.com/udistrital/inmobiliaria_mid/internal/lifecycle"
	"github.com/udistrital/inmobiliaria_mid/models"
)

// CambioEtapaReq es el cuerpo de PUT /v1/ofertas/:id/etapa.
type CambioEtapaReq struct {
	Etapa   string `json:"etapa" valid:"Required;MaxSize(64)"`
	Nota    string `json:"nota" valid:"MaxSize(2000)"`
	Usuario string `json:"usuario" valid:"MaxSize(120)"`
}

// OfertaItem es la fila de listados y dashboard.
type OfertaItem struct {
	Id                int64                    `json:"id"`
	InmuebleId        int64                    `json:"inmueble_id"`
	OportunidadId     int64                    `json:"oportunidad_id,omitempty"`
	Cliente           string                   `json:"cliente"`
	Monto             float64                  `json:"monto"`
	Moneda            string                   `json:"moneda"`
	Etapa             models.EtapaOferta       `json:"etapa"`
	EtapaDet          lifecycle.MetadatosEtapa `json:"etapa_det"`
	FechaModificacion time.Time                `json:"fecha_modificacion"`
}

// OfertaDetalle agrega al item lo que necesita la vista de detalle para pintar acciones y stepper.
type OfertaDetalle struct {
	OfertaItem
	Observacion      string                     `json:"observacion"`
	FechaCreacion    time.Time                  `json:"fecha_creacion"`
	EtapasSiguientes []lifecycle.MetadatosEtapa `json:"etapas_siguientes"`
	IndiceFlujo      int                        `json:"indice_flujo"`
	Flujo            []lifecycle.PasoFlujo      `json:"flujo"`
}

// CambioEtapaResp resume el resultado de un cambio de etapa.
type CambioEtapaResp struct {
	Oferta       OfertaDetalle            `json:"oferta"`
	Auditoria    models.RegistroAuditoria `json:"auditoria"`
	FueraDeTabla bool                     `json:"fuera_de_tabla"`
}

// TransicionesResp lista las acciones disponibles desde una etapa.
type TransicionesResp struct {
	Etapa            lifecycle.MetadatosEtapa   `json:"etapa"`
	EtapasSiguientes []lifecycle.MetadatosEtapa `json:"etapas_siguientes"`
}

// EtapaCatalogo es una entrada del catálogo de etapas.
type EtapaCatalogo struct {
	lifecycle.MetadatosEtapa
	IndiceFlujo      int                  `json:"indice_flujo"`
	EtapasSiguientes []models.EtapaOferta `json:"etapas_siguientes"`
}

// FlujoResp describe el stepper para una etapa opcional.
type FlujoResp struct {
	Etapa       models.EtapaOferta    `json:"etapa,omitempty"`
	IndiceFlujo int                   `json:"indice_flujo"`
	Pasos       []lifecycle.PasoFlujo `json:"pasos"`
}

// ConteoEtapa es un chip del dashboard.
type ConteoEtapa struct {
	lifecycle.MetadatosEtapa
	Total int `json:"total"`
}

// ResumenOfertas es el payload del dashboard de ofertas.
type ResumenOfertas struct {
	Total      int           `json:"total"`
	Activas    int           `json:"activas"`
	Terminales int           `json:"terminales"`
	PorEtapa   []ConteoEtapa `json:"por_etapa"`
	Embudo     []ConteoEtapa `json:"embudo"`
	Recientes  []OfertaItem  `json:"recientes"`
}
