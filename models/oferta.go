package models

import (
	"strings"
	"time"
)

// Oferta representa una oferta sobre un inmueble tal como la entrega el colaborador de datos.
type Oferta struct {
	Id                int64       `json:"id" yaml:"id"`
	InmuebleId        int64       `json:"inmueble_id" yaml:"inmueble_id"`
	OportunidadId     int64       `json:"oportunidad_id,omitempty" yaml:"oportunidad_id"`
	Cliente           string      `json:"cliente" yaml:"cliente"`
	Monto             float64     `json:"monto" yaml:"monto"`
	Moneda            string      `json:"moneda" yaml:"moneda"`
	Etapa             EtapaOferta `json:"etapa" yaml:"etapa"`
	Observacion       string      `json:"observacion" yaml:"observacion"`
	FechaCreacion     time.Time   `json:"fecha_creacion" yaml:"fecha_creacion"`
	FechaModificacion time.Time   `json:"fecha_modificacion" yaml:"fecha_modificacion"`
}

// OfertaPatch es la actualización que produce un cambio de etapa.
// El colaborador de datos la aplica; el núcleo nunca persiste.
type OfertaPatch struct {
	Etapa       EtapaOferta `json:"etapa"`
	Observacion string      `json:"observacion"`
}

// FiltroOfertas agrupa los filtros soportados al listar ofertas.
type FiltroOfertas struct {
	Etapas     []EtapaOferta
	InmuebleId int64
	Texto      string
}

// Coincide evalúa el filtro en memoria. Lo usan los backends sin consulta nativa.
func (f FiltroOfertas) Coincide(o Oferta) bool {
	if f.InmuebleId > 0 && o.InmuebleId != f.InmuebleId {
		return false
	}
	if len(f.Etapas) > 0 {
		match := false
		for _, e := range f.Etapas {
			if e == o.Etapa {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	if f.Texto != "" {
		return containsFold(o.Cliente, f.Texto) || containsFold(o.Observacion, f.Texto)
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// Acciones registradas en la auditoría de ofertas.
const (
	AccionCambioEtapa = "CAMBIO_ETAPA"
)

// RegistroAuditoria es una entrada del historial de cambios de una oferta.
type RegistroAuditoria struct {
	Id            string      `json:"id" yaml:"id"`
	OfertaId      int64       `json:"oferta_id" yaml:"oferta_id"`
	Accion        string      `json:"accion" yaml:"accion"`
	EtapaAnterior EtapaOferta `json:"etapa_anterior" yaml:"etapa_anterior"`
	EtapaNueva    EtapaOferta `json:"etapa_nueva" yaml:"etapa_nueva"`
	Nota          string      `json:"nota,omitempty" yaml:"nota"`
	Usuario       string      `json:"usuario,omitempty" yaml:"usuario"`
	FueraDeTabla  bool        `json:"fuera_de_tabla" yaml:"fuera_de_tabla"`
	Fecha         time.Time   `json:"fecha" yaml:"fecha"`
}
