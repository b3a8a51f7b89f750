package models

import "strings"

// EtapaOferta identifica el punto del ciclo de negociación en el que se encuentra una oferta.
type EtapaOferta string

// Etapas de oferta conocidas. Los valores se conservan tal como los maneja el back-office.
const (
	EtapaBorrador                       EtapaOferta = "BORRADOR"
	EtapaEnviada                        EtapaOferta = "ENVIADA"
	EtapaContraoferta                   EtapaOferta = "CONTRAOFERTA"
	EtapaPendienteAprobacionCliente     EtapaOferta = "PENDIENTE_APROBACION_CLIENTE"
	EtapaPendienteAprobacionPropietario EtapaOferta = "PENDIENTE_APROBACION_PROPIETARIO"
	EtapaPendienteAprobacionCaptador    EtapaOferta = "PENDIENTE_APROBACION_CAPTADOR"
	EtapaPendienteAprobacionColocador   EtapaOferta = "PENDIENTE_APROBACION_COLOCADOR"
	EtapaAceptada                       EtapaOferta = "ACEPTADA"
	EtapaRechazada                      EtapaOferta = "RECHAZADA"
	EtapaExpirada                       EtapaOferta = "EXPIRADA"
	EtapaNegociacion                    EtapaOferta = "NEGOCIACION"
	EtapaPropuesta                      EtapaOferta = "PROPUESTA"
	EtapaCierre                         EtapaOferta = "CIERRE"
	EtapaNecesidadAnalisis              EtapaOferta = "NECESIDAD_ANALISIS"
	EtapaFinalizado                     EtapaOferta = "FINALIZADO"
	EtapaCancelada                      EtapaOferta = "CANCELADA"
)

// EtapasConocidas lista las etapas en orden de declaración.
var EtapasConocidas = []EtapaOferta{
	EtapaBorrador,
	EtapaEnviada,
	EtapaContraoferta,
	EtapaPendienteAprobacionCliente,
	EtapaPendienteAprobacionPropietario,
	EtapaPendienteAprobacionCaptador,
	EtapaPendienteAprobacionColocador,
	EtapaAceptada,
	EtapaRechazada,
	EtapaExpirada,
	EtapaNegociacion,
	EtapaPropuesta,
	EtapaCierre,
	EtapaNecesidadAnalisis,
	EtapaFinalizado,
	EtapaCancelada,
}

// ParseEtapa normaliza un valor crudo. No rechaza valores desconocidos.
func ParseEtapa(raw string) EtapaOferta {
	return EtapaOferta(strings.ToUpper(strings.TrimSpace(raw)))
}

// EtapaConocida indica si la etapa pertenece al conjunto conocido.
func EtapaConocida(etapa EtapaOferta) bool {
	for _, e := range EtapasConocidas {
		if e == etapa {
			return true
		}
	}
	return false
}

// String implementa fmt.Stringer.
func (e EtapaOferta) String() string {
	return string(e)
}
