package lifecycle

import "github.com/udistrital/inmobiliaria_mid/models"

// flujoPrincipal es la proyección lineal que pinta el stepper de progreso.
// No depende de la tabla de transiciones.
var flujoPrincipal = [...]models.EtapaOferta{
	models.EtapaPropuesta,
	models.EtapaEnviada,
	models.EtapaPendienteAprobacionCliente,
	models.EtapaAceptada,
	models.EtapaFinalizado,
}

// Estados de un paso del stepper.
const (
	PasoCompletado = "completado"
	PasoActivo     = "activo"
	PasoPendiente  = "pendiente"
)

// PasoFlujo describe un paso del stepper para una etapa dada.
type PasoFlujo struct {
	Indice int                `json:"indice"`
	Etapa  models.EtapaOferta `json:"etapa"`
	Estado string             `json:"estado"`
}

// Flujo retorna las etapas del flujo principal en orden.
func Flujo() []models.EtapaOferta {
	out := make([]models.EtapaOferta, len(flujoPrincipal))
	copy(out, flujoPrincipal[:])
	return out
}

// IndiceFlujo retorna la posición de la etapa en el flujo principal, o -1 si no aparece.
func IndiceFlujo(etapaActual models.EtapaOferta) int {
	for i, e := range flujoPrincipal {
		if e == etapaActual {
			return i
		}
	}
	return -1
}

// PasosFlujo marca cada paso como completado, activo o pendiente.
// Si la etapa no está en el flujo, ningún paso queda activo ni completado.
func PasosFlujo(etapaActual models.EtapaOferta) []PasoFlujo {
	actual := IndiceFlujo(etapaActual)
	pasos := make([]PasoFlujo, 0, len(flujoPrincipal))
	for i, e := range flujoPrincipal {
		estado := PasoPendiente
		switch {
		case actual < 0:
		case i < actual:
			estado = PasoCompletado
		case i == actual:
			estado = PasoActivo
		}
		pasos = append(pasos, PasoFlujo{Indice: i, Etapa: e, Estado: estado})
	}
	return pasos
}
