// Package lifecycle concentra las reglas del ciclo de vida de una oferta:
// la tabla de transiciones entre etapas, el flujo lineal que muestra el
// stepper y la construcción del patch de cambio de etapa.
//
// Todas las funciones son puras. Ninguna falla ante etapas desconocidas.
package lifecycle

import "github.com/udistrital/inmobiliaria_mid/models"

// tablaTransiciones declara, por etapa origen, las etapas destino permitidas.
// El orden importa: es el orden en que se presentan las acciones.
// Los regresos a BORRADOR desde RECHAZADA, EXPIRADA y CANCELADA son rutas de reactivación.
var tablaTransiciones = map[models.EtapaOferta][]models.EtapaOferta{
	models.EtapaBorrador: {
		models.EtapaEnviada,
		models.EtapaCancelada,
	},
	models.EtapaNecesidadAnalisis: {
		models.EtapaPropuesta,
		models.EtapaCancelada,
	},
	models.EtapaPropuesta: {
		models.EtapaEnviada,
		models.EtapaNegociacion,
		models.EtapaCancelada,
	},
	models.EtapaEnviada: {
		models.EtapaPendienteAprobacionCliente,
		models.EtapaPendienteAprobacionPropietario,
		models.EtapaContraoferta,
		models.EtapaRechazada,
		models.EtapaCancelada,
	},
	models.EtapaContraoferta: {
		models.EtapaNegociacion,
		models.EtapaPendienteAprobacionCliente,
		models.EtapaPendienteAprobacionPropietario,
		models.EtapaRechazada,
		models.EtapaCancelada,
	},
	models.EtapaNegociacion: {
		models.EtapaContraoferta,
		models.EtapaPendienteAprobacionCliente,
		models.EtapaPendienteAprobacionPropietario,
		models.EtapaRechazada,
		models.EtapaCancelada,
	},
	models.EtapaPendienteAprobacionCliente: {
		models.EtapaAceptada,
		models.EtapaContraoferta,
		models.EtapaRechazada,
		models.EtapaExpirada,
	},
	models.EtapaPendienteAprobacionPropietario: {
		models.EtapaPendienteAprobacionCaptador,
		models.EtapaAceptada,
		models.EtapaContraoferta,
		models.EtapaRechazada,
		models.EtapaExpirada,
	},
	models.EtapaPendienteAprobacionCaptador: {
		models.EtapaPendienteAprobacionColocador,
		models.EtapaAceptada,
		models.EtapaRechazada,
	},
	models.EtapaPendienteAprobacionColocador: {
		models.EtapaAceptada,
		models.EtapaRechazada,
	},
	models.EtapaAceptada: {
		models.EtapaCierre,
		models.EtapaFinalizado,
		models.EtapaCancelada,
	},
	models.EtapaCierre: {
		models.EtapaFinalizado,
		models.EtapaCancelada,
	},
	models.EtapaRechazada:  {models.EtapaBorrador},
	models.EtapaExpirada:   {models.EtapaBorrador},
	models.EtapaCancelada:  {models.EtapaBorrador},
	models.EtapaFinalizado: {},
}

// EtapasSiguientes retorna las etapas a las que puede pasar una oferta desde etapaActual,
// en el orden declarado. Una etapa terminal o desconocida retorna un slice vacío.
func EtapasSiguientes(etapaActual models.EtapaOferta) []models.EtapaOferta {
	destinos := tablaTransiciones[etapaActual]
	out := make([]models.EtapaOferta, len(destinos))
	copy(out, destinos)
	return out
}

// TransicionPermitida indica si la tabla declara el paso desde -> hacia.
// Solo decide qué acciones se ofrecen; los cambios de etapa no lo exigen.
func TransicionPermitida(desde, hacia models.EtapaOferta) bool {
	for _, e := range tablaTransiciones[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

// EsTerminal indica si la etapa no tiene transiciones de salida.
func EsTerminal(etapa models.EtapaOferta) bool {
	return len(tablaTransiciones[etapa]) == 0
}

// Tabla retorna una copia completa de la tabla de transiciones.
func Tabla() map[models.EtapaOferta][]models.EtapaOferta {
	out := make(map[models.EtapaOferta][]models.EtapaOferta, len(tablaTransiciones))
	for origen := range tablaTransiciones {
		out[origen] = EtapasSiguientes(origen)
	}
	return out
}

// Etapas retorna las etapas conocidas en orden de declaración.
func Etapas() []models.EtapaOferta {
	out := make([]models.EtapaOferta, len(models.EtapasConocidas))
	copy(out, models.EtapasConocidas)
	return out
}
