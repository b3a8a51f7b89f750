package lifecycle

import (
	"strings"
	"time"

	"github.com/udistrital/inmobiliaria_mid/models"
)

// FormatoMarcaObservacion es el formato de la marca de tiempo que antecede cada nota.
const FormatoMarcaObservacion = "2006-01-02 15:04"

// AplicarCambioEtapa construye el patch para mover la oferta a nuevaEtapa.
// Si la nota trae contenido se agrega como una línea nueva con marca de tiempo al final
// de la observación previa; si viene vacía la observación no cambia.
// No valida nuevaEtapa contra la tabla de transiciones.
func AplicarCambioEtapa(oferta models.Oferta, nuevaEtapa models.EtapaOferta, nota string, ahora time.Time) models.OfertaPatch {
	patch := models.OfertaPatch{
		Etapa:       nuevaEtapa,
		Observacion: oferta.Observacion,
	}

	nota = strings.TrimSpace(nota)
	if nota == "" {
		return patch
	}

	linea := "[" + ahora.Format(FormatoMarcaObservacion) + "] " + nota
	if oferta.Observacion == "" {
		patch.Observacion = linea
		return patch
	}
	patch.Observacion = oferta.Observacion + "\n" + linea
	return patch
}
