package services

import (
	internaldto "github.com/udistrital/inmobiliaria_mid/internal/dto"
	"github.com/udistrital/inmobiliaria_mid/internal/lifecycle"
	"github.com/udistrital/inmobiliaria_mid/models"
)

// CatalogoEtapas retorna todas las etapas conocidas con metadatos y transiciones.
func CatalogoEtapas() []internaldto.EtapaCatalogo {
	etapas := lifecycle.Etapas()
	out := make([]internaldto.EtapaCatalogo, 0, len(etapas))
	for _, e := range etapas {
		out = append(out, internaldto.EtapaCatalogo{
			MetadatosEtapa:   lifecycle.Metadatos(e),
			IndiceFlujo:      lifecycle.IndiceFlujo(e),
			EtapasSiguientes: lifecycle.EtapasSiguientes(e),
		})
	}
	return out
}

// EtapasSiguientesDe resuelve las transiciones para un valor crudo de etapa.
func EtapasSiguientesDe(raw string) internaldto.TransicionesResp {
	etapa := models.ParseEtapa(raw)
	return internaldto.TransicionesResp{
		Etapa:            lifecycle.Metadatos(etapa),
		EtapasSiguientes: metadatosDe(lifecycle.EtapasSiguientes(etapa)),
	}
}

// Flujo retorna el stepper; si raw viene vacío ningún paso queda marcado.
func Flujo(raw string) internaldto.FlujoResp {
	etapa := models.ParseEtapa(raw)
	return internaldto.FlujoResp{
		Etapa:       etapa,
		IndiceFlujo: lifecycle.IndiceFlujo(etapa),
		Pasos:       lifecycle.PasosFlujo(etapa),
	}
}
