package lifecycle

import "github.com/udistrital/inmobiliaria_mid/models"

// ColorPorDefecto es el gris que se usa para etapas sin metadatos.
const ColorPorDefecto = "#9E9E9E"

// MetadatosEtapa reúne lo necesario para pintar una etapa de forma consistente.
type MetadatosEtapa struct {
	Etapa    models.EtapaOferta `json:"code"`
	Etiqueta string             `json:"nombre"`
	Color    string             `json:"color"`
	Terminal bool               `json:"terminal"`
}

type presentacion struct {
	etiqueta string
	color    string
}

var presentacionEtapas = map[models.EtapaOferta]presentacion{
	models.EtapaBorrador:                       {"Borrador", "#9E9E9E"},
	models.EtapaEnviada:                        {"Enviada", "#2196F3"},
	models.EtapaContraoferta:                   {"Contraoferta", "#FF9800"},
	models.EtapaPendienteAprobacionCliente:     {"Pendiente aprobación cliente", "#FFC107"},
	models.EtapaPendienteAprobacionPropietario: {"Pendiente aprobación propietario", "#FFC107"},
	models.EtapaPendienteAprobacionCaptador:    {"Pendiente aprobación captador", "#FFB300"},
	models.EtapaPendienteAprobacionColocador:   {"Pendiente aprobación colocador", "#FFB300"},
	models.EtapaAceptada:                       {"Aceptada", "#4CAF50"},
	models.EtapaRechazada:                      {"Rechazada", "#F44336"},
	models.EtapaExpirada:                       {"Expirada", "#795548"},
	models.EtapaNegociacion:                    {"Negociación", "#9C27B0"},
	models.EtapaPropuesta:                      {"Propuesta", "#03A9F4"},
	models.EtapaCierre:                         {"Cierre", "#009688"},
	models.EtapaNecesidadAnalisis:              {"Necesidad de análisis", "#607D8B"},
	models.EtapaFinalizado:                     {"Finalizado", "#2E7D32"},
	models.EtapaCancelada:                      {"Cancelada", "#D32F2F"},
}

// Metadatos retorna etiqueta y color de la etapa.
// Para etapas desconocidas la etiqueta es el valor crudo y el color es gris.
func Metadatos(etapa models.EtapaOferta) MetadatosEtapa {
	meta := MetadatosEtapa{
		Etapa:    etapa,
		Etiqueta: string(etapa),
		Color:    ColorPorDefecto,
		Terminal: EsTerminal(etapa),
	}
	if p, ok := presentacionEtapas[etapa]; ok {
		meta.Etiqueta = p.etiqueta
		meta.Color = p.color
	}
	return meta
}
