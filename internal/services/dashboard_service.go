package services

import (
	"context"
	"sort"

	internaldto "github.com/udistrital/inmobiliaria_mid/internal/dto"
	"github.com/udistrital/inmobiliaria_mid/internal/lifecycle"
	"github.com/udistrital/inmobiliaria_mid/models"
)

const maxRecientes = 5

// ResumenOfertas arma el dashboard: chips por etapa, embudo del flujo principal
// y las ofertas modificadas más recientemente.
func ResumenOfertas(ctx context.Context) (*internaldto.ResumenOfertas, error) {
	ofertas, err := Store().ListOfertas(ctx, models.FiltroOfertas{})
	if err != nil {
		return nil, storeError(err, "error consultando ofertas")
	}

	conteo := make(map[models.EtapaOferta]int)
	resumen := &internaldto.ResumenOfertas{Total: len(ofertas)}
	for _, o := range ofertas {
		conteo[o.Etapa]++
		if lifecycle.EsTerminal(o.Etapa) {
			resumen.Terminales++
		} else {
			resumen.Activas++
		}
	}

	resumen.PorEtapa = make([]internaldto.ConteoEtapa, 0, len(conteo))
	for _, e := range lifecycle.Etapas() {
		if n := conteo[e]; n > 0 {
			resumen.PorEtapa = append(resumen.PorEtapa, internaldto.ConteoEtapa{MetadatosEtapa: lifecycle.Metadatos(e), Total: n})
		}
	}
	// etapas fuera del catálogo al final, en orden alfabético
	desconocidas := make([]models.EtapaOferta, 0)
	for e := range conteo {
		if !models.EtapaConocida(e) {
			desconocidas = append(desconocidas, e)
		}
	}
	sort.Slice(desconocidas, func(i, j int) bool { return desconocidas[i] < desconocidas[j] })
	for _, e := range desconocidas {
		resumen.PorEtapa = append(resumen.PorEtapa, internaldto.ConteoEtapa{MetadatosEtapa: lifecycle.Metadatos(e), Total: conteo[e]})
	}

	flujo := lifecycle.Flujo()
	resumen.Embudo = make([]internaldto.ConteoEtapa, 0, len(flujo))
	for _, e := range flujo {
		resumen.Embudo = append(resumen.Embudo, internaldto.ConteoEtapa{MetadatosEtapa: lifecycle.Metadatos(e), Total: conteo[e]})
	}

	recientes := append([]models.Oferta(nil), ofertas...)
	sort.SliceStable(recientes, func(i, j int) bool {
		return recientes[i].FechaModificacion.After(recientes[j].FechaModificacion)
	})
	if len(recientes) > maxRecientes {
		recientes = recientes[:maxRecientes]
	}
	resumen.Recientes = make([]internaldto.OfertaItem, 0, len(recientes))
	for _, o := range recientes {
		resumen.Recientes = append(resumen.Recientes, mapOfertaItem(o))
	}
	return resumen, nil
}
