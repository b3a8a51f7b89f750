package lifecycle

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udistrital/inmobiliaria_mid/models"
)

var ahora = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func TestAplicarCambioEtapa_AppendsNote(t *testing.T) {
	oferta := models.Oferta{Id: 1, Etapa: models.EtapaEnviada, Observacion: "Primer contacto"}

	patch := AplicarCambioEtapa(oferta, models.EtapaContraoferta, "Cliente pide rebaja", ahora)

	assert.Equal(t, models.EtapaContraoferta, patch.Etapa)
	assert.True(t, strings.HasPrefix(patch.Observacion, "Primer contacto"))
	assert.Equal(t, "Primer contacto\n[2024-03-05 14:30] Cliente pide rebaja", patch.Observacion)
	assert.Equal(t, "Primer contacto", oferta.Observacion)
}

func TestAplicarCambioEtapa_EmptyPriorObservation(t *testing.T) {
	patch := AplicarCambioEtapa(models.Oferta{}, models.EtapaEnviada, "enviada por correo", ahora)
	assert.Equal(t, "[2024-03-05 14:30] enviada por correo", patch.Observacion)
}

func TestAplicarCambioEtapa_BlankNoteKeepsObservation(t *testing.T) {
	oferta := models.Oferta{Etapa: models.EtapaEnviada, Observacion: "texto\ncon lineas\n"}
	for _, nota := range []string{"", "   ", "\n\t"} {
		patch := AplicarCambioEtapa(oferta, models.EtapaRechazada, nota, ahora)
		assert.Equal(t, oferta.Observacion, patch.Observacion)
		assert.Equal(t, models.EtapaRechazada, patch.Etapa)
	}
}

func TestAplicarCambioEtapa_DoesNotValidateAgainstTable(t *testing.T) {
	oferta := models.Oferta{Etapa: models.EtapaFinalizado}
	patch := AplicarCambioEtapa(oferta, models.EtapaBorrador, "reapertura administrativa", ahora)
	assert.Equal(t, models.EtapaBorrador, patch.Etapa)
	assert.False(t, TransicionPermitida(oferta.Etapa, patch.Etapa))
}

func TestAplicarCambioEtapa_SuccessiveNotesKeepOrder(t *testing.T) {
	oferta := models.Oferta{Observacion: "inicio"}
	p1 := AplicarCambioEtapa(oferta, models.EtapaEnviada, "uno", ahora)
	oferta.Observacion = p1.Observacion
	p2 := AplicarCambioEtapa(oferta, models.EtapaContraoferta, "dos", ahora.Add(time.Hour))

	lineas := strings.Split(p2.Observacion, "\n")
	assert.Equal(t, []string{"inicio", "[2024-03-05 14:30] uno", "[2024-03-05 15:30] dos"}, lineas)
}
