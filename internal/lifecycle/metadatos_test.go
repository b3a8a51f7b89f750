package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udistrital/inmobiliaria_mid/models"
)

func TestMetadatos_KnownStages(t *testing.T) {
	for _, e := range models.EtapasConocidas {
		meta := Metadatos(e)
		assert.Equal(t, e, meta.Etapa)
		assert.NotEqual(t, string(e), meta.Etiqueta, "etapa %s sin etiqueta", e)
		assert.NotEmpty(t, meta.Color)
	}
	assert.Equal(t, "Aceptada", Metadatos(models.EtapaAceptada).Etiqueta)
	assert.True(t, Metadatos(models.EtapaFinalizado).Terminal)
	assert.False(t, Metadatos(models.EtapaEnviada).Terminal)
}

func TestMetadatos_UnknownFallsBackToGrey(t *testing.T) {
	meta := Metadatos("LEGADO_X")
	assert.Equal(t, "LEGADO_X", meta.Etiqueta)
	assert.Equal(t, ColorPorDefecto, meta.Color)
}
