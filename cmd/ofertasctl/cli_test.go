package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := salida
	salida = buf
	t.Cleanup(func() { salida = prev })
	return buf
}

func TestRun_Siguientes(t *testing.T) {
	buf := capture(t)
	require.NoError(t, Run([]string{"siguientes", "-e", "borrador"}))
	assert.Contains(t, buf.String(), "BORRADOR")
	assert.Contains(t, buf.String(), "ENVIADA")
	assert.Contains(t, buf.String(), "CANCELADA")
}

func TestRun_SiguientesTerminal(t *testing.T) {
	buf := capture(t)
	require.NoError(t, Run([]string{"siguientes", "--etapa", "FINALIZADO"}))
	assert.Contains(t, buf.String(), "sin transiciones")
}

func TestRun_Flujo(t *testing.T) {
	buf := capture(t)
	require.NoError(t, Run([]string{"flujo", "-e", "ACEPTADA"}))
	assert.Contains(t, buf.String(), "indice: 3")
	assert.Contains(t, buf.String(), "activo")
}

func TestRun_Tabla(t *testing.T) {
	buf := capture(t)
	require.NoError(t, Run([]string{"tabla"}))
	assert.Contains(t, buf.String(), "PENDIENTE_APROBACION_COLOCADOR")
}

func TestRun_Seed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "semilla.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ofertas:\n  - id: 1\n    etapa: enviada\n  - id: 2\n    etapa: ENVIADA\n"), 0o600))

	buf := capture(t)
	require.NoError(t, Run([]string{"seed", "-f", path}))
	assert.Contains(t, buf.String(), "ofertas: 2, auditoria: 0")
	assert.Contains(t, buf.String(), "ENVIADA")
}

func TestRun_Errors(t *testing.T) {
	capture(t)
	assert.Error(t, Run([]string{"siguientes"}))
	assert.Error(t, Run([]string{"seed", "-f", filepath.Join(t.TempDir(), "no-existe.yaml")}))
	assert.Error(t, Run([]string{"desconocido"}))
}
