package controllers

import (
	rootcontrollers "github.com/udistrital/inmobiliaria_mid/controllers"
	internalservices "github.com/udistrital/inmobiliaria_mid/internal/services"
)

// EtapasController publica el catálogo de etapas y el flujo principal.
type EtapasController struct {
	rootcontrollers.BaseController
}

// GetCatalogo GET /v1/etapas
func (c *EtapasController) GetCatalogo() {
	c.RespondOK(internalservices.CatalogoEtapas())
}

// GetFlujo GET /v1/etapas/flujo?etapa=...
func (c *EtapasController) GetFlujo() {
	c.RespondOK(internalservices.Flujo(c.GetString("etapa")))
}

// GetSiguientes GET /v1/etapas/:etapa/siguientes
func (c *EtapasController) GetSiguientes() {
	c.RespondOK(internalservices.EtapasSiguientesDe(c.Ctx.Input.Param(":etapa")))
}
