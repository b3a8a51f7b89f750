package controllers

import (
	rootcontrollers "github.com/udistrital/inmobiliaria_mid/controllers"
	internalservices "github.com/udistrital/inmobiliaria_mid/internal/services"
)

// DashboardController expone el resumen de ofertas por etapa.
type DashboardController struct{ rootcontrollers.BaseController }

// GET /v1/ofertas/dashboard
func (c *DashboardController) GetResumen() {
	data, err := internalservices.ResumenOfertas(c.Ctx.Request.Context())
	if err != nil {
		c.RespondError(err, "error armando dashboard")
		return
	}
	c.RespondOK(data)
}
