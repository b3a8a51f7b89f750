package routers

import (
	"github.com/udistrital/inmobiliaria_mid/controllers/errorhandler"
	internalcontrollers "github.com/udistrital/inmobiliaria_mid/internal/controllers"

	beego "github.com/beego/beego/v2/server/web"
)

func init() {
	// Manejador de errores
	beego.ErrorController(&errorhandler.ErrorHandlerController{})

	beego.Router("/v1/ofertas", &internalcontrollers.OfertaController{}, "get:GetListado")
	beego.Router("/v1/ofertas/dashboard", &internalcontrollers.DashboardController{}, "get:GetResumen")
	beego.Router("/v1/ofertas/:id", &internalcontrollers.OfertaController{}, "get:GetById")
	beego.Router("/v1/ofertas/:id/transiciones", &internalcontrollers.OfertaController{}, "get:GetTransiciones")
	beego.Router("/v1/ofertas/:id/etapa", &internalcontrollers.OfertaController{}, "put:PutEtapa")
	beego.Router("/v1/ofertas/:id/auditoria", &internalcontrollers.OfertaController{}, "get:GetAuditoria")

	beego.Router("/v1/etapas", &internalcontrollers.EtapasController{}, "get:GetCatalogo")
	beego.Router("/v1/etapas/flujo", &internalcontrollers.EtapasController{}, "get:GetFlujo")
	beego.Router("/v1/etapas/:etapa/siguientes", &internalcontrollers.EtapasController{}, "get:GetSiguientes")
}
