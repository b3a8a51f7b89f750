package errorhandler

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/udistrital/inmobiliaria_mid/models/requestresponse"

	"github.com/beego/beego/v2/core/logs"
	beego "github.com/beego/beego/v2/server/web"
	"github.com/beego/beego/v2/server/web/context"
)

// ErrorHandlerController se registra en el router para gestionar 404 y otros fallos.
type ErrorHandlerController struct {
	beego.Controller
}

// Error404 centraliza la respuesta cuando la ruta no existe.
func (c *ErrorHandlerController) Error404() {
	method := c.Ctx.Request.Method
	path := c.Ctx.Request.URL.Path
	status := http.StatusNotFound
	message := fmt.Sprintf("nomatch|%s|%s", method, path)

	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = requestresponse.NewError(status, message, nil)
	_ = c.ServeJSON()
}

// RecoverPanic se registra como BConfig.RecoverFunc y responde con el formato estándar.
func RecoverPanic(ctx *context.Context, cfg *beego.Config) {
	r := recover()
	if r == nil {
		return
	}
	if r == beego.ErrAbort {
		return
	}
	logs.Error("panic:", r)
	logs.Error(string(debug.Stack()))

	appName := "inmobiliaria_mid"
	if cfg != nil && cfg.AppName != "" {
		appName = cfg.AppName
	}
	message := fmt.Sprintf("Error service %s: An internal server error occurred.", appName)
	message += fmt.Sprintf(" Request Info: URL: %s, Method: %s", ctx.Request.URL, ctx.Request.Method)
	message += " Time: " + time.Now().UTC().Format(time.RFC3339)

	if ctx.ResponseWriter.Started {
		return
	}
	status := http.StatusInternalServerError
	ctx.Output.SetStatus(status)
	_ = ctx.Output.JSON(requestresponse.NewError(status, message, nil), false, false)
}
