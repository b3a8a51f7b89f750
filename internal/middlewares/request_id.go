package middlewares

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beego/beego/v2/core/logs"
	beego "github.com/beego/beego/v2/server/web"
	"github.com/beego/beego/v2/server/web/context"
)

// HeaderRequestID es el header que se propaga entre servicios.
const HeaderRequestID = "X-Request-Id"

const (
	dataRequestID = "request_id"
	dataInicio    = "request_inicio"
)

var accessOnce sync.Once

// UseAccessLog registra una sola vez los filtros de request id y log de acceso.
func UseAccessLog() {
	accessOnce.Do(func() {
		beego.InsertFilter("/*", beego.BeforeRouter, RequestIDFilter)
		beego.InsertFilter("/*", beego.FinishRouter, AccessLogFilter, beego.WithReturnOnOutput(false))
	})
}

// RequestIDFilter reutiliza el X-Request-Id entrante o genera uno nuevo.
func RequestIDFilter(ctx *context.Context) {
	id := strings.TrimSpace(ctx.Input.Header(HeaderRequestID))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Input.SetData(dataRequestID, id)
	ctx.Input.SetData(dataInicio, time.Now())
	ctx.Output.Header(HeaderRequestID, id)
}

// AccessLogFilter deja una línea por petición con método, ruta, status y duración.
func AccessLogFilter(ctx *context.Context) {
	var dur time.Duration
	if inicio, ok := ctx.Input.GetData(dataInicio).(time.Time); ok {
		dur = time.Since(inicio)
	}
	status := ctx.ResponseWriter.Status
	if status == 0 {
		status = 200
	}
	logs.Info("[%v] %s %s %d %s", RequestID(ctx), ctx.Request.Method, ctx.Request.URL.Path, status, dur)
}

// RequestID retorna el id asignado a la petición, o "" si el filtro no corrió.
func RequestID(ctx *context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Input.GetData(dataRequestID).(string)
	return id
}
