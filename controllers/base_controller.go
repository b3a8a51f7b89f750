package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	internalhelpers "github.com/udistrital/inmobiliaria_mid/internal/helpers"

	beego "github.com/beego/beego/v2/server/web"
)

// BaseController centraliza la construcción de respuestas estándar.
type BaseController struct {
	beego.Controller
}

// WriteJSON escribe el payload con el status indicado.
func (c *BaseController) WriteJSON(status int, payload interface{}) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}

// RespondOK envuelve data en una respuesta exitosa 200.
func (c *BaseController) RespondOK(data interface{}) {
	resp := internalhelpers.Ok(data)
	c.WriteJSON(resp.Status, resp)
}

// RespondError transforma cualquier error en la respuesta estándar.
func (c *BaseController) RespondError(err error, fallback string) {
	if fallback == "" {
		fallback = "error inesperado"
	}
	resp := internalhelpers.FailFrom(err, fallback)
	c.WriteJSON(resp.Status, resp)
}

// ParseJSONBody deserializa el cuerpo de la petición en out.
func (c *BaseController) ParseJSONBody(out interface{}) error {
	raw := c.Ctx.Input.RequestBody

	if len(raw) == 0 && c.Ctx.Request != nil && c.Ctx.Request.Body != nil {
		b, err := io.ReadAll(c.Ctx.Request.Body)
		if err != nil {
			return err
		}
		raw = b

		// cache + reinyectar
		c.Ctx.Input.RequestBody = b
		c.Ctx.Request.Body = io.NopCloser(bytes.NewBuffer(b))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return errors.New("cuerpo vacío")
	}

	return json.Unmarshal(raw, out)
}
