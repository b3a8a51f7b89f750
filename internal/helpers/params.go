package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beego/beego/v2/server/web/context"
)

// ParamInt64 extrae un parámetro de ruta como entero positivo.
func ParamInt64(ctx *context.Context, name string) (int64, error) {
	if ctx == nil {
		return 0, fmt.Errorf("contexto nil")
	}
	raw := strings.TrimSpace(ctx.Input.Param(name))
	if raw == "" {
		return 0, fmt.Errorf("parametro %s vacío", strings.TrimPrefix(name, ":"))
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("parametro %s inválido", strings.TrimPrefix(name, ":"))
	}
	return val, nil
}

// QueryInt64 lee un query param opcional; retorna 0 si falta o es inválido.
func QueryInt64(raw string) int64 {
	val, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || val < 0 {
		return 0
	}
	return val
}
