package helpers

import (
	"net/http"

	roothelpers "github.com/udistrital/inmobiliaria_mid/helpers"
	internaldto "github.com/udistrital/inmobiliaria_mid/internal/dto"
	"github.com/udistrital/inmobiliaria_mid/models/requestresponse"
)

// Ok construye una respuesta estándar exitosa.
func Ok(data interface{}) internaldto.APIResponseDTO {
	return requestresponse.NewOK(data)
}

// Fail construye una respuesta estándar de error.
func Fail(status int, message string) internaldto.APIResponseDTO {
	if status <= 0 {
		status = http.StatusInternalServerError
	}
	return requestresponse.NewError(status, message, nil)
}

// FailFrom traduce cualquier error a la respuesta estándar usando fallback como mensaje por defecto.
func FailFrom(err error, fallback string) internaldto.APIResponseDTO {
	appErr := roothelpers.AsAppError(err, fallback)
	if appErr == nil {
		return Fail(http.StatusInternalServerError, fallback)
	}
	return Fail(appErr.Status, appErr.Message)
}
