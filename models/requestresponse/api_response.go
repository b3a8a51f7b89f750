package requestresponse

import "net/http"

// APIResponseDTO es el sobre estándar de las respuestas del MID de ofertas.
type APIResponseDTO struct {
	Success bool        `json:"Success"`
	Status  int         `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data"`
}

// NewOK construye la respuesta 200 habitual.
func NewOK(data interface{}) APIResponseDTO {
	return NewSuccess(http.StatusOK, "OK", data)
}

// NewSuccess construye una respuesta exitosa.
func NewSuccess(status int, message string, data interface{}) APIResponseDTO {
	if message == "" {
		message = "OK"
	}
	return APIResponseDTO{Success: true, Status: status, Message: message, Data: data}
}

// NewError construye una respuesta de error. Un status fuera de 4xx/5xx se reporta como 500.
func NewError(status int, message string, data interface{}) APIResponseDTO {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return APIResponseDTO{Success: false, Status: status, Message: message, Data: data}
}
