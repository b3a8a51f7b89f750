package helpers

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError representa un error controlado con código HTTP y mensaje funcional.
type AppError struct {
	Status  int
	Message string
	Err     error
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap permite extraer el error original cuando exista.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError construye un AppError con mensaje y status.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

// NotFound es un atajo para recursos inexistentes.
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// BadRequest es un atajo para entradas inválidas.
func BadRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// AsAppError convierte cualquier error en AppError.
// Busca en la cadena de errores; un HTTPError del colaborador conserva su status cuando es 4xx.
func AsAppError(err error, defaultMessage string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	msg := defaultMessage
	if msg == "" {
		msg = "error inesperado"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Status >= 400 && httpErr.Status < 500 {
		return &AppError{Status: httpErr.Status, Message: msg, Err: err}
	}
	return &AppError{Status: http.StatusInternalServerError, Message: msg, Err: err}
}
