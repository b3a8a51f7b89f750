package dto

import (
	"github.com/udistrital/inmobiliaria_mid/models/requestresponse"
)

// APIResponseDTO reutiliza el DTO estándar expuesto por requestresponse.
type APIResponseDTO = requestresponse.APIResponseDTO

// PageDTO representa una colección paginada.
type PageDTO[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}
