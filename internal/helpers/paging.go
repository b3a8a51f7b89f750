package helpers

import (
	"strconv"
	"strings"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePageSize convierte los parámetros de paginación a enteros aplicando defaults y tope.
func ParsePageSize(pageStr, sizeStr string) (int, int) {
	page := defaultPage
	size := defaultPageSize

	if v, err := strconv.Atoi(strings.TrimSpace(pageStr)); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(sizeStr)); err == nil && v > 0 {
		size = v
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// Paginate recorta items a la página pedida. Páginas fuera de rango retornan un slice vacío.
func Paginate[T any](items []T, page, size int) []T {
	if page <= 0 {
		page = defaultPage
	}
	if size <= 0 {
		size = defaultPageSize
	}
	total := len(items)
	paginas := total / size
	if total%size != 0 {
		paginas++
	}
	// se compara antes de multiplicar para no desbordar con páginas enormes
	if page-1 >= paginas {
		return items[:0]
	}
	start := (page - 1) * size
	end := total
	if size < total-start {
		end = start + size
	}
	return items[start:end]
}
