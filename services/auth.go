package services

// AddBearerAuth agrega el header Authorization hacia los CRUD si el token está configurado
// y el llamador no trae uno propio.
func AddBearerAuth(headers map[string]string, token string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}
	if _, ok := headers["Authorization"]; ok {
		return headers
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}
