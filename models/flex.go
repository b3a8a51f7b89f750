package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt64 acepta identificadores que el CRUD entrega como número, string o estructura {Id: ...}.
type FlexInt64 int64

// UnmarshalJSON soporta los formatos heterogéneos de las respuestas del CRUD de inmuebles.
func (fi *FlexInt64) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*fi = 0
		return nil
	}
	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		for _, key := range []string{"Id", "id"} {
			if raw, ok := obj[key]; ok && raw != nil {
				return fi.UnmarshalJSON(raw)
			}
		}
		*fi = 0
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*fi = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*fi = FlexInt64(v)
		return nil
	default:
		var v float64
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*fi = FlexInt64(int64(v))
		return nil
	}
}

// MarshalJSON serializa el valor como entero.
func (fi FlexInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(fi))
}

// Int64 devuelve el valor nativo.
func (fi FlexInt64) Int64() int64 {
	return int64(fi)
}
