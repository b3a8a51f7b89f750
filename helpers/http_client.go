// helpers/http_client.go
package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/beego/beego/v2/core/logs"
)

// CrudWrapper es la envoltura estándar {Success, Status, Message, Data} de los CRUD.
type CrudWrapper struct {
	Success bool            `json:"Success"`
	Status  json.RawMessage `json:"Status,omitempty"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

// HTTPError envuelve códigos de estado no exitosos para permitir un manejo granular.
type HTTPError struct {
	Status int
	Body   string
}

// Error imprime el estado y cuerpo asociado.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// IsHTTPError permite consultar si el error corresponde a un status específico.
func IsHTTPError(err error, status int) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status == status
	}
	return false
}

var (
	retryMu            sync.RWMutex
	defaultRetryCount  = 0
	defaultBackoffBase = 300 * time.Millisecond
	maxBackoff         = 3 * time.Second
)

// SetDefaultRetryCount fija cuántos reintentos se hacen ante errores transitorios.
func SetDefaultRetryCount(n int) {
	if n < 0 {
		n = 0
	}
	retryMu.Lock()
	defaultRetryCount = n
	retryMu.Unlock()
}

// SetRetryBackoff fija la base del backoff exponencial en milisegundos.
func SetRetryBackoff(baseMs int) {
	if baseMs <= 0 {
		baseMs = 300
	}
	retryMu.Lock()
	defaultBackoffBase = time.Duration(baseMs) * time.Millisecond
	retryMu.Unlock()
}

// DoJSON asume respuesta envuelta y sin headers adicionales.
func DoJSON(ctx context.Context, method, url string, in any, out any, timeout time.Duration) error {
	return DoJSONWithHeaders(ctx, method, url, nil, in, out, timeout, true)
}

// DoJSONWithHeaders ejecuta la petición con headers y control de envoltura; aplica reintentos.
// Solo se reintentan métodos idempotentes.
func DoJSONWithHeaders(ctx context.Context, method, url string, headers map[string]string, in any, out any, timeout time.Duration, wrapped bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	client := &http.Client{Timeout: timeout}
	doOnce := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			if v != "" {
				req.Header.Set(k, v)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			b, _ := io.ReadAll(resp.Body)
			return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		}

		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if wrapped {
			return decodeWrapped(raw, out)
		}
		return json.Unmarshal(raw, out)
	}

	retryMu.RLock()
	retries := defaultRetryCount
	retryMu.RUnlock()
	if !isIdempotent(method) {
		retries = 0
	}

	var attempt int
	for {
		err := doOnce()
		if err == nil {
			return nil
		}
		if attempt >= retries || !isRetryableErr(err) {
			return err
		}
		wait := backoffFor(attempt)
		logs.Warn("reintentando %s %s en %s: %v", method, url, wait, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		attempt++
	}
}

// decodeWrapped desenvuelve {Success, Data}. Si el cuerpo no es un objeto se decodifica directo.
func decodeWrapped(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] != '{' {
		return json.Unmarshal(trimmed, out)
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return err
	}
	if _, ok := probe["Success"]; !ok {
		return json.Unmarshal(trimmed, out)
	}
	var w CrudWrapper
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return err
	}
	if !w.Success {
		if w.Message == "" {
			w.Message = "operación fallida (Success=false)"
		}
		return errors.New(w.Message)
	}
	if len(w.Data) == 0 || bytes.Equal(w.Data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(w.Data, out)
}

func isIdempotent(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func isRetryableErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var he *HTTPError
	if errors.As(err, &he) {
		switch he.Status {
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	l := strings.ToLower(err.Error())
	return strings.Contains(l, "timeout") ||
		strings.Contains(l, "connection reset") ||
		strings.Contains(l, "server closed idle connection")
}

func backoffFor(attempt int) time.Duration {
	retryMu.RLock()
	base := defaultBackoffBase
	retryMu.RUnlock()
	d := base << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
