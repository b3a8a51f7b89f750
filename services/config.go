package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/udistrital/inmobiliaria_mid/helpers"

	"github.com/beego/beego/v2/core/logs"
	beego "github.com/beego/beego/v2/server/web"
)

// Backends soportados para el colaborador de ofertas.
const (
	BackendMemoria  = "memoria"
	BackendCRUD     = "crud"
	BackendPostgres = "postgres"
)

// Config centraliza la configuración del MID y de sus colaboradores.
type Config struct {
	AppName              string
	HTTPPort             int
	RunMode              string
	Backend              string
	InmueblesCRUDBaseURL string
	PostgresDSN          string
	SeedFile             string
	OASBearerToken       string
	RequestTimeout       time.Duration
	RetryCount           int
	RetryBackoffMs       int
	MetricsEnabled       bool
	AllowOrigins         []string
}

var (
	cfg     Config
	cfgErr  error
	once    sync.Once
	cfgLock sync.Mutex
)

// GetConfig devuelve la configuración cargada desde variables de entorno o app.conf.
// Entra en pánico si la configuración del backend seleccionado es inválida.
func GetConfig() Config {
	c, err := LoadConfig()
	if err != nil {
		panic(err.Error())
	}
	return c
}

// LoadConfig carga la configuración una sola vez y reporta errores en lugar de entrar en pánico.
func LoadConfig() (Config, error) {
	cfgLock.Lock()
	defer cfgLock.Unlock()
	once.Do(func() {
		cfg, cfgErr = readConfig()
		if cfgErr == nil {
			helpers.SetDefaultRetryCount(cfg.RetryCount)
			helpers.SetRetryBackoff(cfg.RetryBackoffMs)
			logs.Info("configuración cargada: app=%s backend=%s runmode=%s", cfg.AppName, cfg.Backend, cfg.RunMode)
		}
	})
	return cfg, cfgErr
}

// SetConfig reemplaza la configuración activa. Pensado para pruebas y herramientas.
func SetConfig(c Config) {
	cfgLock.Lock()
	defer cfgLock.Unlock()
	once.Do(func() {})
	cfg, cfgErr = c, nil
	helpers.SetDefaultRetryCount(c.RetryCount)
	helpers.SetRetryBackoff(c.RetryBackoffMs)
}

func readConfig() (Config, error) {
	c := Config{
		AppName:              getString("APP_NAME", "appname", "inmobiliaria_mid"),
		HTTPPort:             getInt("HTTP_PORT", "httpport", 8080),
		RunMode:              getString("RUN_MODE", "runmode", "dev"),
		Backend:              strings.ToLower(getString("OFERTAS_BACKEND", "ofertas_backend", BackendMemoria)),
		InmueblesCRUDBaseURL: normalizeBase(getString("INMUEBLES_CRUD_BASE_URL", "inmuebles_crud_base_url", "")),
		PostgresDSN:          getString("POSTGRES_DSN", "postgres_dsn", ""),
		SeedFile:             getString("OFERTAS_SEED_FILE", "ofertas_seed_file", ""),
		OASBearerToken:       getString("OAS_BEARER_TOKEN", "oas_bearer_token", ""),
		RequestTimeout:       time.Duration(getInt("REQUEST_TIMEOUT_MS", "request_timeout_ms", 10000)) * time.Millisecond,
		RetryCount:           getInt("RETRY_COUNT", "retry_count", 2),
		RetryBackoffMs:       getInt("RETRY_BACKOFF_MS", "retry_backoff_ms", 300),
		MetricsEnabled:       getBool("METRICS_ENABLED", "metrics_enabled", true),
		AllowOrigins:         splitCSV(getString("CORS_ALLOW_ORIGINS", "cors_allow_origins", "http://localhost:4200")),
	}

	switch c.Backend {
	case BackendMemoria:
	case BackendCRUD:
		if c.InmueblesCRUDBaseURL == "" {
			return c, fmt.Errorf("INMUEBLES_CRUD_BASE_URL no configurado")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return c, fmt.Errorf("POSTGRES_DSN no configurado")
		}
	default:
		return c, fmt.Errorf("OFERTAS_BACKEND no soportado: %q", c.Backend)
	}
	return c, nil
}

func getString(envKey, confKey, def string) string {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		return val
	}
	if beego.AppConfig != nil {
		if val, err := beego.AppConfig.String(confKey); err == nil && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return def
}

func getInt(envKey, confKey string, def int) int {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	if beego.AppConfig != nil {
		if val, err := beego.AppConfig.Int(confKey); err == nil {
			return val
		}
	}
	return def
}

func getBool(envKey, confKey string, def bool) bool {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	if beego.AppConfig != nil {
		if val, err := beego.AppConfig.Bool(confKey); err == nil {
			return val
		}
	}
	return def
}

func normalizeBase(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// BuildURL compone una URL asegurando que no haya dobles slashes.
func BuildURL(base string, elems ...string) string {
	trimmed := strings.TrimSuffix(base, "/")
	for _, e := range elems {
		trimmed += "/" + strings.Trim(e, "/")
	}
	return trimmed
}
