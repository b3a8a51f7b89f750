package services

import (
	"fmt"
	"sync"

	"github.com/udistrital/inmobiliaria_mid/internal/clients"
	rootservices "github.com/udistrital/inmobiliaria_mid/services"

	"github.com/beego/beego/v2/core/logs"
)

var (
	storeMu sync.RWMutex
	store   clients.OfertasStore
)

// Bootstrap construye el colaborador configurado y lo deja disponible para los casos de uso.
func Bootstrap(cfg rootservices.Config) error {
	s, err := clients.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("inicializando colaborador de ofertas: %w", err)
	}
	SetStore(s)
	logs.Info("colaborador de ofertas listo: backend=%s", cfg.Backend)
	return nil
}

// SetStore reemplaza el colaborador; útil en pruebas.
func SetStore(s clients.OfertasStore) {
	storeMu.Lock()
	store = s
	storeMu.Unlock()
}

// Store retorna el colaborador vigente. Si nadie llamó Bootstrap se usa uno en memoria vacío.
func Store() clients.OfertasStore {
	storeMu.RLock()
	s := store
	storeMu.RUnlock()
	if s != nil {
		return s
	}

	storeMu.Lock()
	defer storeMu.Unlock()
	if store == nil {
		logs.Warn("colaborador de ofertas sin inicializar, usando memoria")
		store = clients.NewMemoryStore()
	}
	return store
}
