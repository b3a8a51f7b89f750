package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/udistrital/inmobiliaria_mid/models"
	rootservices "github.com/udistrital/inmobiliaria_mid/services"
)

// ErrNotFound indica que el colaborador no tiene la oferta solicitada.
var ErrNotFound = errors.New("oferta no encontrada")

// OfertasStore es el contrato con el colaborador de datos de ofertas.
// El núcleo del ciclo de vida no lo usa; lo consumen los casos de uso.
type OfertasStore interface {
	GetOfertaByID(ctx context.Context, id int64) (*models.Oferta, error)
	UpdateOferta(ctx context.Context, id int64, patch models.OfertaPatch) (*models.Oferta, error)
	ListOfertas(ctx context.Context, filtro models.FiltroOfertas) ([]models.Oferta, error)
	GetAuditLogsByOfertaID(ctx context.Context, id int64) ([]models.RegistroAuditoria, error)
	AddAuditLog(ctx context.Context, entry models.RegistroAuditoria) (*models.RegistroAuditoria, error)
}

// NewStore construye el colaborador indicado por cfg.Backend.
func NewStore(cfg rootservices.Config) (OfertasStore, error) {
	switch cfg.Backend {
	case "", rootservices.BackendMemoria:
		store := NewMemoryStore()
		if cfg.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.SeedFile); err != nil {
				return nil, fmt.Errorf("cargando semilla %s: %w", cfg.SeedFile, err)
			}
		}
		return store, nil
	case rootservices.BackendCRUD:
		return NewCRUDClient(cfg), nil
	case rootservices.BackendPostgres:
		return OpenPostgresStore(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("backend de ofertas no soportado: %q", cfg.Backend)
	}
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
