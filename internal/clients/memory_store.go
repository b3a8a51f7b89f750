package clients

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/udistrital/inmobiliaria_mid/models"
)

// MemoryStore es el colaborador en memoria usado en desarrollo y pruebas.
type MemoryStore struct {
	mu        sync.RWMutex
	ofertas   map[int64]models.Oferta
	auditoria map[int64][]models.RegistroAuditoria
	now       func() time.Time
}

// Semilla es el formato YAML con el que se precargan ofertas y auditoría.
type Semilla struct {
	Ofertas   []models.Oferta            `yaml:"ofertas"`
	Auditoria []models.RegistroAuditoria `yaml:"auditoria"`
}

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ofertas:   make(map[int64]models.Oferta),
		auditoria: make(map[int64][]models.RegistroAuditoria),
		now:       time.Now,
	}
}

// LoadSeedFile carga la semilla desde un archivo YAML.
func (s *MemoryStore) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.LoadSeed(f)
}

// LoadSeed carga ofertas y auditoría desde YAML. Las ofertas existentes con el mismo id se reemplazan.
func (s *MemoryStore) LoadSeed(r io.Reader) error {
	semilla, err := DecodeSemilla(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range semilla.Ofertas {
		s.ofertas[o.Id] = o
	}
	for _, a := range semilla.Auditoria {
		if a.Id == "" {
			a.Id = uuid.NewString()
		}
		s.auditoria[a.OfertaId] = append(s.auditoria[a.OfertaId], a)
	}
	return nil
}

// DecodeSemilla decodifica y valida un documento de semilla.
func DecodeSemilla(r io.Reader) (*Semilla, error) {
	var semilla Semilla
	if err := yaml.NewDecoder(r).Decode(&semilla); err != nil && err != io.EOF {
		return nil, fmt.Errorf("semilla inválida: %w", err)
	}
	seen := make(map[int64]struct{}, len(semilla.Ofertas))
	for i, o := range semilla.Ofertas {
		if o.Id <= 0 {
			return nil, fmt.Errorf("semilla inválida: oferta #%d sin id", i+1)
		}
		if _, dup := seen[o.Id]; dup {
			return nil, fmt.Errorf("semilla inválida: oferta %d duplicada", o.Id)
		}
		seen[o.Id] = struct{}{}
		semilla.Ofertas[i].Etapa = models.ParseEtapa(string(o.Etapa))
	}
	return &semilla, nil
}

// Put inserta o reemplaza una oferta.
func (s *MemoryStore) Put(o models.Oferta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ofertas[o.Id] = o
}

// GetOfertaByID retorna una copia de la oferta.
func (s *MemoryStore) GetOfertaByID(ctx context.Context, id int64) (*models.Oferta, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.ofertas[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

// UpdateOferta aplica el patch y actualiza la fecha de modificación.
func (s *MemoryStore) UpdateOferta(ctx context.Context, id int64, patch models.OfertaPatch) (*models.Oferta, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.ofertas[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Etapa = patch.Etapa
	o.Observacion = patch.Observacion
	o.FechaModificacion = s.now().UTC()
	s.ofertas[id] = o
	return &o, nil
}

// ListOfertas retorna las ofertas que cumplen el filtro ordenadas por id.
func (s *MemoryStore) ListOfertas(ctx context.Context, filtro models.FiltroOfertas) ([]models.Oferta, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Oferta, 0, len(s.ofertas))
	for _, o := range s.ofertas {
		if filtro.Coincide(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

// GetAuditLogsByOfertaID retorna el historial de la oferta, más reciente primero.
func (s *MemoryStore) GetAuditLogsByOfertaID(ctx context.Context, id int64) ([]models.RegistroAuditoria, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.ofertas[id]; !ok {
		return nil, ErrNotFound
	}
	// copia invertida: a igual fecha queda primero la última registrada
	registradas := s.auditoria[id]
	logs := make([]models.RegistroAuditoria, 0, len(registradas))
	for i := len(registradas) - 1; i >= 0; i-- {
		logs = append(logs, registradas[i])
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Fecha.After(logs[j].Fecha) })
	return logs, nil
}

// AddAuditLog agrega una entrada al historial asignando id y fecha si faltan.
func (s *MemoryStore) AddAuditLog(ctx context.Context, entry models.RegistroAuditoria) (*models.RegistroAuditoria, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ofertas[entry.OfertaId]; !ok {
		return nil, ErrNotFound
	}
	if entry.Id == "" {
		entry.Id = uuid.NewString()
	}
	if entry.Fecha.IsZero() {
		entry.Fecha = s.now().UTC()
	}
	s.auditoria[entry.OfertaId] = append(s.auditoria[entry.OfertaId], entry)
	return &entry, nil
}
