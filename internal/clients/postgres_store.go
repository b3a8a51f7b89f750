package clients

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/udistrital/inmobiliaria_mid/models"
)

// esquemaOfertas crea las tablas mínimas que usa PostgresStore.
const esquemaOfertas = `
CREATE TABLE IF NOT EXISTS ofertas (
	id                 BIGSERIAL PRIMARY KEY,
	inmueble_id        BIGINT NOT NULL DEFAULT 0,
	oportunidad_id     BIGINT NOT NULL DEFAULT 0,
	cliente            TEXT NOT NULL DEFAULT '',
	monto              NUMERIC(18,2) NOT NULL DEFAULT 0,
	moneda             TEXT NOT NULL DEFAULT 'COP',
	etapa              TEXT NOT NULL,
	observacion        TEXT NOT NULL DEFAULT '',
	fecha_creacion     TIMESTAMPTZ NOT NULL DEFAULT now(),
	fecha_modificacion TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS oferta_auditoria (
	id             UUID PRIMARY KEY,
	oferta_id      BIGINT NOT NULL REFERENCES ofertas(id),
	accion         TEXT NOT NULL,
	etapa_anterior TEXT NOT NULL DEFAULT '',
	etapa_nueva    TEXT NOT NULL DEFAULT '',
	nota           TEXT NOT NULL DEFAULT '',
	usuario        TEXT NOT NULL DEFAULT '',
	fuera_de_tabla BOOLEAN NOT NULL DEFAULT false,
	fecha          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_oferta_auditoria_oferta ON oferta_auditoria (oferta_id, fecha DESC);
`

const columnasOferta = `id, inmueble_id, oportunidad_id, cliente, monto, moneda, etapa, observacion, fecha_creacion, fecha_modificacion`

// PostgresStore implementa OfertasStore sobre PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore envuelve una conexión existente.
//
// Uso:
//
//	db, err := sql.Open("postgres", dsn)
//	store := clients.NewPostgresStore(db)
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgresStore abre la conexión, verifica conectividad y asegura el esquema.
func OpenPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("abriendo postgres: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("conectando a postgres: %w", err)
	}
	store := NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema crea las tablas si no existen.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, esquemaOfertas); err != nil {
		return fmt.Errorf("creando esquema de ofertas: %w", err)
	}
	return nil
}

// Close libera la conexión.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InsertOferta crea una oferta y retorna el registro con su id.
func (s *PostgresStore) InsertOferta(ctx context.Context, o models.Oferta) (*models.Oferta, error) {
	query := `
		INSERT INTO ofertas (inmueble_id, oportunidad_id, cliente, monto, moneda, etapa, observacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columnasOferta
	row := s.db.QueryRowContext(ctx, query,
		o.InmuebleId,
		o.OportunidadId,
		o.Cliente,
		o.Monto,
		o.Moneda,
		string(o.Etapa),
		o.Observacion,
	)
	created, err := scanOferta(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert oferta: %w", err)
	}
	return created, nil
}

// GetOfertaByID consulta una oferta por id.
func (s *PostgresStore) GetOfertaByID(ctx context.Context, id int64) (*models.Oferta, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columnasOferta+` FROM ofertas WHERE id = $1`, id)
	o, err := scanOferta(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get oferta: %w", err)
	}
	return o, nil
}

// UpdateOferta aplica el patch de etapa y observación.
func (s *PostgresStore) UpdateOferta(ctx context.Context, id int64, patch models.OfertaPatch) (*models.Oferta, error) {
	query := `
		UPDATE ofertas
		SET etapa = $2, observacion = $3, fecha_modificacion = now()
		WHERE id = $1
		RETURNING ` + columnasOferta
	o, err := scanOferta(s.db.QueryRowContext(ctx, query, id, string(patch.Etapa), patch.Observacion))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update oferta: %w", err)
	}
	return o, nil
}

// ListOfertas filtra en SQL por etapa, inmueble y texto.
func (s *PostgresStore) ListOfertas(ctx context.Context, filtro models.FiltroOfertas) ([]models.Oferta, error) {
	query, args := buildListQuery(filtro)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ofertas: %w", err)
	}
	defer rows.Close()

	out := make([]models.Oferta, 0)
	for rows.Next() {
		o, err := scanOferta(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan oferta: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// GetAuditLogsByOfertaID retorna el historial, más reciente primero.
func (s *PostgresStore) GetAuditLogsByOfertaID(ctx context.Context, id int64) ([]models.RegistroAuditoria, error) {
	if _, err := s.GetOfertaByID(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, oferta_id, accion, etapa_anterior, etapa_nueva, nota, usuario, fuera_de_tabla, fecha
		FROM oferta_auditoria
		WHERE oferta_id = $1
		ORDER BY fecha DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list auditoria: %w", err)
	}
	defer rows.Close()

	out := make([]models.RegistroAuditoria, 0)
	for rows.Next() {
		var (
			r             models.RegistroAuditoria
			anterior, nva string
		)
		if err := rows.Scan(&r.Id, &r.OfertaId, &r.Accion, &anterior, &nva, &r.Nota, &r.Usuario, &r.FueraDeTabla, &r.Fecha); err != nil {
			return nil, fmt.Errorf("failed to scan auditoria: %w", err)
		}
		r.EtapaAnterior = models.EtapaOferta(anterior)
		r.EtapaNueva = models.EtapaOferta(nva)
		out = append(out, r)
	}
	return out, rows.Err()
}

// AddAuditLog inserta una entrada de auditoría.
func (s *PostgresStore) AddAuditLog(ctx context.Context, entry models.RegistroAuditoria) (*models.RegistroAuditoria, error) {
	if entry.Id == "" {
		entry.Id = uuid.NewString()
	}
	if entry.Fecha.IsZero() {
		entry.Fecha = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO oferta_auditoria (id, oferta_id, accion, etapa_anterior, etapa_nueva, nota, usuario, fuera_de_tabla, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.Id,
		entry.OfertaId,
		entry.Accion,
		string(entry.EtapaAnterior),
		string(entry.EtapaNueva),
		entry.Nota,
		entry.Usuario,
		entry.FueraDeTabla,
		entry.Fecha,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to insert auditoria: %w", err)
	}
	return &entry, nil
}

func buildListQuery(filtro models.FiltroOfertas) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if len(filtro.Etapas) > 0 {
		etapas := make([]string, len(filtro.Etapas))
		for i, e := range filtro.Etapas {
			etapas[i] = string(e)
		}
		args = append(args, pq.Array(etapas))
		where = append(where, fmt.Sprintf("etapa = ANY($%d)", len(args)))
	}
	if filtro.InmuebleId > 0 {
		args = append(args, filtro.InmuebleId)
		where = append(where, fmt.Sprintf("inmueble_id = $%d", len(args)))
	}
	if texto := strings.TrimSpace(filtro.Texto); texto != "" {
		args = append(args, "%"+texto+"%")
		where = append(where, fmt.Sprintf("(cliente ILIKE $%d OR observacion ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + columnasOferta + ` FROM ofertas`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	return query + ` ORDER BY id`, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOferta(row rowScanner) (*models.Oferta, error) {
	var (
		o     models.Oferta
		etapa string
	)
	err := row.Scan(
		&o.Id,
		&o.InmuebleId,
		&o.OportunidadId,
		&o.Cliente,
		&o.Monto,
		&o.Moneda,
		&etapa,
		&o.Observacion,
		&o.FechaCreacion,
		&o.FechaModificacion,
	)
	if err != nil {
		return nil, err
	}
	o.Etapa = models.EtapaOferta(etapa)
	return &o, nil
}
