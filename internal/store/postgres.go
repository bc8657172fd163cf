package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/crmimport/internal/core"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS contacts (
    seq            BIGINT GENERATED ALWAYS AS IDENTITY,
    id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name           TEXT NOT NULL,
    first_name     TEXT NOT NULL DEFAULT '',
    last_name      TEXT NOT NULL DEFAULT '',
    email          TEXT NOT NULL,
    phone          TEXT NOT NULL DEFAULT '',
    title          TEXT NOT NULL DEFAULT '',
    company        TEXT NOT NULL,
    industry       TEXT NOT NULL DEFAULT '',
    sources        TEXT[] NOT NULL DEFAULT '{}',
    interest_level TEXT NOT NULL CHECK (interest_level IN ('hot', 'medium', 'low', 'cold')),
    status         TEXT NOT NULL CHECK (status IN ('lead', 'prospect', 'customer', 'churned', 'active', 'pending', 'inactive')),
    notes          TEXT NOT NULL DEFAULT '',
    tags           TEXT[] NOT NULL DEFAULT '{}',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS contacts_seq_idx ON contacts (seq);
`

const insertContactSQL = `
INSERT INTO contacts (
    name, first_name, last_name, email, phone, title, company, industry,
    sources, interest_level, status, notes, tags
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, created_at`

const listContactsSQL = `
SELECT id, name, first_name, last_name, email, phone, title, company, industry,
       sources, interest_level, status, notes, tags, created_at
FROM contacts
ORDER BY seq`

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxConns int
	MinConns int
}

// Postgres stores contacts in a PostgreSQL table.
type Postgres struct {
	pool *pgxpool.Pool
}

// Open connects to the database at dsn and verifies the connection.
func Open(ctx context.Context, dsn string, pc PoolConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if pc.MaxConns > 0 {
		poolConfig.MaxConns = int32(pc.MaxConns)
	}
	if pc.MinConns > 0 {
		poolConfig.MinConns = int32(pc.MinConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(dsn); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return NewPostgres(pool), nil
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the contacts table when it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// CreateMany inserts contacts in one transaction and returns them with their
// generated ids, in input order. Either every contact is created or none is.
func (p *Postgres) CreateMany(ctx context.Context, contacts []core.CandidateContact) ([]core.Contact, error) {
	if len(contacts) == 0 {
		return []core.Contact{}, nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, c := range contacts {
		batch.Queue(insertContactSQL,
			c.Name, c.FirstName, c.LastName, c.Email, c.Phone, c.Title, c.Company, c.Industry,
			nonNil(c.Sources), c.InterestLevel, c.Status, c.Notes, nonNil(c.Tags),
		)
	}

	created, err := scanCreated(tx.SendBatch(ctx, batch), contacts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit contacts: %w", err)
	}
	return created, nil
}

// scanCreated reads one RETURNING row per queued insert and closes br.
func scanCreated(br pgx.BatchResults, contacts []core.CandidateContact) ([]core.Contact, error) {
	defer br.Close()

	created := make([]core.Contact, 0, len(contacts))
	for i, c := range contacts {
		var (
			id        pgtype.UUID
			createdAt time.Time
		)
		if err := br.QueryRow().Scan(&id, &createdAt); err != nil {
			return nil, fmt.Errorf("insert contact %d: %w", i+1, err)
		}
		created = append(created, core.Contact{
			ID:               uuid.UUID(id.Bytes).String(),
			CandidateContact: c,
			CreatedAt:        createdAt,
		})
	}

	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}
	return created, nil
}

// List returns every contact in insertion order.
func (p *Postgres) List(ctx context.Context) ([]core.Contact, error) {
	rows, err := p.pool.Query(ctx, listContactsSQL)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []core.Contact
	for rows.Next() {
		var (
			c  core.Contact
			id pgtype.UUID
		)
		if err := rows.Scan(
			&id, &c.Name, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title,
			&c.Company, &c.Industry, &c.Sources, &c.InterestLevel, &c.Status,
			&c.Notes, &c.Tags, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.ID = uuid.UUID(id.Bytes).String()
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
