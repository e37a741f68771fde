package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists grants in a single upsert table keyed by
// tenant id.
type PostgresStore struct {
	pool   *pgxpool.Pool
	sealer *Sealer
}

// NewPostgresStore connects to Postgres, ensures the schema exists,
// and returns the store. If sealer is non-nil, blobs are encrypted at
// rest.
func NewPostgresStore(ctx context.Context, connString string, sealer *Sealer) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{pool: pool, sealer: sealer}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS grants (
			tenant_id  TEXT PRIMARY KEY,
			grant_data BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create grants table: %w", err)
	}
	return nil
}

// Load returns the stored grant for a tenant, or ErrNotFound.
func (s *PostgresStore) Load(ctx context.Context, tenant string) (*Grant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT grant_data FROM grants WHERE tenant_id = $1`, sanitizeTenant(tenant))

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load grant from postgres: %w", err)
	}
	plain, err := open(s.sealer, data)
	if err != nil {
		return nil, err
	}
	return DecodeGrant(plain)
}

// Save persists the grant for a tenant.
func (s *PostgresStore) Save(ctx context.Context, tenant string, g *Grant) error {
	data, err := g.Encode()
	if err != nil {
		return err
	}
	sealed, err := seal(s.sealer, data)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO grants (tenant_id, grant_data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id)
		DO UPDATE SET grant_data = EXCLUDED.grant_data, updated_at = EXCLUDED.updated_at
	`, sanitizeTenant(tenant), sealed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save grant to postgres: %w", err)
	}
	return nil
}

// Delete removes the grant for a tenant.
func (s *PostgresStore) Delete(ctx context.Context, tenant string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM grants WHERE tenant_id = $1`, sanitizeTenant(tenant))
	if err != nil {
		return fmt.Errorf("failed to delete grant from postgres: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
