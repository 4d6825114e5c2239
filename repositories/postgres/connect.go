package postgres

import (
	// Go Internal Packages
	"context"

	// External Packages
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the given URI and verifies the
// connection with a ping.
func Connect(ctx context.Context, uri string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, err
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, pingErr
	}
	return pool, nil
}

// EnsureSchema creates the gateway tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS companies (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			merchant_id  TEXT NOT NULL UNIQUE,
			callback_url TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS payments (
			id             TEXT PRIMARY KEY,
			reference      TEXT NOT NULL UNIQUE,
			orderid        TEXT NOT NULL,
			company_id     TEXT NOT NULL DEFAULT '',
			merchant_id    TEXT NOT NULL,
			firstname      TEXT NOT NULL DEFAULT '',
			lastname       TEXT NOT NULL DEFAULT '',
			email          TEXT NOT NULL DEFAULT '',
			phone          TEXT NOT NULL DEFAULT '',
			amount         DOUBLE PRECISION NOT NULL,
			fee            DOUBLE PRECISION NOT NULL,
			fee_percentage DOUBLE PRECISION NOT NULL,
			net_amount     DOUBLE PRECISION NOT NULL,
			card_number    TEXT NOT NULL,
			status         TEXT NOT NULL,
			callback_url   TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS payments_merchant_idx
			ON payments (merchant_id, created_at DESC);
	`)
	return err
}
