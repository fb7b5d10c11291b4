package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the tables on first boot. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rsvps (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			email          TEXT NOT NULL,
			phone          TEXT NOT NULL DEFAULT '',
			guests         INT  NOT NULL DEFAULT 1,
			selected_dish  TEXT NOT NULL,
			payment_type   TEXT NOT NULL,
			total_amount   DOUBLE PRECISION NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'pending',
			payment_proof  TEXT NOT NULL DEFAULT '',
			notes          TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dish_counters (
			id            BIGSERIAL PRIMARY KEY,
			dish_name     TEXT NOT NULL UNIQUE,
			current_count INT NOT NULL DEFAULT 0,
			max_count     INT NOT NULL DEFAULT 7
		)`,
		`CREATE TABLE IF NOT EXISTS rsvp_audit (
			event_id       TEXT PRIMARY KEY,
			event_type     TEXT NOT NULL,
			rsvp_id        TEXT NOT NULL,
			dish_name      TEXT NOT NULL DEFAULT '',
			payment_status TEXT NOT NULL DEFAULT '',
			occurred_at    TIMESTAMPTZ NOT NULL,
			recorded_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
