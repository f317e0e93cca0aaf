// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"time"

	"rfp-dashboard/internal/common/config"
	"rfp-dashboard/internal/common/errors"

	_ "github.com/lib/pq"
)

const pingTimeout = 5 * time.Second

// Postgres owns the pooled handle behind the RFP store.
type Postgres struct {
	DB *sql.DB
}

// OpenPostgres opens the pool and verifies one round trip before returning.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pg := &Postgres{DB: db}
	if err := pg.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return pg, nil
}

// Ping is also registered as the postgres health check.
func (p *Postgres) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := p.DB.PingContext(ctx); err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

// InitSchema creates the dashboard tables and optionally seeds sample RFPs.
func (p *Postgres) InitSchema(ctx context.Context, seed bool) error {
	return InitSchema(ctx, p.DB, seed)
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	return p.DB.Close()
}
