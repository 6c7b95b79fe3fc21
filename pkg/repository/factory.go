package repository

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// pragmas run on open, in order. busy_timeout is in milliseconds, negative cache_size is in KiB.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA cache_size = -16000",
	"PRAGMA temp_store = MEMORY",
	"PRAGMA busy_timeout = 5000",
}

// Config sets the sqlite DSN and pool limits, zero limits keep the driver defaults
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories groups the per-table repositories sharing one sqlite handle
type Repositories struct {
	Account *AccountRepository
	Article *ArticleRepository
	Summary *SummaryRepository
	TaskLog *TaskLogRepository
	DB      *sqlx.DB
}

// NewRepositories opens the database, tunes it, applies schema.sql and wires the repositories
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:mpdigest.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	cfg.applyPool(db)

	if err := prepare(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Account: NewAccountRepository(db),
		Article: NewArticleRepository(db),
		Summary: NewSummaryRepository(db),
		TaskLog: NewTaskLogRepository(db),
		DB:      db,
	}, nil
}

// Close releases the shared handle
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (c Config) applyPool(db *sqlx.DB) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}
}

// prepare runs the pragmas and then the embedded schema
func prepare(ctx context.Context, db *sqlx.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("execute %s: %w", p, err)
		}
	}
	if err := initSchema(ctx, db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// initSchema applies schema.sql, every statement in it is IF NOT EXISTS so reruns are no-ops
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}
