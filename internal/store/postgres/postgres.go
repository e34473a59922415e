// Package postgres opens the PostgreSQL conversation store through the pgx
// stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agents052025/assistant-be-ios/internal/store/sqlstore"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB wraps an open handle and applies migrations.
func NewWithDB(ctx context.Context, db *sql.DB) (*sqlstore.Store, error) {
	s := sqlstore.New(db, sqlstore.Postgres)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// New opens dsn and applies migrations.
func New(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	s, err := NewWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
