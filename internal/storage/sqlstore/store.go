package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/spendy/internal/persistence"
)

// Dialect picks the bind parameter syntax of the underlying driver.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) bind(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}

	return "?"
}

// Store keeps KV pairs in the kv_store table created by database.Migrate.
type Store struct {
	db *sql.DB

	getQuery    string
	upsertQuery string
	deleteQuery string
}

func New(db *sql.DB, dialect Dialect) *Store {
	s := &Store{db: db}

	s.getQuery = `SELECT value FROM kv_store WHERE key = ` + dialect.bind(1)
	s.deleteQuery = `DELETE FROM kv_store WHERE key = ` + dialect.bind(1)
	s.upsertQuery = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (` + dialect.bind(1) + `, ` + dialect.bind(2) + `, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", persistence.ErrKeyNotFound
		}

		return "", fmt.Errorf("getting %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.upsertQuery, key, value); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, s.deleteQuery, key)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}

	if n == 0 {
		return persistence.ErrKeyNotFound
	}

	return nil
}

var _ persistence.KV = (*Store)(nil)
