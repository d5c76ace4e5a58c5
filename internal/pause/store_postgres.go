package pause

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	txcontext "attest/pkg/platform/tx"
)

// PostgresStore persists the pause flag in a single-row table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Get(ctx context.Context) (bool, error) {
	var paused bool
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT paused FROM pause_flag WHERE id = TRUE`,
	).Scan(&paused)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("read pause flag: %w", err)
	}
	return paused, nil
}

func (s *PostgresStore) Set(ctx context.Context, paused bool) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO pause_flag (id, paused)
		VALUES (TRUE, $1)
		ON CONFLICT (id) DO UPDATE SET paused = EXCLUDED.paused`,
		paused,
	)
	if err != nil {
		return fmt.Errorf("write pause flag: %w", err)
	}
	return nil
}
