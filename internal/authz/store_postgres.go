package authz

import (
	"context"
	"database/sql"
	"fmt"

	"attest/pkg/domain"
	txcontext "attest/pkg/platform/tx"
)

// PostgresStore persists role membership in PostgreSQL.
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

func (s *PostgresStore) IsMember(ctx context.Context, role Role, actor domain.ActorID) (bool, error) {
	var exists bool
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM role_members WHERE role = $1 AND actor_id = $2
		)`,
		string(role), actor.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role membership: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Add(ctx context.Context, role Role, actor domain.ActorID) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO role_members (role, actor_id)
		VALUES ($1, $2)
		ON CONFLICT (role, actor_id) DO NOTHING`,
		string(role), actor.String(),
	)
	if err != nil {
		return fmt.Errorf("add role member: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, role Role, actor domain.ActorID) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		DELETE FROM role_members WHERE role = $1 AND actor_id = $2`,
		string(role), actor.String(),
	)
	if err != nil {
		return fmt.Errorf("remove role member: %w", err)
	}
	return nil
}
