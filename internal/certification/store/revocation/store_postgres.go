package revocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attest/internal/certification/models"
	"attest/pkg/domain"
	"attest/pkg/platform/sentinel"
	txcontext "attest/pkg/platform/tx"
)

// PostgresStore persists the revocation log in PostgreSQL. When a
// transaction is threaded through the context, the append joins it so the
// log entry commits together with the status flip.
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

func (s *PostgresStore) Append(ctx context.Context, entry models.RevocationEntry) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO revocation_log (certification_id, reason, revoked_at_height)
		VALUES ($1, $2, $3)
		ON CONFLICT (certification_id) DO UPDATE SET
			reason = EXCLUDED.reason,
			revoked_at_height = EXCLUDED.revoked_at_height`,
		entry.CertificationID.String(), entry.Reason, int64(entry.RevokedAt),
	)
	if err != nil {
		return fmt.Errorf("append revocation entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.CertificationID) (models.RevocationEntry, error) {
	var (
		entry  models.RevocationEntry
		rawID  string
		height int64
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT certification_id, reason, revoked_at_height
		FROM revocation_log
		WHERE certification_id = $1`,
		id.String(),
	).Scan(&rawID, &entry.Reason, &height)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RevocationEntry{}, sentinel.ErrNotFound
		}
		return models.RevocationEntry{}, fmt.Errorf("find revocation entry: %w", err)
	}
	entry.CertificationID = domain.CertificationID(rawID)
	entry.RevokedAt = domain.Height(height)
	return entry, nil
}
