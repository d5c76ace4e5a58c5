package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	txcontext "attest/pkg/platform/tx"
)

// PostgresStore appends audit events to PostgreSQL. When a lifecycle
// transaction is threaded through the context the append joins it.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO audit_events
			(id, occurred_at, height, action, actor_id, target_id, certification_id, teacher_id, cert_type, role, reason, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		uuid.NewString(), event.Timestamp.UTC().Format(time.RFC3339Nano), int64(event.Height),
		string(event.Action), event.ActorID, event.TargetID, event.CertificationID,
		event.TeacherID, event.CertType, event.Role, event.Reason, event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
