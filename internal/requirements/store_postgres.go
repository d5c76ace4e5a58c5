package requirements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"attest/pkg/domain"
	"attest/pkg/platform/sentinel"
	txcontext "attest/pkg/platform/tx"
)

// PostgresStore persists the requirement catalog in PostgreSQL.
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

func (s *PostgresStore) Save(ctx context.Context, req Requirement) error {
	activities := make([]string, len(req.RequiredActivities))
	for i, a := range req.RequiredActivities {
		activities[i] = string(a)
	}

	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO requirements (cert_type, required_hours, required_activities, validity_days)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cert_type) DO UPDATE SET
			required_hours = EXCLUDED.required_hours,
			required_activities = EXCLUDED.required_activities,
			validity_days = EXCLUDED.validity_days`,
		string(req.Type), req.RequiredHours, pq.Array(activities), req.ValidityDays,
	)
	if err != nil {
		return fmt.Errorf("save requirement record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByType(ctx context.Context, certType domain.CertificationType) (Requirement, error) {
	var (
		req        Requirement
		rawType    string
		activities []string
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT cert_type, required_hours, required_activities, validity_days
		FROM requirements
		WHERE cert_type = $1`,
		string(certType),
	).Scan(&rawType, &req.RequiredHours, pq.Array(&activities), &req.ValidityDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Requirement{}, sentinel.ErrNotFound
		}
		return Requirement{}, fmt.Errorf("find requirement record: %w", err)
	}

	req.Type = domain.CertificationType(rawType)
	req.RequiredActivities = make([]domain.ActivityRef, len(activities))
	for i, a := range activities {
		req.RequiredActivities[i] = domain.ActivityRef(a)
	}
	return req, nil
}
