package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"attest/internal/certification/models"
	"attest/pkg/domain"
	"attest/pkg/platform/sentinel"
	txcontext "attest/pkg/platform/tx"
)

// PostgresStore persists certification records in PostgreSQL. Mutate runs
// inside a transaction with the row locked FOR UPDATE so validation and
// write happen atomically; when a transaction is already threaded through
// the context it is joined rather than nested.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) dbQuerier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.CertificationID) (models.CertificationRecord, error) {
	return scanRecord(s.querier(ctx).QueryRowContext(ctx, selectRecordSQL, id.String()))
}

func (s *PostgresStore) Mutate(
	ctx context.Context,
	id domain.CertificationID,
	fn func(existing *models.CertificationRecord) (models.CertificationRecord, error),
) (models.CertificationRecord, error) {
	if tx, ok := txcontext.From(ctx); ok {
		return s.mutateIn(ctx, tx, id, fn)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.CertificationRecord{}, fmt.Errorf("begin ledger mutation: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updated, err := s.mutateIn(ctx, tx, id, fn)
	if err != nil {
		return models.CertificationRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.CertificationRecord{}, fmt.Errorf("commit ledger mutation: %w", err)
	}
	return updated, nil
}

func (s *PostgresStore) mutateIn(
	ctx context.Context,
	tx dbQuerier,
	id domain.CertificationID,
	fn func(existing *models.CertificationRecord) (models.CertificationRecord, error),
) (models.CertificationRecord, error) {
	var existing *models.CertificationRecord
	rec, err := scanRecord(tx.QueryRowContext(ctx, selectRecordSQL+" FOR UPDATE", id.String()))
	switch {
	case err == nil:
		existing = &rec
	case errors.Is(err, sentinel.ErrNotFound):
		// first issuance
	default:
		return models.CertificationRecord{}, err
	}

	updated, err := fn(existing)
	if err != nil {
		return models.CertificationRecord{}, err
	}

	evidence := make([]string, len(updated.Evidence))
	for i, e := range updated.Evidence {
		evidence[i] = string(e)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO certifications
			(id, teacher_id, cert_type, issue_height, expiration_height, status, evidence, metadata, renewal_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			issue_height = EXCLUDED.issue_height,
			expiration_height = EXCLUDED.expiration_height,
			status = EXCLUDED.status,
			evidence = EXCLUDED.evidence,
			metadata = EXCLUDED.metadata,
			renewal_count = EXCLUDED.renewal_count`,
		updated.ID.String(), updated.Teacher.String(), string(updated.Type),
		int64(updated.IssueDate), int64(updated.ExpirationDate), string(updated.Status),
		pq.Array(evidence), updated.Metadata, updated.RenewalCount,
	)
	if err != nil {
		return models.CertificationRecord{}, fmt.Errorf("write certification record: %w", err)
	}

	if existing == nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO counters (name, value)
			VALUES ('issued_total', 1)
			ON CONFLICT (name) DO UPDATE SET value = counters.value + 1`,
		); err != nil {
			return models.CertificationRecord{}, fmt.Errorf("bump issuance counter: %w", err)
		}
	}
	return updated, nil
}

func (s *PostgresStore) IssuedTotal(ctx context.Context) (uint64, error) {
	var total uint64
	err := s.querier(ctx).QueryRowContext(ctx, `
		SELECT value FROM counters WHERE name = 'issued_total'`,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("read issuance counter: %w", err)
	}
	return total, nil
}

const selectRecordSQL = `
	SELECT id, teacher_id, cert_type, issue_height, expiration_height, status, evidence, metadata, renewal_count
	FROM certifications
	WHERE id = $1`

func scanRecord(row *sql.Row) (models.CertificationRecord, error) {
	var (
		rec       models.CertificationRecord
		id        string
		teacher   string
		certType  string
		issueH    int64
		expiryH   int64
		status    string
		evidence  []string
		metadata  string
		renewals  int
	)
	err := row.Scan(&id, &teacher, &certType, &issueH, &expiryH, &status, pq.Array(&evidence), &metadata, &renewals)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CertificationRecord{}, sentinel.ErrNotFound
		}
		return models.CertificationRecord{}, fmt.Errorf("scan certification record: %w", err)
	}

	teacherID, err := domain.ParseTeacherID(teacher)
	if err != nil {
		return models.CertificationRecord{}, fmt.Errorf("stored teacher id is corrupt: %w", err)
	}

	rec.ID = domain.CertificationID(id)
	rec.Teacher = teacherID
	rec.Type = domain.CertificationType(certType)
	rec.IssueDate = domain.Height(issueH)
	rec.ExpirationDate = domain.Height(expiryH)
	rec.Status = models.Status(status)
	rec.Evidence = make([]domain.ActivityRef, len(evidence))
	for i, e := range evidence {
		rec.Evidence[i] = domain.ActivityRef(e)
	}
	rec.Metadata = metadata
	rec.RenewalCount = renewals
	return rec, nil
}
