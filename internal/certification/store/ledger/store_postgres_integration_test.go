//go:build integration

package ledger_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"attest/internal/certification/models"
	"attest/internal/certification/store/ledger"
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
	"attest/pkg/platform/sentinel"
	"attest/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *ledger.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = ledger.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "certifications", "counters")
	s.Require().NoError(err)
}

func newTestRecord(s *PostgresStoreSuite) *models.CertificationRecord {
	teacher := domain.TeacherID(uuid.New())
	rec, err := models.NewCertificationRecord(
		teacher,
		"basic-teaching",
		[]domain.ActivityRef{"pedagogy-101", "classroom-observation"},
		"cohort 2026",
		domain.Height(100),
		domain.Height(400),
	)
	s.Require().NoError(err)
	return rec
}

func (s *PostgresStoreSuite) TestMutateCreatesRecord() {
	ctx := context.Background()
	rec := newTestRecord(s)

	created, err := s.store.Mutate(ctx, rec.ID, func(existing *models.CertificationRecord) (models.CertificationRecord, error) {
		s.Nil(existing, "first issuance should see no existing record")
		return *rec, nil
	})
	s.Require().NoError(err)
	s.Equal(rec.ID, created.ID)

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(*rec, found)

	total, err := s.store.IssuedTotal(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
}

func (s *PostgresStoreSuite) TestMutateUpdatesWithoutCounterBump() {
	ctx := context.Background()
	rec := newTestRecord(s)

	_, err := s.store.Mutate(ctx, rec.ID, func(_ *models.CertificationRecord) (models.CertificationRecord, error) {
		return *rec, nil
	})
	s.Require().NoError(err)

	updated, err := s.store.Mutate(ctx, rec.ID, func(existing *models.CertificationRecord) (models.CertificationRecord, error) {
		s.Require().NotNil(existing)
		existing.ApplyRevocation()
		return *existing, nil
	})
	s.Require().NoError(err)
	s.Equal(models.StatusRevoked, updated.Status)

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusRevoked, found.Status)

	// Updates to an existing record never count as issuances.
	total, err := s.store.IssuedTotal(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
}

func (s *PostgresStoreSuite) TestCallbackErrorAbortsMutation() {
	ctx := context.Background()
	rec := newTestRecord(s)

	_, err := s.store.Mutate(ctx, rec.ID, func(_ *models.CertificationRecord) (models.CertificationRecord, error) {
		return *rec, nil
	})
	s.Require().NoError(err)

	rejected := dErrors.New(dErrors.CodeAlreadyCertified, "certification is already active")
	_, err = s.store.Mutate(ctx, rec.ID, func(_ *models.CertificationRecord) (models.CertificationRecord, error) {
		return models.CertificationRecord{}, rejected
	})
	s.Require().ErrorIs(err, rejected)

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(*rec, found, "failed mutation must leave the record untouched")
}

func (s *PostgresStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(context.Background(), domain.DeriveCertificationID(domain.TeacherID(uuid.New()), "basic-teaching"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestIssuedTotalStartsAtZero() {
	total, err := s.store.IssuedTotal(context.Background())
	s.Require().NoError(err)
	s.Equal(uint64(0), total)
}

// TestConcurrentMutateSameRecord verifies the FOR UPDATE row lock serializes
// concurrent mutations so no increment is lost.
func (s *PostgresStoreSuite) TestConcurrentMutateSameRecord() {
	ctx := context.Background()
	rec := newTestRecord(s)

	_, err := s.store.Mutate(ctx, rec.ID, func(_ *models.CertificationRecord) (models.CertificationRecord, error) {
		return *rec, nil
	})
	s.Require().NoError(err)

	const goroutines = 20
	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Mutate(ctx, rec.ID, func(existing *models.CertificationRecord) (models.CertificationRecord, error) {
				existing.RenewalCount++
				return *existing, nil
			})
			if err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(0), failures.Load(), "no mutation should fail")

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(goroutines, found.RenewalCount)
}
