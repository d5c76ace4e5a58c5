package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"attest/internal/authz"
	"attest/internal/certification/models"
	"attest/internal/certification/store/ledger"
	revocationStore "attest/internal/certification/store/revocation"
	"attest/internal/certification/store/verifycache"
	"attest/internal/clock"
	"attest/internal/pause"
	"attest/internal/requirements"
	"attest/internal/validator"
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
)

// =============================================================================
// Certification Service Test Suite
// =============================================================================
// Justification for unit tests: the lifecycle transitions (issue, renew,
// revoke, expire, verify) carry strict check ordering and no-mutation-on-
// failure guarantees that are hard to pin down through HTTP tests alone.

const testHeightsPerDay = 10

type ServiceSuite struct {
	suite.Suite
	ledger      *ledger.InMemoryStore
	revocations *revocationStore.InMemoryStore
	registry    *authz.Registry
	pauses      *pause.Switch
	catalog     *requirements.Catalog
	clock       *clock.Manual
	service     *Service

	admin    domain.ActorID
	verifier domain.ActorID
	stranger domain.ActorID
	teacher  domain.TeacherID
	certType domain.CertificationType
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctx := context.Background()

	s.admin = domain.ActorID(uuid.New())
	s.verifier = domain.ActorID(uuid.New())
	s.stranger = domain.ActorID(uuid.New())
	s.teacher = domain.TeacherID(uuid.New())
	s.certType = domain.CertificationType("basic-teaching")

	roleStore := authz.NewInMemoryStore()
	s.registry = authz.NewRegistry(roleStore, s.admin)
	s.Require().NoError(s.registry.Seed(ctx))
	s.Require().NoError(s.registry.AddVerifier(ctx, s.admin, s.verifier))

	pauseStore := pause.NewInMemoryStore()
	s.pauses = pause.NewSwitch(pauseStore, s.registry)

	reqStore := requirements.NewInMemoryStore()
	s.catalog = requirements.NewCatalog(reqStore, s.registry)
	_, err := s.catalog.Set(ctx, requirements.SetRequest{
		Caller:       s.admin,
		Type:         s.certType,
		Hours:        40,
		Activities:   []domain.ActivityRef{"pedagogy-101", "classroom-observation"},
		ValidityDays: 30,
	})
	s.Require().NoError(err)

	s.ledger = ledger.NewInMemoryStore()
	s.revocations = revocationStore.NewInMemoryStore()
	s.clock = clock.NewManual(1000)

	s.service, err = New(
		s.ledger,
		s.revocations,
		s.registry,
		s.pauses,
		s.catalog,
		validator.NewPolicy(),
		s.clock,
		testHeightsPerDay,
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) issueRequest() IssueRequest {
	return IssueRequest{
		Caller:   s.verifier,
		Teacher:  s.teacher,
		Type:     s.certType,
		Evidence: []domain.ActivityRef{"pedagogy-101", "classroom-observation"},
		Metadata: "cohort 2026",
	}
}

func (s *ServiceSuite) issueFor(teacher domain.TeacherID) models.CertificationRecord {
	req := s.issueRequest()
	req.Teacher = teacher
	rec, err := s.service.Issue(context.Background(), req)
	s.Require().NoError(err)
	return rec
}

// mustIssue issues for a fresh teacher so subtests never collide on the
// derived id.
func (s *ServiceSuite) mustIssue() models.CertificationRecord {
	return s.issueFor(domain.TeacherID(uuid.New()))
}

// =============================================================================
// Issue Tests
// =============================================================================

func (s *ServiceSuite) TestIssue() {
	ctx := context.Background()

	s.Run("verifier issues an active record", func() {
		rec := s.issueFor(s.teacher)

		s.Equal(domain.DeriveCertificationID(s.teacher, s.certType), rec.ID)
		s.Equal(models.StatusActive, rec.Status)
		s.Equal(0, rec.RenewalCount)
		s.Equal(domain.Height(1000), rec.IssueDate)
		s.Equal(domain.Height(1000+30*testHeightsPerDay), rec.ExpirationDate)
		s.Equal("cohort 2026", rec.Metadata)

		total, err := s.service.IssuedTotal(ctx)
		s.NoError(err)
		s.Equal(uint64(1), total)
	})

	s.Run("admin may issue too", func() {
		req := s.issueRequest()
		req.Caller = s.admin
		req.Teacher = domain.TeacherID(uuid.New())
		_, err := s.service.Issue(ctx, req)
		s.NoError(err)
	})

	s.Run("unknown caller is rejected with no record written", func() {
		req := s.issueRequest()
		req.Caller = s.stranger
		req.Teacher = domain.TeacherID(uuid.New())

		_, err := s.service.Issue(ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = s.service.Get(ctx, domain.DeriveCertificationID(req.Teacher, req.Type))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unconfigured type is rejected", func() {
		req := s.issueRequest()
		req.Type = domain.CertificationType("special-education")
		_, err := s.service.Issue(ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("insufficient evidence fails the prerequisite check", func() {
		req := s.issueRequest()
		req.Teacher = domain.TeacherID(uuid.New())
		req.Evidence = []domain.ActivityRef{"pedagogy-101"}
		_, err := s.service.Issue(ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeRequirementsNotMet))
	})

	s.Run("oversized metadata is rejected", func() {
		req := s.issueRequest()
		req.Teacher = domain.TeacherID(uuid.New())
		req.Metadata = strings.Repeat("x", domain.MaxMetadataLen+1)
		_, err := s.service.Issue(ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeMetadataTooLong))
	})

	s.Run("second issuance over an active record fails", func() {
		teacher := domain.TeacherID(uuid.New())
		s.issueFor(teacher)

		req := s.issueRequest()
		req.Teacher = teacher
		_, err := s.service.Issue(ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyCertified))
	})

	s.Run("failed re-issuance leaves the counter untouched", func() {
		teacher := domain.TeacherID(uuid.New())
		s.issueFor(teacher)
		before, err := s.service.IssuedTotal(ctx)
		s.Require().NoError(err)

		req := s.issueRequest()
		req.Teacher = teacher
		_, err = s.service.Issue(ctx, req)
		s.Error(err)

		after, err := s.service.IssuedTotal(ctx)
		s.NoError(err)
		s.Equal(before, after)
	})
}

func (s *ServiceSuite) TestReissueOverRevoked() {
	ctx := context.Background()

	rec := s.issueFor(s.teacher)
	s.Require().NoError(s.service.Revoke(ctx, RevokeRequest{
		Caller: s.admin,
		ID:     rec.ID,
		Reason: "credential fraud",
	}))

	s.clock.Advance(50)
	req := s.issueRequest()
	req.Evidence = []domain.ActivityRef{"remediation-course", "classroom-observation"}
	req.Metadata = "this metadata is ignored on re-issuance"

	reissued, err := s.service.Issue(ctx, req)
	s.Require().NoError(err)

	s.Equal(models.StatusActive, reissued.Status)
	s.Equal(1, reissued.RenewalCount)
	s.Equal(domain.Height(1050), reissued.IssueDate)
	s.Equal(domain.Height(1050+30*testHeightsPerDay), reissued.ExpirationDate)
	// Original metadata survives; evidence concatenates.
	s.Equal("cohort 2026", reissued.Metadata)
	s.Equal([]domain.ActivityRef{
		"pedagogy-101", "classroom-observation",
		"remediation-course", "classroom-observation",
	}, reissued.Evidence)

	// Re-activation is not a creation; the counter stays put.
	total, err := s.service.IssuedTotal(ctx)
	s.NoError(err)
	s.Equal(uint64(1), total)
}

// =============================================================================
// MarkExpired and Renew Tests
// =============================================================================

func (s *ServiceSuite) TestMarkExpired() {
	ctx := context.Background()
	rec := s.mustIssue()

	s.Run("before the expiration height it is rejected", func() {
		_, err := s.service.MarkExpired(ctx, ExpireRequest{Caller: s.verifier, ID: rec.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeNotExpired))
	})

	s.Run("at the exact expiration height it is still rejected", func() {
		s.clock.Set(rec.ExpirationDate)
		_, err := s.service.MarkExpired(ctx, ExpireRequest{Caller: s.verifier, ID: rec.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeNotExpired))
	})

	s.Run("past the expiration height it transitions to expired", func() {
		s.clock.Set(rec.ExpirationDate + 1)
		expired, err := s.service.MarkExpired(ctx, ExpireRequest{Caller: s.verifier, ID: rec.ID})
		s.NoError(err)
		s.Equal(models.StatusExpired, expired.Status)
	})

	s.Run("an already expired record cannot expire again", func() {
		_, err := s.service.MarkExpired(ctx, ExpireRequest{Caller: s.verifier, ID: rec.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("unknown id fails not found", func() {
		_, err := s.service.MarkExpired(ctx, ExpireRequest{
			Caller: s.verifier,
			ID:     domain.DeriveCertificationID(domain.TeacherID(uuid.New()), s.certType),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestRenew() {
	ctx := context.Background()

	s.Run("an active record cannot renew even after its height passes", func() {
		rec := s.mustIssue()
		s.clock.Set(rec.ExpirationDate + 100)
		_, err := s.service.Renew(ctx, RenewRequest{
			Caller:             s.verifier,
			ID:                 rec.ID,
			AdditionalEvidence: []domain.ActivityRef{"refresher"},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotExpired))
	})

	s.Run("an expired record renews with concatenated evidence", func() {
		rec := s.mustIssue()
		s.clock.Set(rec.ExpirationDate + 1)
		_, err := s.service.MarkExpired(ctx, ExpireRequest{Caller: s.verifier, ID: rec.ID})
		s.Require().NoError(err)

		renewed, err := s.service.Renew(ctx, RenewRequest{
			Caller:             s.verifier,
			ID:                 rec.ID,
			AdditionalEvidence: []domain.ActivityRef{"refresher"},
		})
		s.Require().NoError(err)

		s.Equal(models.StatusActive, renewed.Status)
		s.Equal(1, renewed.RenewalCount)
		s.Equal(rec.ExpirationDate+1, renewed.IssueDate)
		s.Equal(rec.ExpirationDate+1+30*testHeightsPerDay, renewed.ExpirationDate)
		s.Equal([]domain.ActivityRef{
			"pedagogy-101", "classroom-observation", "refresher",
		}, renewed.Evidence)
	})

	s.Run("insufficient additional evidence is rejected", func() {
		rec := s.mustIssue()
		s.clock.Set(rec.ExpirationDate + 1)
		_, err := s.service.MarkExpired(ctx, ExpireRequest{Caller: s.verifier, ID: rec.ID})
		s.Require().NoError(err)

		// Renewal needs at least half the required activities: one here.
		_, err = s.service.Renew(ctx, RenewRequest{Caller: s.verifier, ID: rec.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeRequirementsNotMet))
	})

	s.Run("unknown id fails not found", func() {
		_, err := s.service.Renew(ctx, RenewRequest{
			Caller: s.verifier,
			ID:     domain.DeriveCertificationID(domain.TeacherID(uuid.New()), s.certType),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// Revoke Tests
// =============================================================================

func (s *ServiceSuite) TestRevoke() {
	ctx := context.Background()

	s.Run("verifier cannot revoke", func() {
		rec := s.mustIssue()
		err := s.service.Revoke(ctx, RevokeRequest{Caller: s.verifier, ID: rec.ID, Reason: "fraud"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		current, err := s.service.Get(ctx, rec.ID)
		s.NoError(err)
		s.Equal(models.StatusActive, current.Status)
	})

	s.Run("admin revokes and the log records the reason", func() {
		rec := s.mustIssue()
		err := s.service.Revoke(ctx, RevokeRequest{Caller: s.admin, ID: rec.ID, Reason: "credential fraud"})
		s.Require().NoError(err)

		current, err := s.service.Get(ctx, rec.ID)
		s.NoError(err)
		s.Equal(models.StatusRevoked, current.Status)

		entry, err := s.service.RevocationEntry(ctx, rec.ID)
		s.NoError(err)
		s.Equal("credential fraud", entry.Reason)
		s.Equal(domain.Height(1000), entry.RevokedAt)
	})

	s.Run("second revocation fails and the first entry survives", func() {
		rec := s.mustIssue()
		s.Require().NoError(s.service.Revoke(ctx, RevokeRequest{Caller: s.admin, ID: rec.ID, Reason: "first reason"}))

		err := s.service.Revoke(ctx, RevokeRequest{Caller: s.admin, ID: rec.ID, Reason: "second reason"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))

		entry, err := s.service.RevocationEntry(ctx, rec.ID)
		s.NoError(err)
		s.Equal("first reason", entry.Reason)
	})

	s.Run("oversized reason is rejected before any write", func() {
		rec := s.mustIssue()
		err := s.service.Revoke(ctx, RevokeRequest{
			Caller: s.admin,
			ID:     rec.ID,
			Reason: strings.Repeat("x", domain.MaxReasonLen+1),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		current, err := s.service.Get(ctx, rec.ID)
		s.NoError(err)
		s.Equal(models.StatusActive, current.Status)
	})

	s.Run("unknown id fails not found", func() {
		err := s.service.Revoke(ctx, RevokeRequest{
			Caller: s.admin,
			ID:     domain.DeriveCertificationID(domain.TeacherID(uuid.New()), s.certType),
			Reason: "noop",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// Verify Tests
// =============================================================================

func (s *ServiceSuite) TestVerify() {
	ctx := context.Background()

	s.Run("active record within its window verifies", func() {
		rec := s.mustIssue()
		result, err := s.service.Verify(ctx, rec.ID)
		s.NoError(err)
		s.True(result.Valid)
		s.Equal(models.StatusActive, result.Status)
		s.Equal(rec.ExpirationDate, result.ExpirationDate)
	})

	s.Run("at the exact expiration height the record is invalid", func() {
		rec := s.mustIssue()
		s.clock.Set(rec.ExpirationDate)
		_, err := s.service.Verify(ctx, rec.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("a stored-active record past its height does not verify", func() {
		rec := s.mustIssue()
		s.clock.Set(rec.ExpirationDate + 500)

		current, err := s.service.Get(ctx, rec.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusActive, current.Status)

		_, err = s.service.Verify(ctx, rec.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("a revoked record does not verify", func() {
		rec := s.mustIssue()
		s.Require().NoError(s.service.Revoke(ctx, RevokeRequest{Caller: s.admin, ID: rec.ID, Reason: "fraud"}))
		_, err := s.service.Verify(ctx, rec.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("unknown id fails not found", func() {
		_, err := s.service.Verify(ctx, domain.DeriveCertificationID(domain.TeacherID(uuid.New()), s.certType))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("cache population cannot bury an interleaved revocation", func() {
		rec := s.mustIssue()
		cache := &mapCache{snaps: make(map[domain.CertificationID]verifycache.Snapshot)}
		wrapped := &racingLedger{Ledger: s.ledger}

		svc, err := New(
			wrapped,
			s.revocations,
			s.registry,
			s.pauses,
			s.catalog,
			validator.NewPolicy(),
			s.clock,
			testHeightsPerDay,
			WithVerifyCache(cache),
		)
		s.Require().NoError(err)

		// The revocation lands after Verify reads the ledger and before it
		// stores the snapshot, so its own invalidation hits an empty cache
		// and the stale active snapshot is written afterwards.
		wrapped.onRead = func() {
			s.Require().NoError(svc.Revoke(ctx, RevokeRequest{
				Caller: s.admin,
				ID:     rec.ID,
				Reason: "credential fraud",
			}))
		}

		_, err = svc.Verify(ctx, rec.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))

		_, err = svc.Verify(ctx, rec.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))

		if snap, ok := cache.snaps[rec.ID]; ok {
			s.Equal(models.StatusRevoked, snap.Status)
		}
	})

	s.Run("verify works while the registry is paused", func() {
		rec := s.mustIssue()
		s.Require().NoError(s.pauses.Pause(ctx, s.admin))
		defer func() { s.Require().NoError(s.pauses.Unpause(ctx, s.admin)) }()

		result, err := s.service.Verify(ctx, rec.ID)
		s.NoError(err)
		s.True(result.Valid)
	})
}

// =============================================================================
// Pause Tests
// =============================================================================

func (s *ServiceSuite) TestPauseBlocksMutations() {
	ctx := context.Background()
	rec := s.mustIssue()

	s.Require().NoError(s.pauses.Pause(ctx, s.admin))

	_, err := s.service.Issue(ctx, s.issueRequest())
	s.True(dErrors.HasCode(err, dErrors.CodePaused))

	_, err = s.service.Renew(ctx, RenewRequest{Caller: s.verifier, ID: rec.ID})
	s.True(dErrors.HasCode(err, dErrors.CodePaused))

	err = s.service.Revoke(ctx, RevokeRequest{Caller: s.admin, ID: rec.ID, Reason: "fraud"})
	s.True(dErrors.HasCode(err, dErrors.CodePaused))

	_, err = s.service.MarkExpired(ctx, ExpireRequest{Caller: s.verifier, ID: rec.ID})
	s.True(dErrors.HasCode(err, dErrors.CodePaused))

	// Pause precedes the role check: even an unknown caller reads Paused.
	unknownReq := s.issueRequest()
	unknownReq.Caller = s.stranger
	_, err = s.service.Issue(ctx, unknownReq)
	s.True(dErrors.HasCode(err, dErrors.CodePaused))

	s.Require().NoError(s.pauses.Unpause(ctx, s.admin))

	err = s.service.Revoke(ctx, RevokeRequest{Caller: s.admin, ID: rec.ID, Reason: "fraud"})
	s.NoError(err)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ServiceSuite) TestNew() {
	s.Run("nil ledger returns error", func() {
		_, err := New(nil, s.revocations, s.registry, s.pauses, s.catalog, validator.NewPolicy(), s.clock, testHeightsPerDay)
		s.Error(err)
	})

	s.Run("nil revocation log returns error", func() {
		_, err := New(s.ledger, nil, s.registry, s.pauses, s.catalog, validator.NewPolicy(), s.clock, testHeightsPerDay)
		s.Error(err)
	})

	s.Run("zero heights per day returns error", func() {
		_, err := New(s.ledger, s.revocations, s.registry, s.pauses, s.catalog, validator.NewPolicy(), s.clock, 0)
		s.Error(err)
	})
}

// =============================================================================
// Test Doubles
// =============================================================================

// mapCache is a stateful VerifyCache so tests can assert what the cache
// actually ends up holding.
type mapCache struct {
	mu    sync.Mutex
	snaps map[domain.CertificationID]verifycache.Snapshot
}

func (c *mapCache) Get(_ context.Context, id domain.CertificationID) (*verifycache.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.snaps[id]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (c *mapCache) Set(_ context.Context, id domain.CertificationID, snap verifycache.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps[id] = snap
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, id domain.CertificationID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snaps, id)
	return nil
}

// racingLedger fires onRead once, after the first FindByID returns, to
// interleave a mutation between the verify read and the cache store.
type racingLedger struct {
	Ledger
	once   sync.Once
	onRead func()
}

func (l *racingLedger) FindByID(ctx context.Context, id domain.CertificationID) (models.CertificationRecord, error) {
	rec, err := l.Ledger.FindByID(ctx, id)
	l.once.Do(l.onRead)
	return rec, err
}
