// Package service orchestrates the certification lifecycle: issuance,
// renewal, revocation, expiration, and verification. Every mutating
// operation runs its checks in a fixed order - pause flag, caller role,
// requirement catalog, prerequisite validation - before touching the ledger,
// and every call is all-or-nothing: a failure anywhere leaves all state
// untouched.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	certmetrics "attest/internal/certification/metrics"
	"attest/internal/certification/models"
	"attest/internal/certification/store/verifycache"
	"attest/internal/requirements"
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
	"attest/pkg/platform/sentinel"
)

// Ledger persists certification records. Mutate must apply the callback
// atomically: observe, validate, and write under one lock or transaction.
type Ledger interface {
	FindByID(ctx context.Context, id domain.CertificationID) (models.CertificationRecord, error)
	Mutate(ctx context.Context, id domain.CertificationID, fn func(existing *models.CertificationRecord) (models.CertificationRecord, error)) (models.CertificationRecord, error)
	IssuedTotal(ctx context.Context) (uint64, error)
}

// RevocationLog persists revocation entries keyed by certification id.
type RevocationLog interface {
	Append(ctx context.Context, entry models.RevocationEntry) error
	FindByID(ctx context.Context, id domain.CertificationID) (models.RevocationEntry, error)
}

// RoleChecker answers role-membership queries.
type RoleChecker interface {
	IsAdmin(ctx context.Context, actor domain.ActorID) (bool, error)
	IsVerifier(ctx context.Context, actor domain.ActorID) (bool, error)
}

// PauseReader reports the global mutation freeze.
type PauseReader interface {
	Paused(ctx context.Context) (bool, error)
}

// RequirementSource resolves the requirement record for a type, failing
// with CodeNotFound when none is configured.
type RequirementSource interface {
	Get(ctx context.Context, certType domain.CertificationType) (requirements.Requirement, error)
}

// Validator judges prerequisite evidence against a requirement record.
type Validator interface {
	SatisfiesIssuance(evidence []domain.ActivityRef, req requirements.Requirement) bool
	SatisfiesRenewal(evidence []domain.ActivityRef, req requirements.Requirement) bool
}

// Clock yields the current height, read once per operation.
type Clock interface {
	Now() domain.Height
}

// VerifyCache caches record snapshots for the verification read path.
type VerifyCache interface {
	Get(ctx context.Context, id domain.CertificationID) (*verifycache.Snapshot, error)
	Set(ctx context.Context, id domain.CertificationID, snap verifycache.Snapshot) error
	Invalidate(ctx context.Context, id domain.CertificationID) error
}

// AuditEmitter records lifecycle events.
type AuditEmitter interface {
	CertificationIssued(ctx context.Context, actor domain.ActorID, id domain.CertificationID, teacher domain.TeacherID, certType domain.CertificationType, height domain.Height)
	CertificationRenewed(ctx context.Context, actor domain.ActorID, id domain.CertificationID, height domain.Height)
	CertificationRevoked(ctx context.Context, actor domain.ActorID, id domain.CertificationID, reason string, height domain.Height)
	CertificationExpired(ctx context.Context, actor domain.ActorID, id domain.CertificationID, height domain.Height)
}

// TxRunner scopes every write inside one mutating operation to a single
// unit of work. The default runs the callback as-is, which is sufficient
// for the in-memory stores under the platform's sequential execution.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Service is the certification lifecycle engine.
type Service struct {
	ledger        Ledger
	revocations   RevocationLog
	roles         RoleChecker
	pauses        PauseReader
	requirements  RequirementSource
	validator     Validator
	clock         Clock
	heightsPerDay uint64

	tx      TxRunner
	cache   VerifyCache
	audit   AuditEmitter
	metrics *certmetrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *certmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditEmitter(audit AuditEmitter) Option {
	return func(s *Service) { s.audit = audit }
}

func WithVerifyCache(cache VerifyCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) { s.tx = tx }
}

// New constructs the lifecycle service.
func New(
	ledger Ledger,
	revocations RevocationLog,
	roles RoleChecker,
	pauses PauseReader,
	reqs RequirementSource,
	validator Validator,
	clk Clock,
	heightsPerDay uint64,
	opts ...Option,
) (*Service, error) {
	if ledger == nil {
		return nil, errors.New("ledger store is required")
	}
	if revocations == nil {
		return nil, errors.New("revocation log is required")
	}
	if heightsPerDay == 0 {
		return nil, errors.New("heights per day must be positive")
	}
	s := &Service{
		ledger:        ledger,
		revocations:   revocations,
		roles:         roles,
		pauses:        pauses,
		requirements:  reqs,
		validator:     validator,
		clock:         clk,
		heightsPerDay: heightsPerDay,
		tx:            passthroughTx{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.tracer = otel.Tracer("attest/certification")
	return s, nil
}

// requireNotPaused must run before any other check in a mutating operation.
func (s *Service) requireNotPaused(ctx context.Context) error {
	paused, err := s.pauses.Paused(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read pause flag")
	}
	if paused {
		return dErrors.New(dErrors.CodePaused, "registry is paused")
	}
	return nil
}

// requireIssuerRole admits admins and verifiers.
func (s *Service) requireIssuerRole(ctx context.Context, caller domain.ActorID) error {
	admin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check admin membership")
	}
	if admin {
		return nil
	}
	verifier, err := s.roles.IsVerifier(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check verifier membership")
	}
	if !verifier {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is neither admin nor verifier")
	}
	return nil
}

func (s *Service) requireAdmin(ctx context.Context, caller domain.ActorID) error {
	admin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check admin membership")
	}
	if !admin {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not an admin")
	}
	return nil
}

func (s *Service) invalidateCache(ctx context.Context, id domain.CertificationID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "verify cache invalidation failed",
			"certification_id", id.String(),
			"error", err,
		)
	}
}

// IssuedTotal returns the issuance counter.
func (s *Service) IssuedTotal(ctx context.Context) (uint64, error) {
	return s.ledger.IssuedTotal(ctx)
}

// Get returns the stored record, or NotFound.
func (s *Service) Get(ctx context.Context, id domain.CertificationID) (models.CertificationRecord, error) {
	rec, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.CertificationRecord{}, dErrors.New(dErrors.CodeNotFound, "certification not found")
		}
		return models.CertificationRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certification record")
	}
	return rec, nil
}

// RevocationEntry returns the revocation log entry for a certification, or
// NotFound when it was never revoked.
func (s *Service) RevocationEntry(ctx context.Context, id domain.CertificationID) (models.RevocationEntry, error) {
	entry, err := s.revocations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.RevocationEntry{}, dErrors.New(dErrors.CodeNotFound, "no revocation entry for certification")
		}
		return models.RevocationEntry{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load revocation entry")
	}
	return entry, nil
}
