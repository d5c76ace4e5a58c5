package requirements

import (
	"context"
	"errors"
	"log/slog"

	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
	"attest/pkg/platform/sentinel"
)

// Store persists requirement records keyed by certification type.
type Store interface {
	Save(ctx context.Context, req Requirement) error
	FindByType(ctx context.Context, certType domain.CertificationType) (Requirement, error)
}

// RoleChecker answers admin-membership queries for catalog mutations.
type RoleChecker interface {
	IsAdmin(ctx context.Context, actor domain.ActorID) (bool, error)
}

// AuditEmitter records catalog changes.
type AuditEmitter interface {
	RequirementsSet(ctx context.Context, actor domain.ActorID, certType domain.CertificationType)
}

// Catalog orchestrates requirement configuration. Setting a record is
// admin-gated; reads are open.
type Catalog struct {
	store  Store
	roles  RoleChecker
	logger *slog.Logger
	audit  AuditEmitter
}

type Option func(c *Catalog)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

func WithAuditEmitter(audit AuditEmitter) Option {
	return func(c *Catalog) { c.audit = audit }
}

func NewCatalog(store Store, roles RoleChecker, opts ...Option) *Catalog {
	c := &Catalog{store: store, roles: roles}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// SetRequest carries the inputs for a catalog write.
type SetRequest struct {
	Caller       domain.ActorID
	Type         domain.CertificationType
	Hours        int
	Activities   []domain.ActivityRef
	ValidityDays int
}

// Set creates or replaces the requirement record for a type. Any prior
// record for the same type is overwritten whole, never merged.
func (c *Catalog) Set(ctx context.Context, req SetRequest) (*Requirement, error) {
	admin, err := c.roles.IsAdmin(ctx, req.Caller)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check admin membership")
	}
	if !admin {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not an admin")
	}

	record, err := New(req.Type, req.Hours, req.Activities, req.ValidityDays)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(ctx, *record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save requirement record")
	}

	if c.audit != nil {
		c.audit.RequirementsSet(ctx, req.Caller, req.Type)
	}
	c.logger.InfoContext(ctx, "requirements set",
		"actor_id", req.Caller.String(),
		"certification_type", req.Type.String(),
		"validity_days", req.ValidityDays,
	)
	return record, nil
}

// Get returns the requirement record for a type, or NotFound.
func (c *Catalog) Get(ctx context.Context, certType domain.CertificationType) (Requirement, error) {
	record, err := c.store.FindByType(ctx, certType)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Requirement{}, dErrors.New(dErrors.CodeNotFound, "no requirements configured for certification type")
		}
		return Requirement{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requirement record")
	}
	return record, nil
}
