// Package authz holds the role registry gating every mutating lifecycle
// operation. Admin and verifier are two disjoint sets, not a hierarchy: an
// admin is not implicitly a verifier and vice versa.
package authz

import (
	"context"
	"log/slog"

	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
)

// Role names a membership set.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVerifier Role = "verifier"
)

// Store persists role membership. Absent identifiers read as non-members.
type Store interface {
	IsMember(ctx context.Context, role Role, actor domain.ActorID) (bool, error)
	Add(ctx context.Context, role Role, actor domain.ActorID) error
	Remove(ctx context.Context, role Role, actor domain.ActorID) error
}

// AuditEmitter records role changes.
type AuditEmitter interface {
	RoleGranted(ctx context.Context, actor domain.ActorID, target domain.ActorID, role string)
	RoleRevoked(ctx context.Context, actor domain.ActorID, target domain.ActorID, role string)
}

// Registry answers role-membership queries and applies admin-gated
// mutations. The genesis identity is the deploying admin and can never be
// removed.
type Registry struct {
	store   Store
	genesis domain.ActorID
	logger  *slog.Logger
	audit   AuditEmitter
}

type Option func(r *Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

func WithAuditEmitter(audit AuditEmitter) Option {
	return func(r *Registry) { r.audit = audit }
}

func NewRegistry(store Store, genesis domain.ActorID, opts ...Option) *Registry {
	r := &Registry{store: store, genesis: genesis}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Seed installs the genesis identity into the admin set. Call once at
// startup; re-seeding an existing membership is a no-op.
func (r *Registry) Seed(ctx context.Context) error {
	if r.genesis.IsNil() {
		return dErrors.New(dErrors.CodeInternal, "genesis admin identity is not configured")
	}
	return r.store.Add(ctx, RoleAdmin, r.genesis)
}

func (r *Registry) requireAdmin(ctx context.Context, caller domain.ActorID) error {
	admin, err := r.store.IsMember(ctx, RoleAdmin, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check admin membership")
	}
	if !admin {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not an admin")
	}
	return nil
}

// AddAdmin grants admin membership to target. Requires caller to already be
// an admin.
func (r *Registry) AddAdmin(ctx context.Context, caller, target domain.ActorID) error {
	return r.grant(ctx, RoleAdmin, caller, target)
}

// RemoveAdmin revokes admin membership. The genesis identity can never be
// removed; attempting it fails Unauthorized regardless of the caller.
func (r *Registry) RemoveAdmin(ctx context.Context, caller, target domain.ActorID) error {
	if err := r.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if target == r.genesis {
		return dErrors.New(dErrors.CodeUnauthorized, "the genesis admin cannot be removed")
	}
	return r.revoke(ctx, RoleAdmin, caller, target)
}

// AddVerifier grants verifier membership to target. Requires admin caller.
func (r *Registry) AddVerifier(ctx context.Context, caller, target domain.ActorID) error {
	return r.grant(ctx, RoleVerifier, caller, target)
}

// RemoveVerifier revokes verifier membership. Requires admin caller.
func (r *Registry) RemoveVerifier(ctx context.Context, caller, target domain.ActorID) error {
	if err := r.requireAdmin(ctx, caller); err != nil {
		return err
	}
	return r.revoke(ctx, RoleVerifier, caller, target)
}

func (r *Registry) grant(ctx context.Context, role Role, caller, target domain.ActorID) error {
	if err := r.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if target.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "target actor id is required")
	}
	if err := r.store.Add(ctx, role, target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant role")
	}
	if r.audit != nil {
		r.audit.RoleGranted(ctx, caller, target, string(role))
	}
	r.logger.InfoContext(ctx, "role granted",
		"actor_id", caller.String(),
		"target_id", target.String(),
		"role", string(role),
	)
	return nil
}

func (r *Registry) revoke(ctx context.Context, role Role, caller, target domain.ActorID) error {
	if err := r.store.Remove(ctx, role, target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke role")
	}
	if r.audit != nil {
		r.audit.RoleRevoked(ctx, caller, target, string(role))
	}
	r.logger.InfoContext(ctx, "role revoked",
		"actor_id", caller.String(),
		"target_id", target.String(),
		"role", string(role),
	)
	return nil
}

// IsAdmin reports admin membership. Absent identifiers read as false; the
// query itself never fails on missing data.
func (r *Registry) IsAdmin(ctx context.Context, actor domain.ActorID) (bool, error) {
	return r.store.IsMember(ctx, RoleAdmin, actor)
}

// IsVerifier reports verifier membership.
func (r *Registry) IsVerifier(ctx context.Context, actor domain.ActorID) (bool, error) {
	return r.store.IsMember(ctx, RoleVerifier, actor)
}
