// Package pause holds the global mutation freeze. When set, every
// state-mutating lifecycle operation fails before any other check runs;
// reads are unaffected.
package pause

import (
	"context"
	"log/slog"

	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
)

// Store persists the single pause flag.
type Store interface {
	Get(ctx context.Context) (bool, error)
	Set(ctx context.Context, paused bool) error
}

// RoleChecker answers admin-membership queries for flag mutations.
type RoleChecker interface {
	IsAdmin(ctx context.Context, actor domain.ActorID) (bool, error)
}

// AuditEmitter records pause transitions.
type AuditEmitter interface {
	PauseChanged(ctx context.Context, actor domain.ActorID, paused bool)
}

// Switch is the admin-gated pause flag.
type Switch struct {
	store  Store
	roles  RoleChecker
	logger *slog.Logger
	audit  AuditEmitter
}

type Option func(s *Switch)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Switch) { s.logger = logger }
}

func WithAuditEmitter(audit AuditEmitter) Option {
	return func(s *Switch) { s.audit = audit }
}

func NewSwitch(store Store, roles RoleChecker, opts ...Option) *Switch {
	s := &Switch{store: store, roles: roles}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Pause sets the flag. Requires admin; setting an already-set flag is a
// no-op success.
func (s *Switch) Pause(ctx context.Context, caller domain.ActorID) error {
	return s.set(ctx, caller, true)
}

// Unpause clears the flag. Requires admin.
func (s *Switch) Unpause(ctx context.Context, caller domain.ActorID) error {
	return s.set(ctx, caller, false)
}

func (s *Switch) set(ctx context.Context, caller domain.ActorID, paused bool) error {
	admin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check admin membership")
	}
	if !admin {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not an admin")
	}
	if err := s.store.Set(ctx, paused); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update pause flag")
	}
	if s.audit != nil {
		s.audit.PauseChanged(ctx, caller, paused)
	}
	s.logger.InfoContext(ctx, "pause flag changed",
		"actor_id", caller.String(),
		"paused", paused,
	)
	return nil
}

// Paused reports the flag. Read-only, never admin-gated.
func (s *Switch) Paused(ctx context.Context) (bool, error) {
	return s.store.Get(ctx)
}
