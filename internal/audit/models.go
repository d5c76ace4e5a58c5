// Package audit captures lifecycle events for compliance visibility. The
// registry's own revocation log is authoritative state; this trail is
// operational, so emission failures never abort a lifecycle operation.
package audit

import (
	"time"

	"attest/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp       time.Time     `json:"timestamp"`
	Height          domain.Height `json:"height,omitempty"`
	Action          Action        `json:"action"`
	ActorID         string        `json:"actor_id,omitempty"`
	TargetID        string        `json:"target_id,omitempty"`
	CertificationID string        `json:"certification_id,omitempty"`
	TeacherID       string        `json:"teacher_id,omitempty"`
	CertType        string        `json:"certification_type,omitempty"`
	Role            string        `json:"role,omitempty"`
	Reason          string        `json:"reason,omitempty"`
	RequestID       string        `json:"request_id,omitempty"`
}

// Action names a lifecycle event.
type Action string

const (
	// Certification events
	ActionCertificationIssued  Action = "certification_issued"
	ActionCertificationRenewed Action = "certification_renewed"
	ActionCertificationRevoked Action = "certification_revoked"
	ActionCertificationExpired Action = "certification_expired"

	// Registry administration events
	ActionRoleGranted     Action = "role_granted"
	ActionRoleRevoked     Action = "role_revoked"
	ActionPaused          Action = "registry_paused"
	ActionUnpaused        Action = "registry_unpaused"
	ActionRequirementsSet Action = "requirements_set"
)
