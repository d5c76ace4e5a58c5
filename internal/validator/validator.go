// Package validator judges whether submitted prerequisite evidence satisfies
// a requirement record. The full deployment delegates per-activity proof
// verification to the continuing-education log; the policy here is the
// coarse necessary-condition check applied in front of it.
package validator

import (
	"attest/internal/requirements"
	"attest/pkg/domain"
)

// Validator is the collaborator contract consulted before any certification
// is issued or renewed. Implementations are pure: no side effects, no
// errors, just a verdict.
type Validator interface {
	// SatisfiesIssuance judges evidence against the first-time policy.
	SatisfiesIssuance(evidence []domain.ActivityRef, req requirements.Requirement) bool
	// SatisfiesRenewal judges additional evidence against the renewal
	// policy, which is half as strict as first issuance.
	SatisfiesRenewal(evidence []domain.ActivityRef, req requirements.Requirement) bool
}

// Policy is the default coarse validator.
type Policy struct{}

func NewPolicy() Policy {
	return Policy{}
}

// SatisfiesIssuance accepts when the evidence count covers every required
// activity and the requirement demands a strictly positive effort figure.
func (Policy) SatisfiesIssuance(evidence []domain.ActivityRef, req requirements.Requirement) bool {
	return len(evidence) >= len(req.RequiredActivities) && req.RequiredHours > 0
}

// SatisfiesRenewal accepts when the additional evidence covers at least half
// the required activities, rounded down.
func (Policy) SatisfiesRenewal(evidence []domain.ActivityRef, req requirements.Requirement) bool {
	return len(evidence) >= len(req.RequiredActivities)/2
}
