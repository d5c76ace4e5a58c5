// Package requirements holds the per-certification-type requirement catalog:
// the effort hours, prerequisite activities, and validity period a candidate
// must satisfy for each credential class.
package requirements

import (
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
)

// Requirement is the configuration record for one certification type.
//
// Invariants:
//   - ValidityDays is strictly positive
//   - RequiredActivities holds at most domain.MaxRequiredActivities entries
//   - RequiredHours is non-negative
type Requirement struct {
	Type               domain.CertificationType `json:"type"`
	RequiredHours      int                      `json:"required_hours"`
	RequiredActivities []domain.ActivityRef     `json:"required_activities"`
	ValidityDays       int                      `json:"validity_days"`
}

// New constructs a Requirement, enforcing the catalog invariants.
func New(certType domain.CertificationType, hours int, activities []domain.ActivityRef, validityDays int) (*Requirement, error) {
	if validityDays <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidPeriod, "validity period must be positive")
	}
	if hours < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "required hours cannot be negative")
	}
	if len(activities) > domain.MaxRequiredActivities {
		return nil, dErrors.New(dErrors.CodeValidation, "required activities list exceeds 10 entries")
	}
	return &Requirement{
		Type:               certType,
		RequiredHours:      hours,
		RequiredActivities: append([]domain.ActivityRef(nil), activities...),
		ValidityDays:       validityDays,
	}, nil
}
