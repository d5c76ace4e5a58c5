package models

import (
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
)

// RevocationEntry is the audit record written as a side effect of
// revocation, keyed by the same identity as its certification record. It is
// write-once per revocation event and never mutated afterward; the
// InvalidStatus guard on revoke means a record is revoked at most once in
// correct operation.
type RevocationEntry struct {
	CertificationID domain.CertificationID `json:"certification_id"`
	Reason          string                 `json:"reason"`
	RevokedAt       domain.Height          `json:"revoked_at"`
}

// NewRevocationEntry constructs an entry, enforcing the reason bound.
func NewRevocationEntry(id domain.CertificationID, reason string, revokedAt domain.Height) (*RevocationEntry, error) {
	if len(reason) > domain.MaxReasonLen {
		return nil, dErrors.New(dErrors.CodeValidation, "revocation reason must be 200 characters or less")
	}
	return &RevocationEntry{
		CertificationID: id,
		Reason:          reason,
		RevokedAt:       revokedAt,
	}, nil
}
