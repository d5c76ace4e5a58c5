package models

import (
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
)

// CertificationRecord is the aggregate root for one teacher's standing in
// one certification type.
//
// Invariants:
//   - ID is derived from (Teacher, Type) and never changes
//   - Metadata is at most 500 characters, checked at first issuance only
//   - Evidence holds at most 20 entries, checked whenever it grows
//   - RenewalCount is 0 at issuance and increases by exactly 1 per
//     successful renewal or re-issuance
//   - Status transitions: Active ← issue; Active → Expired only through the
//     explicit expiration operation; Expired → Active via renew; any
//     non-revoked state → Revoked via revoke
//
// Records are created by issuance, mutated in place by renewal and
// revocation, and never deleted.
type CertificationRecord struct {
	ID             domain.CertificationID   `json:"id"`
	Teacher        domain.TeacherID         `json:"teacher_id"`
	Type           domain.CertificationType `json:"certification_type"`
	IssueDate      domain.Height            `json:"issue_date"`
	ExpirationDate domain.Height            `json:"expiration_date"`
	Status         Status                   `json:"status"`
	Evidence       []domain.ActivityRef     `json:"evidence"`
	Metadata       string                   `json:"metadata"`
	RenewalCount   int                      `json:"renewal_count"`
}

// NewCertificationRecord constructs a first-time record in Active status.
func NewCertificationRecord(
	teacher domain.TeacherID,
	certType domain.CertificationType,
	evidence []domain.ActivityRef,
	metadata string,
	issuedAt domain.Height,
	expiresAt domain.Height,
) (*CertificationRecord, error) {
	if len(metadata) > domain.MaxMetadataLen {
		return nil, dErrors.New(dErrors.CodeMetadataTooLong, "metadata must be 500 characters or less")
	}
	if len(evidence) > domain.MaxEvidenceEntries {
		return nil, dErrors.New(dErrors.CodeValidation, "evidence list exceeds 20 entries")
	}
	return &CertificationRecord{
		ID:             domain.DeriveCertificationID(teacher, certType),
		Teacher:        teacher,
		Type:           certType,
		IssueDate:      issuedAt,
		ExpirationDate: expiresAt,
		Status:         StatusActive,
		Evidence:       append([]domain.ActivityRef(nil), evidence...),
		Metadata:       metadata,
		RenewalCount:   0,
	}, nil
}

func (r *CertificationRecord) IsActive() bool {
	return r.Status == StatusActive
}

// IsValidAt reports whether the record verifies as currently valid: stored
// status Active and expiration strictly in the future. This is the only
// place elapsed time is consulted directly.
func (r *CertificationRecord) IsValidAt(now domain.Height) bool {
	return r.Status == StatusActive && r.ExpirationDate.After(now)
}

// CanReissue checks whether a fresh issuance may overwrite this record.
// Only non-Active records accept re-issuance.
func (r *CertificationRecord) CanReissue() error {
	if r.Status == StatusActive {
		return dErrors.New(dErrors.CodeAlreadyCertified, "certification is already active")
	}
	return nil
}

// ApplyReissue overwrites the record in place after a successful re-issuance
// check: new issue and expiration dates, Active status, evidence
// concatenated, renewal count incremented. Metadata from the original
// issuance is kept.
func (r *CertificationRecord) ApplyReissue(evidence []domain.ActivityRef, issuedAt, expiresAt domain.Height) error {
	return r.reactivate(evidence, issuedAt, expiresAt)
}

// CanRenew checks eligibility for renewal. Renewal trusts the stored status
// flag alone: a record whose expiration height has passed but still reads
// Active is not renewable until it is explicitly marked expired.
func (r *CertificationRecord) CanRenew() error {
	if r.Status != StatusExpired {
		return dErrors.New(dErrors.CodeNotExpired, "certification is not expired")
	}
	return nil
}

// ApplyRenewal overwrites dates and status as in issuance, appends the
// additional evidence, and increments the renewal count.
func (r *CertificationRecord) ApplyRenewal(additional []domain.ActivityRef, issuedAt, expiresAt domain.Height) error {
	return r.reactivate(additional, issuedAt, expiresAt)
}

func (r *CertificationRecord) reactivate(evidence []domain.ActivityRef, issuedAt, expiresAt domain.Height) error {
	if len(r.Evidence)+len(evidence) > domain.MaxEvidenceEntries {
		return dErrors.New(dErrors.CodeValidation, "evidence list exceeds 20 entries")
	}
	r.Evidence = append(r.Evidence, evidence...)
	r.IssueDate = issuedAt
	r.ExpirationDate = expiresAt
	r.Status = StatusActive
	r.RenewalCount++
	return nil
}

// CanRevoke checks whether the record may be revoked. Revocation is not
// idempotent: a second attempt fails rather than no-op-succeeding.
func (r *CertificationRecord) CanRevoke() error {
	if r.Status == StatusRevoked {
		return dErrors.New(dErrors.CodeInvalidStatus, "certification is already revoked")
	}
	return nil
}

// ApplyRevocation flips the status. The matching audit entry is written by
// the revocation log, not here.
func (r *CertificationRecord) ApplyRevocation() {
	r.Status = StatusRevoked
}

// CanMarkExpired checks whether the record may transition Active → Expired.
// The transition requires the current height to be past the stored
// expiration; marking a still-valid record fails NotExpired.
func (r *CertificationRecord) CanMarkExpired(now domain.Height) error {
	if r.Status != StatusActive {
		return dErrors.New(dErrors.CodeInvalidStatus, "only active certifications can expire")
	}
	if !now.After(r.ExpirationDate) {
		return dErrors.New(dErrors.CodeNotExpired, "certification has not reached its expiration height")
	}
	return nil
}

// ApplyExpiration transitions the record to Expired.
func (r *CertificationRecord) ApplyExpiration() {
	r.Status = StatusExpired
}

// Clone returns a deep copy so stores never leak their internal record.
func (r CertificationRecord) Clone() CertificationRecord {
	r.Evidence = append([]domain.ActivityRef(nil), r.Evidence...)
	return r
}
