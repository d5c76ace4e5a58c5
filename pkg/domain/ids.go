// Package domain holds the identity primitives shared across the
// certification registry. Construct values via the Parse functions at trust
// boundaries; direct casting bypasses validation.
package domain

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	dErrors "attest/pkg/domain-errors"
)

// Bounds enforced at issuance/renewal time, never retroactively.
const (
	MaxCertificationTypeLen = 50
	MaxMetadataLen          = 500
	MaxEvidenceEntries      = 20
	MaxRequiredActivities   = 10
	MaxReasonLen            = 200
)

// TeacherID identifies the subject holding or seeking a certification.
type TeacherID uuid.UUID

// ParseTeacherID constructs a TeacherID from external input.
//
// Errors: returns CodeInvalidTeacher when the value is empty or not a valid
// UUID; no other errors are expected.
func ParseTeacherID(s string) (TeacherID, error) {
	if s == "" {
		return TeacherID{}, dErrors.New(dErrors.CodeInvalidTeacher, "teacher id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return TeacherID{}, dErrors.New(dErrors.CodeInvalidTeacher, "teacher id must be a valid UUID")
	}
	if u == uuid.Nil {
		return TeacherID{}, dErrors.New(dErrors.CodeInvalidTeacher, "teacher id cannot be the nil UUID")
	}
	return TeacherID(u), nil
}

func (t TeacherID) String() string {
	return uuid.UUID(t).String()
}

func (t TeacherID) IsNil() bool {
	return uuid.UUID(t) == uuid.Nil
}

// ActorID identifies a caller of mutating operations (admins, verifiers).
// Caller authentication itself belongs to the hosting platform; this core
// only consumes the resolved identity.
type ActorID uuid.UUID

func ParseActorID(s string) (ActorID, error) {
	u, err := uuid.Parse(s)
	if err != nil || u == uuid.Nil {
		return ActorID{}, dErrors.New(dErrors.CodeUnauthorized, "actor id must be a valid UUID")
	}
	return ActorID(u), nil
}

func (a ActorID) String() string {
	return uuid.UUID(a).String()
}

func (a ActorID) IsNil() bool {
	return uuid.UUID(a) == uuid.Nil
}

// CertificationType names a credential class with its own requirement
// configuration.
type CertificationType string

// ParseCertificationType constructs a CertificationType from external input.
//
// Errors: returns CodeInvalidType when the value is empty or longer than
// MaxCertificationTypeLen.
func ParseCertificationType(s string) (CertificationType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidType, "certification type cannot be empty")
	}
	if len(s) > MaxCertificationTypeLen {
		return "", dErrors.New(dErrors.CodeInvalidType, "certification type must be 50 characters or less")
	}
	return CertificationType(s), nil
}

func (t CertificationType) String() string {
	return string(t)
}

// ActivityRef references a completed prerequisite activity in the
// continuing-education log. The log itself is an external collaborator; the
// registry only stores the references.
type ActivityRef string

// CertificationID is the stable identity of a certification record, derived
// deterministically from (teacher, type). The same pair always derives the
// same id, so there is never more than one stored record per pair.
type CertificationID string

// DeriveCertificationID hashes the structured (teacher, type) pair. Hashing
// removes the lexical ambiguity naive string concatenation would have when a
// component contains the separator.
func DeriveCertificationID(teacher TeacherID, certType CertificationType) CertificationID {
	h := sha256.New()
	h.Write([]byte(teacher.String()))
	h.Write([]byte{0})
	h.Write([]byte(certType))
	return CertificationID(hex.EncodeToString(h.Sum(nil)))
}

// ParseCertificationID validates an id received from a caller. Derived ids
// are 64 lowercase hex characters.
func ParseCertificationID(s string) (CertificationID, error) {
	if len(s) != sha256.Size*2 {
		return "", dErrors.New(dErrors.CodeNotFound, "malformed certification id")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", dErrors.New(dErrors.CodeNotFound, "malformed certification id")
	}
	return CertificationID(s), nil
}

func (c CertificationID) String() string {
	return string(c)
}
