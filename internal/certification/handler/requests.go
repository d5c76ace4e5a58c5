package handler

import (
	"strings"

	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
)

// IssueRequest is the HTTP request body for POST /certifications.
type IssueRequest struct {
	TeacherID string   `json:"teacher_id"`
	Type      string   `json:"certification_type"`
	Evidence  []string `json:"evidence"`
	Metadata  string   `json:"metadata"`

	// Parsed values (populated by Validate)
	parsedTeacher  domain.TeacherID
	parsedType     domain.CertificationType
	parsedEvidence []domain.ActivityRef
}

// Validate validates and parses the request.
func (r *IssueRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	teacher, err := domain.ParseTeacherID(strings.TrimSpace(r.TeacherID))
	if err != nil {
		return err
	}
	r.parsedTeacher = teacher

	certType, err := domain.ParseCertificationType(strings.TrimSpace(r.Type))
	if err != nil {
		return err
	}
	r.parsedType = certType

	if len(r.Evidence) > domain.MaxEvidenceEntries {
		return dErrors.New(dErrors.CodeValidation, "evidence list exceeds 20 entries")
	}
	r.parsedEvidence = parseEvidence(r.Evidence)

	if len(r.Metadata) > domain.MaxMetadataLen {
		return dErrors.New(dErrors.CodeMetadataTooLong, "metadata must be 500 characters or less")
	}
	return nil
}

func (r *IssueRequest) ParsedTeacher() domain.TeacherID      { return r.parsedTeacher }
func (r *IssueRequest) ParsedType() domain.CertificationType { return r.parsedType }
func (r *IssueRequest) ParsedEvidence() []domain.ActivityRef { return r.parsedEvidence }

// RenewRequest is the HTTP request body for POST /certifications/{id}/renew.
type RenewRequest struct {
	AdditionalEvidence []string `json:"additional_evidence"`

	parsedEvidence []domain.ActivityRef
}

func (r *RenewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.AdditionalEvidence) > domain.MaxEvidenceEntries {
		return dErrors.New(dErrors.CodeValidation, "evidence list exceeds 20 entries")
	}
	r.parsedEvidence = parseEvidence(r.AdditionalEvidence)
	return nil
}

func (r *RenewRequest) ParsedEvidence() []domain.ActivityRef { return r.parsedEvidence }

// RevokeRequest is the HTTP request body for POST /certifications/{id}/revoke.
type RevokeRequest struct {
	Reason string `json:"reason"`
}

func (r *RevokeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if len(r.Reason) > domain.MaxReasonLen {
		return dErrors.New(dErrors.CodeValidation, "revocation reason must be 200 characters or less")
	}
	return nil
}

func parseEvidence(refs []string) []domain.ActivityRef {
	out := make([]domain.ActivityRef, 0, len(refs))
	for _, ref := range refs {
		if trimmed := strings.TrimSpace(ref); trimmed != "" {
			out = append(out, domain.ActivityRef(trimmed))
		}
	}
	return out
}
