package handler

import (
	"attest/internal/certification/models"
	"attest/internal/certification/service"
)

// RecordResponse is the HTTP shape of a certification record.
type RecordResponse struct {
	CertificationID string   `json:"certification_id"`
	TeacherID       string   `json:"teacher_id"`
	Type            string   `json:"certification_type"`
	Status          string   `json:"status"`
	IssueDate       uint64   `json:"issue_date"`
	ExpirationDate  uint64   `json:"expiration_date"`
	Evidence        []string `json:"evidence"`
	Metadata        string   `json:"metadata,omitempty"`
	RenewalCount    int      `json:"renewal_count"`
}

// FromRecord converts a domain record to its HTTP response.
func FromRecord(rec models.CertificationRecord) *RecordResponse {
	evidence := make([]string, 0, len(rec.Evidence))
	for _, ref := range rec.Evidence {
		evidence = append(evidence, string(ref))
	}
	return &RecordResponse{
		CertificationID: rec.ID.String(),
		TeacherID:       rec.Teacher.String(),
		Type:            rec.Type.String(),
		Status:          rec.Status.String(),
		IssueDate:       uint64(rec.IssueDate),
		ExpirationDate:  uint64(rec.ExpirationDate),
		Evidence:        evidence,
		Metadata:        rec.Metadata,
		RenewalCount:    rec.RenewalCount,
	}
}

// VerifyResponse is the HTTP response for GET /certifications/{id}/verify.
type VerifyResponse struct {
	CertificationID string `json:"certification_id"`
	Valid           bool   `json:"valid"`
	Status          string `json:"status"`
	ExpirationDate  uint64 `json:"expiration_date"`
}

// FromVerifyResult converts a verification verdict to its HTTP response.
func FromVerifyResult(result service.VerifyResult) *VerifyResponse {
	return &VerifyResponse{
		CertificationID: result.CertificationID.String(),
		Valid:           result.Valid,
		Status:          result.Status.String(),
		ExpirationDate:  uint64(result.ExpirationDate),
	}
}

// RevocationResponse is the HTTP shape of a revocation log entry.
type RevocationResponse struct {
	CertificationID string `json:"certification_id"`
	Reason          string `json:"reason"`
	RevokedAt       uint64 `json:"revoked_at"`
}

// FromRevocation converts a revocation entry to its HTTP response.
func FromRevocation(entry models.RevocationEntry) *RevocationResponse {
	return &RevocationResponse{
		CertificationID: entry.CertificationID.String(),
		Reason:          entry.Reason,
		RevokedAt:       uint64(entry.RevokedAt),
	}
}

// StatsResponse is the HTTP response for GET /certifications/stats.
type StatsResponse struct {
	IssuedTotal uint64 `json:"issued_total"`
}
