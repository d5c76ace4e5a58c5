// Package handler exposes the certification lifecycle over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"attest/internal/certification/models"
	"attest/internal/certification/service"
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
	"attest/pkg/platform/httputil"
	"attest/pkg/requestcontext"
)

// Service defines the lifecycle operations the handler exposes.
type Service interface {
	Issue(ctx context.Context, req service.IssueRequest) (models.CertificationRecord, error)
	Renew(ctx context.Context, req service.RenewRequest) (models.CertificationRecord, error)
	Revoke(ctx context.Context, req service.RevokeRequest) error
	MarkExpired(ctx context.Context, req service.ExpireRequest) (models.CertificationRecord, error)
	Verify(ctx context.Context, id domain.CertificationID) (service.VerifyResult, error)
	Get(ctx context.Context, id domain.CertificationID) (models.CertificationRecord, error)
	RevocationEntry(ctx context.Context, id domain.CertificationID) (models.RevocationEntry, error)
	IssuedTotal(ctx context.Context) (uint64, error)
}

// Handler wires certification endpoints to the lifecycle service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a certification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts certification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/certifications", func(r chi.Router) {
		r.Post("/", h.HandleIssue)
		r.Get("/stats", h.HandleStats)
		r.Route("/{certificationID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Get("/verify", h.HandleVerify)
			r.Get("/revocation", h.HandleRevocationEntry)
			r.Post("/renew", h.HandleRenew)
			r.Post("/revoke", h.HandleRevoke)
			r.Post("/expire", h.HandleMarkExpired)
		})
	})
}

func certificationID(r *http.Request) (domain.CertificationID, error) {
	return domain.ParseCertificationID(chi.URLParam(r, "certificationID"))
}

// HandleIssue handles POST /certifications requests.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	caller := requestcontext.ActorID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[IssueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Issue(ctx, service.IssueRequest{
		Caller:   caller,
		Teacher:  req.ParsedTeacher(),
		Type:     req.ParsedType(),
		Evidence: req.ParsedEvidence(),
		Metadata: req.Metadata,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "certification issuance failed",
			"request_id", requestID,
			"teacher_id", req.TeacherID,
			"certification_type", req.Type,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "certification issued",
		"request_id", requestID,
		"certification_id", rec.ID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromRecord(rec))
}

// HandleRenew handles POST /certifications/{certificationID}/renew requests.
func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller := requestcontext.ActorID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := certificationID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[RenewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Renew(ctx, service.RenewRequest{
		Caller:             caller,
		ID:                 id,
		AdditionalEvidence: req.ParsedEvidence(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "certification renewal failed",
			"request_id", requestID,
			"certification_id", id.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleRevoke handles POST /certifications/{certificationID}/revoke requests.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller := requestcontext.ActorID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := certificationID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[RevokeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Revoke(ctx, service.RevokeRequest{
		Caller: caller,
		ID:     id,
		Reason: req.Reason,
	}); err != nil {
		h.logger.ErrorContext(ctx, "certification revocation failed",
			"request_id", requestID,
			"certification_id", id.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMarkExpired handles POST /certifications/{certificationID}/expire
// requests.
func (h *Handler) HandleMarkExpired(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller := requestcontext.ActorID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := certificationID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.service.MarkExpired(ctx, service.ExpireRequest{Caller: caller, ID: id})
	if err != nil {
		h.logger.ErrorContext(ctx, "certification expiration failed",
			"request_id", requestID,
			"certification_id", id.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleVerify handles GET /certifications/{certificationID}/verify requests.
// Verification is open: downstream consumers need no credential.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := certificationID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Verify(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromVerifyResult(result))
}

// HandleGet handles GET /certifications/{certificationID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := certificationID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleRevocationEntry handles GET
// /certifications/{certificationID}/revocation requests.
func (h *Handler) HandleRevocationEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := certificationID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, err := h.service.RevocationEntry(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRevocation(entry))
}

// HandleStats handles GET /certifications/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.IssuedTotal(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatsResponse{IssuedTotal: total})
}
