// Package admin exposes the registry's administrative surface over HTTP:
// role membership, the pause switch, and the requirement catalog.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"attest/internal/requirements"
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
	"attest/pkg/platform/httputil"
	"attest/pkg/requestcontext"
)

// RoleRegistry defines the role-membership mutations the handler exposes.
type RoleRegistry interface {
	AddAdmin(ctx context.Context, caller, target domain.ActorID) error
	RemoveAdmin(ctx context.Context, caller, target domain.ActorID) error
	AddVerifier(ctx context.Context, caller, target domain.ActorID) error
	RemoveVerifier(ctx context.Context, caller, target domain.ActorID) error
}

// PauseSwitch defines the pause flag operations the handler exposes.
type PauseSwitch interface {
	Pause(ctx context.Context, caller domain.ActorID) error
	Unpause(ctx context.Context, caller domain.ActorID) error
	Paused(ctx context.Context) (bool, error)
}

// RequirementCatalog defines the catalog operations the handler exposes.
type RequirementCatalog interface {
	Set(ctx context.Context, req requirements.SetRequest) (*requirements.Requirement, error)
	Get(ctx context.Context, certType domain.CertificationType) (requirements.Requirement, error)
}

// Handler wires the administrative endpoints.
type Handler struct {
	roles   RoleRegistry
	pauses  PauseSwitch
	catalog RequirementCatalog
	logger  *slog.Logger
}

// New constructs an admin handler with its dependencies.
func New(roles RoleRegistry, pauses PauseSwitch, catalog RequirementCatalog, logger *slog.Logger) *Handler {
	return &Handler{roles: roles, pauses: pauses, catalog: catalog, logger: logger}
}

// Register mounts the administrative endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/roles/{role}", h.HandleGrantRole)
		r.Delete("/roles/{role}", h.HandleRevokeRole)
		r.Post("/pause", h.HandlePause)
		r.Delete("/pause", h.HandleUnpause)
		r.Get("/pause", h.HandlePauseStatus)
		r.Put("/requirements/{certificationType}", h.HandleSetRequirements)
	})
}

func caller(w http.ResponseWriter, r *http.Request) (domain.ActorID, bool) {
	actor := requestcontext.ActorID(r.Context())
	if actor.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return domain.ActorID{}, false
	}
	return actor, true
}

// RoleRequest is the HTTP request body for role grant/revoke.
type RoleRequest struct {
	ActorID string `json:"actor_id"`

	parsedTarget domain.ActorID
}

func (r *RoleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	target, err := domain.ParseActorID(strings.TrimSpace(r.ActorID))
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "actor_id must be a valid UUID")
	}
	r.parsedTarget = target
	return nil
}

// HandleGrantRole handles POST /admin/roles/{role} requests.
func (h *Handler) HandleGrantRole(w http.ResponseWriter, r *http.Request) {
	h.mutateRole(w, r, true)
}

// HandleRevokeRole handles DELETE /admin/roles/{role} requests.
func (h *Handler) HandleRevokeRole(w http.ResponseWriter, r *http.Request) {
	h.mutateRole(w, r, false)
}

func (h *Handler) mutateRole(w http.ResponseWriter, r *http.Request, grant bool) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actor, ok := caller(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[RoleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var err error
	switch role := chi.URLParam(r, "role"); role {
	case "admin":
		if grant {
			err = h.roles.AddAdmin(ctx, actor, req.parsedTarget)
		} else {
			err = h.roles.RemoveAdmin(ctx, actor, req.parsedTarget)
		}
	case "verifier":
		if grant {
			err = h.roles.AddVerifier(ctx, actor, req.parsedTarget)
		} else {
			err = h.roles.RemoveVerifier(ctx, actor, req.parsedTarget)
		}
	default:
		err = dErrors.New(dErrors.CodeBadRequest, "unknown role")
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "role mutation failed",
			"request_id", requestID,
			"grant", grant,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePause handles POST /admin/pause requests.
func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.pauses.Pause(r.Context(), actor); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnpause handles DELETE /admin/pause requests.
func (h *Handler) HandleUnpause(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.pauses.Unpause(r.Context(), actor); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PauseStatusResponse is the HTTP response for GET /admin/pause.
type PauseStatusResponse struct {
	Paused bool `json:"paused"`
}

// HandlePauseStatus handles GET /admin/pause requests.
func (h *Handler) HandlePauseStatus(w http.ResponseWriter, r *http.Request) {
	paused, err := h.pauses.Paused(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PauseStatusResponse{Paused: paused})
}

// RequirementsRequest is the HTTP request body for PUT
// /admin/requirements/{certificationType}.
type RequirementsRequest struct {
	RequiredHours      int      `json:"required_hours"`
	RequiredActivities []string `json:"required_activities"`
	ValidityDays       int      `json:"validity_days"`
}

func (r *RequirementsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.RequiredActivities) > domain.MaxRequiredActivities {
		return dErrors.New(dErrors.CodeValidation, "required activities list exceeds 10 entries")
	}
	return nil
}

// HandleSetRequirements handles PUT /admin/requirements/{certificationType}
// requests. The record for the type is replaced whole.
func (h *Handler) HandleSetRequirements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actor, ok := caller(w, r)
	if !ok {
		return
	}

	certType, err := domain.ParseCertificationType(chi.URLParam(r, "certificationType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[RequirementsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	activities := make([]domain.ActivityRef, 0, len(req.RequiredActivities))
	for _, a := range req.RequiredActivities {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			activities = append(activities, domain.ActivityRef(trimmed))
		}
	}

	record, err := h.catalog.Set(ctx, requirements.SetRequest{
		Caller:       actor,
		Type:         certType,
		Hours:        req.RequiredHours,
		Activities:   activities,
		ValidityDays: req.ValidityDays,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "requirement update failed",
			"request_id", requestID,
			"certification_type", certType.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleGetRequirements handles GET /requirements/{certificationType}
// requests. Reads are open.
func (h *Handler) HandleGetRequirements(w http.ResponseWriter, r *http.Request) {
	certType, err := domain.ParseCertificationType(chi.URLParam(r, "certificationType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.catalog.Get(r.Context(), certType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}
