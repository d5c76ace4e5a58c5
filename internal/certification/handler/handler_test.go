package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"attest/internal/authz"
	"attest/internal/certification/service"
	"attest/internal/certification/store/ledger"
	revocationStore "attest/internal/certification/store/revocation"
	"attest/internal/clock"
	"attest/internal/pause"
	"attest/internal/platform/middleware"
	"attest/internal/requirements"
	"attest/internal/token"
	"attest/internal/validator"
	"attest/pkg/domain"
)

type fixture struct {
	router        http.Handler
	clock         *clock.Manual
	adminToken    string
	verifierToken string
	strangerToken string
	teacher       domain.TeacherID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	admin := domain.ActorID(uuid.New())
	verifier := domain.ActorID(uuid.New())
	stranger := domain.ActorID(uuid.New())

	registry := authz.NewRegistry(authz.NewInMemoryStore(), admin)
	if err := registry.Seed(ctx); err != nil {
		t.Fatalf("failed to seed registry: %v", err)
	}
	if err := registry.AddVerifier(ctx, admin, verifier); err != nil {
		t.Fatalf("failed to add verifier: %v", err)
	}

	pauses := pause.NewSwitch(pause.NewInMemoryStore(), registry)
	catalog := requirements.NewCatalog(requirements.NewInMemoryStore(), registry)
	if _, err := catalog.Set(ctx, requirements.SetRequest{
		Caller:       admin,
		Type:         domain.CertificationType("basic-teaching"),
		Hours:        40,
		Activities:   []domain.ActivityRef{"pedagogy-101"},
		ValidityDays: 365,
	}); err != nil {
		t.Fatalf("failed to configure requirements: %v", err)
	}

	clk := clock.NewManual(5000)
	svc, err := service.New(
		ledger.NewInMemoryStore(),
		revocationStore.NewInMemoryStore(),
		registry,
		pauses,
		catalog,
		validator.NewPolicy(),
		clk,
		10,
	)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	tokens := token.NewService("test-signing-key", "attest-test", "attest-test")
	mint := func(actor domain.ActorID) string {
		tok, err := tokens.GenerateActorToken(actor, time.Hour)
		if err != nil {
			t.Fatalf("failed to mint token: %v", err)
		}
		return tok
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(token.NewServiceAdapter(tokens), logger))
		New(svc, logger).Register(r)
	})
	// Verification stays open for downstream consumers.
	open := New(svc, logger)
	r.Get("/public/certifications/{certificationID}/verify", open.HandleVerify)

	return &fixture{
		router:        r,
		clock:         clk,
		adminToken:    mint(admin),
		verifierToken: mint(verifier),
		strangerToken: mint(stranger),
		teacher:       domain.TeacherID(uuid.New()),
	}
}

func (f *fixture) do(t *testing.T, method, path, tok string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) issue(t *testing.T) RecordResponse {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/certifications", f.verifierToken, map[string]any{
		"teacher_id":         f.teacher.String(),
		"certification_type": "basic-teaching",
		"evidence":           []string{"pedagogy-101"},
		"metadata":           "cohort 2026",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 issuing certification, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp RecordResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode issue response: %v", err)
	}
	return resp
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/certifications", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestIssueAndVerify(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t)

	if issued.Status != "active" {
		t.Fatalf("expected active status, got %q", issued.Status)
	}
	if issued.RenewalCount != 0 {
		t.Fatalf("expected renewal_count 0, got %d", issued.RenewalCount)
	}
	if issued.ExpirationDate != issued.IssueDate+365*10 {
		t.Fatalf("unexpected expiration_date %d", issued.ExpirationDate)
	}

	// Verification needs no credential.
	rec := f.do(t, http.MethodGet, "/public/certifications/"+issued.CertificationID+"/verify", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 verifying, got %d: %s", rec.Code, rec.Body.String())
	}
	var verify VerifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&verify); err != nil {
		t.Fatalf("failed to decode verify response: %v", err)
	}
	if !verify.Valid {
		t.Fatalf("expected valid credential")
	}
}

func TestIssueRejectsUnknownCaller(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/certifications", f.strangerToken, map[string]any{
		"teacher_id":         f.teacher.String(),
		"certification_type": "basic-teaching",
		"evidence":           []string{"pedagogy-101"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for role-less caller, got %d", rec.Code)
	}
}

func TestIssueRejectsMalformedBody(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/certifications", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Authorization", "Bearer "+f.verifierToken)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestSecondIssuanceConflicts(t *testing.T) {
	f := newFixture(t)
	f.issue(t)

	rec := f.do(t, http.MethodPost, "/certifications", f.verifierToken, map[string]any{
		"teacher_id":         f.teacher.String(),
		"certification_type": "basic-teaching",
		"evidence":           []string{"pedagogy-101"},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 re-issuing over active record, got %d", rec.Code)
	}
}

func TestRevokeFlow(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t)

	// Verifiers cannot revoke.
	rec := f.do(t, http.MethodPost, "/certifications/"+issued.CertificationID+"/revoke", f.verifierToken,
		map[string]string{"reason": "fraud"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for verifier revocation, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/certifications/"+issued.CertificationID+"/revoke", f.adminToken,
		map[string]string{"reason": "credential fraud"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 revoking, got %d: %s", rec.Code, rec.Body.String())
	}

	// The revocation log records the reason.
	rec = f.do(t, http.MethodGet, "/certifications/"+issued.CertificationID+"/revocation", f.adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching revocation entry, got %d", rec.Code)
	}
	var entry RevocationResponse
	if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
		t.Fatalf("failed to decode revocation response: %v", err)
	}
	if entry.Reason != "credential fraud" {
		t.Fatalf("expected recorded reason, got %q", entry.Reason)
	}

	// A revoked credential no longer verifies.
	rec = f.do(t, http.MethodGet, "/public/certifications/"+issued.CertificationID+"/verify", "", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 verifying revoked credential, got %d", rec.Code)
	}
}

func TestExpireAndRenewFlow(t *testing.T) {
	f := newFixture(t)
	issued := f.issue(t)

	f.clock.Set(domain.Height(issued.ExpirationDate) + 1)

	rec := f.do(t, http.MethodPost, "/certifications/"+issued.CertificationID+"/expire", f.verifierToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 expiring, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPost, "/certifications/"+issued.CertificationID+"/renew", f.verifierToken,
		map[string]any{"additional_evidence": []string{"refresher"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 renewing, got %d: %s", rec.Code, rec.Body.String())
	}
	var renewed RecordResponse
	if err := json.NewDecoder(rec.Body).Decode(&renewed); err != nil {
		t.Fatalf("failed to decode renew response: %v", err)
	}
	if renewed.RenewalCount != 1 {
		t.Fatalf("expected renewal_count 1, got %d", renewed.RenewalCount)
	}
	if len(renewed.Evidence) != 2 {
		t.Fatalf("expected concatenated evidence, got %v", renewed.Evidence)
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/certifications/not-a-real-id", f.adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.issue(t)

	rec := f.do(t, http.MethodGet, "/certifications/stats", f.adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching stats, got %d", rec.Code)
	}
	var stats StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats response: %v", err)
	}
	if stats.IssuedTotal != 1 {
		t.Fatalf("expected issued_total 1, got %d", stats.IssuedTotal)
	}
}
