package service

import (
	"context"
	"errors"
	"time"

	"attest/internal/certification/models"
	"attest/internal/certification/store/verifycache"
	"attest/pkg/domain"
	dErrors "attest/pkg/domain-errors"
	"attest/pkg/platform/sentinel"
)

// IssueRequest carries the inputs for first-time issuance or re-issuance
// over a non-active record.
type IssueRequest struct {
	Caller   domain.ActorID
	Teacher  domain.TeacherID
	Type     domain.CertificationType
	Evidence []domain.ActivityRef
	Metadata string
}

// Issue creates a certification for (teacher, type), or re-activates an
// existing non-active record. An existing Active record fails
// AlreadyCertified with no field changed.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (models.CertificationRecord, error) {
	ctx, span := s.tracer.Start(ctx, "certification.Issue")
	defer span.End()

	if err := s.requireNotPaused(ctx); err != nil {
		return models.CertificationRecord{}, err
	}
	if err := s.requireIssuerRole(ctx, req.Caller); err != nil {
		return models.CertificationRecord{}, err
	}
	if req.Teacher.IsNil() {
		return models.CertificationRecord{}, dErrors.New(dErrors.CodeInvalidTeacher, "teacher id is required")
	}

	requirement, err := s.requirements.Get(ctx, req.Type)
	if err != nil {
		return models.CertificationRecord{}, err
	}

	id := domain.DeriveCertificationID(req.Teacher, req.Type)
	now := s.clock.Now()
	expiresAt := now.AddDays(requirement.ValidityDays, s.heightsPerDay)

	var record models.CertificationRecord
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		record, err = s.ledger.Mutate(txCtx, id, func(existing *models.CertificationRecord) (models.CertificationRecord, error) {
			if existing == nil {
				if len(req.Metadata) > domain.MaxMetadataLen {
					return models.CertificationRecord{}, dErrors.New(dErrors.CodeMetadataTooLong, "metadata must be 500 characters or less")
				}
				if !s.validator.SatisfiesIssuance(req.Evidence, requirement) {
					return models.CertificationRecord{}, dErrors.New(dErrors.CodeRequirementsNotMet, "submitted evidence does not satisfy the requirements")
				}
				fresh, err := models.NewCertificationRecord(req.Teacher, req.Type, req.Evidence, req.Metadata, now, expiresAt)
				if err != nil {
					return models.CertificationRecord{}, err
				}
				return *fresh, nil
			}

			if err := existing.CanReissue(); err != nil {
				return models.CertificationRecord{}, err
			}
			if !s.validator.SatisfiesIssuance(req.Evidence, requirement) {
				return models.CertificationRecord{}, dErrors.New(dErrors.CodeRequirementsNotMet, "submitted evidence does not satisfy the requirements")
			}
			if err := existing.ApplyReissue(req.Evidence, now, expiresAt); err != nil {
				return models.CertificationRecord{}, err
			}
			return *existing, nil
		})
		return err
	})
	if err != nil {
		return models.CertificationRecord{}, err
	}

	s.invalidateCache(ctx, id)
	if s.audit != nil {
		s.audit.CertificationIssued(ctx, req.Caller, id, req.Teacher, req.Type, now)
	}
	if s.metrics != nil {
		s.metrics.Issued.Inc()
	}
	s.logger.InfoContext(ctx, "certification issued",
		"certification_id", id.String(),
		"teacher_id", req.Teacher.String(),
		"certification_type", req.Type.String(),
		"renewal_count", record.RenewalCount,
		"expires_at_height", uint64(record.ExpirationDate),
	)
	return record, nil
}

// RenewRequest carries the inputs for renewing an expired certification.
type RenewRequest struct {
	Caller             domain.ActorID
	ID                 domain.CertificationID
	AdditionalEvidence []domain.ActivityRef
}

// Renew re-activates a record whose stored status reads Expired. The stored
// flag alone decides eligibility; elapsed time is not consulted here.
func (s *Service) Renew(ctx context.Context, req RenewRequest) (models.CertificationRecord, error) {
	ctx, span := s.tracer.Start(ctx, "certification.Renew")
	defer span.End()

	if err := s.requireNotPaused(ctx); err != nil {
		return models.CertificationRecord{}, err
	}
	if err := s.requireIssuerRole(ctx, req.Caller); err != nil {
		return models.CertificationRecord{}, err
	}

	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return models.CertificationRecord{}, err
	}
	requirement, err := s.requirements.Get(ctx, current.Type)
	if err != nil {
		return models.CertificationRecord{}, err
	}

	now := s.clock.Now()
	expiresAt := now.AddDays(requirement.ValidityDays, s.heightsPerDay)

	var record models.CertificationRecord
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		record, err = s.ledger.Mutate(txCtx, req.ID, func(existing *models.CertificationRecord) (models.CertificationRecord, error) {
			if existing == nil {
				return models.CertificationRecord{}, dErrors.New(dErrors.CodeNotFound, "certification not found")
			}
			if err := existing.CanRenew(); err != nil {
				return models.CertificationRecord{}, err
			}
			if !s.validator.SatisfiesRenewal(req.AdditionalEvidence, requirement) {
				return models.CertificationRecord{}, dErrors.New(dErrors.CodeRequirementsNotMet, "additional evidence does not satisfy the renewal policy")
			}
			if err := existing.ApplyRenewal(req.AdditionalEvidence, now, expiresAt); err != nil {
				return models.CertificationRecord{}, err
			}
			return *existing, nil
		})
		return err
	})
	if err != nil {
		return models.CertificationRecord{}, err
	}

	s.invalidateCache(ctx, req.ID)
	if s.audit != nil {
		s.audit.CertificationRenewed(ctx, req.Caller, req.ID, now)
	}
	if s.metrics != nil {
		s.metrics.Renewed.Inc()
	}
	s.logger.InfoContext(ctx, "certification renewed",
		"certification_id", req.ID.String(),
		"renewal_count", record.RenewalCount,
		"expires_at_height", uint64(record.ExpirationDate),
	)
	return record, nil
}

// RevokeRequest carries the inputs for revocation.
type RevokeRequest struct {
	Caller domain.ActorID
	ID     domain.CertificationID
	Reason string
}

// Revoke flips a record to Revoked and writes the revocation log entry in
// the same unit of work. Verifiers cannot revoke; only admins. A second
// revocation fails InvalidStatus, so the log keeps the first entry.
func (s *Service) Revoke(ctx context.Context, req RevokeRequest) error {
	ctx, span := s.tracer.Start(ctx, "certification.Revoke")
	defer span.End()

	if err := s.requireNotPaused(ctx); err != nil {
		return err
	}
	if err := s.requireAdmin(ctx, req.Caller); err != nil {
		return err
	}

	now := s.clock.Now()
	entry, err := models.NewRevocationEntry(req.ID, req.Reason, now)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.ledger.Mutate(txCtx, req.ID, func(existing *models.CertificationRecord) (models.CertificationRecord, error) {
			if existing == nil {
				return models.CertificationRecord{}, dErrors.New(dErrors.CodeNotFound, "certification not found")
			}
			if err := existing.CanRevoke(); err != nil {
				return models.CertificationRecord{}, err
			}
			existing.ApplyRevocation()
			return *existing, nil
		})
		if err != nil {
			return err
		}
		if err := s.revocations.Append(txCtx, *entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write revocation entry")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache(ctx, req.ID)
	if s.audit != nil {
		s.audit.CertificationRevoked(ctx, req.Caller, req.ID, req.Reason, now)
	}
	if s.metrics != nil {
		s.metrics.Revoked.Inc()
	}
	s.logger.InfoContext(ctx, "certification revoked",
		"certification_id", req.ID.String(),
		"actor_id", req.Caller.String(),
	)
	return nil
}

// ExpireRequest carries the inputs for the explicit Active → Expired
// transition.
type ExpireRequest struct {
	Caller domain.ActorID
	ID     domain.CertificationID
}

// MarkExpired transitions a record whose expiration height has passed from
// Active to Expired, making it eligible for renewal. Renewal never performs
// this transition itself.
func (s *Service) MarkExpired(ctx context.Context, req ExpireRequest) (models.CertificationRecord, error) {
	ctx, span := s.tracer.Start(ctx, "certification.MarkExpired")
	defer span.End()

	if err := s.requireNotPaused(ctx); err != nil {
		return models.CertificationRecord{}, err
	}
	if err := s.requireIssuerRole(ctx, req.Caller); err != nil {
		return models.CertificationRecord{}, err
	}

	now := s.clock.Now()

	var record models.CertificationRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		record, err = s.ledger.Mutate(txCtx, req.ID, func(existing *models.CertificationRecord) (models.CertificationRecord, error) {
			if existing == nil {
				return models.CertificationRecord{}, dErrors.New(dErrors.CodeNotFound, "certification not found")
			}
			if err := existing.CanMarkExpired(now); err != nil {
				return models.CertificationRecord{}, err
			}
			existing.ApplyExpiration()
			return *existing, nil
		})
		return err
	})
	if err != nil {
		return models.CertificationRecord{}, err
	}

	s.invalidateCache(ctx, req.ID)
	if s.audit != nil {
		s.audit.CertificationExpired(ctx, req.Caller, req.ID, now)
	}
	if s.metrics != nil {
		s.metrics.Expired.Inc()
	}
	s.logger.InfoContext(ctx, "certification expired",
		"certification_id", req.ID.String(),
	)
	return record, nil
}

// VerifyResult is returned for a currently valid credential.
type VerifyResult struct {
	CertificationID domain.CertificationID `json:"certification_id"`
	Valid           bool                   `json:"valid"`
	Status          models.Status          `json:"status"`
	ExpirationDate  domain.Height          `json:"expiration_date"`
}

// Verify is the read path downstream employers and regulators consume. A
// credential verifies iff its stored status is Active and its expiration
// height is strictly in the future. An existing-but-invalid credential is
// an explicit InvalidStatus failure, not a false result.
func (s *Service) Verify(ctx context.Context, id domain.CertificationID) (VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "certification.Verify")
	defer span.End()

	if s.metrics != nil {
		start := time.Now()
		defer func() {
			s.metrics.VerifyDuration.Observe(float64(time.Since(start).Milliseconds()))
		}()
	}

	now := s.clock.Now()

	snap, err := s.cachedSnapshot(ctx, id)
	if err != nil {
		return VerifyResult{}, err
	}

	result := VerifyResult{
		CertificationID: id,
		Valid:           snap.Status == models.StatusActive && snap.ExpirationDate.After(now),
		Status:          snap.Status,
		ExpirationDate:  snap.ExpirationDate,
	}
	if !result.Valid {
		if s.metrics != nil {
			s.metrics.VerifyTotal.WithLabelValues("invalid").Inc()
		}
		return VerifyResult{}, dErrors.New(dErrors.CodeInvalidStatus, "certification is not currently valid")
	}
	if s.metrics != nil {
		s.metrics.VerifyTotal.WithLabelValues("valid").Inc()
	}
	return result, nil
}

// cachedSnapshot resolves the status/expiration snapshot, via Redis when
// configured. Population is double-checked: after Set the record is read
// again and the entry dropped when it no longer matches, so a mutation
// whose invalidation ran between our ledger read and our Set cannot be
// papered over by the stale snapshot.
func (s *Service) cachedSnapshot(ctx context.Context, id domain.CertificationID) (verifycache.Snapshot, error) {
	if s.cache != nil {
		snap, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "verify cache lookup failed",
				"certification_id", id.String(),
				"error", err,
			)
		} else if snap != nil {
			return *snap, nil
		}
	}

	rec, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			if s.metrics != nil {
				s.metrics.VerifyTotal.WithLabelValues("not_found").Inc()
			}
			return verifycache.Snapshot{}, dErrors.New(dErrors.CodeNotFound, "certification not found")
		}
		return verifycache.Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certification record")
	}

	snap := verifycache.Snapshot{Status: rec.Status, ExpirationDate: rec.ExpirationDate}
	if s.cache == nil {
		return snap, nil
	}
	if err := s.cache.Set(ctx, id, snap); err != nil {
		s.logger.WarnContext(ctx, "verify cache store failed",
			"certification_id", id.String(),
			"error", err,
		)
		return snap, nil
	}

	// A mutation that commits between the read above and the Set runs its
	// invalidation first and is then overwritten by our stale snapshot.
	// Re-reading after the Set closes the window: a mutation visible here
	// gets the entry dropped, and one that commits later invalidates after
	// our Set, so its deletion wins.
	fresh, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		s.invalidateCache(ctx, id)
		return snap, nil
	}
	if current := (verifycache.Snapshot{Status: fresh.Status, ExpirationDate: fresh.ExpirationDate}); current != snap {
		s.invalidateCache(ctx, id)
		return current, nil
	}
	return snap, nil
}
