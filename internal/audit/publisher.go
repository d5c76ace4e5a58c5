package audit

import (
	"context"
	"log/slog"
	"time"

	"attest/pkg/domain"
	"attest/pkg/requestcontext"
)

// Publisher hands events to the background worker through a buffered
// channel. Emission is best-effort: when the buffer is full the event is
// dropped with a warning rather than blocking a lifecycle operation.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{inbox: inbox, logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit event dropped, inbox full",
			"action", string(event.Action),
			"certification_id", event.CertificationID,
		)
	}
}

// The methods below satisfy the narrow AuditEmitter interfaces each feature
// package declares for itself.

func (p *Publisher) CertificationIssued(ctx context.Context, actor domain.ActorID, id domain.CertificationID, teacher domain.TeacherID, certType domain.CertificationType, height domain.Height) {
	p.Emit(ctx, Event{
		Action:          ActionCertificationIssued,
		ActorID:         actor.String(),
		CertificationID: id.String(),
		TeacherID:       teacher.String(),
		CertType:        certType.String(),
		Height:          height,
	})
}

func (p *Publisher) CertificationRenewed(ctx context.Context, actor domain.ActorID, id domain.CertificationID, height domain.Height) {
	p.Emit(ctx, Event{
		Action:          ActionCertificationRenewed,
		ActorID:         actor.String(),
		CertificationID: id.String(),
		Height:          height,
	})
}

func (p *Publisher) CertificationRevoked(ctx context.Context, actor domain.ActorID, id domain.CertificationID, reason string, height domain.Height) {
	p.Emit(ctx, Event{
		Action:          ActionCertificationRevoked,
		ActorID:         actor.String(),
		CertificationID: id.String(),
		Reason:          reason,
		Height:          height,
	})
}

func (p *Publisher) CertificationExpired(ctx context.Context, actor domain.ActorID, id domain.CertificationID, height domain.Height) {
	p.Emit(ctx, Event{
		Action:          ActionCertificationExpired,
		ActorID:         actor.String(),
		CertificationID: id.String(),
		Height:          height,
	})
}

func (p *Publisher) RoleGranted(ctx context.Context, actor, target domain.ActorID, role string) {
	p.Emit(ctx, Event{
		Action:   ActionRoleGranted,
		ActorID:  actor.String(),
		TargetID: target.String(),
		Role:     role,
	})
}

func (p *Publisher) RoleRevoked(ctx context.Context, actor, target domain.ActorID, role string) {
	p.Emit(ctx, Event{
		Action:   ActionRoleRevoked,
		ActorID:  actor.String(),
		TargetID: target.String(),
		Role:     role,
	})
}

func (p *Publisher) PauseChanged(ctx context.Context, actor domain.ActorID, paused bool) {
	action := ActionUnpaused
	if paused {
		action = ActionPaused
	}
	p.Emit(ctx, Event{Action: action, ActorID: actor.String()})
}

func (p *Publisher) RequirementsSet(ctx context.Context, actor domain.ActorID, certType domain.CertificationType) {
	p.Emit(ctx, Event{
		Action:   ActionRequirementsSet,
		ActorID:  actor.String(),
		CertType: certType.String(),
	})
}
