// Package quota implements the admission check for meeting requests. It
// consults the remote quota oracle and maps its verdict into a QuotaState,
// failing closed whenever the oracle cannot answer.
package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/metrics"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/ports"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	"github.com/edcalderon/hashpass.tech/pkg/platform/audit"
)

// Type aliases for shared interfaces.
type (
	Oracle         = ports.QuotaOracle
	AuditPublisher = ports.AuditPublisher
)

type Service struct {
	oracle         Oracle
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(oracle Oracle, opts ...Option) (*Service, error) {
	if oracle == nil {
		return nil, fmt.Errorf("quota oracle is required")
	}

	svc := &Service{
		oracle: oracle,
		tracer: otel.Tracer("matchmaking/quota"),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Evaluate asks the oracle whether userID may create a new request to
// speakerID. Pure read; no quota is consumed.
//
// On oracle failure or an unusable verdict the returned state denies with
// FailClosedReason rather than returning an error: an inability to verify
// quota must never be interpreted as permission. Only invalid input errors.
//
// Errors: CodeInvalidInput for empty IDs or a negative boost.
func (s *Service) Evaluate(ctx context.Context, userID id.UserID, speakerID id.SpeakerID, boostAmount int) (*models.QuotaState, error) {
	if userID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if speakerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "speaker id is required")
	}
	if boostAmount < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "boost amount cannot be negative")
	}

	ctx, span := s.tracer.Start(ctx, "quota.Evaluate",
		trace.WithAttributes(attribute.String("speaker_id", speakerID.String())))
	defer span.End()

	start := time.Now()
	decision, err := s.oracle.CanMakeMeetingRequest(ctx, userID, speakerID, boostAmount)
	s.metrics.ObserveOracle(time.Since(start), err != nil)
	if err != nil {
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.ActionOracleUnavailable,
			audit.Event{UserID: userID, SpeakerID: speakerID, Reason: err.Error()},
			"user_id", userID,
			"speaker_id", speakerID,
			"error", err.Error(),
		)
		return models.FailClosed(""), nil
	}

	state, ok := toQuotaState(decision)
	if !ok {
		s.metrics.RecordOracleFailure()
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.ActionOracleUnavailable,
			audit.Event{UserID: userID, SpeakerID: speakerID, Reason: "malformed oracle verdict"},
			"user_id", userID,
			"speaker_id", speakerID,
		)
		return models.FailClosed(""), nil
	}
	return state, nil
}

// toQuotaState maps the oracle verdict onto a QuotaState, enforcing the
// invariants the oracle cannot be trusted to uphold:
//
//   - remaining == 0 forces can_send_request to false regardless of the
//     verdict's can_request flag (and regardless of boost).
//   - the unlimited sentinel passes through untouched.
//
// Returns ok=false when the verdict shape is unusable (negative remaining or
// an unknown pass type), which callers treat as an oracle failure.
func toQuotaState(d *models.QuotaDecision) (*models.QuotaState, bool) {
	if d == nil || d.RemainingRequests < 0 || !d.PassType.IsValid() {
		return nil, false
	}

	canSend := d.CanRequest
	if d.RemainingRequests == 0 {
		canSend = false
	}

	return &models.QuotaState{
		TicketType:        d.PassType,
		RequestLimit:      d.PassType.RequestLimit(),
		RemainingRequests: d.RemainingRequests,
		CanSendRequest:    canSend,
		Reason:            d.Reason,
	}, true
}
