// Package lifecycle drives a meeting request through its states: a request
// is created pending, the speaker side approves or declines it out of band,
// and the requester may cancel while it is still pending. The service owns
// the admission preconditions (quota, duplicate guard) on create and the
// ownership/state preconditions on cancel.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/metrics"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/ports"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/service/quota"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	"github.com/edcalderon/hashpass.tech/pkg/platform/audit"
	"github.com/edcalderon/hashpass.tech/pkg/requestcontext"
)

// Type aliases for shared interfaces.
type (
	Store          = ports.RequestStore
	AuditPublisher = ports.AuditPublisher
)

const defaultMeetingType = "networking"

type Service struct {
	store          Store
	quota          *quota.Service
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

func New(store Store, quotaSvc *quota.Service, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("request store is required")
	}
	if quotaSvc == nil {
		return nil, fmt.Errorf("quota service is required")
	}

	svc := &Service{
		store:  store,
		quota:  quotaSvc,
		tracer: otel.Tracer("matchmaking/lifecycle"),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// CreateParams carries everything needed to open a new request. The
// idempotency key is client-generated; replaying a create with the same key
// returns the original request instead of consuming another quota slot.
type CreateParams struct {
	RequesterID    id.UserID
	SpeakerID      id.SpeakerID
	RequesterName  string
	SpeakerName    string
	TicketType     id.TicketType
	MeetingType    string
	Message        string
	Intentions     []string
	BoostAmount    int
	IdempotencyKey string
}

// Create opens a new pending request after checking the duplicate guard and
// the quota evaluator. The store remains the final arbiter: a concurrent
// create that wins the race surfaces as CodeConflict, never as success.
//
// Errors: CodeInvalidInput / CodeValidation for bad parameters,
// CodeDuplicateRequest when an active request to the speaker exists,
// CodeQuotaExceeded when the evaluator denies, CodeConflict when the store
// rejects a racing duplicate, CodeUnavailable for transport failures (the
// caller may retry with the same idempotency key).
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.MeetingRequest, error) {
	if params.RequesterID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester id is required")
	}
	if params.SpeakerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "speaker id is required")
	}
	if params.BoostAmount < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "boost amount cannot be negative")
	}
	if params.TicketType != "" && !params.TicketType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid ticket type")
	}

	note, err := models.DeriveNote(params.Intentions)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "lifecycle.Create",
		trace.WithAttributes(attribute.String("speaker_id", params.SpeakerID.String())))
	defer span.End()

	// Idempotency replay: a retry after a timed-out create must not open a
	// second request if the first attempt landed.
	if params.IdempotencyKey != "" {
		existing, err := s.store.FindByIdempotencyKey(ctx, params.RequesterID, params.IdempotencyKey)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check idempotency key")
		}
		if existing != nil {
			return existing, nil
		}
	}

	// Duplicate guard: one active request per (requester, speaker).
	active, err := s.store.FindActive(ctx, params.RequesterID, params.SpeakerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check for active request")
	}
	if active != nil {
		s.metrics.RecordDenial("duplicate")
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.ActionDuplicateDenied,
			audit.Event{UserID: params.RequesterID, SpeakerID: params.SpeakerID},
			"user_id", params.RequesterID,
			"speaker_id", params.SpeakerID,
			"existing_request_id", active.ID,
		)
		return nil, dErrors.New(dErrors.CodeDuplicateRequest, "an active meeting request to this speaker already exists")
	}

	state, err := s.quota.Evaluate(ctx, params.RequesterID, params.SpeakerID, params.BoostAmount)
	if err != nil {
		return nil, err
	}
	if !state.CanSendRequest {
		s.metrics.RecordDenial("quota")
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.ActionQuotaDenied,
			audit.Event{UserID: params.RequesterID, SpeakerID: params.SpeakerID, Reason: state.Reason},
			"user_id", params.RequesterID,
			"speaker_id", params.SpeakerID,
			"reason", state.Reason,
		)
		reason := state.Reason
		if reason == "" {
			reason = "meeting request quota exceeded"
		}
		return nil, dErrors.New(dErrors.CodeQuotaExceeded, reason)
	}

	meetingType := params.MeetingType
	if meetingType == "" {
		meetingType = defaultMeetingType
	}
	tier := params.TicketType
	if tier == "" {
		tier = state.TicketType
	}

	now := requestcontext.Now(ctx)
	request := &models.MeetingRequest{
		ID:             id.RequestID(uuid.NewString()),
		RequesterID:    params.RequesterID,
		SpeakerID:      params.SpeakerID,
		RequesterName:  params.RequesterName,
		SpeakerName:    params.SpeakerName,
		TicketType:     tier,
		MeetingType:    meetingType,
		Status:         models.StatusPending,
		Message:        params.Message,
		Note:           note,
		BoostAmount:    params.BoostAmount,
		IdempotencyKey: params.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, request); err != nil {
		// A racing create on another device may have won; surface it.
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			s.metrics.RecordDenial("duplicate")
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create meeting request")
	}

	if s.metrics != nil {
		s.metrics.RequestsCreated.Inc()
	}
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.ActionMeetingRequestCreated,
		audit.Event{UserID: params.RequesterID, SpeakerID: params.SpeakerID},
		"user_id", params.RequesterID,
		"speaker_id", params.SpeakerID,
		"meeting_request_id", request.ID,
		"boost_amount", params.BoostAmount,
	)

	return request, nil
}

// Cancel transitions the requester's pending request to cancelled.
//
// The consumed quota slot stays spent: cancellation never restores quota,
// and callers are expected to warn the user before confirming. Failures are
// never retried here; the transition is not idempotent from the caller's
// point of view.
//
// Errors: CodeInvalidInput for empty IDs, CodeNotFound when no such request
// exists, CodeUnauthorized when it belongs to another requester,
// CodeConflict when it is no longer pending.
func (s *Service) Cancel(ctx context.Context, requestID id.RequestID, requesterID id.UserID) (*models.MeetingRequest, error) {
	if requestID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "request id is required")
	}
	if requesterID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester id is required")
	}

	ctx, span := s.tracer.Start(ctx, "lifecycle.Cancel",
		trace.WithAttributes(attribute.String("meeting_request_id", requestID.String())))
	defer span.End()

	cancelled, err := s.store.Cancel(ctx, requestID, requesterID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RequestsCancelled.Inc()
	}
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.ActionMeetingRequestCancelled,
		audit.Event{UserID: requesterID, SpeakerID: cancelled.SpeakerID},
		"user_id", requesterID,
		"meeting_request_id", requestID,
	)

	return cancelled, nil
}

// HasActiveRequest is the duplicate guard's read side: it returns the
// requester's active request to the speaker, or nil when none exists.
// Reads go straight to the store so a request created moments earlier in
// this session is always visible.
func (s *Service) HasActiveRequest(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) (*models.MeetingRequest, error) {
	if requesterID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester id is required")
	}
	if speakerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "speaker id is required")
	}
	request, err := s.store.FindActive(ctx, requesterID, speakerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load active request")
	}
	return request, nil
}

// ListCancelled returns the requester's cancelled history with the speaker.
func (s *Service) ListCancelled(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) ([]*models.MeetingRequest, error) {
	if requesterID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester id is required")
	}
	if speakerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "speaker id is required")
	}
	requests, err := s.store.ListCancelled(ctx, requesterID, speakerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load cancelled requests")
	}
	return requests, nil
}

// Overview gathers the active request, cancelled history and a fresh quota
// evaluation concurrently. Quota is re-derived on every call; nothing here
// caches a remaining count across renders.
func (s *Service) Overview(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) (*models.Overview, error) {
	if requesterID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester id is required")
	}
	if speakerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "speaker id is required")
	}

	g, gctx := errgroup.WithContext(ctx)
	overview := &models.Overview{}

	g.Go(func() error {
		active, err := s.store.FindActive(gctx, requesterID, speakerID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load active request")
		}
		overview.Active = active
		return nil
	})
	g.Go(func() error {
		cancelled, err := s.store.ListCancelled(gctx, requesterID, speakerID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load cancelled requests")
		}
		overview.Cancelled = cancelled
		return nil
	})
	g.Go(func() error {
		state, err := s.quota.Evaluate(gctx, requesterID, speakerID, 0)
		if err != nil {
			return err
		}
		overview.Quota = state
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if overview.Cancelled == nil {
		overview.Cancelled = []*models.MeetingRequest{}
	}
	return overview, nil
}
