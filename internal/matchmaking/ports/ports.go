// Package ports defines shared interfaces for the matchmaking module.
// Interfaces are placed here when consumed by multiple services to avoid
// duplication.
package ports

import (
	"context"
	"log/slog"
	"time"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	"github.com/edcalderon/hashpass.tech/pkg/platform/audit"
	"github.com/edcalderon/hashpass.tech/pkg/requestcontext"
)

// AuditPublisher emits audit events for security-relevant operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RequestStore persists meeting requests.
//
// Implementations enforce the single-active-request invariant on Create and
// return CodeConflict when a concurrent writer got there first: the store is
// the final arbiter and that outcome must surface to the caller.
type RequestStore interface {
	// Create persists a new pending request.
	Create(ctx context.Context, request *models.MeetingRequest) error

	// Get returns the request by ID, or CodeNotFound.
	Get(ctx context.Context, requestID id.RequestID) (*models.MeetingRequest, error)

	// FindActive returns the requester's active (pending or approved)
	// request to the speaker, or nil when none exists.
	FindActive(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) (*models.MeetingRequest, error)

	// FindByIdempotencyKey returns the requester's request created with the
	// given key, or nil when none exists.
	FindByIdempotencyKey(ctx context.Context, requesterID id.UserID, key string) (*models.MeetingRequest, error)

	// ListCancelled returns the requester's cancelled requests to the
	// speaker, newest first. Cancelled rows are history, never pruned here.
	ListCancelled(ctx context.Context, requesterID id.UserID, speakerID id.SpeakerID) ([]*models.MeetingRequest, error)

	// Cancel transitions the request to cancelled iff it is currently
	// pending and owned by requesterID, refreshing updated_at to now.
	// The match is strict on (id, requester): there is no fallback update
	// without the ownership filter.
	//
	// Errors: CodeNotFound when no row has the ID; CodeUnauthorized when the
	// row exists but belongs to someone else; CodeConflict when owned but
	// not pending.
	Cancel(ctx context.Context, requestID id.RequestID, requesterID id.UserID, now time.Time) (*models.MeetingRequest, error)

	// CountConsumed returns how many quota slots the requester has spent.
	// Every created request counts, including cancelled rows: cancellation
	// never restores quota.
	CountConsumed(ctx context.Context, requesterID id.UserID) (int, error)
}

// QuotaOracle is the remote authoritative admission check. The caller treats
// it as an external oracle: its verdict is mapped, never second-guessed,
// and its failure is always interpreted as denial.
type QuotaOracle interface {
	CanMakeMeetingRequest(ctx context.Context, userID id.UserID, speakerID id.SpeakerID, boostAmount int) (*models.QuotaDecision, error)
}

// LogAudit is a shared helper for logging audit events across matchmaking
// services. It logs to both the structured logger and the audit publisher if
// available.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, action string, event audit.Event, attrs ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
		event.RequestID = requestID
	}
	event.Action = action
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}

	args := append(attrs, "event", action, "log_type", "audit")
	if logger != nil {
		logger.InfoContext(ctx, action, args...)
	}

	if publisher == nil {
		return
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", action, "error", err)
	}
}
