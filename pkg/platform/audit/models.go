// Package audit defines the audit event model and sinks. Domain services emit
// events for security-relevant matchmaking actions; sinks persist or forward
// them without the services knowing where they land.
package audit

import (
	"time"

	id "github.com/edcalderon/hashpass.tech/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time    `json:"timestamp"`
	UserID    id.UserID    `json:"user_id,omitempty"`
	SpeakerID id.SpeakerID `json:"speaker_id,omitempty"`
	RequestID string       `json:"request_id,omitempty"` // correlation ID from HTTP context
	Action    string       `json:"action"`
	Reason    string       `json:"reason,omitempty"`
}

// Audit actions emitted by the matchmaking module.
const (
	ActionMeetingRequestCreated   = "meeting_request_created"
	ActionMeetingRequestCancelled = "meeting_request_cancelled"
	ActionQuotaDenied             = "meeting_request_quota_denied"
	ActionDuplicateDenied         = "meeting_request_duplicate_denied"
	ActionOracleUnavailable       = "quota_oracle_unavailable"
)
