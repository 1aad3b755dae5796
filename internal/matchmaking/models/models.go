package models

import (
	"time"

	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// RequestStatus is the lifecycle state of a meeting request.
//
// Transitions: a request is born pending; approved, declined and cancelled
// are terminal for that row. A fresh request after a terminal state is a new
// row, subject to the duplicate guard and the quota evaluator.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusDeclined  RequestStatus = "declined"
	StatusCancelled RequestStatus = "cancelled"
)

// validStatuses is the single source of truth for valid statuses.
var validStatuses = map[RequestStatus]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusDeclined:  true,
	StatusCancelled: true,
}

// ParseRequestStatus constructs a RequestStatus from external input.
//
// Errors: CodeMalformedData when the value is not one of the four statuses;
// status values come from the remote store, so a bad one means the response
// shape is off, not that the caller made a bad request.
func ParseRequestStatus(s string) (RequestStatus, error) {
	st := RequestStatus(s)
	if !st.IsValid() {
		return "", dErrors.Newf(dErrors.CodeMalformedData, "unknown request status %q", s)
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s RequestStatus) IsValid() bool {
	return validStatuses[s]
}

// IsActive reports whether a request in this status blocks a new request to
// the same speaker. Active = pending or approved.
func (s RequestStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// IsTerminal reports whether the status ends the row's lifecycle.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusDeclined || s == StatusCancelled
}

// String returns the string representation.
func (s RequestStatus) String() string {
	return string(s)
}

// MeetingRequest is one attendee-to-speaker networking request.
//
// Invariant: at most one active (pending or approved) request exists per
// (requester, speaker) pair. Cancelled and declined rows are retained as
// history and do not count against the invariant.
type MeetingRequest struct {
	ID               id.RequestID  `json:"id"`
	RequesterID      id.UserID     `json:"requester_id"`
	SpeakerID        id.SpeakerID  `json:"speaker_id"`
	RequesterName    string        `json:"requester_name,omitempty"`
	SpeakerName      string        `json:"speaker_name,omitempty"`
	TicketType       id.TicketType `json:"requester_ticket_type"`
	MeetingType      string        `json:"meeting_type"`
	Status           RequestStatus `json:"status"`
	Message          string        `json:"message,omitempty"`
	Note             string        `json:"note,omitempty"`
	BoostAmount      int           `json:"boost_amount"`
	IdempotencyKey   string        `json:"idempotency_key,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// QuotaState is the admission verdict for one evaluation. It reflects
// server-side truth at one instant and must never be cached across actions:
// other devices and other requests move the counter concurrently.
type QuotaState struct {
	TicketType        id.TicketType `json:"ticket_type"`
	RequestLimit      int           `json:"request_limit"`
	RemainingRequests int           `json:"remaining_requests"`
	CanSendRequest    bool          `json:"can_send_request"`
	Reason            string        `json:"reason,omitempty"`
}

// Unlimited reports whether the state carries the unlimited sentinel.
func (q *QuotaState) Unlimited() bool {
	return q.RemainingRequests >= id.UnlimitedRequests || q.RequestLimit >= id.UnlimitedRequests
}

// FailClosedReason is the reason attached when the quota oracle cannot be
// reached. An inability to verify quota is never interpreted as permission.
const FailClosedReason = "Error loading request limits"

// FailClosed returns the deny-by-default state used when the oracle is
// unavailable or returns an unusable response.
func FailClosed(tier id.TicketType) *QuotaState {
	return &QuotaState{
		TicketType:        tier,
		RequestLimit:      0,
		RemainingRequests: 0,
		CanSendRequest:    false,
		Reason:            FailClosedReason,
	}
}

// QuotaDecision is the raw verdict from the quota oracle, before invariant
// enforcement. Strictly typed; shape validation happens at the oracle
// boundary so malformed remote data never propagates.
type QuotaDecision struct {
	PassType          id.TicketType
	RemainingRequests int
	CanRequest        bool
	Reason            string
}

// Overview bundles what the speaker screen needs in one round trip: the
// requester's active request (if any), their cancelled history with this
// speaker, and a fresh quota evaluation.
type Overview struct {
	Active    *MeetingRequest   `json:"active_request,omitempty"`
	Cancelled []*MeetingRequest `json:"cancelled_requests"`
	Quota     *QuotaState       `json:"quota"`
}
