package models

import (
	"strconv"

	id "github.com/edcalderon/hashpass.tech/pkg/domain"
)

// QuotaResponse is the API shape for a quota evaluation. remaining and limit
// render the unlimited sentinel as "∞" so clients never do arithmetic on it.
type QuotaResponse struct {
	TicketType        string `json:"ticket_type"`
	RequestLimit      string `json:"request_limit"`
	RemainingRequests string `json:"remaining_requests"`
	CanSendRequest    bool   `json:"can_send_request"`
	Reason            string `json:"reason,omitempty"`
}

// NewQuotaResponse maps a QuotaState to its API shape. This is the only
// place the unlimited sentinel becomes a display value.
func NewQuotaResponse(q *QuotaState) QuotaResponse {
	return QuotaResponse{
		TicketType:        q.TicketType.String(),
		RequestLimit:      renderCount(q.RequestLimit),
		RemainingRequests: renderCount(q.RemainingRequests),
		CanSendRequest:    q.CanSendRequest,
		Reason:            q.Reason,
	}
}

func renderCount(n int) string {
	if n >= id.UnlimitedRequests {
		return "∞"
	}
	return strconv.Itoa(n)
}

// ActiveRequestResponse wraps the duplicate-guard view. Request is null when
// no active request exists for the pair.
type ActiveRequestResponse struct {
	Request *MeetingRequest `json:"request"`
}

// CancelledRequestsResponse is the history panel payload.
type CancelledRequestsResponse struct {
	Requests []*MeetingRequest `json:"requests"`
}
