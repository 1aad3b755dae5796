package testutil

import (
	"net/http"
	"time"

	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	"github.com/edcalderon/hashpass.tech/pkg/requestcontext"
)

// WithUserID adds a user ID to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// Invalid IDs are silently ignored.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), parsed))
}

// WithTicketType adds the caller's pass tier to the request context.
// Invalid tiers are silently ignored.
func WithTicketType(req *http.Request, ticketType string) *http.Request {
	parsed, err := id.ParseTicketType(ticketType)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithTicketType(req.Context(), parsed))
}

// WithRequestTime pins the request-scoped clock, making created_at and
// updated_at assertions deterministic.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithAuth adds user ID and pass tier to the request context, the typical
// state for an authenticated request. Invalid values are silently ignored.
func WithAuth(req *http.Request, userID, ticketType string) *http.Request {
	req = WithUserID(req, userID)
	return WithTicketType(req, ticketType)
}
