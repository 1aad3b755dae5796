package domain

import dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"

// TicketType is the attendee's pass tier. The tier determines the meeting
// request allowance enforced by the pass system.
//
// Usage: construct via ParseTicketType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type TicketType string

const (
	TicketGeneral  TicketType = "general"
	TicketBusiness TicketType = "business"
	TicketVIP      TicketType = "vip"
)

// UnlimitedRequests is the sentinel the pass system returns for VIP tiers.
// It is passed through unchanged wherever remaining counts flow; only the
// presentation layer maps it to an infinity glyph. Client logic must never
// decrement it to a finite value.
const UnlimitedRequests = 999999

// validTicketTypes is the single source of truth for valid tiers.
var validTicketTypes = map[TicketType]bool{
	TicketGeneral:  true,
	TicketBusiness: true,
	TicketVIP:      true,
}

// requestLimits maps each tier to its meeting request allowance.
var requestLimits = map[TicketType]int{
	TicketGeneral:  1,
	TicketBusiness: 3,
	TicketVIP:      UnlimitedRequests,
}

// ParseTicketType constructs a TicketType from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseTicketType(s string) (TicketType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ticket type cannot be empty")
	}
	t := TicketType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid ticket type: must be 'general', 'business' or 'vip'")
	}
	return t, nil
}

// IsValid checks if the ticket type is one of the supported enum values.
func (t TicketType) IsValid() bool {
	return validTicketTypes[t]
}

// RequestLimit returns the meeting request allowance for the tier.
// VIP returns the UnlimitedRequests sentinel.
func (t TicketType) RequestLimit() int {
	return requestLimits[t]
}

// Unlimited reports whether the tier has no finite request allowance.
func (t TicketType) Unlimited() bool {
	return t == TicketVIP
}

// String returns the string representation of the tier.
func (t TicketType) String() string {
	return string(t)
}

// AccessLevel describes what a tier unlocks at the event. Derived data for
// display; the quota oracle remains the authority on request admission.
type AccessLevel struct {
	Level             int
	Name              string
	CanRequestMeeting bool
	CanVideoChat      bool
	CanAccessVIP      bool
	Description       string
}

// Access returns the access descriptor for the tier. Unknown tiers get the
// zero descriptor with no capabilities.
func (t TicketType) Access() AccessLevel {
	switch t {
	case TicketGeneral:
		return AccessLevel{
			Level:             1,
			Name:              "General Access",
			CanRequestMeeting: true,
			Description:       "Conferences only + 1 meeting request during event",
		}
	case TicketBusiness:
		return AccessLevel{
			Level:             2,
			Name:              "Business Access",
			CanRequestMeeting: true,
			CanVideoChat:      true,
			Description:       "Conferences + Networking & B2B sessions + 3 meeting requests",
		}
	case TicketVIP:
		return AccessLevel{
			Level:             3,
			Name:              "VIP Access",
			CanRequestMeeting: true,
			CanVideoChat:      true,
			CanAccessVIP:      true,
			Description:       "All access + VIP networking with speakers + unlimited meeting requests",
		}
	default:
		return AccessLevel{Name: "No Access", Description: "No access to matchmaking features"}
	}
}
