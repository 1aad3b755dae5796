package models

// CreateMeetingRequestRequest is the API payload for creating a request.
// requester_id comes from the authenticated context, never the body.
type CreateMeetingRequestRequest struct {
	SpeakerID      string   `json:"speaker_id"`
	SpeakerName    string   `json:"speaker_name,omitempty"`
	RequesterName  string   `json:"requester_name,omitempty"`
	TicketType     string   `json:"requester_ticket_type,omitempty"`
	MeetingType    string   `json:"meeting_type,omitempty"`
	Message        string   `json:"message,omitempty"`
	Intentions     []string `json:"intentions,omitempty"`
	BoostAmount    int      `json:"boost_amount"`
	IdempotencyKey string   `json:"idempotency_key,omitempty"`
}
