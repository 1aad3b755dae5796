package domain

import (
	"strings"

	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// Identifiers are deliberately string-typed rather than UUID-typed: the pass
// system stores user IDs as TEXT and speaker IDs come from two sources (the
// directory and the bundled event config) with different formats. Coercing to
// a narrower representation at this boundary is exactly the class of mismatch
// that broke cancellation matching in the past, so IDs stay opaque strings.
type (
	// UserID identifies an attendee (the meeting requester).
	UserID string
	// SpeakerID identifies a speaker in the directory.
	SpeakerID string
	// RequestID identifies a single meeting request row.
	RequestID string
)

// ParseUserID validates external input into a UserID.
//
// Errors: CodeInvalidInput when the value is empty or whitespace.
func ParseUserID(s string) (UserID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user id cannot be empty")
	}
	return UserID(trimmed), nil
}

// ParseSpeakerID validates external input into a SpeakerID.
func ParseSpeakerID(s string) (SpeakerID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "speaker id cannot be empty")
	}
	return SpeakerID(trimmed), nil
}

// ParseRequestID validates external input into a RequestID.
func ParseRequestID(s string) (RequestID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "request id cannot be empty")
	}
	return RequestID(trimmed), nil
}

func (id UserID) String() string    { return string(id) }
func (id SpeakerID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }

func (id UserID) IsEmpty() bool    { return id == "" }
func (id SpeakerID) IsEmpty() bool { return id == "" }
func (id RequestID) IsEmpty() bool { return id == "" }
