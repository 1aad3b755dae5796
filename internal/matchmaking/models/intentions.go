package models

import (
	"strings"

	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// Intention tags the requester can attach to a meeting request. The derived
// note is display text only; the tags themselves are not persisted.
const (
	IntentionCoffee        = "coffee"
	IntentionPitch         = "pitch"
	IntentionConsultation  = "consultation"
	IntentionNetworking    = "networking"
	IntentionCollaboration = "collaboration"
	IntentionAdvice        = "advice"
	IntentionFun           = "fun"
	IntentionLearning      = "learning"
	IntentionNone          = "none"
)

// MaxIntentions bounds how many tags a single request may carry.
const MaxIntentions = 3

// NoIntentionNote is the sentinel note when the requester picks no tags.
const NoIntentionNote = "⚪ No specific intention"

var intentionText = map[string]string{
	IntentionCoffee:        "☕ Just to grab a coffee and chat",
	IntentionPitch:         "💡 I want to pitch you my startup idea",
	IntentionConsultation:  "🔍 Quick 5-minute consultation",
	IntentionNetworking:    "🤝 General networking and connection",
	IntentionCollaboration: "🚀 Explore potential collaboration",
	IntentionAdvice:        "💭 Seek advice on my career/project",
	IntentionFun:           "😄 Just for fun and interesting conversation",
	IntentionLearning:      "📚 Learn from your experience",
	IntentionNone:          NoIntentionNote,
}

// DeriveNote maps intention tags to the request note.
//
// Rules: zero tags or an empty list yields the sentinel note; the "none" tag
// short-circuits to the sentinel regardless of other tags; otherwise the
// texts join with "; " in the order given.
//
// Errors: CodeValidation for unknown tags or more than MaxIntentions tags.
func DeriveNote(intentions []string) (string, error) {
	if len(intentions) == 0 {
		return NoIntentionNote, nil
	}
	if len(intentions) > MaxIntentions {
		return "", dErrors.Newf(dErrors.CodeValidation, "at most %d intentions allowed", MaxIntentions)
	}

	texts := make([]string, 0, len(intentions))
	for _, tag := range intentions {
		if tag == IntentionNone {
			return NoIntentionNote, nil
		}
		text, ok := intentionText[tag]
		if !ok {
			return "", dErrors.Newf(dErrors.CodeValidation, "unknown intention %q", tag)
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "; "), nil
}
