// Package oracle provides implementations of the quota oracle: the remote
// pass system (authoritative in production) and an in-process variant backed
// by the request store for development and tests.
package oracle

import (
	"context"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	"github.com/edcalderon/hashpass.tech/internal/platform/supabase"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// PassSystem calls the pass system's can_make_meeting_request stored
// procedure. The remote function resolves the caller's pass tier and applies
// the tier allowance server-side; this client only validates the shape.
type PassSystem struct {
	client *supabase.Client
}

func NewPassSystem(client *supabase.Client) (*PassSystem, error) {
	if client == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "supabase client is required")
	}
	return &PassSystem{client: client}, nil
}

// canMakeMeetingRequestRow is the strict shape of one RPC result row.
// remaining_requests is a pointer so a missing field is distinguishable from
// an explicit zero; a missing field is malformed, not "no quota left".
type canMakeMeetingRequestRow struct {
	PassType          string `json:"pass_type"`
	RemainingRequests *int   `json:"remaining_requests"`
	CanRequest        *bool  `json:"can_request"`
	Reason            string `json:"reason"`
}

// CanMakeMeetingRequest invokes the remote decision function. The user ID
// travels as TEXT by contract: the store compares identifiers as strings and
// coercing to a numeric or UUID type reintroduces mismatch bugs.
//
// Errors: transport and timeout failures from the RPC client pass through
// (the quota service fails closed on them); CodeMalformedData when rows do
// not match the expected shape.
func (o *PassSystem) CanMakeMeetingRequest(ctx context.Context, userID id.UserID, speakerID id.SpeakerID, boostAmount int) (*models.QuotaDecision, error) {
	params := map[string]any{
		"p_user_id":      userID.String(),
		"p_speaker_id":   speakerID.String(),
		"p_boost_amount": boostAmount,
	}

	var rows []canMakeMeetingRequestRow
	if err := o.client.Rpc(ctx, "can_make_meeting_request", params, &rows); err != nil {
		return nil, err
	}

	// No row means the user holds no active pass: a definitive denial from
	// the authority, not a transport failure.
	if len(rows) == 0 {
		return &models.QuotaDecision{
			PassType:   id.TicketBusiness,
			CanRequest: false,
			Reason:     "No active pass found",
		}, nil
	}

	row := rows[0]
	if row.RemainingRequests == nil || row.CanRequest == nil {
		return nil, dErrors.New(dErrors.CodeMalformedData, "pass system verdict is missing required fields")
	}
	passType, err := id.ParseTicketType(row.PassType)
	if err != nil {
		return nil, dErrors.Newf(dErrors.CodeMalformedData, "pass system returned unknown pass type %q", row.PassType)
	}

	return &models.QuotaDecision{
		PassType:          passType,
		RemainingRequests: *row.RemainingRequests,
		CanRequest:        *row.CanRequest,
		Reason:            row.Reason,
	}, nil
}
