package oracle

import (
	"context"
	"sync"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/ports"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// InProcess derives verdicts from the request store: remaining = tier limit
// minus every request the user ever created. Cancelled rows still count, so
// cancelling never frees a slot, matching the pass system's accounting.
//
// Pass tiers are registered explicitly; users without one get "No active
// pass found". Used when no pass system endpoint is configured.
type InProcess struct {
	mu    sync.RWMutex
	store ports.RequestStore
	tiers map[id.UserID]id.TicketType
}

func NewInProcess(store ports.RequestStore) (*InProcess, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "request store is required")
	}
	return &InProcess{
		store: store,
		tiers: make(map[id.UserID]id.TicketType),
	}, nil
}

// RegisterPass assigns a tier to a user, standing in for pass purchase.
func (o *InProcess) RegisterPass(userID id.UserID, tier id.TicketType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tiers[userID] = tier
}

func (o *InProcess) CanMakeMeetingRequest(ctx context.Context, userID id.UserID, speakerID id.SpeakerID, boostAmount int) (*models.QuotaDecision, error) {
	o.mu.RLock()
	tier, hasPass := o.tiers[userID]
	o.mu.RUnlock()

	if !hasPass {
		return &models.QuotaDecision{
			PassType:   id.TicketBusiness,
			CanRequest: false,
			Reason:     "No active pass found",
		}, nil
	}

	if tier.Unlimited() {
		return &models.QuotaDecision{
			PassType:          tier,
			RemainingRequests: id.UnlimitedRequests,
			CanRequest:        true,
		}, nil
	}

	consumed, err := o.store.CountConsumed(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count consumed requests")
	}

	remaining := tier.RequestLimit() - consumed
	if remaining < 0 {
		remaining = 0
	}

	decision := &models.QuotaDecision{
		PassType:          tier,
		RemainingRequests: remaining,
		CanRequest:        remaining > 0,
	}
	if remaining == 0 {
		decision.Reason = "Meeting request limit reached for your pass"
	}
	return decision, nil
}
