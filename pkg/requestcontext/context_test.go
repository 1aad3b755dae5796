package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edcalderon/hashpass.tech/pkg/domain"
)

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), domain.UserID("user-42"))
	assert.Equal(t, domain.UserID("user-42"), UserID(ctx))
}

func TestUserIDMissing(t *testing.T) {
	assert.True(t, UserID(context.Background()).IsEmpty())
}

func TestTicketTypeRoundTrip(t *testing.T) {
	ctx := WithTicketType(context.Background(), domain.TicketVIP)
	assert.Equal(t, domain.TicketVIP, TicketType(ctx))
}

func TestTicketTypeMissingIsUnknownNotGrant(t *testing.T) {
	tier := TicketType(context.Background())
	assert.False(t, tier.IsValid())
	assert.False(t, tier.Access().CanRequestMeeting)
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-abc")
	assert.Equal(t, "req-abc", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestNow(t *testing.T) {
	t.Run("returns pinned time when set", func(t *testing.T) {
		pinned := time.Date(2025, 9, 12, 10, 30, 0, 0, time.UTC)
		ctx := WithTime(context.Background(), pinned)
		assert.Equal(t, pinned, Now(ctx))
	})

	t.Run("falls back to wall clock", func(t *testing.T) {
		before := time.Now()
		got := Now(context.Background())
		assert.False(t, got.Before(before))
		assert.WithinDuration(t, time.Now(), got, time.Second)
	})
}
