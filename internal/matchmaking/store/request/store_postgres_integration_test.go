//go:build integration

package request_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/store/request"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	"github.com/edcalderon/hashpass.tech/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *request.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), "../../../../migrations")
	s.store = request.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func (s *PostgresStoreSuite) newRequest(requesterID, speakerID string) *models.MeetingRequest {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.MeetingRequest{
		ID:          id.RequestID(uuid.NewString()),
		RequesterID: id.UserID(requesterID),
		SpeakerID:   id.SpeakerID(speakerID),
		TicketType:  id.TicketBusiness,
		MeetingType: "networking",
		Status:      models.StatusPending,
		Note:        "⚪ No specific intention",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ============================================================================
// Create
// ============================================================================

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := context.Background()
	req := s.newRequest("user-1", "spk-1")
	req.Message = "Would love to discuss cross-border settlement"
	req.BoostAmount = 10

	s.Require().NoError(s.store.Create(ctx, req))

	got, err := s.store.Get(ctx, req.ID)
	s.Require().NoError(err)
	s.Equal(req.RequesterID, got.RequesterID)
	s.Equal(req.SpeakerID, got.SpeakerID)
	s.Equal(models.StatusPending, got.Status)
	s.Equal("Would love to discuss cross-border settlement", got.Message)
	s.Equal(10, got.BoostAmount)
	s.Equal("⚪ No specific intention", got.Note)
}

func (s *PostgresStoreSuite) TestCreateSecondActiveForPairConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newRequest("user-1", "spk-1")))

	err := s.store.Create(ctx, s.newRequest("user-1", "spk-1"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *PostgresStoreSuite) TestCreateAfterCancelSucceeds() {
	ctx := context.Background()
	first := s.newRequest("user-1", "spk-1")
	s.Require().NoError(s.store.Create(ctx, first))

	_, err := s.store.Cancel(ctx, first.ID, first.RequesterID, time.Now().UTC())
	s.Require().NoError(err)

	s.NoError(s.store.Create(ctx, s.newRequest("user-1", "spk-1")))
}

func (s *PostgresStoreSuite) TestConcurrentCreateOnePairWins() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var created atomic.Int32
	var conflicted atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(ctx, s.newRequest("user-racer", "spk-1"))
			switch {
			case err == nil:
				created.Add(1)
			case dErrors.HasCode(err, dErrors.CodeConflict):
				conflicted.Add(1)
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created.Load(), "exactly one create should win the partial unique index")
	s.Equal(int32(goroutines-1), conflicted.Load())
}

// ============================================================================
// FindActive / FindByIdempotencyKey
// ============================================================================

func (s *PostgresStoreSuite) TestFindActive() {
	ctx := context.Background()
	req := s.newRequest("user-1", "spk-1")
	s.Require().NoError(s.store.Create(ctx, req))

	got, err := s.store.FindActive(ctx, req.RequesterID, req.SpeakerID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(req.ID, got.ID)

	none, err := s.store.FindActive(ctx, id.UserID("user-1"), id.SpeakerID("spk-other"))
	s.Require().NoError(err)
	s.Nil(none)
}

func (s *PostgresStoreSuite) TestFindActiveSkipsCancelled() {
	ctx := context.Background()
	req := s.newRequest("user-1", "spk-1")
	s.Require().NoError(s.store.Create(ctx, req))
	_, err := s.store.Cancel(ctx, req.ID, req.RequesterID, time.Now().UTC())
	s.Require().NoError(err)

	got, err := s.store.FindActive(ctx, req.RequesterID, req.SpeakerID)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *PostgresStoreSuite) TestFindByIdempotencyKey() {
	ctx := context.Background()
	req := s.newRequest("user-1", "spk-1")
	req.IdempotencyKey = "client-key-01"
	s.Require().NoError(s.store.Create(ctx, req))

	got, err := s.store.FindByIdempotencyKey(ctx, req.RequesterID, "client-key-01")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(req.ID, got.ID)

	none, err := s.store.FindByIdempotencyKey(ctx, id.UserID("user-other"), "client-key-01")
	s.Require().NoError(err)
	s.Nil(none)

	none, err = s.store.FindByIdempotencyKey(ctx, req.RequesterID, "")
	s.Require().NoError(err)
	s.Nil(none)
}

func (s *PostgresStoreSuite) TestEmptyIdempotencyKeysDoNotCollide() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newRequest("user-1", "spk-1")))
	s.NoError(s.store.Create(ctx, s.newRequest("user-1", "spk-2")))
}

// ============================================================================
// Cancel
// ============================================================================

func (s *PostgresStoreSuite) TestCancel() {
	ctx := context.Background()
	req := s.newRequest("user-1", "spk-1")
	s.Require().NoError(s.store.Create(ctx, req))

	cancelled, err := s.store.Cancel(ctx, req.ID, req.RequesterID, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(models.StatusCancelled, cancelled.Status)

	got, err := s.store.Get(ctx, req.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCancelled, got.Status)
}

func (s *PostgresStoreSuite) TestCancelUnknownRequest() {
	_, err := s.store.Cancel(context.Background(), id.RequestID(uuid.NewString()), id.UserID("user-1"), time.Now())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *PostgresStoreSuite) TestCancelForeignRequestLeavesRowPending() {
	ctx := context.Background()
	req := s.newRequest("user-owner", "spk-1")
	s.Require().NoError(s.store.Create(ctx, req))

	_, err := s.store.Cancel(ctx, req.ID, id.UserID("user-intruder"), time.Now().UTC())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	got, err := s.store.Get(ctx, req.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, got.Status)
}

func (s *PostgresStoreSuite) TestCancelNonPendingConflicts() {
	ctx := context.Background()
	req := s.newRequest("user-1", "spk-1")
	s.Require().NoError(s.store.Create(ctx, req))
	_, err := s.store.Cancel(ctx, req.ID, req.RequesterID, time.Now().UTC())
	s.Require().NoError(err)

	_, err = s.store.Cancel(ctx, req.ID, req.RequesterID, time.Now().UTC())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

// ============================================================================
// ListCancelled / CountConsumed
// ============================================================================

func (s *PostgresStoreSuite) TestListCancelledNewestFirst() {
	ctx := context.Background()

	first := s.newRequest("user-1", "spk-1")
	s.Require().NoError(s.store.Create(ctx, first))
	_, err := s.store.Cancel(ctx, first.ID, first.RequesterID, time.Now().UTC())
	s.Require().NoError(err)

	second := s.newRequest("user-1", "spk-1")
	second.CreatedAt = second.CreatedAt.Add(time.Minute)
	second.UpdatedAt = second.CreatedAt
	s.Require().NoError(s.store.Create(ctx, second))
	_, err = s.store.Cancel(ctx, second.ID, second.RequesterID, time.Now().UTC())
	s.Require().NoError(err)

	cancelled, err := s.store.ListCancelled(ctx, id.UserID("user-1"), id.SpeakerID("spk-1"))
	s.Require().NoError(err)
	s.Require().Len(cancelled, 2)
	s.Equal(second.ID, cancelled[0].ID)
	s.Equal(first.ID, cancelled[1].ID)
}

func (s *PostgresStoreSuite) TestCountConsumedIncludesCancelled() {
	ctx := context.Background()

	req := s.newRequest("user-1", "spk-1")
	s.Require().NoError(s.store.Create(ctx, req))
	_, err := s.store.Cancel(ctx, req.ID, req.RequesterID, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(ctx, s.newRequest("user-1", "spk-2")))

	count, err := s.store.CountConsumed(ctx, id.UserID("user-1"))
	s.Require().NoError(err)
	s.Equal(2, count, "cancelling never restores quota")

	count, err = s.store.CountConsumed(ctx, id.UserID("user-stranger"))
	s.Require().NoError(err)
	s.Zero(count)
}
