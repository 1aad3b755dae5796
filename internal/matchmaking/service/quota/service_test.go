package quota

//go:generate mockgen -source=../../ports/ports.go -destination=../../ports/mocks/mocks.go -package=mocks AuditPublisher,RequestStore,QuotaOracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/ports/mocks"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// =============================================================================
// Quota Service Test Suite
// =============================================================================
// The evaluator's fail-closed mapping and invariant enforcement sit between
// the oracle boundary and every create, so they are exercised here in
// isolation with a mocked oracle.

type QuotaServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	oracle  *mocks.MockQuotaOracle
	service *Service

	userID    id.UserID
	speakerID id.SpeakerID
}

func TestQuotaServiceSuite(t *testing.T) {
	suite.Run(t, new(QuotaServiceSuite))
}

func (s *QuotaServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.oracle = mocks.NewMockQuotaOracle(s.ctrl)
	s.userID = id.UserID("user-1")
	s.speakerID = id.SpeakerID("spk-1")

	var err error
	s.service, err = New(s.oracle)
	s.Require().NoError(err)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *QuotaServiceSuite) TestNew() {
	s.Run("nil oracle returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "quota oracle is required")
	})

	s.Run("valid oracle returns configured service", func() {
		svc, err := New(s.oracle)
		s.NoError(err)
		s.NotNil(svc)
	})
}

// =============================================================================
// Input Validation Tests
// =============================================================================

func (s *QuotaServiceSuite) TestEvaluateValidation() {
	ctx := context.Background()

	s.Run("empty user id", func() {
		_, err := s.service.Evaluate(ctx, "", s.speakerID, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("empty speaker id", func() {
		_, err := s.service.Evaluate(ctx, s.userID, "", 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("negative boost", func() {
		_, err := s.service.Evaluate(ctx, s.userID, s.speakerID, -1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

// =============================================================================
// Verdict Mapping Tests
// =============================================================================

func (s *QuotaServiceSuite) TestEvaluateTiers() {
	ctx := context.Background()

	tests := []struct {
		name          string
		decision      *models.QuotaDecision
		wantLimit     int
		wantRemaining int
		wantCanSend   bool
	}{
		{
			name: "general tier with slot left",
			decision: &models.QuotaDecision{
				PassType:          id.TicketGeneral,
				RemainingRequests: 1,
				CanRequest:        true,
			},
			wantLimit:     1,
			wantRemaining: 1,
			wantCanSend:   true,
		},
		{
			name: "business tier partially consumed",
			decision: &models.QuotaDecision{
				PassType:          id.TicketBusiness,
				RemainingRequests: 2,
				CanRequest:        true,
			},
			wantLimit:     3,
			wantRemaining: 2,
			wantCanSend:   true,
		},
		{
			name: "vip sentinel passes through untouched",
			decision: &models.QuotaDecision{
				PassType:          id.TicketVIP,
				RemainingRequests: id.UnlimitedRequests,
				CanRequest:        true,
			},
			wantLimit:     id.UnlimitedRequests,
			wantRemaining: id.UnlimitedRequests,
			wantCanSend:   true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.oracle.EXPECT().
				CanMakeMeetingRequest(gomock.Any(), s.userID, s.speakerID, 0).
				Return(tt.decision, nil)

			state, err := s.service.Evaluate(ctx, s.userID, s.speakerID, 0)
			s.Require().NoError(err)
			s.Equal(tt.wantLimit, state.RequestLimit)
			s.Equal(tt.wantRemaining, state.RemainingRequests)
			s.Equal(tt.wantCanSend, state.CanSendRequest)
		})
	}
}

func (s *QuotaServiceSuite) TestEvaluateZeroRemainingForcesDenial() {
	ctx := context.Background()

	// Oracle claims can_request=true but zero remaining; the evaluator must
	// not trust it, boost or no boost.
	s.oracle.EXPECT().
		CanMakeMeetingRequest(gomock.Any(), s.userID, s.speakerID, 50).
		Return(&models.QuotaDecision{
			PassType:          id.TicketGeneral,
			RemainingRequests: 0,
			CanRequest:        true,
		}, nil)

	state, err := s.service.Evaluate(ctx, s.userID, s.speakerID, 50)
	s.Require().NoError(err)
	s.False(state.CanSendRequest)
	s.Equal(0, state.RemainingRequests)
}

// =============================================================================
// Fail-Closed Tests
// =============================================================================

func (s *QuotaServiceSuite) TestEvaluateFailsClosed() {
	ctx := context.Background()

	s.Run("oracle error denies with the fail-closed reason", func() {
		s.oracle.EXPECT().
			CanMakeMeetingRequest(gomock.Any(), s.userID, s.speakerID, 0).
			Return(nil, dErrors.New(dErrors.CodeTimeout, "oracle timed out"))

		state, err := s.service.Evaluate(ctx, s.userID, s.speakerID, 0)
		s.Require().NoError(err, "oracle failure is a verdict, not an error")
		s.False(state.CanSendRequest)
		s.Equal(0, state.RemainingRequests)
		s.Equal(models.FailClosedReason, state.Reason)
	})

	s.Run("negative remaining denies with the fail-closed reason", func() {
		s.oracle.EXPECT().
			CanMakeMeetingRequest(gomock.Any(), s.userID, s.speakerID, 0).
			Return(&models.QuotaDecision{
				PassType:          id.TicketGeneral,
				RemainingRequests: -3,
				CanRequest:        true,
			}, nil)

		state, err := s.service.Evaluate(ctx, s.userID, s.speakerID, 0)
		s.Require().NoError(err)
		s.False(state.CanSendRequest)
		s.Equal(models.FailClosedReason, state.Reason)
	})

	s.Run("unknown pass type denies with the fail-closed reason", func() {
		s.oracle.EXPECT().
			CanMakeMeetingRequest(gomock.Any(), s.userID, s.speakerID, 0).
			Return(&models.QuotaDecision{
				PassType:          id.TicketType("platinum"),
				RemainingRequests: 5,
				CanRequest:        true,
			}, nil)

		state, err := s.service.Evaluate(ctx, s.userID, s.speakerID, 0)
		s.Require().NoError(err)
		s.False(state.CanSendRequest)
		s.Equal(models.FailClosedReason, state.Reason)
	})

	s.Run("nil verdict denies with the fail-closed reason", func() {
		s.oracle.EXPECT().
			CanMakeMeetingRequest(gomock.Any(), s.userID, s.speakerID, 0).
			Return(nil, nil)

		state, err := s.service.Evaluate(ctx, s.userID, s.speakerID, 0)
		s.Require().NoError(err)
		s.False(state.CanSendRequest)
		s.Equal(models.FailClosedReason, state.Reason)
	})
}

// =============================================================================
// Denial Passthrough Tests
// =============================================================================

func (s *QuotaServiceSuite) TestEvaluateKeepsOracleReason() {
	ctx := context.Background()

	s.oracle.EXPECT().
		CanMakeMeetingRequest(gomock.Any(), s.userID, s.speakerID, 0).
		Return(&models.QuotaDecision{
			PassType:          id.TicketBusiness,
			RemainingRequests: 0,
			CanRequest:        false,
			Reason:            "No active pass found",
		}, nil)

	state, err := s.service.Evaluate(ctx, s.userID, s.speakerID, 0)
	s.Require().NoError(err)
	s.False(state.CanSendRequest)
	s.Equal("No active pass found", state.Reason)
}
