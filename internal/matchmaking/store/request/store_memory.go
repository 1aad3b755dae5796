package request

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edcalderon/hashpass.tech/internal/matchmaking/models"
	id "github.com/edcalderon/hashpass.tech/pkg/domain"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// InMemoryRequestStore keeps meeting requests in process memory. Used in
// development and tests; it enforces the same invariants as the Postgres
// store, including the single-active-request conflict on Create.
type InMemoryRequestStore struct {
	mu       sync.RWMutex
	requests map[id.RequestID]*models.MeetingRequest
}

func New() *InMemoryRequestStore {
	return &InMemoryRequestStore{
		requests: make(map[id.RequestID]*models.MeetingRequest),
	}
}

func (s *InMemoryRequestStore) Create(_ context.Context, request *models.MeetingRequest) error {
	if request == nil {
		return dErrors.New(dErrors.CodeInternal, "meeting request is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[request.ID]; exists {
		return dErrors.New(dErrors.CodeConflict, "meeting request already exists")
	}
	for _, existing := range s.requests {
		if existing.RequesterID == request.RequesterID &&
			existing.SpeakerID == request.SpeakerID &&
			existing.Status.IsActive() {
			return dErrors.New(dErrors.CodeConflict, "an active meeting request to this speaker already exists")
		}
	}

	clone := *request
	s.requests[request.ID] = &clone
	return nil
}

func (s *InMemoryRequestStore) Get(_ context.Context, requestID id.RequestID) (*models.MeetingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, exists := s.requests[requestID]
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "meeting request not found")
	}
	clone := *request
	return &clone, nil
}

func (s *InMemoryRequestStore) FindActive(_ context.Context, requesterID id.UserID, speakerID id.SpeakerID) (*models.MeetingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, request := range s.requests {
		if request.RequesterID == requesterID &&
			request.SpeakerID == speakerID &&
			request.Status.IsActive() {
			clone := *request
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *InMemoryRequestStore) FindByIdempotencyKey(_ context.Context, requesterID id.UserID, key string) (*models.MeetingRequest, error) {
	if key == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, request := range s.requests {
		if request.RequesterID == requesterID && request.IdempotencyKey == key {
			clone := *request
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *InMemoryRequestStore) ListCancelled(_ context.Context, requesterID id.UserID, speakerID id.SpeakerID) ([]*models.MeetingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.MeetingRequest
	for _, request := range s.requests {
		if request.RequesterID == requesterID &&
			request.SpeakerID == speakerID &&
			request.Status == models.StatusCancelled {
			clone := *request
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryRequestStore) Cancel(_ context.Context, requestID id.RequestID, requesterID id.UserID, now time.Time) (*models.MeetingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, exists := s.requests[requestID]
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "meeting request not found")
	}
	if request.RequesterID != requesterID {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "meeting request belongs to another requester")
	}
	if request.Status != models.StatusPending {
		return nil, dErrors.Newf(dErrors.CodeConflict, "meeting request is %s, only pending requests can be cancelled", request.Status)
	}

	request.Status = models.StatusCancelled
	request.UpdatedAt = now

	clone := *request
	return &clone, nil
}

func (s *InMemoryRequestStore) CountConsumed(_ context.Context, requesterID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, request := range s.requests {
		if request.RequesterID == requesterID {
			count++
		}
	}
	return count, nil
}

// SeedApproved marks a request approved. Test helper standing in for the
// speaker-side approval flow, which lives outside this service.
func (s *InMemoryRequestStore) SeedApproved(requestID id.RequestID, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if request, exists := s.requests[requestID]; exists {
		request.Status = models.StatusApproved
		request.UpdatedAt = now
	}
}
