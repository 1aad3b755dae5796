//go:build integration

package cache_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/edcalderon/hashpass.tech/internal/speakers/cache"
	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
	"github.com/edcalderon/hashpass.tech/pkg/testutil/containers"
)

// countingResolver serves a fixed catalog and counts upstream hits so tests
// can tell cache hits from fall-throughs.
type countingResolver struct {
	speakers map[string]*models.Speaker
	getCalls atomic.Int32
	lstCalls atomic.Int32
}

func (r *countingResolver) ResolveSpeaker(_ context.Context, speakerID string) (*models.Speaker, error) {
	r.getCalls.Add(1)
	if speaker, ok := r.speakers[speakerID]; ok {
		clone := *speaker
		return &clone, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "speaker not found")
}

func (r *countingResolver) ResolveSpeakerList(context.Context) ([]*models.Speaker, error) {
	r.lstCalls.Add(1)
	out := make([]*models.Speaker, 0, len(r.speakers))
	for _, speaker := range r.speakers {
		clone := *speaker
		out = append(out, &clone)
	}
	return out, nil
}

type CacheSuite struct {
	suite.Suite
	redis    *containers.RedisContainer
	resolver *countingResolver
	cache    *cache.Cache
}

func TestCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.resolver = &countingResolver{
		speakers: map[string]*models.Speaker{
			"spk-elena-vargas": {ID: "spk-elena-vargas", Name: "Elena Vargas", Company: "Andina Capital"},
		},
	}
	s.cache = cache.New(s.resolver, s.redis.Client, time.Minute, slog.New(slog.DiscardHandler))
}

func (s *CacheSuite) TestSecondReadServedFromCache() {
	ctx := context.Background()

	first, err := s.cache.ResolveSpeaker(ctx, "spk-elena-vargas")
	s.Require().NoError(err)
	s.Equal("Elena Vargas", first.Name)
	s.Equal(int32(1), s.resolver.getCalls.Load())

	second, err := s.cache.ResolveSpeaker(ctx, "spk-elena-vargas")
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(int32(1), s.resolver.getCalls.Load(), "second read must not hit the upstream")
}

func (s *CacheSuite) TestResolverErrorsAreNotCached() {
	ctx := context.Background()

	_, err := s.cache.ResolveSpeaker(ctx, "spk-missing")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.cache.ResolveSpeaker(ctx, "spk-missing")
	s.Require().Error(err)
	s.Equal(int32(2), s.resolver.getCalls.Load())
}

func (s *CacheSuite) TestUndecodableEntryIsDroppedAndRefetched() {
	ctx := context.Background()

	err := s.redis.Client.Set(ctx, "speakers:id:spk-elena-vargas", "{not json", time.Minute).Err()
	s.Require().NoError(err)

	got, err := s.cache.ResolveSpeaker(ctx, "spk-elena-vargas")
	s.Require().NoError(err)
	s.Equal("Elena Vargas", got.Name)
	s.Equal(int32(1), s.resolver.getCalls.Load())

	exists, err := s.redis.Client.Exists(ctx, "speakers:id:spk-elena-vargas").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists, "refetch should repopulate the key")
}

func (s *CacheSuite) TestListRoundTrip() {
	ctx := context.Background()

	speakers, err := s.cache.ResolveSpeakerList(ctx)
	s.Require().NoError(err)
	s.Len(speakers, 1)
	s.Equal(int32(1), s.resolver.lstCalls.Load())

	cached, err := s.cache.ResolveSpeakerList(ctx)
	s.Require().NoError(err)
	s.Len(cached, 1)
	s.Equal(int32(1), s.resolver.lstCalls.Load())
}

func (s *CacheSuite) TestExpiredEntryFallsThrough() {
	ctx := context.Background()
	shortLived := cache.New(s.resolver, s.redis.Client, 50*time.Millisecond, slog.New(slog.DiscardHandler))

	_, err := shortLived.ResolveSpeaker(ctx, "spk-elena-vargas")
	s.Require().NoError(err)

	time.Sleep(100 * time.Millisecond)

	_, err = shortLived.ResolveSpeaker(ctx, "spk-elena-vargas")
	s.Require().NoError(err)
	s.Equal(int32(2), s.resolver.getCalls.Load())
}
