// Package cache is a read-through redis cache in front of the speaker
// resolver. Speaker data is read-mostly, so a short TTL keeps the remote
// sources quiet without risking stale meeting decisions; quota state is never
// cached here.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edcalderon/hashpass.tech/internal/speakers/models"
)

const (
	speakerKeyPrefix = "speakers:id:"
	listKey          = "speakers:list"
)

// SpeakerResolver is the upstream the cache reads through to.
type SpeakerResolver interface {
	ResolveSpeaker(ctx context.Context, speakerID string) (*models.Speaker, error)
	ResolveSpeakerList(ctx context.Context) ([]*models.Speaker, error)
}

// Cache serves speaker reads from redis, falling through to the resolver on
// miss or on any redis failure. Cache errors are logged and never surfaced.
type Cache struct {
	resolver SpeakerResolver
	redis    redis.Cmdable
	ttl      time.Duration
	logger   *slog.Logger
}

func New(resolver SpeakerResolver, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		resolver: resolver,
		redis:    rdb,
		ttl:      ttl,
		logger:   logger,
	}
}

func (c *Cache) ResolveSpeaker(ctx context.Context, speakerID string) (*models.Speaker, error) {
	key := speakerKeyPrefix + speakerID
	if cached, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var speaker models.Speaker
		if err := json.Unmarshal(cached, &speaker); err == nil {
			return &speaker, nil
		}
		c.logger.WarnContext(ctx, "dropping undecodable cached speaker", "speaker_id", speakerID)
		c.redis.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "speaker cache read failed", "error", err.Error())
	}

	speaker, err := c.resolver.ResolveSpeaker(ctx, speakerID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(speaker); err == nil {
		if err := c.redis.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "speaker cache write failed", "error", err.Error())
		}
	}
	return speaker, nil
}

func (c *Cache) ResolveSpeakerList(ctx context.Context) ([]*models.Speaker, error) {
	if cached, err := c.redis.Get(ctx, listKey).Bytes(); err == nil {
		var speakers []*models.Speaker
		if err := json.Unmarshal(cached, &speakers); err == nil {
			return speakers, nil
		}
		c.redis.Del(ctx, listKey)
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "speaker list cache read failed", "error", err.Error())
	}

	speakers, err := c.resolver.ResolveSpeakerList(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(speakers); err == nil {
		if err := c.redis.Set(ctx, listKey, encoded, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "speaker list cache write failed", "error", err.Error())
		}
	}
	return speakers, nil
}
