package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"equisim/internal/model"
)

// SessionCache keeps hot session metadata and a live participant counter so
// joins and lookups skip MongoDB.
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, code string) (*model.Session, error)
	Delete(ctx context.Context, code string) error
	IncrParticipants(ctx context.Context, code string) (int64, error)
	ParticipantCount(ctx context.Context, code string) (int64, error)
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *sessionCache) sessionKey(code string) string {
	return fmt.Sprintf("session:%s:meta", code)
}

func (c *sessionCache) countKey(code string) string {
	return fmt.Sprintf("session:%s:participants", code)
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.sessionKey(session.Code), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, code string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.sessionKey(code)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, code string) error {
	return c.client.Del(ctx, c.sessionKey(code), c.countKey(code)).Err()
}

func (c *sessionCache) IncrParticipants(ctx context.Context, code string) (int64, error) {
	count, err := c.client.Incr(ctx, c.countKey(code)).Result()
	if err != nil {
		return 0, err
	}
	c.client.Expire(ctx, c.countKey(code), c.ttl)
	return count, nil
}

func (c *sessionCache) ParticipantCount(ctx context.Context, code string) (int64, error) {
	count, err := c.client.Get(ctx, c.countKey(code)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}
