package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"equisim/internal/model"
)

// DecisionCache handles Redis operations for recommendation results, so a
// repeated run with unchanged inputs is served without re-simulating.
type DecisionCache interface {
	Get(ctx context.Context, sessionCode, participantID string) (*model.Recommendation, error)
	Set(ctx context.Context, rec *model.Recommendation) error
	Invalidate(ctx context.Context, sessionCode, participantID string) error
}

type decisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDecisionCache creates a new decision cache
func NewDecisionCache(client *redis.Client) DecisionCache {
	return &decisionCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

// community runs cache under a fixed marker instead of a participant ID
func (c *decisionCache) key(sessionCode, participantID string) string {
	if participantID == "" {
		participantID = "community"
	}
	return fmt.Sprintf("session:%s:rec:%s", sessionCode, participantID)
}

func (c *decisionCache) Get(ctx context.Context, sessionCode, participantID string) (*model.Recommendation, error) {
	data, err := c.client.Get(ctx, c.key(sessionCode, participantID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec model.Recommendation
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *decisionCache) Set(ctx context.Context, rec *model.Recommendation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(rec.SessionCode, rec.ParticipantID), data, c.ttl).Err()
}

func (c *decisionCache) Invalidate(ctx context.Context, sessionCode, participantID string) error {
	return c.client.Del(ctx, c.key(sessionCode, participantID)).Err()
}
