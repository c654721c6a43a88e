package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"equisim/internal/model"
)

// cachedInsights pairs the aggregate weights with the insights they came
// from, so both are always read and invalidated together.
type cachedInsights struct {
	Weights  model.ObjectiveWeights  `json:"weights"`
	Insights model.CommunityInsights `json:"insights"`
}

// InsightCache handles Redis operations for community aggregation results.
// Entries are invalidated whenever the session's response set changes.
type InsightCache interface {
	Get(ctx context.Context, sessionCode string) (*model.ObjectiveWeights, *model.CommunityInsights, error)
	Set(ctx context.Context, sessionCode string, weights model.ObjectiveWeights, insights model.CommunityInsights) error
	Invalidate(ctx context.Context, sessionCode string) error
}

type insightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates a new insight cache
func NewInsightCache(client *redis.Client) InsightCache {
	return &insightCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *insightCache) key(sessionCode string) string {
	return fmt.Sprintf("session:%s:insights", sessionCode)
}

func (c *insightCache) Get(ctx context.Context, sessionCode string) (*model.ObjectiveWeights, *model.CommunityInsights, error) {
	data, err := c.client.Get(ctx, c.key(sessionCode)).Result()
	if err == redis.Nil {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var cached cachedInsights
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, nil, err
	}
	return &cached.Weights, &cached.Insights, nil
}

func (c *insightCache) Set(ctx context.Context, sessionCode string, weights model.ObjectiveWeights, insights model.CommunityInsights) error {
	data, err := json.Marshal(cachedInsights{Weights: weights, Insights: insights})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(sessionCode), data, c.ttl).Err()
}

func (c *insightCache) Invalidate(ctx context.Context, sessionCode string) error {
	return c.client.Del(ctx, c.key(sessionCode)).Err()
}
