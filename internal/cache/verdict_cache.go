package cache

import (
	"context"
	"strconv"
	"sync"
	"voicedetect/internal/model"

	"github.com/redis/go-redis/v9"
)

const verdictKey = "voicedetect:verdicts"

// VerdictCache keeps running totals of analysis outcomes. Only counts are
// stored, never audio or per-request data.
type VerdictCache interface {
	Increment(ctx context.Context, outcome model.Outcome) error
	Stats(ctx context.Context) (*model.VerdictStats, error)
}

type verdictCache struct {
	client *redis.Client
}

// NewVerdictCache creates a Redis-backed verdict counter
func NewVerdictCache(client *redis.Client) VerdictCache {
	return &verdictCache{
		client: client,
	}
}

func (c *verdictCache) Increment(ctx context.Context, outcome model.Outcome) error {
	return c.client.HIncrBy(ctx, verdictKey, string(outcome), 1).Err()
}

func (c *verdictCache) Stats(ctx context.Context) (*model.VerdictStats, error) {
	fields, err := c.client.HGetAll(ctx, verdictKey).Result()
	if err == redis.Nil {
		return &model.VerdictStats{}, nil
	}
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Outcome]int64, len(fields))
	for k, v := range fields {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		counts[model.Outcome(k)] = n
	}
	return statsFromCounts(counts), nil
}

type memoryVerdictCache struct {
	mu     sync.Mutex
	counts map[model.Outcome]int64
}

// NewMemoryVerdictCache creates a process-local verdict counter, used when
// Redis is not configured
func NewMemoryVerdictCache() VerdictCache {
	return &memoryVerdictCache{
		counts: make(map[model.Outcome]int64),
	}
}

func (c *memoryVerdictCache) Increment(ctx context.Context, outcome model.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[outcome]++
	return nil
}

func (c *memoryVerdictCache) Stats(ctx context.Context) (*model.VerdictStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return statsFromCounts(c.counts), nil
}

func statsFromCounts(counts map[model.Outcome]int64) *model.VerdictStats {
	stats := &model.VerdictStats{
		AIGenerated: counts[model.OutcomeAIGenerated],
		Human:       counts[model.OutcomeHuman],
		Failed:      counts[model.OutcomeFailed],
	}
	stats.Total = stats.AIGenerated + stats.Human + stats.Failed
	return stats
}
