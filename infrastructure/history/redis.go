// Package history implements conversation-history stores.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devradar/devradar/domain/chat"
)

// redisEntry is the wire form of one exchange.
type redisEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RedisHistory keeps session history in a Redis list with a sliding TTL.
type RedisHistory struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisHistory creates a RedisHistory.
func NewRedisHistory(client *redis.Client, ttl time.Duration) *RedisHistory {
	return &RedisHistory{client: client, ttl: ttl}
}

// Ping verifies the Redis connection.
func (h *RedisHistory) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func (h *RedisHistory) key(sessionID string) string {
	return "chat:history:" + sessionID
}

// Append records one exchange and refreshes the session TTL.
func (h *RedisHistory) Append(ctx context.Context, sessionID string, exchange chat.Exchange) error {
	data, err := json.Marshal(redisEntry{
		Question: exchange.Question(),
		Answer:   exchange.Answer(),
	})
	if err != nil {
		return fmt.Errorf("encode exchange: %w", err)
	}

	key := h.key(sessionID)
	pipe := h.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append exchange: %w", err)
	}
	return nil
}

// Recent returns up to n most recent exchanges, oldest first.
func (h *RedisHistory) Recent(ctx context.Context, sessionID string, n int) ([]chat.Exchange, error) {
	if n <= 0 {
		return nil, nil
	}

	items, err := h.client.LRange(ctx, h.key(sessionID), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	out := make([]chat.Exchange, 0, len(items))
	for _, item := range items {
		var entry redisEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		out = append(out, chat.NewExchange(entry.Question, entry.Answer))
	}
	return out, nil
}

// Clear drops the session history.
func (h *RedisHistory) Clear(ctx context.Context, sessionID string) error {
	if err := h.client.Del(ctx, h.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

var _ chat.HistoryStore = (*RedisHistory)(nil)
