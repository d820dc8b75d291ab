// Package cache manages the Redis connection and the per-session action
// history stream used for replay and debugging.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the shared Redis client. Nil when Redis is not configured; callers
// must nil-check before publishing.
var Rdb *redis.Client

// historyCap bounds the per-session action list so an idle server never
// accumulates unbounded history.
const historyCap = 1000

// Connect initializes the shared client from a Redis URL and verifies the
// connection with a ping.
func Connect(ctx context.Context, url string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	Rdb = client
	logrus.Info("connected to redis")
	return nil
}

// ActionRecord is one entry in a session's action history.
type ActionRecord struct {
	SessionID   string `json:"session_id"`
	ActionIndex int    `json:"action_index"`
	Action      string `json:"action"`
	Amount      int    `json:"amount,omitempty"`
	Phase       string `json:"phase"`
	Chips       int    `json:"chips"`
	Timestamp   int64  `json:"timestamp"`
}

func historyKey(sessionID string) string {
	return "blackjack:actions:" + sessionID
}

// PublishActionRecord appends a record to the session's history list and
// trims it to the cap.
func PublishActionRecord(ctx context.Context, rec ActionRecord) error {
	if Rdb == nil {
		return fmt.Errorf("redis client not initialized")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	key := historyKey(rec.SessionID)
	pipe := Rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -historyCap, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish action record: %w", err)
	}
	return nil
}

// SessionHistory returns the recorded actions for a session, oldest first.
func SessionHistory(ctx context.Context, sessionID string) ([]ActionRecord, error) {
	if Rdb == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}
	raw, err := Rdb.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read action history: %w", err)
	}
	records := make([]ActionRecord, 0, len(raw))
	for _, item := range raw {
		var rec ActionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			logrus.WithError(err).Warn("skipping malformed action record")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
