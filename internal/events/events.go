// Package events publishes recruitment domain events for other HR modules.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel every recruitment event goes to.
const Channel = "recruitment.events"

// Event types
const (
	CandidateCreated      = "candidate.created"
	CandidateStageChanged = "candidate.stage_changed"
	CandidateHired        = "candidate.hired"
)

// Event is the JSON payload published after a committed change.
type Event struct {
	Type         string    `json:"type"`
	CandidateID  string    `json:"candidateId"`
	JobPostingID string    `json:"jobPostingId,omitempty"`
	FromStage    string    `json:"fromStage,omitempty"`
	ToStage      string    `json:"toStage,omitempty"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// RedisPublisher publishes events with PUBLISH on Channel.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher wraps an already connected client.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// Publish marshals ev and sends it.
func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Type, err)
	}
	if err := p.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Emit publishes ev and logs, rather than returns, a failure. Events are a
// side channel; a lost event never fails the request that caused it.
func Emit(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		slog.Warn("event publish failed", "type", ev.Type, "candidate_id", ev.CandidateID, "error", err)
	}
}
