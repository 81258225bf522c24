package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Change types published for event records
const (
	EventCreated = "event.created"
	EventUpdated = "event.updated"
	EventDeleted = "event.deleted"
)

// DefaultChannel is the pub/sub channel used when none is configured
const DefaultChannel = "eventboard:events"

// Message is the envelope written to the channel
type Message struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Publisher sends change notifications
type Publisher interface {
	Publish(ctx context.Context, changeType string, payload interface{}) error
	Close() error
}

// NewMessage wraps a payload in a fresh envelope
func NewMessage(changeType string, payload interface{}) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      changeType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// RedisOptions configures the Redis publisher
type RedisOptions struct {
	URL            string
	Channel        string
	ConnectTimeout time.Duration
}

// RedisPublisher publishes messages with Redis PUBLISH
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis and verifies the connection
func NewRedisPublisher(ctx context.Context, opts RedisOptions) (*RedisPublisher, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return newRedisPublisher(client, opts.Channel), nil
}

func newRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Channel returns the channel messages are published on
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// Publish serializes the payload into a Message and publishes it
func (p *RedisPublisher) Publish(ctx context.Context, changeType string, payload interface{}) error {
	data, err := json.Marshal(NewMessage(changeType, payload))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	return nil
}

// Close releases the Redis connection pool
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Nop discards every message
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, string, interface{}) error { return nil }

// Close implements Publisher
func (Nop) Close() error { return nil }
