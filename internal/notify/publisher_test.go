package notify

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	msg := NewMessage(EventCreated, map[string]string{"event_id": "abc"})

	_, err := uuid.Parse(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, EventCreated, msg.Type)
	assert.False(t, msg.Timestamp.Before(before))
	assert.Equal(t, time.UTC, msg.Timestamp.Location())

	other := NewMessage(EventCreated, nil)
	assert.NotEqual(t, msg.ID, other.ID)
}

func TestMessage_JSONShape(t *testing.T) {
	t.Parallel()

	msg := NewMessage(EventDeleted, map[string]string{"event_id": "abc"})
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "event.deleted", decoded["type"])
	assert.Contains(t, decoded, "id")
	assert.Contains(t, decoded, "timestamp")
	assert.Equal(t, map[string]interface{}{"event_id": "abc"}, decoded["payload"])
}

func TestNop(t *testing.T) {
	t.Parallel()

	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), EventUpdated, nil))
	assert.NoError(t, p.Close())
}

func TestNewRedisPublisher_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisPublisher(context.Background(), RedisOptions{})
	require.Error(t, err)
}

func TestNewRedisPublisher_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisPublisher(context.Background(), RedisOptions{URL: "not-a-redis-url"})
	require.Error(t, err)
}

func TestNewRedisPublisher_DefaultChannel(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer func() { _ = client.Close() }()

	p := newRedisPublisher(client, "")
	assert.Equal(t, DefaultChannel, p.Channel())
}

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisPublisher_Publish(t *testing.T) {
	url := skipIfNoRedis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channel := "eventboard:test:" + uuid.New().String()
	p, err := NewRedisPublisher(ctx, RedisOptions{URL: url, Channel: channel})
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	sub := p.client.Subscribe(ctx, channel)
	defer func() { _ = sub.Close() }()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, EventCreated, map[string]string{"event_id": "abc"}))

	received, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(received.Payload), &msg))
	assert.Equal(t, EventCreated, msg.Type)
	assert.Equal(t, map[string]interface{}{"event_id": "abc"}, msg.Payload)
}
