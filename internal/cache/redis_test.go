package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techplug_back_end/internal/storefront"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "storefront:cart", Channel(storefront.TopicCart))
	assert.Equal(t, "storefront:orders", Channel(storefront.TopicOrders))
}

func TestPublisher_Observe(t *testing.T) {
	_, client := newRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, Channel(storefront.TopicCart))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	NewPublisher(client, zap.NewNop()).Observe(storefront.Event{
		Topic: storefront.TopicCart, Action: storefront.ActionCreated, ID: "p1", At: at,
	})

	select {
	case msg := <-sub.Channel():
		var got storefront.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "p1", got.ID)
		assert.Equal(t, storefront.ActionCreated, got.Action)
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
	}

	stamp, err := client.Get(ctx, "cart:updated_at").Int64()
	require.NoError(t, err)
	assert.Equal(t, at.Unix(), stamp)
}

func TestLimiter_Hit(t *testing.T) {
	mr, client := newRedis(t)
	l := NewLimiter(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := l.Hit(ctx, "api_requests:10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	assert.Equal(t, time.Minute, mr.TTL("api_requests:10.0.0.1"))

	mr.FastForward(2 * time.Minute)
	n, err := l.Hit(ctx, "api_requests:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLimiter_HitDoesNotSlideWindow(t *testing.T) {
	mr, client := newRedis(t)
	l := NewLimiter(client)
	ctx := context.Background()

	// One hit every 30s for ten minutes never counts more than two per window.
	for i := 0; i < 20; i++ {
		n, err := l.Hit(ctx, "api_requests:10.0.0.2", time.Minute)
		require.NoError(t, err)
		assert.LessOrEqual(t, n, int64(2), "hit %d", i)
		mr.FastForward(30 * time.Second)
	}
}

func TestPublisher_DownServerIsLogged(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()

	assert.NotPanics(t, func() {
		NewPublisher(client, zap.NewNop()).Observe(storefront.Event{Topic: storefront.TopicOrders})
	})
}
