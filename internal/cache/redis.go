package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"techplug_back_end/internal/storefront"
)

const channelPrefix = "storefront:"

// Channel is the pub/sub channel that carries events of one topic.
func Channel(topic storefront.Topic) string {
	return channelPrefix + string(topic)
}

// Publisher forwards facade events to Redis so other instances and dashboards
// can follow the storefront.
type Publisher struct {
	client  redis.Cmdable
	logger  *zap.Logger
	timeout time.Duration
}

func NewPublisher(client redis.Cmdable, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, logger: logger, timeout: 3 * time.Second}
}

// Observe is a storefront.Observer.
func (p *Publisher) Observe(e storefront.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		p.logger.Error("marshal storefront event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, Channel(e.Topic), payload)
	if e.Topic == storefront.TopicCart {
		pipe.Set(ctx, "cart:updated_at", e.At.Unix(), 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		p.logger.Warn("redis publish failed",
			zap.String("topic", string(e.Topic)),
			zap.String("action", string(e.Action)),
			zap.Error(err))
	}
}

// Limiter counts hits per key inside a fixed window.
type Limiter struct {
	client redis.Cmdable
}

func NewLimiter(client redis.Cmdable) *Limiter {
	return &Limiter{client: client}
}

// Hit increments key and returns the count inside the current window. The
// window starts with the first hit and is not extended by later ones.
func (l *Limiter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return n, nil
}
