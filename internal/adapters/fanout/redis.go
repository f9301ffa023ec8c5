package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"seatreservation/internal/domain"
)

// DefaultRedisChannelPrefix prefixes the per-event pub/sub channels.
const DefaultRedisChannelPrefix = "seats:event:"

// RedisPublisher broadcasts seat messages on a per-event Redis channel so every instance
// running a RedisRelay sees them.
type RedisPublisher struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisPublisher(client redis.UniversalClient, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultRedisChannelPrefix
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

func (p *RedisPublisher) Publish(ctx context.Context, msg domain.SeatStatusMessage) error {
	body, err := encodeMessage(msg)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.prefix+msg.EventID, body).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// RedisRelay subscribes to every event channel and republishes into a local publisher, usually the Hub.
type RedisRelay struct {
	client redis.UniversalClient
	prefix string
	local  domain.SeatEventPublisher
	logger *slog.Logger
}

func NewRedisRelay(client redis.UniversalClient, prefix string, local domain.SeatEventPublisher, logger *slog.Logger) *RedisRelay {
	if prefix == "" {
		prefix = DefaultRedisChannelPrefix
	}
	return &RedisRelay{client: client, prefix: prefix, local: local, logger: logger}
}

// Run relays messages until ctx is cancelled. go-redis re-establishes the subscription after
// connection loss on its own.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, r.prefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis psubscribe: %w", err)
	}
	r.logger.Info("redis seat relay subscribed", "pattern", r.prefix+"*")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			r.handle(ctx, m)
		}
	}
}

func (r *RedisRelay) handle(ctx context.Context, m *redis.Message) {
	msg, err := decodeMessage([]byte(m.Payload))
	if err != nil {
		r.logger.Warn("discarding malformed seat message", "channel", m.Channel, "error", err)
		return
	}
	if want := strings.TrimPrefix(m.Channel, r.prefix); want != msg.EventID {
		r.logger.Warn("seat message event does not match channel", "channel", m.Channel, "event_id", msg.EventID)
		return
	}
	_ = r.local.Publish(ctx, msg)
}
