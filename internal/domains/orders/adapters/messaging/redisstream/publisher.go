// Package redisstream adapts the order event ports to Redis Streams.
package redisstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/smartinix/order-service/internal/domains/orders/ports"
)

const (
	payloadField   = "payload"
	messageIDField = "messageId"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher appends events to a Redis stream. XADD only confirms the local
// enqueue; delivery to consumers is best effort by contract.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Send marshals the payload and appends it to the named stream.
func (p *Publisher) Send(ctx context.Context, stream string, payload any) error {
	if p == nil || p.client == nil {
		return errors.New("event publisher not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			messageIDField: uuid.NewString(),
			payloadField:   string(body),
		},
	}).Err()
}
