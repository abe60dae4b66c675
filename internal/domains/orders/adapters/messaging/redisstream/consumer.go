package redisstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
)

// Consumer reads dispatch notifications from a Redis stream consumer group
// and feeds them to the order service. Entries are acknowledged after
// handoff; undecodable entries are acknowledged and dropped so they cannot
// wedge the group.
type Consumer struct {
	client  *redis.Client
	service ports.Service
	logger  *slog.Logger
	stream  string
	group   string
	name    string
	block   time.Duration
}

type ConsumerOption func(*Consumer)

func WithConsumerLogger(logger *slog.Logger) ConsumerOption {
	return func(c *Consumer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithGroup(group string) ConsumerOption {
	return func(c *Consumer) {
		if group != "" {
			c.group = group
		}
	}
}

func NewConsumer(client *redis.Client, service ports.Service, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		client:  client,
		service: service,
		logger:  slog.Default(),
		stream:  domain.OrderDispatchedStream,
		group:   "order-service",
		name:    "order-service-" + uuid.NewString(),
		block:   5 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Run consumes the dispatch stream until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("dispatch consumer not configured")
	}
	if err := c.ensureGroup(ctx); err != nil {
		return fmt.Errorf("create consumer group %q: %w", c.group, err)
	}

	in := make(chan domain.OrderDispatchedMessage)
	out := c.service.ConsumeDispatched(ctx, in)
	go func() {
		for order := range out {
			c.logger.InfoContext(ctx, "order dispatched",
				slog.Int64("order.id", order.ID), slog.Int64("order.version", order.Version))
		}
	}()
	defer close(in)

	c.logger.Info("consuming dispatch notifications",
		slog.String("stream", c.stream), slog.String("group", c.group), slog.String("consumer", c.name))
	for {
		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.name,
			Streams:  []string{c.stream, ">"},
			Count:    16,
			Block:    c.block,
		}).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			c.logger.Warn("dispatch stream read failed", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
				continue
			}
		}
		for _, stream := range streams {
			for _, entry := range stream.Messages {
				if done := c.handle(ctx, in, entry); done {
					return nil
				}
			}
		}
	}
}

// handle decodes one stream entry, hands it to the service, and acks it.
// It reports true when ctx was cancelled mid-handoff.
func (c *Consumer) handle(ctx context.Context, in chan<- domain.OrderDispatchedMessage, entry redis.XMessage) bool {
	msg, err := decodeDispatchedMessage(entry.Values)
	if err != nil {
		c.logger.Warn("dropping undecodable dispatch notification",
			slog.String("entry.id", entry.ID), slog.String("error", err.Error()))
		c.ack(ctx, entry.ID)
		return false
	}
	select {
	case in <- msg:
	case <-ctx.Done():
		return true
	}
	c.ack(ctx, entry.ID)
	return false
}

func (c *Consumer) ack(ctx context.Context, entryID string) {
	if err := c.client.XAck(ctx, c.stream, c.group, entryID).Err(); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("failed to ack dispatch notification",
			slog.String("entry.id", entryID), slog.String("error", err.Error()))
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && strings.Contains(err.Error(), "BUSYGROUP") {
		return nil
	}
	return err
}

// decodeDispatchedMessage parses a stream entry produced by Publisher.Send.
func decodeDispatchedMessage(values map[string]any) (domain.OrderDispatchedMessage, error) {
	raw, ok := values[payloadField].(string)
	if !ok || raw == "" {
		return domain.OrderDispatchedMessage{}, fmt.Errorf("entry has no %q field", payloadField)
	}
	var msg domain.OrderDispatchedMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return domain.OrderDispatchedMessage{}, fmt.Errorf("unmarshal dispatch payload: %w", err)
	}
	if msg.OrderID == 0 {
		return domain.OrderDispatchedMessage{}, errors.New("dispatch payload has no order id")
	}
	return msg, nil
}
