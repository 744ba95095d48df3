package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"invoicely.app/api/common/logger"
)

type ConsumerConfig struct {
	Stream       string        // Redis stream name
	Group        string        // Redis consumer group name
	Consumer     string        // Redis consumer name
	DLQStream    string        // Dead letter stream for tasks that exhausted their attempts
	BatchSize    int64         // Number of messages to read per batch
	Block        time.Duration // How long to block waiting for new messages
	MaxAttempts  int           // Attempts before a task is moved to the DLQ
	RequeueDelay time.Duration // Delay before a failed task is re-added
}

// Message is a Task as delivered to this consumer group.
type Message struct {
	ID             string
	TaskType       TaskType
	OrganizationID int64
	Payload        []byte
	Attempt        int
	TraceID        string
	LastError      string
	EnqueuedAt     time.Time
}

func (m Message) task() Task {
	return Task{
		Type:           m.TaskType,
		OrganizationID: m.OrganizationID,
		Payload:        m.Payload,
		TraceID:        m.TraceID,
		Attempt:        m.Attempt,
		EnqueuedAt:     m.EnqueuedAt,
		LastError:      m.LastError,
	}
}

// MessageProcessor processes a queue message.
type MessageProcessor func(ctx context.Context, msg Message) error

type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewRedisConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	consumer := &RedisConsumer{
		client: client,
		cfg:    cfg,
	}

	if err := consumer.ensureGroup(ctx); err != nil {
		return nil, err
	}

	return consumer, nil
}

func (c *RedisConsumer) Config() ConsumerConfig {
	return c.cfg
}

func (c *RedisConsumer) ensureGroup(ctx context.Context) error {
	// Start from "0" so tasks enqueued before the group existed are delivered.
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "invoicely.queue.consumer",
	})

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		// ">" only returns messages never delivered to this group. Unacked
		// deliveries are picked up by the reclaimer.
		Streams: []string{c.cfg.Stream, ">"},
		Count:   c.cfg.BatchSize,
		Block:   c.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var messages []Message
	for _, stream := range streams {
		for _, entry := range stream.Messages {
			msg, err := ParseMessage(entry)
			if err != nil {
				// Nothing can ever process it; retrying would only loop.
				slog.ErrorContext(ctx, "dropping malformed message",
					"error", err,
					"raw_message_id", entry.ID,
					"stream", c.cfg.Stream)
				_ = c.Ack(ctx, Message{ID: entry.ID})
				continue
			}
			messages = append(messages, msg)
		}
	}

	if len(messages) > 0 {
		slog.DebugContext(ctx, "read messages from stream",
			"count", len(messages),
			"stream", c.cfg.Stream,
			"consumer", c.cfg.Consumer)
	}

	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack (stream=%s): %w", c.cfg.Stream, err)
	}
	return nil
}

// Requeue re-adds msg with its attempt counter incremented and acks the
// original. Both happen in one MULTI so the task is never lost or doubled.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, errMsg string) error {
	if c.cfg.RequeueDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.RequeueDelay):
		}
	}

	next := msg.task()
	next.Attempt = msg.Attempt + 1
	next.LastError = errMsg

	if err := c.moveTo(ctx, c.cfg.Stream, msg.ID, next.values()); err != nil {
		return fmt.Errorf("requeue: %w", err)
	}

	slog.InfoContext(ctx, "message requeued for retry",
		"next_attempt", next.Attempt,
		"reason", errMsg)
	return nil
}

// SendDLQ moves msg to the dead letter stream with the final error.
func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	values := msg.task().values()
	values[fieldDLQError] = errMsg

	if err := c.moveTo(ctx, c.cfg.DLQStream, msg.ID, values); err != nil {
		return fmt.Errorf("dlq (stream=%s): %w", c.cfg.DLQStream, err)
	}

	slog.ErrorContext(ctx, "message sent to DLQ",
		"final_error", errMsg,
		"dlq_stream", c.cfg.DLQStream)
	return nil
}

func (c *RedisConsumer) moveTo(ctx context.Context, stream, ackID string, values map[string]any) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.XAdd(ctx, xaddArgs(stream, 0, values))
		pipe.XAck(ctx, c.cfg.Stream, c.cfg.Group, ackID)
		return nil
	})
	return err
}

// ParseMessage decodes a raw stream entry.
func ParseMessage(entry redis.XMessage) (Message, error) {
	t, err := decodeTask(entry.Values)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:             entry.ID,
		TaskType:       t.Type,
		OrganizationID: t.OrganizationID,
		Payload:        t.Payload,
		Attempt:        t.Attempt,
		TraceID:        t.TraceID,
		LastError:      t.LastError,
		EnqueuedAt:     t.EnqueuedAt,
	}, nil
}
