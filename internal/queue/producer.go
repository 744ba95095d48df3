package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Enqueue(ctx context.Context, task Task) error
	Close() error
}

type ProducerConfig struct {
	Stream string
	// MaxLen caps the stream with approximate trimming. Zero keeps every
	// entry; acknowledged entries are never needed again.
	MaxLen int64
}

type redisProducer struct {
	client *redis.Client
	cfg    ProducerConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewRedisProducer(client *redis.Client, cfg ProducerConfig, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, task Task) error {
	if !task.Type.Valid() {
		return fmt.Errorf("enqueue task: unknown task_type %q", task.Type)
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = p.now()
	}

	id, err := p.client.XAdd(ctx, xaddArgs(p.cfg.Stream, p.cfg.MaxLen, task.values())).Result()
	if err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued notification task",
		"task_type", task.Type,
		"organization_id", task.OrganizationID,
		"message_id", id)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func xaddArgs(stream string, maxLen int64, values map[string]any) *redis.XAddArgs {
	args := &redis.XAddArgs{Stream: stream, Values: values}
	if maxLen > 0 {
		args.MaxLen = maxLen
		args.Approx = true
	}
	return args
}
