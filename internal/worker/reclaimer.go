package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/queue"
)

type RedisReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// RedisReclaimer claims tasks left pending by a worker that died between
// XREADGROUP and XACK, and hands them to handle.
type RedisReclaimer struct {
	client   *redis.Client
	cfg      RedisReclaimerConfig
	consumer Consumer
	handle   queue.MessageProcessor
	metrics  *Metrics

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewRedisReclaimer(client *redis.Client, cfg RedisReclaimerConfig, consumer Consumer, handle queue.MessageProcessor, metrics *Metrics) *RedisReclaimer {
	return &RedisReclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		handle:    handle,
		metrics:   metrics,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run reclaims on every tick until Stop is called or ctx ends.
func (r *RedisReclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "invoicely.worker.reclaimer",
	})

	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle,
		"stream", r.cfg.Stream)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			if _, err := r.ReclaimOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "reclaim cycle error", "error", err)
			}
		}
	}
}

func (r *RedisReclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// ReclaimOnce walks the group's pending list once with XAUTOCLAIM and
// reports how many stale messages it took over. Handler failures are logged
// and do not stop the walk; the handler settles retries itself.
func (r *RedisReclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	claimed := 0
	cursor := "0-0"
	for {
		entries, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    cursor,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return claimed, fmt.Errorf("xautoclaim: %w", err)
		}

		for _, entry := range entries {
			r.reclaim(ctx, entry)
		}
		claimed += len(entries)

		if next == "0-0" || next == "" || len(entries) == 0 {
			break
		}
		cursor = next
	}

	if claimed > 0 {
		r.metrics.recordReclaimed(claimed)
		slog.InfoContext(ctx, "reclaimed stale messages", "count", claimed)
	}
	return claimed, nil
}

func (r *RedisReclaimer) reclaim(ctx context.Context, entry redis.XMessage) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: logger.Ptr(entry.ID),
	})

	msg, err := queue.ParseMessage(entry)
	if err != nil {
		slog.ErrorContext(ctx, "dropping malformed reclaimed message", "error", err)
		_ = r.consumer.Ack(ctx, queue.Message{ID: entry.ID})
		return
	}

	if err := r.handle(ctx, msg); err != nil {
		slog.WarnContext(ctx, "reclaimed message failed again", "error", err, "attempt", msg.Attempt)
	}
}
