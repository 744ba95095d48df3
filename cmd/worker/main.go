package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"invoicely.app/api/common/id"
	"invoicely.app/api/common/logger"
	"invoicely.app/api/common/otel"
	"invoicely.app/api/core/config"
	"invoicely.app/api/core/db"
	"invoicely.app/api/internal/mailer"
	"invoicely.app/api/internal/queue"
	"invoicely.app/api/internal/service"
	"invoicely.app/api/internal/store"
	"invoicely.app/api/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "invoicely worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Notifications.RedisGroup,
		"consumer_name", cfg.Notifications.RedisConsumer,
		"smtp_enabled", cfg.SMTP.Enabled())

	// Different node ID than the server so in-app notification ids never collide
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Notifications.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Notifications.RedisStream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Notifications.RedisStream,
		Group:        cfg.Notifications.RedisGroup,
		Consumer:     cfg.Notifications.RedisConsumer,
		DLQStream:    cfg.Notifications.RedisDLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Worker.MaxAttempts,
		RequeueDelay: cfg.Worker.RequeueDelay,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := worker.NewMetrics(registry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to register worker metrics", "error", err)
		os.Exit(1)
	}

	var sender mailer.Sender = mailer.NopSender()
	if cfg.SMTP.Enabled() {
		sender = mailer.NewSMTPSender(cfg.SMTP)
	} else {
		slog.WarnContext(ctx, "SMTP_HOST not set, emails will be logged and dropped")
	}

	stores := store.NewStores(database.Queries())
	txRunner := service.NewTxRunner(database)

	dispatcher := worker.NewDispatcher(
		stores.Organizations(),
		stores.Memberships(),
		txRunner,
		sender,
		mailer.NewRenderer(cfg.DashboardURL, time.Now),
		metrics,
		worker.DispatcherConfig{
			DeliveryRetries: cfg.Worker.DeliveryRetries,
			Timeout:         cfg.Worker.DispatchTimeout,
		},
	)

	w := worker.New(consumer, dispatcher, metrics, worker.Config{
		MaxAttempts: cfg.Worker.MaxAttempts,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Notifications.RedisStream,
		Group:     cfg.Notifications.RedisGroup,
		Consumer:  cfg.Notifications.RedisConsumer + "-reclaimer",
		MinIdle:   cfg.Worker.ReclaimMinIdle,
		Interval:  cfg.Worker.ReclaimInterval,
		BatchSize: 10,
	}, consumer, w.Handle, metrics)

	invitations := service.NewInvitationService(
		stores.Memberships(),
		stores.Organizations(),
		txRunner,
		nil,
		cfg.Invitations.Expiry(),
		time.Now,
	)
	scheduler, err := worker.NewScheduler(invitations, cfg.Invitations.CleanupSchedule, time.Minute, metrics)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create scheduler", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	metricsServer := &http.Server{
		Addr:              cfg.Worker.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.InfoContext(ctx, "metrics server starting", "addr", cfg.Worker.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()
	scheduler.Start()

	slog.InfoContext(ctx, "worker initialized and running",
		"cleanup_schedule", cfg.Invitations.CleanupSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// The worker may be mid-delivery; DispatchTimeout bounds how long Stop waits.
	scheduler.Stop(shutdownCtx)
	reclaimer.Stop()
	w.Stop()

	// Both loops have returned once Stop does; collect their results.
	for range 2 {
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "metrics server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 _                 _           _
(_)_ ____   _____ (_) ___ ___ | |_   _
| | '_ \ \ / / _ \| |/ __/ _ \| | | | |
| | | | \ V / (_) | | (_|  __/| | |_| |
|_|_| |_|\_/ \___/|_|\___\___||_|\__, |  worker
                                 |___/
`
