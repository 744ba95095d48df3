package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/service"
)

// Scheduler runs periodic maintenance jobs on a cron schedule in UTC.
type Scheduler struct {
	cron        *cron.Cron
	invitations service.InvitationService
	metrics     *Metrics
	timeout     time.Duration
}

func NewScheduler(invitations service.InvitationService, cleanupSchedule string, timeout time.Duration, metrics *Metrics) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		invitations: invitations,
		metrics:     metrics,
		timeout:     timeout,
	}

	if _, err := s.cron.AddFunc(cleanupSchedule, s.runCleanup); err != nil {
		return nil, fmt.Errorf("scheduling invitation cleanup %q: %w", cleanupSchedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) runCleanup() {
	ctx := logger.WithLogFields(context.Background(), logger.LogFields{
		Component: "invoicely.worker.scheduler",
	})
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if _, err := s.CleanupInvitations(ctx); err != nil {
		slog.ErrorContext(ctx, "scheduled invitation cleanup failed", "error", err)
	}
}

// CleanupInvitations deletes every expired pending invitation across all
// organizations.
func (s *Scheduler) CleanupInvitations(ctx context.Context) (int, error) {
	removed, err := s.invitations.CleanupExpiredAll(ctx)
	if err != nil {
		return 0, err
	}
	s.metrics.invitationsExpired.Add(float64(removed))
	slog.InfoContext(ctx, "expired invitations cleaned up", "removed", removed)
	return removed, nil
}
