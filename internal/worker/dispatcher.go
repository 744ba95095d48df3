package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"

	"invoicely.app/api/common/id"
	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/mailer"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/queue"
	"invoicely.app/api/internal/service"
	"invoicely.app/api/internal/store"
)

// ErrPermanent marks a task that will never succeed, so it goes straight to
// the DLQ.
var ErrPermanent = errors.New("permanent task failure")

type DispatcherConfig struct {
	// DeliveryRetries bounds in-process SMTP retries before the task is
	// requeued.
	DeliveryRetries uint64
	Timeout         time.Duration
}

// Dispatcher delivers invitation emails and fans organization notifications
// out to members.
type Dispatcher struct {
	orgs        store.OrganizationStore
	memberships store.MembershipStore
	txRunner    service.TxRunner
	sender      mailer.Sender
	renderer    *mailer.Renderer
	metrics     *Metrics
	cfg         DispatcherConfig
	now         func() time.Time
}

func NewDispatcher(
	orgs store.OrganizationStore,
	memberships store.MembershipStore,
	txRunner service.TxRunner,
	sender mailer.Sender,
	renderer *mailer.Renderer,
	metrics *Metrics,
	cfg DispatcherConfig,
) *Dispatcher {
	return &Dispatcher{
		orgs:        orgs,
		memberships: memberships,
		txRunner:    txRunner,
		sender:      sender,
		renderer:    renderer,
		metrics:     metrics,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (d *Dispatcher) Process(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: logger.Ptr(msg.OrganizationID),
		TaskType:       logger.Ptr(string(msg.TaskType)),
		Component:      "invoicely.worker.dispatcher",
	})

	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		d.metrics.dispatchDuration.WithLabelValues(string(msg.TaskType)).Observe(time.Since(start).Seconds())
	}()

	switch msg.TaskType {
	case queue.TaskTypeInvitationEmail:
		return d.sendInvitation(ctx, msg)
	case queue.TaskTypeOrganizationNotification:
		return d.notifyOrganization(ctx, msg)
	}
	return fmt.Errorf("%w: unknown task type %q", ErrPermanent, msg.TaskType)
}

func (d *Dispatcher) sendInvitation(ctx context.Context, msg queue.Message) error {
	var email service.InvitationEmail
	if err := json.Unmarshal(msg.Payload, &email); err != nil {
		return fmt.Errorf("%w: decoding invitation email: %v", ErrPermanent, err)
	}

	if email.ExpiresAt.Before(d.now()) {
		slog.InfoContext(ctx, "skipping email for expired invitation", "expires_at", email.ExpiresAt)
		return nil
	}

	m, err := d.renderer.Invitation(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermanent, err)
	}

	if err := d.deliver(ctx, "invitation", m); err != nil {
		return err
	}

	slog.InfoContext(ctx, "invitation email sent", "role", email.Role)
	return nil
}

func (d *Dispatcher) notifyOrganization(ctx context.Context, msg queue.Message) error {
	var n service.OrganizationNotification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		return fmt.Errorf("%w: decoding organization notification: %v", ErrPermanent, err)
	}

	org, err := d.orgs.GetByID(ctx, n.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "organization gone, dropping notification", "type", n.Type)
			return nil
		}
		return fmt.Errorf("getting organization: %w", err)
	}

	members, err := d.memberships.ListActiveMembers(ctx, n.OrganizationID)
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}
	recipients := Recipients(members, n.ExcludeRoles, n.ExcludeUserIDs)
	if len(recipients) == 0 {
		slog.DebugContext(ctx, "no recipients for notification", "type", n.Type)
		return nil
	}

	channels := n.Channels
	if len(channels) == 0 {
		channels = []model.NotificationChannel{model.ChannelInApp}
	}

	if slices.Contains(channels, model.ChannelInApp) {
		if err := d.writeInApp(ctx, n, recipients); err != nil {
			return err
		}
	}

	if slices.Contains(channels, model.ChannelEmail) {
		var errs []error
		for _, r := range recipients {
			m, err := d.renderer.MemberEvent(r.Email, org, n.Type, n.Data)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrPermanent, err)
			}
			if err := d.deliver(ctx, "member_event", m); err != nil {
				errs = append(errs, err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "organization notification dispatched",
		"type", n.Type,
		"recipients", len(recipients),
		"channels", channels)
	return nil
}

// writeInApp inserts one notification per recipient in a single transaction.
func (d *Dispatcher) writeInApp(ctx context.Context, n service.OrganizationNotification, recipients []model.Member) error {
	err := d.txRunner.WithTx(ctx, func(sp service.StoreProvider) error {
		for _, r := range recipients {
			if err := sp.Notifications().Create(ctx, &model.Notification{
				ID:             id.New(),
				OrganizationID: n.OrganizationID,
				UserID:         *r.UserID,
				Type:           n.Type,
				Data:           n.Data,
			}); err != nil {
				return fmt.Errorf("creating notification for user %d: %w", *r.UserID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	d.metrics.inAppNotifications.Add(float64(len(recipients)))
	return nil
}

// deliver sends m, retrying transient failures with exponential backoff.
func (d *Dispatcher) deliver(ctx context.Context, template string, m mailer.Message) error {
	op := func() error {
		err := d.sender.Send(ctx, m)
		if errors.Is(err, mailer.ErrPermanent) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.cfg.DeliveryRetries), ctx)
	err := backoff.Retry(op, b)
	d.metrics.recordEmail(template, err)
	if err == nil {
		return nil
	}

	slog.WarnContext(ctx, "email delivery failed", "error", err, "template", template)
	if errors.Is(err, mailer.ErrPermanent) {
		return fmt.Errorf("%w: %w", ErrPermanent, err)
	}
	return fmt.Errorf("sending %s email: %w", template, err)
}

// Recipients filters members down to those with a user account that are
// neither in an excluded role nor explicitly excluded.
func Recipients(members []model.Member, excludeRoles []model.Role, excludeUserIDs []int64) []model.Member {
	out := make([]model.Member, 0, len(members))
	for _, m := range members {
		if m.UserID == nil || m.Status != model.MembershipStatusActive {
			continue
		}
		if slices.Contains(excludeRoles, m.Role) || slices.Contains(excludeUserIDs, *m.UserID) {
			continue
		}
		out = append(out, m)
	}
	return out
}
