package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeDelivered = "delivered"
	OutcomeRequeued  = "requeued"
	OutcomeDLQ       = "dlq"
)

type Metrics struct {
	tasks              *prometheus.CounterVec
	emails             *prometheus.CounterVec
	inAppNotifications prometheus.Counter
	invitationsExpired prometheus.Counter
	reclaimed          prometheus.Counter
	dispatchDuration   *prometheus.HistogramVec
	queueLatency       *prometheus.HistogramVec
}

// NewMetrics registers the worker's collectors with reg. A nil reg returns
// working but unregistered metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoicely",
			Subsystem: "worker",
			Name:      "tasks_total",
			Help:      "Notification tasks handled, by task type and outcome.",
		}, []string{"task_type", "outcome"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoicely",
			Subsystem: "worker",
			Name:      "emails_total",
			Help:      "Email delivery attempts, by template and status.",
		}, []string{"template", "status"}),
		inAppNotifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicely",
			Subsystem: "worker",
			Name:      "in_app_notifications_total",
			Help:      "In-app notifications written.",
		}),
		invitationsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicely",
			Subsystem: "worker",
			Name:      "invitations_expired_total",
			Help:      "Expired invitations removed by the scheduled cleanup.",
		}),
		reclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicely",
			Subsystem: "worker",
			Name:      "reclaimed_total",
			Help:      "Stale pending messages taken over from dead consumers.",
		}),
		queueLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "invoicely",
			Subsystem: "worker",
			Name:      "queue_latency_seconds",
			Help:      "Time from enqueue to the first delivery attempt.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"task_type"}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "invoicely",
			Subsystem: "worker",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent dispatching one task.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"task_type"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.tasks, m.emails, m.inAppNotifications, m.invitationsExpired, m.reclaimed, m.dispatchDuration, m.queueLatency} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Metrics) recordTask(taskType, outcome string) {
	m.tasks.WithLabelValues(taskType, outcome).Inc()
}

func (m *Metrics) recordEmail(template string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.emails.WithLabelValues(template, status).Inc()
}

func (m *Metrics) recordReclaimed(n int) {
	m.reclaimed.Add(float64(n))
}

// observeQueueLatency only counts first attempts; requeued tasks keep their
// original enqueue time and would skew the histogram.
func (m *Metrics) observeQueueLatency(taskType string, attempt int, enqueuedAt, now time.Time) {
	if attempt != 1 || enqueuedAt.IsZero() {
		return
	}
	m.queueLatency.WithLabelValues(taskType).Observe(now.Sub(enqueuedAt).Seconds())
}
