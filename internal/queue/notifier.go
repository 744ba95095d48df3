package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"invoicely.app/api/internal/service"
)

// Notifier hands notification work to the worker through the stream instead
// of delivering it inside the request.
type Notifier struct {
	producer Producer
}

var _ service.Notifier = (*Notifier)(nil)

func NewNotifier(producer Producer) *Notifier {
	return &Notifier{producer: producer}
}

func (n *Notifier) SendInvitationEmail(ctx context.Context, email service.InvitationEmail) error {
	return n.enqueue(ctx, TaskTypeInvitationEmail, email.OrganizationID, email)
}

func (n *Notifier) CreateOrganizationNotification(ctx context.Context, notification service.OrganizationNotification) error {
	return n.enqueue(ctx, TaskTypeOrganizationNotification, notification.OrganizationID, notification)
}

func (n *Notifier) enqueue(ctx context.Context, taskType TaskType, orgID int64, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", taskType, err)
	}

	return n.producer.Enqueue(ctx, Task{
		Type:           taskType,
		OrganizationID: orgID,
		Payload:        payload,
		TraceID:        traceID(ctx),
	})
}

func traceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
