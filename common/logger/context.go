package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and the worker enrich the context once; every log line below them
// carries the organization, user and task identifiers without repeating them.
type LogFields struct {
	OrganizationID *int64  // Tenant the request or task is scoped to
	UserID         *int64  // Authenticated caller
	InvitationID   *int64  // Membership row being invited/accepted/cancelled
	MessageID      *string // Redis stream message ID
	TaskType       *string // Notification task type (e.g., "invitation_email")
	Component      string  // Component name, e.g. "invoicely.worker.dispatcher"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OrganizationID != nil {
		result.OrganizationID = next.OrganizationID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.InvitationID != nil {
		result.InvitationID = next.InvitationID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.TaskType != nil {
		result.TaskType = next.TaskType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

func (f LogFields) attrs() []slog.Attr {
	var attrs []slog.Attr
	if f.OrganizationID != nil {
		attrs = append(attrs, slog.Int64("organization_id", *f.OrganizationID))
	}
	if f.UserID != nil {
		attrs = append(attrs, slog.Int64("user_id", *f.UserID))
	}
	if f.InvitationID != nil {
		attrs = append(attrs, slog.Int64("invitation_id", *f.InvitationID))
	}
	if f.MessageID != nil {
		attrs = append(attrs, slog.String("message_id", *f.MessageID))
	}
	if f.TaskType != nil {
		attrs = append(attrs, slog.String("task_type", *f.TaskType))
	}
	if f.Component != "" {
		attrs = append(attrs, slog.String("component", f.Component))
	}
	return attrs
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
