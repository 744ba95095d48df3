package queue

import (
	"fmt"
	"strconv"
	"time"
)

type TaskType string

const (
	TaskTypeInvitationEmail          TaskType = "invitation_email"
	TaskTypeOrganizationNotification TaskType = "organization_notification"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeInvitationEmail, TaskTypeOrganizationNotification:
		return true
	}
	return false
}

// Task is a unit of notification work. Payload is the JSON encoding of the
// task's body: service.InvitationEmail or service.OrganizationNotification.
type Task struct {
	Type           TaskType
	OrganizationID int64
	Payload        []byte
	TraceID        string
	Attempt        int
	// EnqueuedAt is stamped by the producer on first enqueue and carried
	// unchanged through requeues.
	EnqueuedAt time.Time
	LastError  string
}

// Stream entry field names.
const (
	fieldTaskType   = "task_type"
	fieldOrgID      = "organization_id"
	fieldPayload    = "payload"
	fieldAttempt    = "attempt"
	fieldTraceID    = "trace_id"
	fieldEnqueuedAt = "enqueued_at"
	fieldLastError  = "last_error"
	fieldDLQError   = "error"
)

func (t Task) values() map[string]any {
	attempt := t.Attempt
	if attempt <= 0 {
		attempt = 1
	}
	values := map[string]any{
		fieldTaskType: string(t.Type),
		fieldOrgID:    t.OrganizationID,
		fieldPayload:  string(t.Payload),
		fieldAttempt:  attempt,
	}
	if t.TraceID != "" {
		values[fieldTraceID] = t.TraceID
	}
	if !t.EnqueuedAt.IsZero() {
		values[fieldEnqueuedAt] = t.EnqueuedAt.UnixMilli()
	}
	if t.LastError != "" {
		values[fieldLastError] = t.LastError
	}
	return values
}

func decodeTask(values map[string]any) (Task, error) {
	taskType := TaskType(stringField(values, fieldTaskType))
	if !taskType.Valid() {
		return Task{}, fmt.Errorf("unknown %s %q", fieldTaskType, taskType)
	}

	orgID, err := intField(values, fieldOrgID, true)
	if err != nil {
		return Task{}, err
	}
	if _, ok := values[fieldPayload]; !ok {
		return Task{}, fmt.Errorf("missing %s", fieldPayload)
	}
	attempt, err := intField(values, fieldAttempt, false)
	if err != nil {
		return Task{}, err
	}
	enqueuedMs, err := intField(values, fieldEnqueuedAt, false)
	if err != nil {
		return Task{}, err
	}

	t := Task{
		Type:           taskType,
		OrganizationID: orgID,
		Payload:        []byte(stringField(values, fieldPayload)),
		TraceID:        stringField(values, fieldTraceID),
		Attempt:        max(int(attempt), 1),
		LastError:      stringField(values, fieldLastError),
	}
	if enqueuedMs > 0 {
		t.EnqueuedAt = time.UnixMilli(enqueuedMs).UTC()
	}
	return t, nil
}

func stringField(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

func intField(values map[string]any, key string, required bool) (int64, error) {
	if _, ok := values[key]; !ok {
		if required {
			return 0, fmt.Errorf("missing %s", key)
		}
		return 0, nil
	}
	n, err := strconv.ParseInt(stringField(values, key), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}
