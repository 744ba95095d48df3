package worker

import (
	"context"

	"invoicely.app/api/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Processor delivers a single task. Returning an error wrapping
// ErrPermanent skips the remaining attempts.
type Processor interface {
	Process(ctx context.Context, msg queue.Message) error
}
