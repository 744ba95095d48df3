package worker_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"invoicely.app/api/internal/queue"
	"invoicely.app/api/internal/worker"
)

var _ = Describe("Worker", func() {
	var (
		consumer  *mockConsumer
		processor *mockProcessor
		w         *worker.Worker
		ctx       context.Context
		msg       queue.Message
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		processor = &mockProcessor{}
		metrics, err := worker.NewMetrics(nil)
		Expect(err).NotTo(HaveOccurred())
		w = worker.New(consumer, processor, metrics, worker.Config{MaxAttempts: 3})
		msg = queue.Message{ID: "1-0", TaskType: queue.TaskTypeInvitationEmail, OrganizationID: 7, Attempt: 1}
	})

	It("acks delivered tasks", func() {
		Expect(w.Handle(ctx, msg)).To(Succeed())
		Expect(consumer.acked).To(ConsistOf("1-0"))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("requeues transient failures", func() {
		processor.processFn = func(context.Context, queue.Message) error { return errors.New("smtp timeout") }

		Expect(w.Handle(ctx, msg)).To(HaveOccurred())
		Expect(consumer.requeued).To(ConsistOf("1-0"))
		Expect(consumer.acked).To(BeEmpty())
	})

	It("dead-letters once attempts are exhausted", func() {
		processor.processFn = func(context.Context, queue.Message) error { return errors.New("smtp timeout") }
		msg.Attempt = 3

		Expect(w.Handle(ctx, msg)).To(HaveOccurred())
		Expect(consumer.dlq).To(ConsistOf("1-0"))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("dead-letters permanent failures on the first attempt", func() {
		processor.processFn = func(context.Context, queue.Message) error {
			return fmt.Errorf("%w: bad payload", worker.ErrPermanent)
		}

		Expect(w.Handle(ctx, msg)).To(MatchError(worker.ErrPermanent))
		Expect(consumer.dlq).To(ConsistOf("1-0"))
	})

	It("turns panics into retries", func() {
		processor.processFn = func(context.Context, queue.Message) error { panic("nil map") }

		Expect(w.Handle(ctx, msg)).To(MatchError(ContainSubstring("panic: nil map")))
		Expect(consumer.requeued).To(ConsistOf("1-0"))
	})

	It("stops the run loop", func() {
		done := make(chan error)
		go func() { done <- w.Run(ctx) }()

		w.Stop()

		Eventually(done).Should(Receive(BeNil()))
	})

	It("records queue latency for first attempts only", func() {
		reg := prometheus.NewRegistry()
		metrics, err := worker.NewMetrics(reg)
		Expect(err).NotTo(HaveOccurred())
		w = worker.New(consumer, processor, metrics, worker.Config{MaxAttempts: 3})

		retried := msg
		retried.Attempt = 2
		retried.EnqueuedAt = time.Now().Add(-time.Minute)
		Expect(w.Handle(ctx, retried)).To(Succeed())

		count, err := testutil.GatherAndCount(reg, "invoicely_worker_queue_latency_seconds")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(BeZero())

		fresh := msg
		fresh.EnqueuedAt = time.Now().Add(-2 * time.Second)
		Expect(w.Handle(ctx, fresh)).To(Succeed())

		count, err = testutil.GatherAndCount(reg, "invoicely_worker_queue_latency_seconds")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})
})
