package worker_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"invoicely.app/api/internal/queue"
	"invoicely.app/api/internal/worker"
)

var _ = Describe("RedisReclaimer", func() {
	It("hands stale pending messages to the handler", func() {
		ctx := context.Background()
		mr, err := miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(mr.Close)

		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)

		cfg := queue.ConsumerConfig{Stream: "notifications", Group: "workers", Consumer: "dead", BatchSize: 10, Block: 10 * time.Millisecond}
		crashed, err := queue.NewRedisConsumer(ctx, client, cfg)
		Expect(err).NotTo(HaveOccurred())

		producer := queue.NewRedisProducer(client, queue.ProducerConfig{Stream: "notifications"}, nil)
		Expect(producer.Enqueue(ctx, queue.Task{Type: queue.TaskTypeInvitationEmail, OrganizationID: 7, Payload: []byte(`{}`)})).To(Succeed())

		read, err := crashed.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(HaveLen(1))

		cfg.Consumer = "alive"
		alive, err := queue.NewRedisConsumer(ctx, client, cfg)
		Expect(err).NotTo(HaveOccurred())

		metrics, err := worker.NewMetrics(nil)
		Expect(err).NotTo(HaveOccurred())

		var handled []queue.Message
		reclaimer := worker.NewRedisReclaimer(client, worker.RedisReclaimerConfig{
			Stream:    "notifications",
			Group:     "workers",
			Consumer:  "alive",
			BatchSize: 10,
			Interval:  time.Minute,
		}, alive, func(ctx context.Context, msg queue.Message) error {
			handled = append(handled, msg)
			return alive.Ack(ctx, msg)
		}, metrics)

		claimed, err := reclaimer.ReclaimOnce(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(claimed).To(Equal(1))
		Expect(handled).To(HaveLen(1))
		Expect(handled[0].OrganizationID).To(Equal(int64(7)))

		pending, err := client.XPending(ctx, "notifications", "workers").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending.Count).To(BeZero())
	})
})
