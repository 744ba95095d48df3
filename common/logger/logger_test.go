package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/core/config"
)

var _ = Describe("NewHandler", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	lastLine := func() map[string]any {
		var line map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &line)).To(Succeed())
		return line
	}

	It("writes context log fields as JSON attributes", func() {
		log := slog.New(logger.NewHandler(config.Config{Env: "production"}, buf))

		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			OrganizationID: logger.Ptr(int64(100)),
			UserID:         logger.Ptr(int64(7)),
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "invoicely.test"})
		log.InfoContext(ctx, "invitation created", "role", "member")

		line := lastLine()
		Expect(line).To(HaveKeyWithValue("msg", "invitation created"))
		Expect(line).To(HaveKeyWithValue("organization_id", BeNumerically("==", 100)))
		Expect(line).To(HaveKeyWithValue("user_id", BeNumerically("==", 7)))
		Expect(line).To(HaveKeyWithValue("component", "invoicely.test"))
		Expect(line).NotTo(HaveKey("trace_id"))
	})

	It("adds trace and span ids inside a span", func() {
		tp := sdktrace.NewTracerProvider()
		DeferCleanup(tp.Shutdown, context.Background())

		ctx, span := tp.Tracer("test").Start(context.Background(), "op")
		defer span.End()

		log := slog.New(logger.NewHandler(config.Config{Env: "production"}, buf))
		log.InfoContext(ctx, "hello")

		line := lastLine()
		Expect(line).To(HaveKeyWithValue("trace_id", span.SpanContext().TraceID().String()))
		Expect(line).To(HaveKeyWithValue("span_id", span.SpanContext().SpanID().String()))
	})

	It("drops debug lines outside development", func() {
		log := slog.New(logger.NewHandler(config.Config{Env: "production"}, buf))
		log.Debug("noise")
		Expect(buf.Len()).To(BeZero())
	})
})

var _ = Describe("Level", func() {
	DescribeTable("resolves the configured level",
		func(env, level string, want slog.Level) {
			Expect(logger.Level(config.Config{Env: env, LogLevel: level})).To(Equal(want))
		},
		Entry("development default", "development", "", slog.LevelDebug),
		Entry("production default", "production", "", slog.LevelInfo),
		Entry("explicit override", "development", "warn", slog.LevelWarn),
		Entry("garbage falls back", "production", "chatty", slog.LevelInfo),
	)
})

var _ = Describe("WithLogFields", func() {
	It("keeps earlier fields that later calls leave unset", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{UserID: logger.Ptr(int64(1))})
		ctx = logger.WithLogFields(ctx, logger.LogFields{TaskType: logger.Ptr("invitation_email")})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.UserID).To(Equal(int64(1)))
		Expect(*fields.TaskType).To(Equal("invitation_email"))
	})
})

var _ = Describe("StartTaskSpan", func() {
	It("joins the trace that enqueued the task", func() {
		const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"

		// Without an SDK provider the global tracer is a no-op that still
		// carries the remote span context.
		ctx, span := logger.StartTaskSpan(context.Background(), traceID, "worker.handle_invitation_email")
		defer span.End()

		Expect(ctx).NotTo(BeNil())
		Expect(span.SpanContext().TraceID().String()).To(Equal(traceID))
	})

	It("starts a root span for a malformed trace id", func() {
		_, span := logger.StartTaskSpan(context.Background(), "not-hex", "worker.handle")
		defer span.End()

		Expect(span.SpanContext().TraceID().IsValid()).To(BeFalse())
	})
})
