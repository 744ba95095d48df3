package otel_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"invoicely.app/api/common/otel"
	"invoicely.app/api/core/config"
)

var _ = Describe("Setup", func() {
	It("is a no-op without an endpoint", func() {
		telemetry, err := otel.Setup(context.Background(), config.OTelConfig{ServiceName: "invoicely-server"})
		Expect(err).NotTo(HaveOccurred())
		Expect(telemetry).To(BeNil())
		Expect(telemetry.Shutdown(context.Background())).To(Succeed())
	})
})

var _ = Describe("ParseHeaders", func() {
	It("reads comma separated pairs", func() {
		Expect(otel.ParseHeaders("x-api-key = abc, x-team=billing")).To(Equal(map[string]string{
			"x-api-key": "abc",
			"x-team":    "billing",
		}))
	})

	It("keeps '=' inside values and skips malformed pairs", func() {
		Expect(otel.ParseHeaders("authorization=Basic dXNlcjpwYXNz==,broken,=nokey")).To(Equal(map[string]string{
			"authorization": "Basic dXNlcjpwYXNz==",
		}))
	})

	It("returns an empty map for an empty string", func() {
		Expect(otel.ParseHeaders("")).To(BeEmpty())
	})
})

var _ = DescribeTable("SampleRatio",
	func(in, want float64) {
		Expect(otel.SampleRatio(in)).To(Equal(want))
	},
	Entry("unset samples everything", 0.0, 1.0),
	Entry("in range is kept", 0.25, 0.25),
	Entry("above one is clamped", 3.0, 1.0),
	Entry("negative samples everything", -1.0, 1.0),
)
