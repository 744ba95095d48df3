package handler_test

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/report"
	"invoicely.app/api/internal/service"
)

var _ = Describe("AnalyticsHandler", func() {
	var ts *testServer

	orgHeader := []string{"X-Organization-ID", "100"}

	BeforeEach(func() {
		ts = newTestServer(false)
		ts.role = model.RoleViewer
	})

	It("requires the organization header", func() {
		w := ts.authed(http.MethodGet, "/api/v1/analytics/overview", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("forbids non-members", func() {
		w := ts.authed(http.MethodGet, "/api/v1/analytics/overview", nil, "X-Organization-ID", "5")
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("defaults to THIS_MONTH", func() {
		var got model.TimeRange
		ts.services.analytics.overviewFn = func(_ context.Context, orgID int64, tr model.TimeRange) (*model.Overview, error) {
			Expect(orgID).To(Equal(testOrgID))
			got = tr
			return &model.Overview{TimeRange: tr, GrowthRate: decimal.NewFromInt(50)}, nil
		}

		w := ts.authed(http.MethodGet, "/api/v1/analytics/overview", nil, orgHeader...)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got).To(Equal(model.TimeRangeThisMonth))
		Expect(decode(w)["growth_rate"]).To(Equal("50"))
	})

	It("accepts any casing of the time range", func() {
		var got model.TimeRange
		ts.services.analytics.monthlyStatsFn = func(_ context.Context, _ int64, tr model.TimeRange) ([]model.MonthlyStat, error) {
			got = tr
			return []model.MonthlyStat{}, nil
		}

		w := ts.authed(http.MethodGet, "/api/v1/analytics/monthly?timeRange=last_year", nil, orgHeader...)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got).To(Equal(model.TimeRangeLastYear))
	})

	It("rejects an unknown time range", func() {
		w := ts.authed(http.MethodGet, "/api/v1/analytics/invoices?timeRange=FOREVER", nil, orgHeader...)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		errs := decode(w)["errors"].([]any)
		Expect(errs[0]).To(HaveKeyWithValue("field", "timeRange"))
	})

	DescribeTable("serves every section",
		func(path string) {
			w := ts.authed(http.MethodGet, "/api/v1/analytics/"+path, nil, orgHeader...)
			Expect(w.Code).To(Equal(http.StatusOK))
		},
		Entry(nil, "overview"),
		Entry(nil, "monthly"),
		Entry(nil, "invoices"),
		Entry(nil, "clients"),
		Entry(nil, "documents"),
		Entry(nil, "team"),
		Entry(nil, "payments"),
		Entry(nil, "report"),
	)

	It("fails the whole report when a section fails", func() {
		ts.services.analytics.reportFn = func(context.Context, int64, model.TimeRange) (*model.Report, error) {
			return nil, errors.New("loading payment totals: timeout")
		}

		w := ts.authed(http.MethodGet, "/api/v1/analytics/report", nil, orgHeader...)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(decode(w)).NotTo(HaveKey("overview"))
	})

	Describe("Export", func() {
		It("serves the file as an attachment", func() {
			ts.services.analytics.exportFn = func(_ context.Context, _ int64, tr model.TimeRange, format string) (*report.Export, error) {
				Expect(tr).To(Equal(model.TimeRangeThisYear))
				Expect(format).To(Equal("csv"))
				return &report.Export{
					ContentType: "text/csv",
					Filename:    "analytics-this_year-2026-10-17.csv",
					Body:        []byte("section,label,count,total_amount\n"),
				}, nil
			}

			w := ts.authed(http.MethodGet, "/api/v1/analytics/export?timeRange=THIS_YEAR&format=csv", nil, orgHeader...)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("text/csv"))
			Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="analytics-this_year-2026-10-17.csv"`))
			Expect(w.Body.String()).To(Equal("section,label,count,total_amount\n"))
		})

		It("rejects unsupported formats", func() {
			ts.services.analytics.exportFn = func(context.Context, int64, model.TimeRange, string) (*report.Export, error) {
				return nil, service.ErrUnsupportedExportFormat
			}

			w := ts.authed(http.MethodGet, "/api/v1/analytics/export?format=xlsx", nil, orgHeader...)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
