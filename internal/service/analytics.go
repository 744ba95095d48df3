package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/report"
	"invoicely.app/api/internal/store"
)

const TopClientsLimit = 10

var (
	ErrInvalidTimeRange        = model.ErrInvalidTimeRange
	ErrUnsupportedExportFormat = report.ErrUnsupportedFormat
)

var hundred = decimal.NewFromInt(100)

// GrowthRate is the percentage change from previous to current. It is zero
// when there is no previous value or the previous value is zero.
func GrowthRate(current decimal.Decimal, previous *decimal.Decimal) decimal.Decimal {
	if previous == nil || previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(*previous).Mul(hundred).Div(*previous)
}

// AnalyticsService aggregates an organization's billing records over a
// calendar window. No operation returns partial results.
type AnalyticsService interface {
	Overview(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Overview, error)
	MonthlyStats(ctx context.Context, orgID int64, tr model.TimeRange) ([]model.MonthlyStat, error)
	Invoices(ctx context.Context, orgID int64, tr model.TimeRange) (*model.InvoiceReport, error)
	Clients(ctx context.Context, orgID int64, tr model.TimeRange) (*model.ClientReport, error)
	Documents(ctx context.Context, orgID int64, tr model.TimeRange) (*model.DocumentReport, error)
	Team(ctx context.Context, orgID int64, tr model.TimeRange) (*model.TeamReport, error)
	Payments(ctx context.Context, orgID int64, tr model.TimeRange) (*model.PaymentReport, error)
	Report(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Report, error)
	Export(ctx context.Context, orgID int64, tr model.TimeRange, format string) (*report.Export, error)
}

type analyticsService struct {
	analytics   store.AnalyticsStore
	memberships store.MembershipStore
	now         func() time.Time
}

func NewAnalyticsService(analytics store.AnalyticsStore, memberships store.MembershipStore, now func() time.Time) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &analyticsService{
		analytics:   analytics,
		memberships: memberships,
		now:         now,
	}
}

func (s *analyticsService) Overview(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Overview, error) {
	return s.overview(ctx, orgID, tr, s.now())
}

func (s *analyticsService) overview(ctx context.Context, orgID int64, tr model.TimeRange, now time.Time) (*model.Overview, error) {
	window := tr.Window(now)
	previousWindow := tr.PreviousWindow(now)

	var (
		current   model.AmountCount
		previous  model.AmountCount
		contracts int64
		clients   int64
		monthly   []model.MonthlyStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		current, err = s.analytics.InvoiceTotals(gctx, orgID, window)
		return wrap(err, "invoice totals")
	})
	g.Go(func() (err error) {
		previous, err = s.analytics.InvoiceTotals(gctx, orgID, previousWindow)
		return wrap(err, "previous invoice totals")
	})
	g.Go(func() (err error) {
		contracts, err = s.analytics.CountContracts(gctx, orgID, window)
		return wrap(err, "contract count")
	})
	g.Go(func() (err error) {
		clients, err = s.analytics.CountClients(gctx, orgID)
		return wrap(err, "client count")
	})
	g.Go(func() (err error) {
		monthly, err = s.monthly(gctx, orgID, tr.TrendWindow(now))
		return err
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "analytics overview failed", "error", err, "organization_id", orgID)
		return nil, err
	}

	return &model.Overview{
		TimeRange:       tr,
		Window:          window,
		TotalRevenue:    current.TotalAmount,
		InvoiceCount:    current.Count,
		PreviousRevenue: previous.TotalAmount,
		GrowthRate:      GrowthRate(current.TotalAmount, &previous.TotalAmount),
		ContractCount:   contracts,
		ClientCount:     clients,
		Monthly:         monthly,
	}, nil
}

func (s *analyticsService) MonthlyStats(ctx context.Context, orgID int64, tr model.TimeRange) ([]model.MonthlyStat, error) {
	return s.monthly(ctx, orgID, tr.TrendWindow(s.now()))
}

// monthly returns one entry per calendar month of w, zero-filled for months
// without invoices. Callers pass a TrendWindow.
func (s *analyticsService) monthly(ctx context.Context, orgID int64, w model.Window) ([]model.MonthlyStat, error) {
	rows, err := s.analytics.InvoiceMonthly(ctx, orgID, w)
	if err != nil {
		return nil, fmt.Errorf("monthly invoice totals: %w", err)
	}

	byMonth := make(map[model.YearMonth]model.MonthlyStat, len(rows))
	for _, row := range rows {
		byMonth[model.YearMonth{Year: row.Year, Month: time.Month(row.Month)}] = row
	}

	months := model.MonthsBetween(w.Start, w.End)
	stats := make([]model.MonthlyStat, len(months))
	for i, ym := range months {
		stat, ok := byMonth[ym]
		if !ok {
			stat = model.MonthlyStat{Year: ym.Year, Month: int(ym.Month), TotalAmount: decimal.Zero}
		}
		stats[i] = stat
	}
	return stats, nil
}

func (s *analyticsService) Invoices(ctx context.Context, orgID int64, tr model.TimeRange) (*model.InvoiceReport, error) {
	return s.invoices(ctx, orgID, tr, s.now())
}

func (s *analyticsService) invoices(ctx context.Context, orgID int64, tr model.TimeRange, now time.Time) (*model.InvoiceReport, error) {
	w := tr.Window(now)
	var out model.InvoiceReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Totals, err = s.analytics.InvoiceTotals(gctx, orgID, w)
		return wrap(err, "invoice totals")
	})
	g.Go(func() (err error) {
		out.ByStatus, err = s.analytics.InvoiceStatusBreakdown(gctx, orgID, w)
		return wrap(err, "invoice status breakdown")
	})
	g.Go(func() (err error) {
		out.Monthly, err = s.monthly(gctx, orgID, tr.TrendWindow(now))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) Clients(ctx context.Context, orgID int64, tr model.TimeRange) (*model.ClientReport, error) {
	return s.clients(ctx, orgID, tr.Window(s.now()))
}

func (s *analyticsService) clients(ctx context.Context, orgID int64, w model.Window) (*model.ClientReport, error) {
	var out model.ClientReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalClients, err = s.analytics.CountClients(gctx, orgID)
		return wrap(err, "client count")
	})
	g.Go(func() (err error) {
		out.NewClients, err = s.analytics.CountNewClients(gctx, orgID, w)
		return wrap(err, "new client count")
	})
	g.Go(func() (err error) {
		out.TopClients, err = s.analytics.TopClients(gctx, orgID, w, TopClientsLimit)
		return wrap(err, "top clients")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) Documents(ctx context.Context, orgID int64, tr model.TimeRange) (*model.DocumentReport, error) {
	return s.documents(ctx, orgID, tr.Window(s.now()))
}

func (s *analyticsService) documents(ctx context.Context, orgID int64, w model.Window) (*model.DocumentReport, error) {
	var out model.DocumentReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalCount, out.TotalSize, err = s.analytics.DocumentTotals(gctx, orgID, w)
		return wrap(err, "document totals")
	})
	g.Go(func() (err error) {
		out.ByType, err = s.analytics.DocumentTypeBreakdown(gctx, orgID, w)
		return wrap(err, "document type breakdown")
	})
	g.Go(func() (err error) {
		out.ByFolder, err = s.analytics.DocumentFolderBreakdown(gctx, orgID, w)
		return wrap(err, "document folder breakdown")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) Team(ctx context.Context, orgID int64, tr model.TimeRange) (*model.TeamReport, error) {
	return s.team(ctx, orgID, tr.Window(s.now()))
}

func (s *analyticsService) team(ctx context.Context, orgID int64, w model.Window) (*model.TeamReport, error) {
	var out model.TeamReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ByRole, err = s.memberships.CountByRole(gctx, orgID)
		return wrap(err, "members by role")
	})
	g.Go(func() (err error) {
		out.Performance, err = s.analytics.MemberPerformance(gctx, orgID, w)
		return wrap(err, "member performance")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) Payments(ctx context.Context, orgID int64, tr model.TimeRange) (*model.PaymentReport, error) {
	return s.payments(ctx, orgID, tr.Window(s.now()))
}

func (s *analyticsService) payments(ctx context.Context, orgID int64, w model.Window) (*model.PaymentReport, error) {
	var out model.PaymentReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Totals, err = s.analytics.PaymentTotals(gctx, orgID, w)
		return wrap(err, "payment totals")
	})
	g.Go(func() (err error) {
		out.ByMethod, err = s.analytics.PaymentMethodBreakdown(gctx, orgID, w)
		return wrap(err, "payment method breakdown")
	})
	g.Go(func() (err error) {
		out.ByStatus, err = s.analytics.PaymentStatusBreakdown(gctx, orgID, w)
		return wrap(err, "payment status breakdown")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Report runs every section concurrently against a single clock reading so
// all sections share the same window.
func (s *analyticsService) Report(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Report, error) {
	now := s.now()
	w := tr.Window(now)
	out := &model.Report{OrganizationID: orgID, GeneratedAt: now.UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.overview(gctx, orgID, tr, now)
		if err == nil {
			out.Overview = *o
		}
		return err
	})
	g.Go(func() error {
		r, err := s.invoices(gctx, orgID, tr, now)
		if err == nil {
			out.Invoices = *r
		}
		return err
	})
	g.Go(func() error {
		r, err := s.clients(gctx, orgID, w)
		if err == nil {
			out.Clients = *r
		}
		return err
	})
	g.Go(func() error {
		r, err := s.documents(gctx, orgID, w)
		if err == nil {
			out.Documents = *r
		}
		return err
	})
	g.Go(func() error {
		r, err := s.team(gctx, orgID, w)
		if err == nil {
			out.Team = *r
		}
		return err
	})
	g.Go(func() error {
		r, err := s.payments(gctx, orgID, w)
		if err == nil {
			out.Payments = *r
		}
		return err
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "analytics report failed", "error", err, "organization_id", orgID)
		return nil, err
	}
	return out, nil
}

func (s *analyticsService) Export(ctx context.Context, orgID int64, tr model.TimeRange, format string) (*report.Export, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	r, err := s.Report(ctx, orgID, tr)
	if err != nil {
		return nil, err
	}

	export, err := report.Render(r, f)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "analytics exported",
		"organization_id", orgID,
		"format", f,
		"time_range", tr,
		"bytes", len(export.Body),
	)
	return export, nil
}

func wrap(err error, what string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
