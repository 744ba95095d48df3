package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"invoicely.app/api/core/db/sqlc"
	"invoicely.app/api/internal/model"
)

// analyticsStore reads money sums as numeric text so no precision is lost
// between Postgres and decimal.Decimal.
type analyticsStore struct {
	queries *sqlc.Queries
}

func newAnalyticsStore(queries *sqlc.Queries) AnalyticsStore {
	return &analyticsStore{queries: queries}
}

func (s *analyticsStore) InvoiceTotals(ctx context.Context, orgID int64, w model.Window) (model.AmountCount, error) {
	row, err := s.queries.InvoiceTotals(ctx, sqlc.InvoiceTotalsParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return model.AmountCount{}, err
	}
	amount, err := parseAmount(row.TotalAmount)
	if err != nil {
		return model.AmountCount{}, err
	}
	return model.AmountCount{Count: row.TotalCount, TotalAmount: amount}, nil
}

func (s *analyticsStore) InvoiceMonthly(ctx context.Context, orgID int64, w model.Window) ([]model.MonthlyStat, error) {
	rows, err := s.queries.InvoiceMonthlyTotals(ctx, sqlc.InvoiceMonthlyTotalsParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.MonthlyStat, len(rows))
	for i, row := range rows {
		amount, err := parseAmount(row.TotalAmount)
		if err != nil {
			return nil, err
		}
		result[i] = model.MonthlyStat{
			Year:        int(row.Year),
			Month:       int(row.Month),
			TotalAmount: amount,
			TotalCount:  row.TotalCount,
		}
	}
	return result, nil
}

func (s *analyticsStore) InvoiceStatusBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.Breakdown, error) {
	rows, err := s.queries.InvoiceStatusBreakdown(ctx, sqlc.InvoiceStatusBreakdownParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Breakdown, len(rows))
	for i, row := range rows {
		if result[i], err = toBreakdown(row.Label, row.TotalCount, row.TotalAmount); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *analyticsStore) CountContracts(ctx context.Context, orgID int64, w model.Window) (int64, error) {
	return s.queries.CountContracts(ctx, sqlc.CountContractsParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
}

func (s *analyticsStore) CountClients(ctx context.Context, orgID int64) (int64, error) {
	return s.queries.CountClients(ctx, orgID)
}

func (s *analyticsStore) CountNewClients(ctx context.Context, orgID int64, w model.Window) (int64, error) {
	return s.queries.CountNewClients(ctx, sqlc.CountNewClientsParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
}

func (s *analyticsStore) TopClients(ctx context.Context, orgID int64, w model.Window, limit int32) ([]model.ClientTotal, error) {
	rows, err := s.queries.TopClients(ctx, sqlc.TopClientsParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
		RowLimit:       limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.ClientTotal, len(rows))
	for i, row := range rows {
		amount, err := parseAmount(row.TotalAmount)
		if err != nil {
			return nil, err
		}
		result[i] = model.ClientTotal{
			ClientID:    row.ClientID,
			Name:        row.ClientName,
			Count:       row.TotalCount,
			TotalAmount: amount,
		}
	}
	return result, nil
}

func (s *analyticsStore) DocumentTotals(ctx context.Context, orgID int64, w model.Window) (int64, int64, error) {
	row, err := s.queries.DocumentTotals(ctx, sqlc.DocumentTotalsParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return 0, 0, err
	}
	return row.TotalCount, row.TotalSize, nil
}

func (s *analyticsStore) DocumentTypeBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.SizeBreakdown, error) {
	rows, err := s.queries.DocumentTypeBreakdown(ctx, sqlc.DocumentTypeBreakdownParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.SizeBreakdown, len(rows))
	for i, row := range rows {
		result[i] = model.SizeBreakdown{Label: row.Label, Count: row.TotalCount, TotalSize: row.TotalSize}
	}
	return result, nil
}

func (s *analyticsStore) DocumentFolderBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.SizeBreakdown, error) {
	rows, err := s.queries.DocumentFolderBreakdown(ctx, sqlc.DocumentFolderBreakdownParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.SizeBreakdown, len(rows))
	for i, row := range rows {
		result[i] = model.SizeBreakdown{Label: row.Label, Count: row.TotalCount, TotalSize: row.TotalSize}
	}
	return result, nil
}

func (s *analyticsStore) PaymentTotals(ctx context.Context, orgID int64, w model.Window) (model.AmountCount, error) {
	row, err := s.queries.PaymentTotals(ctx, sqlc.PaymentTotalsParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return model.AmountCount{}, err
	}
	amount, err := parseAmount(row.TotalAmount)
	if err != nil {
		return model.AmountCount{}, err
	}
	return model.AmountCount{Count: row.TotalCount, TotalAmount: amount}, nil
}

func (s *analyticsStore) PaymentMethodBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.Breakdown, error) {
	rows, err := s.queries.PaymentMethodBreakdown(ctx, sqlc.PaymentMethodBreakdownParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Breakdown, len(rows))
	for i, row := range rows {
		if result[i], err = toBreakdown(row.Label, row.TotalCount, row.TotalAmount); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *analyticsStore) PaymentStatusBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.Breakdown, error) {
	rows, err := s.queries.PaymentStatusBreakdown(ctx, sqlc.PaymentStatusBreakdownParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Breakdown, len(rows))
	for i, row := range rows {
		if result[i], err = toBreakdown(row.Label, row.TotalCount, row.TotalAmount); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *analyticsStore) MemberPerformance(ctx context.Context, orgID int64, w model.Window) ([]model.MemberPerformance, error) {
	rows, err := s.queries.MemberPerformance(ctx, sqlc.MemberPerformanceParams{
		OrganizationID: orgID,
		WindowStart:    timestamptz(w.Start),
		WindowEnd:      timestamptz(w.End),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.MemberPerformance, len(rows))
	for i, row := range rows {
		amount, err := parseAmount(row.TotalAmount)
		if err != nil {
			return nil, err
		}
		result[i] = model.MemberPerformance{
			UserID:      row.UserID,
			Name:        row.UserName,
			Count:       row.TotalCount,
			TotalAmount: amount,
		}
	}
	return result, nil
}

func toBreakdown(label string, count int64, total string) (model.Breakdown, error) {
	amount, err := parseAmount(total)
	if err != nil {
		return model.Breakdown{}, err
	}
	return model.Breakdown{Label: label, Count: count, TotalAmount: amount}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
