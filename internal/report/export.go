// Package report renders an analytics report into downloadable files.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invoicely.app/api/internal/model"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts json or csv in any casing. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Export is a rendered report ready to be served as an attachment.
type Export struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ContentDisposition is the header value that makes browsers download the
// export instead of rendering it.
func (e *Export) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", e.Filename)
}

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"section", "label", "count", "total_amount"}

// CSV sections in the order they are written.
const (
	SectionOverview        = "overview"
	SectionMonthly         = "monthly"
	SectionInvoiceStatus   = "invoice_status"
	SectionTopClients      = "top_clients"
	SectionDocumentType    = "document_type"
	SectionDocumentFolder  = "document_folder"
	SectionTeamRole        = "team_role"
	SectionTeamPerformance = "team_performance"
	SectionPaymentMethod   = "payment_method"
	SectionPaymentStatus   = "payment_status"
)

func Render(r *model.Report, format Format) (*Export, error) {
	base := fmt.Sprintf("analytics-%s-%s",
		strings.ToLower(string(r.Overview.TimeRange)),
		r.GeneratedAt.UTC().Format("2006-01-02"),
	)

	switch format {
	case FormatJSON:
		body, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json report: %w", err)
		}
		return &Export{ContentType: "application/json", Filename: base + ".json", Body: body}, nil
	case FormatCSV:
		body, err := encodeCSV(r)
		if err != nil {
			return nil, fmt.Errorf("encoding csv report: %w", err)
		}
		return &Export{ContentType: "text/csv", Filename: base + ".csv", Body: body}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// encodeCSV flattens the report into section,label,count,total_amount rows.
// Document sections carry their total size in bytes in the last column.
// Cells that do not apply to a row are left empty. Labels are user-entered
// names and go through textCell.
func encodeCSV(r *model.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{CSVHeader}
	add := func(section, label, count, amount string) {
		rows = append(rows, []string{section, textCell(label), count, amount})
	}

	o := r.Overview
	add(SectionOverview, "total_revenue", itoa(o.InvoiceCount), money(o.TotalRevenue))
	add(SectionOverview, "previous_revenue", "", money(o.PreviousRevenue))
	add(SectionOverview, "growth_rate", "", o.GrowthRate.StringFixed(2))
	add(SectionOverview, "contracts", itoa(o.ContractCount), "")
	add(SectionOverview, "clients", itoa(o.ClientCount), "")

	for _, m := range r.Invoices.Monthly {
		add(SectionMonthly, fmt.Sprintf("%04d-%02d", m.Year, m.Month), itoa(m.TotalCount), money(m.TotalAmount))
	}
	for _, b := range r.Invoices.ByStatus {
		add(SectionInvoiceStatus, b.Label, itoa(b.Count), money(b.TotalAmount))
	}
	for _, c := range r.Clients.TopClients {
		add(SectionTopClients, c.Name, itoa(c.Count), money(c.TotalAmount))
	}
	for _, d := range r.Documents.ByType {
		add(SectionDocumentType, d.Label, itoa(d.Count), itoa(d.TotalSize))
	}
	for _, d := range r.Documents.ByFolder {
		add(SectionDocumentFolder, d.Label, itoa(d.Count), itoa(d.TotalSize))
	}
	for _, rc := range r.Team.ByRole {
		add(SectionTeamRole, string(rc.Role), itoa(rc.Count), "")
	}
	for _, p := range r.Team.Performance {
		add(SectionTeamPerformance, p.Name, itoa(p.Count), money(p.TotalAmount))
	}
	for _, b := range r.Payments.ByMethod {
		add(SectionPaymentMethod, b.Label, itoa(b.Count), money(b.TotalAmount))
	}
	for _, b := range r.Payments.ByStatus {
		add(SectionPaymentStatus, b.Label, itoa(b.Count), money(b.TotalAmount))
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// textCell prefixes a quote to text a spreadsheet would evaluate as a formula.
func textCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
