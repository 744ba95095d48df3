package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountCount is a record count with the sum of its money column.
type AmountCount struct {
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type MonthlyStat struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCount  int64           `json:"total_count"`
}

type Breakdown struct {
	Label       string          `json:"label"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type SizeBreakdown struct {
	Label     string `json:"label"`
	Count     int64  `json:"count"`
	TotalSize int64  `json:"total_size"`
}

type ClientTotal struct {
	ClientID    int64           `json:"client_id,string"`
	Name        string          `json:"name"`
	Count       int64           `json:"invoice_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type MemberPerformance struct {
	UserID      int64           `json:"user_id,string"`
	Name        string          `json:"name"`
	Count       int64           `json:"invoice_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type RoleCount struct {
	Role  Role  `json:"role"`
	Count int64 `json:"count"`
}

type Overview struct {
	TimeRange       TimeRange       `json:"time_range"`
	Window          Window          `json:"window"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	InvoiceCount    int64           `json:"invoice_count"`
	PreviousRevenue decimal.Decimal `json:"previous_revenue"`
	GrowthRate      decimal.Decimal `json:"growth_rate"`
	ContractCount   int64           `json:"contract_count"`
	ClientCount     int64           `json:"client_count"`
	Monthly         []MonthlyStat   `json:"monthly"`
}

type InvoiceReport struct {
	Totals   AmountCount   `json:"totals"`
	ByStatus []Breakdown   `json:"by_status"`
	Monthly  []MonthlyStat `json:"monthly"`
}

type ClientReport struct {
	TotalClients int64         `json:"total_clients"`
	NewClients   int64         `json:"new_clients"`
	TopClients   []ClientTotal `json:"top_clients"`
}

type DocumentReport struct {
	TotalCount int64           `json:"total_count"`
	TotalSize  int64           `json:"total_size"`
	ByType     []SizeBreakdown `json:"by_type"`
	ByFolder   []SizeBreakdown `json:"by_folder"`
}

type TeamReport struct {
	ByRole      []RoleCount         `json:"by_role"`
	Performance []MemberPerformance `json:"performance"`
}

type PaymentReport struct {
	Totals   AmountCount `json:"totals"`
	ByMethod []Breakdown `json:"by_method"`
	ByStatus []Breakdown `json:"by_status"`
}

// Report bundles every analytics section for one organization and range.
type Report struct {
	OrganizationID int64          `json:"organization_id,string"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Overview       Overview       `json:"overview"`
	Invoices       InvoiceReport  `json:"invoices"`
	Clients        ClientReport   `json:"clients"`
	Documents      DocumentReport `json:"documents"`
	Team           TeamReport     `json:"team"`
	Payments       PaymentReport  `json:"payments"`
}
