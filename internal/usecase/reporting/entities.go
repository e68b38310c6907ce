package reporting

import (
	"github.com/shopspring/decimal"
)

// DashboardSummary is the per-SME owner view.
type DashboardSummary struct {
	SMEID               string          `json:"sme_id"`
	InvoiceCount        int             `json:"invoice_count"`
	OutstandingBalance  decimal.Decimal `json:"outstanding_balance"`
	LatestCreditScore   *int            `json:"latest_credit_score"`
	LatestCreditRating  *string         `json:"latest_credit_rating"`
	FinanceRequestCount int             `json:"finance_request_count"`
	InvoicesByStatus    map[string]int  `json:"invoices_by_status"`
	RequestsByStatus    map[string]int  `json:"requests_by_status"`
}

// SMEFinanceView is one row of the lender-facing ranked list.
type SMEFinanceView struct {
	SMEID               string          `json:"sme_id"`
	Name                string          `json:"name"`
	Industry            string          `json:"industry"`
	Revenue             decimal.Decimal `json:"revenue"`
	CreditScore         *int            `json:"credit_score"`
	Rating              *string         `json:"rating"`
	FinanceableInvoices int             `json:"financeable_invoices"`
	PendingRequests     int             `json:"pending_requests"`
}
