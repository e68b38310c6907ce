package scoring

import (
	"github.com/shopspring/decimal"

	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/sme"
)

// Inputs is everything the credit model looks at. Deterministic: same
// inputs, same score, no clock or network dependence.
type Inputs struct {
	Revenue      decimal.Decimal
	InvoiceCount int
	// Fraction of closed invoices (paid or overdue) that were paid.
	// 1.0 when no invoice has closed yet.
	OnTimeRatio  float64
	OverdueCount int
}

var (
	revenueHigh = decimal.NewFromInt(500_000)
	revenueMid  = decimal.NewFromInt(100_000)
)

// BuildInputs folds an SME's invoice history into model inputs.
func BuildInputs(s *sme.SME, invoices []invoice.Invoice) Inputs {
	var paid, overdue int
	for _, inv := range invoices {
		switch inv.Status {
		case invoice.StatusPaid:
			paid++
		case invoice.StatusOverdue:
			overdue++
		}
	}
	ratio := 1.0
	if paid+overdue > 0 {
		ratio = float64(paid) / float64(paid+overdue)
	}
	return Inputs{
		Revenue:      s.Revenue,
		InvoiceCount: len(invoices),
		OnTimeRatio:  ratio,
		OverdueCount: overdue,
	}
}

// ComputeScore maps inputs to a clamped 0-100 score and its rating.
// An SME with no invoice history lands on the floor of the range; a
// first-time applicant always gets a score, never an error.
func ComputeScore(in Inputs) (int, creditscore.Rating) {
	if in.InvoiceCount == 0 {
		return creditscore.ScoreMin, creditscore.RatingHigh
	}

	score := 0

	switch {
	case in.Revenue.GreaterThan(revenueHigh):
		score += 30
	case in.Revenue.GreaterThan(revenueMid):
		score += 20
	default:
		score += 10
	}

	switch {
	case in.OnTimeRatio >= 0.9:
		score += 35
	case in.OnTimeRatio >= 0.7:
		score += 20
	default:
		score += 10
	}

	switch {
	case in.InvoiceCount >= 20:
		score += 15
	case in.InvoiceCount >= 5:
		score += 10
	default:
		score += 5
	}

	score -= 5 * in.OverdueCount

	if score < creditscore.ScoreMin {
		score = creditscore.ScoreMin
	}
	if score > creditscore.ScoreMax {
		score = creditscore.ScoreMax
	}
	return score, creditscore.RatingFor(score)
}
