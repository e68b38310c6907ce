package pricing

import (
	"github.com/shopspring/decimal"

	"sme-finance-engine/internal/domain/creditscore"
)

// Base fee rate per risk tier. Flat within a tier; an amount-based sliding
// scale would slot in here if ever needed.
var baseRates = map[creditscore.Rating]decimal.Decimal{
	creditscore.RatingLow:    decimal.RequireFromString("0.02"),
	creditscore.RatingMedium: decimal.RequireFromString("0.03"),
	creditscore.RatingHigh:   decimal.RequireFromString("0.05"),
}

// Quote returns the fee rate for a risk tier. The returned rate is written
// onto the finance request at submission and never rewritten afterwards;
// re-quoting after a new credit score only affects future requests.
// Unknown tiers price as high risk.
func Quote(rating creditscore.Rating) decimal.Decimal {
	if rate, ok := baseRates[rating]; ok {
		return rate
	}
	return baseRates[creditscore.RatingHigh]
}
