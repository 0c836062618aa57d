package auction

import "github.com/shopspring/decimal"

var (
	incrementRate = decimal.NewFromFloat(0.05) // minimum 5% increase per bid
	one           = decimal.NewFromInt(1)
)

// Increment is the minimum amount a new bid must add on top of the current
// highest. When 5% of the current price rounds to zero (fresh auction with a
// zero current price) the floor price is used instead, and failing that a
// single currency unit, so the increment is never zero.
func Increment(currentHighest, floor decimal.Decimal) decimal.Decimal {
	inc := currentHighest.Mul(incrementRate).Ceil()
	if inc.IsPositive() {
		return inc
	}

	inc = floor.Mul(incrementRate).Ceil()
	if inc.IsPositive() {
		return inc
	}
	return one
}

// MinimumNextBid is the smallest amount the next bid may carry
func MinimumNextBid(currentHighest, floor decimal.Decimal) decimal.Decimal {
	return currentHighest.Add(Increment(currentHighest, floor))
}

// SuggestedBids proposes three quick-pick amounts above the current highest,
// one, two and three increments up.
func SuggestedBids(currentHighest, floor decimal.Decimal) [3]decimal.Decimal {
	inc := Increment(currentHighest, floor)
	var out [3]decimal.Decimal
	for i := range out {
		out[i] = currentHighest.Add(inc.Mul(decimal.NewFromInt(int64(i + 1))))
	}
	return out
}
