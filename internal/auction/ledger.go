package auction

import (
	"time"

	"github.com/shopspring/decimal"

	model "art-auction/internal/models"
)

// HighestBid returns the bid with the maximum amount. Ties go to the earliest
// placed bid. The second return value is false for an empty ledger.
func HighestBid(bids []model.Bid) (model.Bid, bool) {
	if len(bids) == 0 {
		return model.Bid{}, false
	}

	highest := bids[0]
	for _, b := range bids[1:] {
		switch highest.Amount.Cmp(b.Amount) {
		case -1:
			highest = b
		case 0:
			if b.CreatedAt.Before(highest.CreatedAt) {
				highest = b
			}
		}
	}
	return highest, true
}

// CurrentPrice is the highest bid amount, or the starting price for an empty
// ledger.
func CurrentPrice(bids []model.Bid, startingPrice decimal.Decimal) decimal.Decimal {
	if highest, ok := HighestBid(bids); ok {
		return highest.Amount
	}
	return startingPrice
}

// Winner returns the winning bid of an ended auction. It reports false while
// the auction is still running and for an empty ledger.
func Winner(bids []model.Bid, endsAt, now time.Time) (model.Bid, bool) {
	remaining, err := ComputeRemaining(endsAt, now)
	if err != nil || !remaining.Ended {
		return model.Bid{}, false
	}
	return HighestBid(bids)
}
