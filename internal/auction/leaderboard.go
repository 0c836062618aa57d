package auction

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	model "art-auction/internal/models"
)

// BidderStanding is one row of an item's leaderboard: a bidder's best bid and
// how many bids they placed in total.
type BidderStanding struct {
	BidderID   string
	BidderName string
	BestBid    decimal.Decimal
	BestBidAt  time.Time
	BidCount   int
}

// TopBidders ranks an item's bidders by their best bid, highest first. A tie
// goes to whoever reached that amount earlier. limit <= 0 means no limit.
func TopBidders(bids []model.Bid, limit int) []BidderStanding {
	byBidder := make(map[string]*BidderStanding)

	for _, b := range bids {
		standing, ok := byBidder[b.BidderID]
		if !ok {
			standing = &BidderStanding{
				BidderID:   b.BidderID,
				BidderName: b.BidderName,
				BestBid:    b.Amount,
				BestBidAt:  b.CreatedAt,
			}
			byBidder[b.BidderID] = standing
		}
		standing.BidCount++

		switch standing.BestBid.Cmp(b.Amount) {
		case -1:
			standing.BestBid = b.Amount
			standing.BestBidAt = b.CreatedAt
		case 0:
			if b.CreatedAt.Before(standing.BestBidAt) {
				standing.BestBidAt = b.CreatedAt
			}
		}
	}

	standings := make([]BidderStanding, 0, len(byBidder))
	for _, standing := range byBidder {
		standings = append(standings, *standing)
	}

	sort.Slice(standings, func(i, j int) bool {
		switch standings[i].BestBid.Cmp(standings[j].BestBid) {
		case 1:
			return true
		case -1:
			return false
		}
		return standings[i].BestBidAt.Before(standings[j].BestBidAt)
	})

	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}
	return standings
}
