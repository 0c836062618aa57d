package auction

import (
	"time"

	"github.com/shopspring/decimal"

	model "art-auction/internal/models"
)

// State selects which block the bidding panel renders
type State string

const (
	StateNotAuthenticated State = "NOT_AUTHENTICATED"
	StateBidding          State = "BIDDING"
	StateWinner           State = "WINNER"
	StateEndedNoWin       State = "ENDED_NO_WIN"
)

// Snapshot is everything the bidding panel needs for one render. It carries no
// state of its own; every field is derived from the inputs of BiddingPanel.
type Snapshot struct {
	State          State              `json:"state"`
	StartingPrice  decimal.Decimal    `json:"starting_price"`
	CurrentBid     decimal.Decimal    `json:"current_bid"`
	Increment      decimal.Decimal    `json:"increment"`
	MinimumNextBid decimal.Decimal    `json:"minimum_next_bid"`
	SuggestedBids  [3]decimal.Decimal `json:"suggested_bids"`
	Remaining      Remaining          `json:"remaining"`
	WinningBid     *model.Bid         `json:"winning_bid,omitempty"`
}

// BiddingPanel aggregates ledger, countdown and increment advice into the
// panel snapshot for one viewer. viewerID is empty for anonymous visitors.
// Callers re-invoke on every tick; nothing is cached between calls.
func BiddingPanel(viewerID string, bids []model.Bid, startingPrice decimal.Decimal, endsAt, now time.Time) (Snapshot, error) {
	remaining, err := ComputeRemaining(endsAt, now)
	if err != nil {
		return Snapshot{}, err
	}

	current := CurrentPrice(bids, startingPrice)
	snap := Snapshot{
		StartingPrice:  startingPrice,
		CurrentBid:     current,
		Increment:      Increment(current, startingPrice),
		MinimumNextBid: MinimumNextBid(current, startingPrice),
		SuggestedBids:  SuggestedBids(current, startingPrice),
		Remaining:      remaining,
	}

	if winner, ok := Winner(bids, endsAt, now); ok {
		snap.WinningBid = &winner
	}

	switch {
	case viewerID == "":
		snap.State = StateNotAuthenticated
	case !remaining.Ended:
		snap.State = StateBidding
	case snap.WinningBid != nil && snap.WinningBid.BidderID == viewerID:
		snap.State = StateWinner
	default:
		snap.State = StateEndedNoWin
	}
	return snap, nil
}
