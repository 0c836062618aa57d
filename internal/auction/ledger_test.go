package auction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	model "art-auction/internal/models"
)

func bid(id, bidderID string, amount int64, placedAt time.Time) model.Bid {
	return model.Bid{
		BidID:     id,
		ItemID:    "item1",
		BidderID:  bidderID,
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: placedAt,
	}
}

// Test HighestBid
func TestHighestBid(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		bids   []model.Bid
		wantID string
		wantOK bool
	}{
		{name: "empty_ledger", bids: nil, wantOK: false},
		{
			name:   "single_bid",
			bids:   []model.Bid{bid("b1", "u1", 100, base)},
			wantID: "b1", wantOK: true,
		},
		{
			name: "highest_wins_regardless_of_order",
			bids: []model.Bid{
				bid("b1", "u1", 1200, base),
				bid("b3", "u3", 1850, base.Add(2*time.Minute)),
				bid("b2", "u2", 1500, base.Add(time.Minute)),
			},
			wantID: "b3", wantOK: true,
		},
		{
			name: "tie_goes_to_earliest_placed",
			bids: []model.Bid{
				bid("late", "u2", 900, base.Add(time.Hour)),
				bid("early", "u1", 900, base),
			},
			wantID: "early", wantOK: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := HighestBid(tc.bids)
			require.Equal(t, tc.wantOK, ok)
			if ok {
				require.Equal(t, tc.wantID, got.BidID)
			}
		})
	}
}

// Appending a higher bid must move the highest; a lower one must not.
func TestHighestBid_Monotonic(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ledger := []model.Bid{bid("b1", "u1", 500, base)}

	ledger = append(ledger, bid("b2", "u2", 600, base.Add(time.Minute)))
	highest, ok := HighestBid(ledger)
	require.True(t, ok)
	require.Equal(t, "b2", highest.BidID)

	ledger = append(ledger, bid("b3", "u3", 550, base.Add(2*time.Minute)))
	highest, ok = HighestBid(ledger)
	require.True(t, ok)
	require.Equal(t, "b2", highest.BidID, "lower bid must never displace the highest")
}

func TestCurrentPrice(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	starting := decimal.NewFromInt(500)

	require.True(t, CurrentPrice(nil, starting).Equal(starting))

	ledger := []model.Bid{bid("b1", "u1", 650, base)}
	require.True(t, CurrentPrice(ledger, starting).Equal(decimal.NewFromInt(650)))
}

// Test Winner
func TestWinner(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	endsAt := base.Add(time.Hour)
	ledger := []model.Bid{
		bid("b1", "u1", 1200, base),
		bid("b2", "u2", 1500, base.Add(time.Minute)),
		bid("b3", "u3", 1850, base.Add(2*time.Minute)),
	}

	tests := []struct {
		name   string
		bids   []model.Bid
		now    time.Time
		wantID string
		wantOK bool
	}{
		{name: "not_ended_yet", bids: ledger, now: base, wantOK: false},
		{name: "ended_empty_ledger", bids: nil, now: endsAt.Add(time.Second), wantOK: false},
		{name: "ended_highest_wins", bids: ledger, now: endsAt.Add(time.Second), wantID: "b3", wantOK: true},
		{name: "boundary_end_is_inclusive", bids: ledger, now: endsAt, wantID: "b3", wantOK: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Winner(tc.bids, endsAt, tc.now)
			require.Equal(t, tc.wantOK, ok)
			if ok {
				require.Equal(t, tc.wantID, got.BidID)
				highest, _ := HighestBid(tc.bids)
				require.True(t, got.Amount.Equal(highest.Amount))
			}
		})
	}
}
