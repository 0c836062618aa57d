package auction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
)

// Test BiddingPanel against the end-to-end scenarios of the bidding panel.
func TestBiddingPanel(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base := now.Add(-time.Hour)
	starting := decimal.NewFromInt(500)

	endedLedger := []model.Bid{
		bid("b1", "u1", 1200, base),
		bid("b2", "u2", 1500, base.Add(time.Minute)),
		bid("b3", "u3", 1850, base.Add(2*time.Minute)),
	}

	tests := []struct {
		name      string
		viewerID  string
		bids      []model.Bid
		endsAt    time.Time
		wantState State
		check     func(t *testing.T, snap Snapshot)
	}{
		{
			// fresh auction, no bids: current bid falls back to the
			// starting price and the minimum next bid is 525
			name:      "fresh_auction_authenticated",
			viewerID:  "u1",
			bids:      nil,
			endsAt:    now.Add(24 * time.Hour),
			wantState: StateBidding,
			check: func(t *testing.T, snap Snapshot) {
				require.True(t, snap.CurrentBid.Equal(decimal.NewFromInt(500)))
				require.True(t, snap.MinimumNextBid.Equal(decimal.NewFromInt(525)))
				require.False(t, snap.Remaining.Ended)
				require.Nil(t, snap.WinningBid)
			},
		},
		{
			name:      "ended_viewer_is_winner",
			viewerID:  "u3",
			bids:      endedLedger,
			endsAt:    now.Add(-time.Minute),
			wantState: StateWinner,
			check: func(t *testing.T, snap Snapshot) {
				require.NotNil(t, snap.WinningBid)
				require.True(t, snap.WinningBid.Amount.Equal(decimal.NewFromInt(1850)))
			},
		},
		{
			name:      "ended_viewer_lost",
			viewerID:  "u1",
			bids:      endedLedger,
			endsAt:    now.Add(-time.Minute),
			wantState: StateEndedNoWin,
			check: func(t *testing.T, snap Snapshot) {
				require.NotNil(t, snap.WinningBid)
				require.True(t, snap.CurrentBid.Equal(decimal.NewFromInt(1850)))
			},
		},
		{
			name:      "ended_exactly_now_boundary_inclusive",
			viewerID:  "u3",
			bids:      endedLedger,
			endsAt:    now,
			wantState: StateWinner,
		},
		{
			name:      "anonymous_always_not_authenticated",
			viewerID:  "",
			bids:      endedLedger,
			endsAt:    now.Add(-time.Minute),
			wantState: StateNotAuthenticated,
		},
		{
			name:      "anonymous_running_auction",
			viewerID:  "",
			bids:      nil,
			endsAt:    now.Add(time.Hour),
			wantState: StateNotAuthenticated,
		},
		{
			name:      "ended_no_bids_is_no_win",
			viewerID:  "u1",
			bids:      nil,
			endsAt:    now.Add(-time.Minute),
			wantState: StateEndedNoWin,
			check: func(t *testing.T, snap Snapshot) {
				require.Nil(t, snap.WinningBid)
				require.True(t, snap.CurrentBid.Equal(starting))
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			snap, err := BiddingPanel(tc.viewerID, tc.bids, starting, tc.endsAt, now)
			require.NoError(t, err)
			require.Equal(t, tc.wantState, snap.State)
			if tc.check != nil {
				tc.check(t, snap)
			}
		})
	}
}

func TestBiddingPanel_InvalidEndTime(t *testing.T) {
	t.Parallel()

	_, err := BiddingPanel("u1", nil, decimal.NewFromInt(500), time.Time{}, time.Now())
	require.ErrorIs(t, err, auctionerrors.ErrInvalidAuctionEnd)
}
