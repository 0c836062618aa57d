package auction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Test Increment and MinimumNextBid
func TestIncrement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int64
		floor   int64
		want    int64
	}{
		{name: "five_percent_exact", current: 500, floor: 500, want: 25},
		{name: "five_percent_rounds_up", current: 1850, floor: 500, want: 93}, // ceil(92.5)
		{name: "small_amount_rounds_to_one", current: 10, floor: 10, want: 1},
		{name: "zero_current_falls_back_to_floor", current: 0, floor: 200, want: 10},
		{name: "zero_current_zero_floor", current: 0, floor: 0, want: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			current := decimal.NewFromInt(tc.current)
			floor := decimal.NewFromInt(tc.floor)

			inc := Increment(current, floor)
			require.True(t, inc.Equal(decimal.NewFromInt(tc.want)),
				"increment = %s, want %d", inc, tc.want)

			// minimumNextBid(h) > h must hold for every case
			min := MinimumNextBid(current, floor)
			require.True(t, min.GreaterThan(current))
			require.True(t, min.Equal(current.Add(inc)))
		})
	}
}

func TestSuggestedBids(t *testing.T) {
	t.Parallel()

	current := decimal.NewFromInt(500)
	floor := decimal.NewFromInt(500)

	got := SuggestedBids(current, floor)
	require.True(t, got[0].Equal(decimal.NewFromInt(525)))
	require.True(t, got[1].Equal(decimal.NewFromInt(550)))
	require.True(t, got[2].Equal(decimal.NewFromInt(575)))

	// strictly increasing, all above the current price
	require.True(t, got[0].GreaterThan(current))
	require.True(t, got[1].GreaterThan(got[0]))
	require.True(t, got[2].GreaterThan(got[1]))
}
