package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"art-auction/internal/auctionerrors"
)

// Test ComputeRemaining
func TestComputeRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		endsAt    time.Time
		wantEnded bool
		want      Remaining
		wantErr   error
	}{
		{
			name:    "zero_end_time",
			endsAt:  time.Time{},
			wantErr: auctionerrors.ErrInvalidAuctionEnd,
		},
		{
			name:      "ended_in_the_past",
			endsAt:    now.Add(-time.Hour),
			wantEnded: true,
			want:      Remaining{Ended: true},
		},
		{
			name:      "boundary_now_equals_end",
			endsAt:    now,
			wantEnded: true,
			want:      Remaining{Ended: true},
		},
		{
			name:   "one_second_left",
			endsAt: now.Add(time.Second),
			want:   Remaining{Seconds: 1, TotalSeconds: 1},
		},
		{
			name:   "sub_second_floors_to_zero",
			endsAt: now.Add(500 * time.Millisecond),
			want:   Remaining{TotalSeconds: 0},
		},
		{
			name:   "full_decomposition",
			endsAt: now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second),
			want: Remaining{
				Days: 2, Hours: 3, Minutes: 4, Seconds: 5,
				TotalSeconds: 2*86400 + 3*3600 + 4*60 + 5,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ComputeRemaining(tc.endsAt, now)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// The decomposition must always add back up to the floored total seconds.
func TestComputeRemaining_DecompositionConsistency(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deltas := []time.Duration{
		time.Second,
		59 * time.Second,
		61 * time.Second,
		90 * time.Minute,
		25 * time.Hour,
		9*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second,
		777*time.Hour + 123*time.Millisecond,
	}

	for _, d := range deltas {
		got, err := ComputeRemaining(now.Add(d), now)
		require.NoError(t, err)
		require.False(t, got.Ended)
		sum := int64(got.Days)*86400 + int64(got.Hours)*3600 + int64(got.Minutes)*60 + int64(got.Seconds)
		require.Equal(t, got.TotalSeconds, sum, "delta %s", d)
		require.Equal(t, d.Milliseconds()/1000, got.TotalSeconds, "delta %s", d)
	}
}

func TestRemaining_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "auction ended", Remaining{Ended: true}.String())
	require.Equal(t, "1d 2h 3m 4s", Remaining{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}.String())
}
