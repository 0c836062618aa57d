// Package auction holds the pure auction-state computations: countdown
// decomposition, ledger queries, the minimum-increment rule and the bidding
// panel aggregation. Everything here is a function of its inputs; callers
// supply the wall clock.
package auction

import (
	"fmt"
	"time"

	"art-auction/internal/auctionerrors"
)

const (
	msPerDay    = 86400000
	msPerHour   = 3600000
	msPerMinute = 60000
	msPerSecond = 1000
)

// Remaining is the breakdown of time left until an auction ends
type Remaining struct {
	Ended        bool  `json:"ended"`
	Days         int   `json:"days"`
	Hours        int   `json:"hours"`
	Minutes      int   `json:"minutes"`
	Seconds      int   `json:"seconds"`
	TotalSeconds int64 `json:"total_seconds"`
}

// ComputeRemaining decomposes the delta between endsAt and now. An auction is
// ended exactly when now >= endsAt. A zero endsAt is rejected rather than
// treated as an auction that ended at the epoch.
func ComputeRemaining(endsAt, now time.Time) (Remaining, error) {
	if endsAt.IsZero() {
		return Remaining{}, fmt.Errorf("compute remaining: %w", auctionerrors.ErrInvalidAuctionEnd)
	}

	diff := endsAt.Sub(now).Milliseconds()
	if diff <= 0 {
		return Remaining{Ended: true}, nil
	}

	r := Remaining{TotalSeconds: diff / msPerSecond}
	r.Days = int(diff / msPerDay)
	diff %= msPerDay
	r.Hours = int(diff / msPerHour)
	diff %= msPerHour
	r.Minutes = int(diff / msPerMinute)
	diff %= msPerMinute
	r.Seconds = int(diff / msPerSecond)
	return r, nil
}

// String renders the countdown the way the bidding panel displays it
func (r Remaining) String() string {
	if r.Ended {
		return "auction ended"
	}
	return fmt.Sprintf("%dd %dh %dm %ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}
