// Package live pushes accepted bids to clients watching an item, replacing
// the polling-and-merge the old frontend did. A Broker carries events from the
// bidding service to the Hub, either in-process or through Redis pub/sub when
// several nodes serve websockets.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	model "art-auction/internal/models"
)

// Event kinds, carried on every payload so clients can route bids and chat
// messages arriving on the same connection.
const (
	KindBid  = "BID"
	KindChat = "CHAT"
)

// BidEvent is the payload broadcast to watchers after a bid is recorded.
// CurrentBid and MinimumNextBid are included so clients can update the
// bidding panel without refetching the ledger.
type BidEvent struct {
	Kind           string          `json:"kind"`
	ItemID         string          `json:"item_id"`
	Bid            model.Bid       `json:"bid"`
	CurrentBid     decimal.Decimal `json:"current_bid"`
	MinimumNextBid decimal.Decimal `json:"minimum_next_bid"`
}

// ChatEvent is a chat message posted in an item's auction room. Messages are
// fan-out only; nothing is stored.
type ChatEvent struct {
	Kind      string    `json:"kind"`
	ItemID    string    `json:"item_id"`
	MessageID string    `json:"message_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}

// Broker delivers bid and chat events to whatever is fanning them out to
// clients.
type Broker interface {
	PublishBid(ctx context.Context, event BidEvent) error
	PublishChat(ctx context.Context, event ChatEvent) error
}

func encodeEvent(itemID string, event any) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event for item %s: %w", itemID, err)
	}
	return payload, nil
}

// LocalBroker feeds the hub directly; the single-node default
type LocalBroker struct {
	hub *Hub
}

// NewLocalBroker creates a broker that broadcasts through the given hub
func NewLocalBroker(hub *Hub) *LocalBroker {
	return &LocalBroker{hub: hub}
}

// PublishBid broadcasts the event to clients watching the item
func (b *LocalBroker) PublishBid(_ context.Context, event BidEvent) error {
	event.Kind = KindBid
	payload, err := encodeEvent(event.ItemID, event)
	if err != nil {
		return err
	}
	b.hub.Broadcast(event.ItemID, payload)
	return nil
}

// PublishChat broadcasts a chat message to clients watching the item
func (b *LocalBroker) PublishChat(_ context.Context, event ChatEvent) error {
	event.Kind = KindChat
	payload, err := encodeEvent(event.ItemID, event)
	if err != nil {
		return err
	}
	b.hub.Broadcast(event.ItemID, payload)
	return nil
}
