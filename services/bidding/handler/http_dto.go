package handler

import "github.com/shopspring/decimal"

// Request/Response DTOs. Amounts travel as decimal strings so no precision is
// lost between client and ledger.
type PlaceBidRequest struct {
	ItemID string          `json:"item_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type BidResponse struct {
	BidID      string `json:"bid_id"`
	ItemID     string `json:"item_id"`
	BidderID   string `json:"bidder_id"`
	BidderName string `json:"bidder_name,omitempty"`
	Amount     string `json:"amount"`
	CreatedAt  string `json:"created_at"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatMessageResponse struct {
	MessageID string `json:"message_id"`
	ItemID    string `json:"item_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	SentAt    string `json:"sent_at"`
}

type BidderStandingResponse struct {
	BidderID   string `json:"bidder_id"`
	BidderName string `json:"bidder_name"`
	BestBid    string `json:"best_bid"`
	BidCount   int    `json:"bid_count"`
}
