package handler

// Request DTOs
type PaymentRequest struct {
	BidID string `json:"bid_id" binding:"required"`
}
