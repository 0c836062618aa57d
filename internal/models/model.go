package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role classifies what a user is allowed to do in the marketplace
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSeller   Role = "SELLER"
	RoleCustomer Role = "CUSTOMER"
)

// ItemStatus is the moderation state of a listed item
type ItemStatus string

const (
	ItemPending  ItemStatus = "PENDING"
	ItemApproved ItemStatus = "APPROVED"
	ItemRejected ItemStatus = "REJECTED"
)

// AuctionStatus tracks the auction lifecycle of an approved item
type AuctionStatus string

const (
	AuctionNotStarted AuctionStatus = "NOT_STARTED"
	AuctionActive     AuctionStatus = "ACTIVE"
	AuctionEnded      AuctionStatus = "ENDED"
)

// ApplicationStatus is the moderation state of a seller application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// User represents a participant in the marketplace
type User struct {
	UserID       string    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category groups items for catalog browsing
type Category struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// Item represents an artwork listed for auction
type Item struct {
	ItemID        string          `json:"item_id"`
	SellerID      string          `json:"seller_id"`
	CategoryID    string          `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	Status        ItemStatus      `json:"status"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	AdminID       string          `json:"admin_id,omitempty"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	AuctionStatus AuctionStatus   `json:"auction_status"`
	CreatedAt     time.Time       `json:"created_at"`
	ImageBase64   string          `json:"image_base64,omitempty"`
}

// Bid represents a user's bid on an item. Bids are immutable once recorded.
type Bid struct {
	BidID      string          `json:"bid_id"`
	ItemID     string          `json:"item_id"`
	BidderID   string          `json:"bidder_id"`
	BidderName string          `json:"bidder_name"`
	SellerID   string          `json:"seller_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SellerApplication is a user's request to be promoted to seller
type SellerApplication struct {
	ApplicationID string            `json:"application_id"`
	UserID        string            `json:"user_id"`
	Description   string            `json:"description"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     time.Time         `json:"applied_at"`
	ApprovedAt    *time.Time        `json:"approved_at,omitempty"`
	AdminID       string            `json:"admin_id,omitempty"`
}

// Payment records the settlement of a winning bid
type Payment struct {
	PaymentID       string          `json:"payment_id"`
	BidID           string          `json:"bid_id"`
	CustomerID      string          `json:"customer_id"`
	SellerID        string          `json:"seller_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          PaymentStatus   `json:"status"`
	TransactionTime time.Time       `json:"transaction_time"`
}
