package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrBidNotFound         = errors.New("bid not found")
	ErrApplicationNotFound = errors.New("seller application not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrNoBids              = errors.New("no bids found for item")
	ErrUserNoBids          = errors.New("user has not placed any bids")
	ErrDuplicateUsername   = errors.New("username already taken")
)

// business logic errors
var (
	ErrInvalidBid           = errors.New("invalid bid")
	ErrBidTooLow            = errors.New("bid amount too low")
	ErrAuctionNotActive     = errors.New("auction is not active")
	ErrAuctionNotEnded      = errors.New("auction has not ended")
	ErrSelfBid              = errors.New("sellers cannot bid on their own items")
	ErrRoleNotAllowed       = errors.New("role not allowed for this operation")
	ErrNotOwner             = errors.New("operation allowed only for the owner")
	ErrDuplicateApplication = errors.New("user already has a seller application")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrWeakPassword         = errors.New("password must be at least 8 characters")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidAuctionEnd    = errors.New("invalid auction end time")
)
