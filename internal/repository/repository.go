package repository

import (
	model "art-auction/internal/models"
)

// ItemFilter narrows ListItems; zero-valued fields match everything
type ItemFilter struct {
	Status     model.ItemStatus
	CategoryID string
	SellerID   string
}

// AuctionDB defines the bid storage interface for the auction system
type AuctionDB interface {
	RecordBidForItem(bid model.Bid) error
	GetBidByID(bidID string) (model.Bid, error)
	GetBidsByItem(itemID string) ([]model.Bid, error)
	GetBidsByUser(userID string) ([]model.Bid, error)
	GetItemsByUser(userID string) ([]model.Item, error)
}

// ItemDB defines catalog item storage
type ItemDB interface {
	AddItem(item model.Item) error
	GetItem(itemID string) (model.Item, error)
	UpdateItem(item model.Item) error
	DeleteItem(itemID string) error
	ListItems(filter ItemFilter) ([]model.Item, error)
}

// UserDB defines user account storage
type UserDB interface {
	AddUser(user model.User) error
	GetUser(userID string) (model.User, error)
	GetUserByUsername(username string) (model.User, error)
	UpdateUser(user model.User) error
	DeleteUser(userID string) error
	ListUsers(role model.Role) ([]model.User, error)
}

// CategoryDB defines category storage
type CategoryDB interface {
	AddCategory(category model.Category) error
	GetCategory(categoryID string) (model.Category, error)
	ListCategories() ([]model.Category, error)
}

// ApplicationDB defines seller application storage
type ApplicationDB interface {
	AddApplication(app model.SellerApplication) error
	GetApplication(applicationID string) (model.SellerApplication, error)
	GetApplicationByUser(userID string) (model.SellerApplication, error)
	ListApplications() ([]model.SellerApplication, error)
	UpdateApplication(app model.SellerApplication) error
	DeleteApplication(applicationID string) error
}

// PaymentDB defines payment storage
type PaymentDB interface {
	AddPayment(payment model.Payment) error
	GetPayment(paymentID string) (model.Payment, error)
	ListPaymentsByCustomer(customerID string) ([]model.Payment, error)
	ListPaymentsBySeller(sellerID string) ([]model.Payment, error)
}

// Store is the full persistence surface of the marketplace
type Store interface {
	AuctionDB
	ItemDB
	UserDB
	CategoryDB
	ApplicationDB
	PaymentDB
	Close() error
}
