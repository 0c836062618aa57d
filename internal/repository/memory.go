package repository

import (
	"fmt"
	"sync"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
)

// Ensure MemoryRepo implements Store
var _ Store = (*MemoryRepo)(nil)

// MemoryRepo is a concurrency-safe in-memory implementation of Store. It is
// the default backend when no database path is configured and backs most
// tests.
type MemoryRepo struct {
	mu           sync.RWMutex
	bids         map[string][]model.Bid // key: itemID -> chronological bids
	bidsByID     map[string]model.Bid
	items        map[string]model.Item
	users        map[string]model.User
	categories   map[string]model.Category
	applications map[string]model.SellerApplication
	payments     map[string]model.Payment
	userItems    map[string][]string // key: userID -> itemIDs the user has bid on
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		bids:         make(map[string][]model.Bid),
		bidsByID:     make(map[string]model.Bid),
		items:        make(map[string]model.Item),
		users:        make(map[string]model.User),
		categories:   make(map[string]model.Category),
		applications: make(map[string]model.SellerApplication),
		payments:     make(map[string]model.Payment),
		userItems:    make(map[string][]string),
	}
}

// Close is a no-op for the in-memory backend
func (r *MemoryRepo) Close() error { return nil }

// RecordBidForItem records a user's bid on an item
func (r *MemoryRepo) RecordBidForItem(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[bid.ItemID]; !ok {
		return fmt.Errorf("record bid for item %s: %w", bid.ItemID, auctionerrors.ErrItemNotFound)
	}

	r.bids[bid.ItemID] = append(r.bids[bid.ItemID], bid)
	r.bidsByID[bid.BidID] = bid

	for _, id := range r.userItems[bid.BidderID] {
		if id == bid.ItemID {
			return nil
		}
	}
	r.userItems[bid.BidderID] = append(r.userItems[bid.BidderID], bid.ItemID)

	return nil
}

// GetBidByID returns a single bid
func (r *MemoryRepo) GetBidByID(bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bidsByID[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	return bid, nil
}

// GetBidsByItem returns all bids for an item in placement order
func (r *MemoryRepo) GetBidsByItem(itemID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[itemID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for item %s: %w", itemID, auctionerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), bids...), nil
}

// GetBidsByUser returns all bids a user has placed, across items
func (r *MemoryRepo) GetBidsByUser(userID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Bid
	for _, itemID := range r.userItems[userID] {
		for _, b := range r.bids[itemID] {
			if b.BidderID == userID {
				out = append(out, b)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("get bids for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}
	return out, nil
}

// GetItemsByUser returns all items a user has bid on
func (r *MemoryRepo) GetItemsByUser(userID string) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemIDs, ok := r.userItems[userID]
	if !ok || len(itemIDs) == 0 {
		return nil, fmt.Errorf("get items for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}

	items := make([]model.Item, 0, len(itemIDs))
	for _, id := range itemIDs {
		if item, exists := r.items[id]; exists {
			items = append(items, item)
		}
	}
	return items, nil
}

// AddItem adds an item to the repository
func (r *MemoryRepo) AddItem(item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ItemID] = item
	return nil
}

// GetItem returns an item by ID
func (r *MemoryRepo) GetItem(itemID string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	return item, nil
}

// UpdateItem replaces a stored item
func (r *MemoryRepo) UpdateItem(item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ItemID]; !ok {
		return fmt.Errorf("update item %s: %w", item.ItemID, auctionerrors.ErrItemNotFound)
	}
	r.items[item.ItemID] = item
	return nil
}

// DeleteItem removes an item
func (r *MemoryRepo) DeleteItem(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("delete item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	delete(r.items, itemID)
	delete(r.bids, itemID)
	return nil
}

// ListItems returns all items matching the filter
func (r *MemoryRepo) ListItems(filter ItemFilter) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && item.CategoryID != filter.CategoryID {
			continue
		}
		if filter.SellerID != "" && item.SellerID != filter.SellerID {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// AddUser stores a new user. Usernames are unique.
func (r *MemoryRepo) AddUser(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("add user %s: %w", user.Username, auctionerrors.ErrDuplicateUsername)
		}
	}
	r.users[user.UserID] = user
	return nil
}

// GetUser returns a user by ID
func (r *MemoryRepo) GetUser(userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// GetUserByUsername returns a user by username
func (r *MemoryRepo) GetUserByUsername(username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("get user by username %s: %w", username, auctionerrors.ErrUserNotFound)
}

// UpdateUser replaces a stored user
func (r *MemoryRepo) UpdateUser(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserID]; !ok {
		return fmt.Errorf("update user %s: %w", user.UserID, auctionerrors.ErrUserNotFound)
	}
	r.users[user.UserID] = user
	return nil
}

// DeleteUser removes a user
func (r *MemoryRepo) DeleteUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("delete user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	delete(r.users, userID)
	return nil
}

// ListUsers returns all users, optionally filtered by role
func (r *MemoryRepo) ListUsers(role model.Role) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// AddCategory stores a new category
func (r *MemoryRepo) AddCategory(category model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.CategoryID] = category
	return nil
}

// GetCategory returns a category by ID
func (r *MemoryRepo) GetCategory(categoryID string) (model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[categoryID]
	if !ok {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	return category, nil
}

// ListCategories returns all categories
func (r *MemoryRepo) ListCategories() ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

// AddApplication stores a new seller application
func (r *MemoryRepo) AddApplication(app model.SellerApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[app.ApplicationID] = app
	return nil
}

// GetApplication returns a seller application by ID
func (r *MemoryRepo) GetApplication(applicationID string) (model.SellerApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.applications[applicationID]
	if !ok {
		return model.SellerApplication{}, fmt.Errorf("get application %s: %w", applicationID, auctionerrors.ErrApplicationNotFound)
	}
	return app, nil
}

// GetApplicationByUser returns the application submitted by a user, if any
func (r *MemoryRepo) GetApplicationByUser(userID string) (model.SellerApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, app := range r.applications {
		if app.UserID == userID {
			return app, nil
		}
	}
	return model.SellerApplication{}, fmt.Errorf("get application for user %s: %w", userID, auctionerrors.ErrApplicationNotFound)
}

// ListApplications returns all seller applications
func (r *MemoryRepo) ListApplications() ([]model.SellerApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]model.SellerApplication, 0, len(r.applications))
	for _, app := range r.applications {
		apps = append(apps, app)
	}
	return apps, nil
}

// UpdateApplication replaces a stored application
func (r *MemoryRepo) UpdateApplication(app model.SellerApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[app.ApplicationID]; !ok {
		return fmt.Errorf("update application %s: %w", app.ApplicationID, auctionerrors.ErrApplicationNotFound)
	}
	r.applications[app.ApplicationID] = app
	return nil
}

// DeleteApplication removes a seller application
func (r *MemoryRepo) DeleteApplication(applicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[applicationID]; !ok {
		return fmt.Errorf("delete application %s: %w", applicationID, auctionerrors.ErrApplicationNotFound)
	}
	delete(r.applications, applicationID)
	return nil
}

// AddPayment stores a payment record
func (r *MemoryRepo) AddPayment(payment model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.PaymentID] = payment
	return nil
}

// GetPayment returns a payment by ID
func (r *MemoryRepo) GetPayment(paymentID string) (model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[paymentID]
	if !ok {
		return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, auctionerrors.ErrPaymentNotFound)
	}
	return payment, nil
}

// ListPaymentsByCustomer returns all payments made by a customer
func (r *MemoryRepo) ListPaymentsByCustomer(customerID string) ([]model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListPaymentsBySeller returns all payments received by a seller
func (r *MemoryRepo) ListPaymentsBySeller(sellerID string) ([]model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Payment
	for _, p := range r.payments {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}
