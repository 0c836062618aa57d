// Package sqlite provides a SQLite-backed implementation of repository.Store
// using the pure Go driver, so the binary builds without CGO.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
	"art-auction/internal/repository"
)

// Ensure SQLiteStore implements repository.Store
var _ repository.Store = (*SQLiteStore)(nil)

// SQLiteStore implements repository.Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// New opens the database at dbPath, creating parent directories and running
// migrations.
func New(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Timestamps are stored as unix milliseconds, matching the millisecond
// resolution of the countdown computation.
func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func toNullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromNullMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64).UTC()
	return &t
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse stored amount %q: %w", raw, err)
	}
	return amount, nil
}

// RecordBidForItem records a user's bid on an item
func (s *SQLiteStore) RecordBidForItem(bid model.Bid) error {
	if _, err := s.GetItem(bid.ItemID); err != nil {
		return fmt.Errorf("record bid for item %s: %w", bid.ItemID, auctionerrors.ErrItemNotFound)
	}

	_, err := s.db.Exec(
		`INSERT INTO bids (bid_id, item_id, bidder_id, bidder_name, seller_id, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bid.BidID, bid.ItemID, bid.BidderID, bid.BidderName, bid.SellerID,
		bid.Amount.String(), toMillis(bid.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert bid %s: %w", bid.BidID, err)
	}
	return nil
}

func scanBids(rows *sql.Rows) ([]model.Bid, error) {
	defer rows.Close()

	var out []model.Bid
	for rows.Next() {
		var (
			b         model.Bid
			amount    string
			createdAt int64
		)
		if err := rows.Scan(&b.BidID, &b.ItemID, &b.BidderID, &b.BidderName, &b.SellerID, &amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		parsed, err := parseAmount(amount)
		if err != nil {
			return nil, err
		}
		b.Amount = parsed
		b.CreatedAt = fromMillis(createdAt)
		out = append(out, b)
	}
	return out, rows.Err()
}

const bidColumns = "bid_id, item_id, bidder_id, bidder_name, seller_id, amount, created_at"

// GetBidByID returns a single bid
func (s *SQLiteStore) GetBidByID(bidID string) (model.Bid, error) {
	rows, err := s.db.Query(
		"SELECT "+bidColumns+" FROM bids WHERE bid_id = ?", bidID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	bids, err := scanBids(rows)
	if err != nil {
		return model.Bid{}, err
	}
	if len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	return bids[0], nil
}

// GetBidsByItem returns all bids for an item in placement order
func (s *SQLiteStore) GetBidsByItem(itemID string) ([]model.Bid, error) {
	rows, err := s.db.Query(
		"SELECT "+bidColumns+" FROM bids WHERE item_id = ? ORDER BY created_at ASC", itemID)
	if err != nil {
		return nil, fmt.Errorf("get bids for item %s: %w", itemID, err)
	}
	bids, err := scanBids(rows)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for item %s: %w", itemID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// GetBidsByUser returns all bids a user has placed
func (s *SQLiteStore) GetBidsByUser(userID string) ([]model.Bid, error) {
	rows, err := s.db.Query(
		"SELECT "+bidColumns+" FROM bids WHERE bidder_id = ? ORDER BY created_at ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("get bids for user %s: %w", userID, err)
	}
	bids, err := scanBids(rows)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}
	return bids, nil
}

// GetItemsByUser returns all items a user has bid on
func (s *SQLiteStore) GetItemsByUser(userID string) ([]model.Item, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT i.`+itemColumnsJoined+`
		 FROM items i JOIN bids b ON b.item_id = i.item_id
		 WHERE b.bidder_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("get items for user %s: %w", userID, err)
	}
	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("get items for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}
	return items, nil
}

const itemColumns = `item_id, seller_id, category_id, name, description, starting_price,
	status, approved_at, admin_id, start_time, end_time, auction_status, created_at, image_base64`

const itemColumnsJoined = `item_id, i.seller_id, i.category_id, i.name, i.description, i.starting_price,
	i.status, i.approved_at, i.admin_id, i.start_time, i.end_time, i.auction_status, i.created_at, i.image_base64`

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var (
			it                             model.Item
			startingPrice                  string
			approvedAt                     sql.NullInt64
			startTime, endTime, createdAt  int64
			status, auctionStatus          string
		)
		if err := rows.Scan(&it.ItemID, &it.SellerID, &it.CategoryID, &it.Name, &it.Description,
			&startingPrice, &status, &approvedAt, &it.AdminID, &startTime, &endTime,
			&auctionStatus, &createdAt, &it.ImageBase64); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		parsed, err := parseAmount(startingPrice)
		if err != nil {
			return nil, err
		}
		it.StartingPrice = parsed
		it.Status = model.ItemStatus(status)
		it.AuctionStatus = model.AuctionStatus(auctionStatus)
		it.ApprovedAt = fromNullMillis(approvedAt)
		it.StartTime = fromMillis(startTime)
		it.EndTime = fromMillis(endTime)
		it.CreatedAt = fromMillis(createdAt)
		out = append(out, it)
	}
	return out, rows.Err()
}

// AddItem adds an item to the catalog
func (s *SQLiteStore) AddItem(item model.Item) error {
	_, err := s.db.Exec(
		`INSERT INTO items (`+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ItemID, item.SellerID, item.CategoryID, item.Name, item.Description,
		item.StartingPrice.String(), string(item.Status), toNullMillis(item.ApprovedAt),
		item.AdminID, toMillis(item.StartTime), toMillis(item.EndTime),
		string(item.AuctionStatus), toMillis(item.CreatedAt), item.ImageBase64,
	)
	if err != nil {
		return fmt.Errorf("insert item %s: %w", item.ItemID, err)
	}
	return nil
}

// GetItem returns an item by ID
func (s *SQLiteStore) GetItem(itemID string) (model.Item, error) {
	rows, err := s.db.Query("SELECT "+itemColumns+" FROM items WHERE item_id = ?", itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	items, err := scanItems(rows)
	if err != nil {
		return model.Item{}, err
	}
	if len(items) == 0 {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	return items[0], nil
}

// UpdateItem replaces a stored item
func (s *SQLiteStore) UpdateItem(item model.Item) error {
	res, err := s.db.Exec(
		`UPDATE items SET seller_id = ?, category_id = ?, name = ?, description = ?,
		 starting_price = ?, status = ?, approved_at = ?, admin_id = ?, start_time = ?,
		 end_time = ?, auction_status = ?, image_base64 = ? WHERE item_id = ?`,
		item.SellerID, item.CategoryID, item.Name, item.Description,
		item.StartingPrice.String(), string(item.Status), toNullMillis(item.ApprovedAt),
		item.AdminID, toMillis(item.StartTime), toMillis(item.EndTime),
		string(item.AuctionStatus), item.ImageBase64, item.ItemID,
	)
	if err != nil {
		return fmt.Errorf("update item %s: %w", item.ItemID, err)
	}
	return requireRowChanged(res, fmt.Errorf("update item %s: %w", item.ItemID, auctionerrors.ErrItemNotFound))
}

// DeleteItem removes an item and, via cascade, its bids
func (s *SQLiteStore) DeleteItem(itemID string) error {
	res, err := s.db.Exec("DELETE FROM items WHERE item_id = ?", itemID)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", itemID, err)
	}
	return requireRowChanged(res, fmt.Errorf("delete item %s: %w", itemID, auctionerrors.ErrItemNotFound))
}

// ListItems returns all items matching the filter
func (s *SQLiteStore) ListItems(filter repository.ItemFilter) ([]model.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE 1=1"
	var args []any
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, filter.CategoryID)
	}
	if filter.SellerID != "" {
		query += " AND seller_id = ?"
		args = append(args, filter.SellerID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return scanItems(rows)
}

// AddUser stores a new user
func (s *SQLiteStore) AddUser(user model.User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (user_id, first_name, last_name, username, email, password_hash, role, bio, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.UserID, user.FirstName, user.LastName, user.Username, user.Email,
		user.PasswordHash, string(user.Role), user.Bio, toMillis(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("add user %s: %w", user.Username, auctionerrors.ErrDuplicateUsername)
		}
		return fmt.Errorf("insert user %s: %w", user.UserID, err)
	}
	return nil
}

const userColumns = "user_id, first_name, last_name, username, email, password_hash, role, bio, created_at"

func (s *SQLiteStore) scanUser(row *sql.Row, wrap string) (model.User, error) {
	var (
		u         model.User
		role      string
		createdAt int64
	)
	err := row.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
		&u.PasswordHash, &role, &u.Bio, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("%s: %w", wrap, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", wrap, err)
	}
	u.Role = model.Role(role)
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

// GetUser returns a user by ID
func (s *SQLiteStore) GetUser(userID string) (model.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE user_id = ?", userID)
	return s.scanUser(row, "get user "+userID)
}

// GetUserByUsername returns a user by username
func (s *SQLiteStore) GetUserByUsername(username string) (model.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return s.scanUser(row, "get user by username "+username)
}

// UpdateUser replaces a stored user
func (s *SQLiteStore) UpdateUser(user model.User) error {
	res, err := s.db.Exec(
		`UPDATE users SET first_name = ?, last_name = ?, username = ?, email = ?,
		 password_hash = ?, role = ?, bio = ? WHERE user_id = ?`,
		user.FirstName, user.LastName, user.Username, user.Email,
		user.PasswordHash, string(user.Role), user.Bio, user.UserID,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.UserID, err)
	}
	return requireRowChanged(res, fmt.Errorf("update user %s: %w", user.UserID, auctionerrors.ErrUserNotFound))
}

// DeleteUser removes a user
func (s *SQLiteStore) DeleteUser(userID string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return requireRowChanged(res, fmt.Errorf("delete user %s: %w", userID, auctionerrors.ErrUserNotFound))
}

// ListUsers returns all users, optionally filtered by role
func (s *SQLiteStore) ListUsers(role model.Role) ([]model.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	var args []any
	if role != "" {
		query += " WHERE role = ?"
		args = append(args, string(role))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var (
			u         model.User
			roleCol   string
			createdAt int64
		)
		if err := rows.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
			&u.PasswordHash, &roleCol, &u.Bio, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = model.Role(roleCol)
		u.CreatedAt = fromMillis(createdAt)
		out = append(out, u)
	}
	return out, rows.Err()
}

// AddCategory stores a new category
func (s *SQLiteStore) AddCategory(category model.Category) error {
	_, err := s.db.Exec("INSERT INTO categories (category_id, name) VALUES (?, ?)",
		category.CategoryID, category.Name)
	if err != nil {
		return fmt.Errorf("insert category %s: %w", category.CategoryID, err)
	}
	return nil
}

// GetCategory returns a category by ID
func (s *SQLiteStore) GetCategory(categoryID string) (model.Category, error) {
	var c model.Category
	err := s.db.QueryRow("SELECT category_id, name FROM categories WHERE category_id = ?", categoryID).
		Scan(&c.CategoryID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, err)
	}
	return c, nil
}

// ListCategories returns all categories
func (s *SQLiteStore) ListCategories() ([]model.Category, error) {
	rows, err := s.db.Query("SELECT category_id, name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const applicationColumns = "application_id, user_id, description, status, applied_at, approved_at, admin_id"

// AddApplication stores a new seller application
func (s *SQLiteStore) AddApplication(app model.SellerApplication) error {
	_, err := s.db.Exec(
		`INSERT INTO seller_applications (`+applicationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		app.ApplicationID, app.UserID, app.Description, string(app.Status),
		toMillis(app.AppliedAt), toNullMillis(app.ApprovedAt), app.AdminID,
	)
	if err != nil {
		return fmt.Errorf("insert application %s: %w", app.ApplicationID, err)
	}
	return nil
}

func scanApplication(row *sql.Row, wrap string) (model.SellerApplication, error) {
	var (
		app        model.SellerApplication
		status     string
		appliedAt  int64
		approvedAt sql.NullInt64
	)
	err := row.Scan(&app.ApplicationID, &app.UserID, &app.Description, &status,
		&appliedAt, &approvedAt, &app.AdminID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SellerApplication{}, fmt.Errorf("%s: %w", wrap, auctionerrors.ErrApplicationNotFound)
	}
	if err != nil {
		return model.SellerApplication{}, fmt.Errorf("%s: %w", wrap, err)
	}
	app.Status = model.ApplicationStatus(status)
	app.AppliedAt = fromMillis(appliedAt)
	app.ApprovedAt = fromNullMillis(approvedAt)
	return app, nil
}

// GetApplication returns a seller application by ID
func (s *SQLiteStore) GetApplication(applicationID string) (model.SellerApplication, error) {
	row := s.db.QueryRow("SELECT "+applicationColumns+" FROM seller_applications WHERE application_id = ?", applicationID)
	return scanApplication(row, "get application "+applicationID)
}

// GetApplicationByUser returns the application submitted by a user, if any
func (s *SQLiteStore) GetApplicationByUser(userID string) (model.SellerApplication, error) {
	row := s.db.QueryRow("SELECT "+applicationColumns+" FROM seller_applications WHERE user_id = ?", userID)
	return scanApplication(row, "get application for user "+userID)
}

// ListApplications returns all seller applications
func (s *SQLiteStore) ListApplications() ([]model.SellerApplication, error) {
	rows, err := s.db.Query("SELECT " + applicationColumns + " FROM seller_applications ORDER BY applied_at ASC")
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []model.SellerApplication
	for rows.Next() {
		var (
			app        model.SellerApplication
			status     string
			appliedAt  int64
			approvedAt sql.NullInt64
		)
		if err := rows.Scan(&app.ApplicationID, &app.UserID, &app.Description, &status,
			&appliedAt, &approvedAt, &app.AdminID); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		app.Status = model.ApplicationStatus(status)
		app.AppliedAt = fromMillis(appliedAt)
		app.ApprovedAt = fromNullMillis(approvedAt)
		out = append(out, app)
	}
	return out, rows.Err()
}

// UpdateApplication replaces a stored application
func (s *SQLiteStore) UpdateApplication(app model.SellerApplication) error {
	res, err := s.db.Exec(
		`UPDATE seller_applications SET description = ?, status = ?, approved_at = ?, admin_id = ?
		 WHERE application_id = ?`,
		app.Description, string(app.Status), toNullMillis(app.ApprovedAt), app.AdminID, app.ApplicationID,
	)
	if err != nil {
		return fmt.Errorf("update application %s: %w", app.ApplicationID, err)
	}
	return requireRowChanged(res, fmt.Errorf("update application %s: %w", app.ApplicationID, auctionerrors.ErrApplicationNotFound))
}

// DeleteApplication removes a seller application
func (s *SQLiteStore) DeleteApplication(applicationID string) error {
	res, err := s.db.Exec("DELETE FROM seller_applications WHERE application_id = ?", applicationID)
	if err != nil {
		return fmt.Errorf("delete application %s: %w", applicationID, err)
	}
	return requireRowChanged(res, fmt.Errorf("delete application %s: %w", applicationID, auctionerrors.ErrApplicationNotFound))
}

const paymentColumns = "payment_id, bid_id, customer_id, seller_id, amount, status, transaction_time"

// AddPayment stores a payment record
func (s *SQLiteStore) AddPayment(payment model.Payment) error {
	_, err := s.db.Exec(
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.PaymentID, payment.BidID, payment.CustomerID, payment.SellerID,
		payment.Amount.String(), string(payment.Status), toMillis(payment.TransactionTime),
	)
	if err != nil {
		return fmt.Errorf("insert payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

func scanPayments(rows *sql.Rows) ([]model.Payment, error) {
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var (
			p               model.Payment
			amount, status  string
			transactionTime int64
		)
		if err := rows.Scan(&p.PaymentID, &p.BidID, &p.CustomerID, &p.SellerID,
			&amount, &status, &transactionTime); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		parsed, err := parseAmount(amount)
		if err != nil {
			return nil, err
		}
		p.Amount = parsed
		p.Status = model.PaymentStatus(status)
		p.TransactionTime = fromMillis(transactionTime)
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPayment returns a payment by ID
func (s *SQLiteStore) GetPayment(paymentID string) (model.Payment, error) {
	rows, err := s.db.Query("SELECT "+paymentColumns+" FROM payments WHERE payment_id = ?", paymentID)
	if err != nil {
		return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, err)
	}
	payments, err := scanPayments(rows)
	if err != nil {
		return model.Payment{}, err
	}
	if len(payments) == 0 {
		return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, auctionerrors.ErrPaymentNotFound)
	}
	return payments[0], nil
}

// ListPaymentsByCustomer returns all payments made by a customer
func (s *SQLiteStore) ListPaymentsByCustomer(customerID string) ([]model.Payment, error) {
	rows, err := s.db.Query(
		"SELECT "+paymentColumns+" FROM payments WHERE customer_id = ? ORDER BY transaction_time ASC", customerID)
	if err != nil {
		return nil, fmt.Errorf("list payments for customer %s: %w", customerID, err)
	}
	return scanPayments(rows)
}

// ListPaymentsBySeller returns all payments received by a seller
func (s *SQLiteStore) ListPaymentsBySeller(sellerID string) ([]model.Payment, error) {
	rows, err := s.db.Query(
		"SELECT "+paymentColumns+" FROM payments WHERE seller_id = ? ORDER BY transaction_time ASC", sellerID)
	if err != nil {
		return nil, fmt.Errorf("list payments for seller %s: %w", sellerID, err)
	}
	return scanPayments(rows)
}

func requireRowChanged(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures in the error text
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
