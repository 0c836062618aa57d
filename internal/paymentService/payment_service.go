package payments

import (
	"fmt"
	"time"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// PaymentService settles winning bids. There is no real gateway behind it;
// a payment is recorded as completed the moment the customer confirms.
type PaymentService struct {
	repo repository.Store
	now  func() time.Time
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(repo repository.Store, now func() time.Time) *PaymentService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &PaymentService{repo: repo, now: now}
}

// CreatePayment records the settlement of a bid. Only the bid's own customer
// can pay for it.
func (s *PaymentService) CreatePayment(bidID, customerID string) (model.Payment, error) {
	if bidID == "" || customerID == "" {
		return model.Payment{}, fmt.Errorf("service: %w - missing bid or customer ID", auctionerrors.ErrInvalidInput)
	}

	bid, err := s.repo.GetBidByID(bidID)
	if err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to load bid %s: %w", bidID, err)
	}

	if bid.BidderID != customerID {
		return model.Payment{}, fmt.Errorf("service: %w - only the bidder can pay for this bid", auctionerrors.ErrNotOwner)
	}
	if !bid.Amount.IsPositive() {
		return model.Payment{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	payment := model.Payment{
		PaymentID:       utils.GenerateID(),
		BidID:           bid.BidID,
		CustomerID:      bid.BidderID,
		SellerID:        bid.SellerID,
		Amount:          bid.Amount,
		Status:          model.PaymentCompleted,
		TransactionTime: s.now(),
	}

	if err := s.repo.AddPayment(payment); err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to save payment for bid %s: %w", bidID, err)
	}
	return payment, nil
}

// isAdmin reports whether actorID belongs to an admin account
func (s *PaymentService) isAdmin(actorID string) (bool, error) {
	actor, err := s.repo.GetUser(actorID)
	if err != nil {
		return false, fmt.Errorf("service: failed to load user %s: %w", actorID, err)
	}
	return actor.Role == model.RoleAdmin, nil
}

// GetPayment returns a payment by ID. Payment records name both sides of the
// sale, so only the paying customer, the item's seller or an admin may read
// one.
func (s *PaymentService) GetPayment(paymentID, actorID string) (model.Payment, error) {
	if paymentID == "" || actorID == "" {
		return model.Payment{}, fmt.Errorf("service: %w - missing payment or actor ID", auctionerrors.ErrInvalidInput)
	}

	payment, err := s.repo.GetPayment(paymentID)
	if err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to get payment %s: %w", paymentID, err)
	}

	if actorID != payment.CustomerID && actorID != payment.SellerID {
		admin, err := s.isAdmin(actorID)
		if err != nil {
			return model.Payment{}, err
		}
		if !admin {
			return model.Payment{}, fmt.Errorf("service: %w - payment %s belongs to another user", auctionerrors.ErrNotOwner, paymentID)
		}
	}
	return payment, nil
}

// ListPaymentsByCustomer returns all payments a customer has made
func (s *PaymentService) ListPaymentsByCustomer(customerID string) ([]model.Payment, error) {
	payments, err := s.repo.ListPaymentsByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list payments for customer %s: %w", customerID, err)
	}
	return payments, nil
}

// ListPaymentsBySeller returns all payments a seller has received. Only the
// seller themselves or an admin may read the list.
func (s *PaymentService) ListPaymentsBySeller(sellerID, actorID string) ([]model.Payment, error) {
	if sellerID == "" || actorID == "" {
		return nil, fmt.Errorf("service: %w - missing seller or actor ID", auctionerrors.ErrInvalidInput)
	}

	if actorID != sellerID {
		admin, err := s.isAdmin(actorID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, fmt.Errorf("service: %w - cannot list another seller's payments", auctionerrors.ErrNotOwner)
		}
	}

	payments, err := s.repo.ListPaymentsBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list payments for seller %s: %w", sellerID, err)
	}
	return payments, nil
}
