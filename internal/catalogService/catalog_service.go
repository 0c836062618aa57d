package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// CatalogService owns item listing, seller item management and the admin
// moderation flow.
type CatalogService struct {
	repo repository.Store
	now  func() time.Time
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(repo repository.Store, now func() time.Time) *CatalogService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &CatalogService{repo: repo, now: now}
}

// ItemInput carries the seller-editable fields of an item
type ItemInput struct {
	CategoryID    string
	Name          string
	Description   string
	StartingPrice decimal.Decimal
	StartTime     time.Time
	EndTime       time.Time
	ImageBase64   string
}

func (in ItemInput) validate() error {
	if in.Name == "" || in.CategoryID == "" {
		return fmt.Errorf("service: %w - name and category are required", auctionerrors.ErrInvalidInput)
	}
	if in.StartingPrice.IsNegative() {
		return fmt.Errorf("service: %w - negative starting price", auctionerrors.ErrInvalidInput)
	}
	if in.EndTime.IsZero() || in.StartTime.IsZero() {
		return fmt.Errorf("service: %w - start and end time are required", auctionerrors.ErrInvalidInput)
	}
	if !in.EndTime.After(in.StartTime) {
		return fmt.Errorf("service: %w - auction must end after it starts", auctionerrors.ErrInvalidInput)
	}
	return nil
}

// ListItems returns items matching the filter
func (s *CatalogService) ListItems(filter repository.ItemFilter) ([]model.Item, error) {
	items, err := s.repo.ListItems(filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list items: %w", err)
	}
	return items, nil
}

// GetItem returns a single item
func (s *CatalogService) GetItem(itemID string) (model.Item, error) {
	if itemID == "" {
		return model.Item{}, fmt.Errorf("service: %w - empty item ID", auctionerrors.ErrInvalidInput)
	}

	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("service: failed to get item %s: %w", itemID, err)
	}
	return item, nil
}

// CreateItem lists a new item for the given seller. New items always start
// PENDING and wait for admin approval before their auction can run.
func (s *CatalogService) CreateItem(sellerID string, input ItemInput) (model.Item, error) {
	if err := input.validate(); err != nil {
		return model.Item{}, err
	}

	seller, err := s.repo.GetUser(sellerID)
	if err != nil {
		return model.Item{}, fmt.Errorf("service: failed to load seller %s: %w", sellerID, err)
	}
	if seller.Role != model.RoleSeller {
		return model.Item{}, fmt.Errorf("service: %w - only sellers can add items", auctionerrors.ErrRoleNotAllowed)
	}

	if _, err := s.repo.GetCategory(input.CategoryID); err != nil {
		return model.Item{}, fmt.Errorf("service: failed to load category %s: %w", input.CategoryID, err)
	}

	item := model.Item{
		ItemID:        utils.GenerateID(),
		SellerID:      sellerID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		StartingPrice: input.StartingPrice,
		Status:        model.ItemPending,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		AuctionStatus: model.AuctionNotStarted,
		CreatedAt:     s.now(),
		ImageBase64:   input.ImageBase64,
	}

	if err := s.repo.AddItem(item); err != nil {
		return model.Item{}, fmt.Errorf("service: failed to save item: %w", err)
	}
	return item, nil
}

// UpdateItem replaces the seller-editable fields of an item. Only the item's
// own seller may update it, and the auction status is re-derived afterwards.
func (s *CatalogService) UpdateItem(itemID, sellerID string, input ItemInput) (model.Item, error) {
	if err := input.validate(); err != nil {
		return model.Item{}, err
	}

	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("service: failed to get item %s: %w", itemID, err)
	}
	if item.SellerID != sellerID {
		return model.Item{}, fmt.Errorf("service: %w - item %s belongs to another seller", auctionerrors.ErrNotOwner, itemID)
	}

	item.CategoryID = input.CategoryID
	item.Name = input.Name
	item.Description = input.Description
	item.StartingPrice = input.StartingPrice
	item.StartTime = input.StartTime
	item.EndTime = input.EndTime
	item.ImageBase64 = input.ImageBase64
	item.AuctionStatus = s.deriveAuctionStatus(item)

	if err := s.repo.UpdateItem(item); err != nil {
		return model.Item{}, fmt.Errorf("service: failed to update item %s: %w", itemID, err)
	}
	return item, nil
}

// DeleteItem removes an item. The seller who owns it or an admin may delete.
func (s *CatalogService) DeleteItem(itemID, actorID string) error {
	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return fmt.Errorf("service: failed to get item %s: %w", itemID, err)
	}

	actor, err := s.repo.GetUser(actorID)
	if err != nil {
		return fmt.Errorf("service: failed to load user %s: %w", actorID, err)
	}
	if actor.Role != model.RoleAdmin && item.SellerID != actorID {
		return fmt.Errorf("service: %w - item %s belongs to another seller", auctionerrors.ErrNotOwner, itemID)
	}

	if err := s.repo.DeleteItem(itemID); err != nil {
		return fmt.Errorf("service: failed to delete item %s: %w", itemID, err)
	}
	return nil
}

// UpdateItemStatus is the admin moderation decision on a pending item.
// Approval stamps the approver and activates the auction when the start time
// has already passed.
func (s *CatalogService) UpdateItemStatus(itemID, adminID string, status model.ItemStatus) (model.Item, error) {
	admin, err := s.repo.GetUser(adminID)
	if err != nil {
		return model.Item{}, fmt.Errorf("service: failed to load admin %s: %w", adminID, err)
	}
	if admin.Role != model.RoleAdmin {
		return model.Item{}, fmt.Errorf("service: %w - only admins can change item status", auctionerrors.ErrRoleNotAllowed)
	}

	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("service: failed to get item %s: %w", itemID, err)
	}

	item.Status = status
	if status == model.ItemApproved {
		now := s.now()
		item.ApprovedAt = &now
		item.AdminID = adminID
	} else {
		item.ApprovedAt = nil
		item.AdminID = ""
	}
	item.AuctionStatus = s.deriveAuctionStatus(item)

	if err := s.repo.UpdateItem(item); err != nil {
		return model.Item{}, fmt.Errorf("service: failed to update item %s: %w", itemID, err)
	}
	return item, nil
}

// RefreshAuctionStatuses sweeps the catalog and moves every approved item to
// the auction status its clock dictates. Returns how many items changed.
func (s *CatalogService) RefreshAuctionStatuses() (int, error) {
	items, err := s.repo.ListItems(repository.ItemFilter{Status: model.ItemApproved})
	if err != nil {
		return 0, fmt.Errorf("service: failed to list items: %w", err)
	}

	changed := 0
	for _, item := range items {
		next := s.deriveAuctionStatus(item)
		if next == item.AuctionStatus {
			continue
		}
		item.AuctionStatus = next
		if err := s.repo.UpdateItem(item); err != nil {
			return changed, fmt.Errorf("service: failed to update item %s: %w", item.ItemID, err)
		}
		changed++
	}

	if changed > 0 {
		utils.Info("service: auction statuses refreshed", map[string]any{"changed": changed})
	}
	return changed, nil
}

// deriveAuctionStatus computes where in the lifecycle an item's auction is.
// Only approved items ever leave NOT_STARTED.
func (s *CatalogService) deriveAuctionStatus(item model.Item) model.AuctionStatus {
	if item.Status != model.ItemApproved {
		return model.AuctionNotStarted
	}

	now := s.now()
	switch {
	case !item.EndTime.After(now):
		return model.AuctionEnded
	case !item.StartTime.After(now):
		return model.AuctionActive
	default:
		return model.AuctionNotStarted
	}
}

// CreateCategory adds a new browsing category
func (s *CatalogService) CreateCategory(name string) (model.Category, error) {
	if name == "" {
		return model.Category{}, fmt.Errorf("service: %w - empty category name", auctionerrors.ErrInvalidInput)
	}

	category := model.Category{CategoryID: utils.GenerateID(), Name: name}
	if err := s.repo.AddCategory(category); err != nil {
		return model.Category{}, fmt.Errorf("service: failed to save category: %w", err)
	}
	return category, nil
}

// ListCategories returns all browsing categories
func (s *CatalogService) ListCategories() ([]model.Category, error) {
	categories, err := s.repo.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}
