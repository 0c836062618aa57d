package bidding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"art-auction/internal/auction"
	"art-auction/internal/auctionerrors"
	"art-auction/internal/live"
	model "art-auction/internal/models"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// BiddingService defines the business logic for auction bidding. The server
// is the authority on the increment rule: a bid below the minimum next bid is
// rejected here no matter what the client computed.
type BiddingService struct {
	repo   repository.Store
	broker live.Broker
	now    func() time.Time

	mu        sync.Mutex
	itemLocks map[string]*sync.Mutex
}

// NewBiddingService creates a new BiddingService instance. broker may be nil
// when live fan-out is disabled; now defaults to the wall clock.
func NewBiddingService(repo repository.Store, broker live.Broker, now func() time.Time) *BiddingService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &BiddingService{
		repo:      repo,
		broker:    broker,
		now:       now,
		itemLocks: make(map[string]*sync.Mutex),
	}
}

// itemLock returns the mutex serializing bid writes for one item. Reading the
// ledger and appending to it must be a single critical section, otherwise two
// concurrent bids can both validate against the same highest bid.
func (s *BiddingService) itemLock(itemID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.itemLocks[itemID]
	if !ok {
		lock = &sync.Mutex{}
		s.itemLocks[itemID] = lock
	}
	return lock
}

// PlaceBid validates and records a user's bid for an item
func (s *BiddingService) PlaceBid(ctx context.Context, itemID, userID string, amount decimal.Decimal) (model.Bid, error) {
	if itemID == "" || userID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing itemID or userID", auctionerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load item %s: %w", itemID, err)
	}

	now := s.now()
	if err := s.checkAuctionOpen(item, now); err != nil {
		return model.Bid{}, err
	}

	bidder, err := s.repo.GetUser(userID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load bidder %s: %w", userID, err)
	}
	if bidder.Role == model.RoleAdmin {
		return model.Bid{}, fmt.Errorf("service: %w - admins cannot place bids", auctionerrors.ErrRoleNotAllowed)
	}
	if bidder.UserID == item.SellerID {
		return model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrSelfBid)
	}

	bid, bids, err := s.appendBid(item, bidder, amount, now)
	if err != nil {
		return model.Bid{}, err
	}

	s.publish(ctx, bid, bids, item)

	return bid, nil
}

// appendBid validates the amount against the ledger and records the bid under
// the item's lock, so the minimum a bid was checked against cannot move
// between check and append.
func (s *BiddingService) appendBid(item model.Item, bidder model.User, amount decimal.Decimal, now time.Time) (model.Bid, []model.Bid, error) {
	lock := s.itemLock(item.ItemID)
	lock.Lock()
	defer lock.Unlock()

	bids, err := s.ledger(item.ItemID)
	if err != nil {
		return model.Bid{}, nil, err
	}

	minNext := auction.MinimumNextBid(auction.CurrentPrice(bids, item.StartingPrice), item.StartingPrice)
	if amount.LessThan(minNext) {
		return model.Bid{}, nil, fmt.Errorf("service: %w - minimum next bid is %s", auctionerrors.ErrBidTooLow, minNext)
	}

	bid := model.Bid{
		BidID:      utils.GenerateID(),
		ItemID:     item.ItemID,
		BidderID:   bidder.UserID,
		BidderName: bidder.Username,
		SellerID:   item.SellerID,
		Amount:     amount,
		CreatedAt:  now,
	}

	if err := s.repo.RecordBidForItem(bid); err != nil {
		return model.Bid{}, nil, fmt.Errorf("service: failed to record bid for item %s by user %s: %w", item.ItemID, bidder.UserID, err)
	}
	return bid, append(bids, bid), nil
}

// checkAuctionOpen verifies the item is approved, active and not past its end
func (s *BiddingService) checkAuctionOpen(item model.Item, now time.Time) error {
	if item.Status != model.ItemApproved || item.AuctionStatus != model.AuctionActive {
		return fmt.Errorf("service: %w - item %s has auction status %s", auctionerrors.ErrAuctionNotActive, item.ItemID, item.AuctionStatus)
	}

	remaining, err := auction.ComputeRemaining(item.EndTime, now)
	if err != nil {
		return fmt.Errorf("service: item %s: %w", item.ItemID, err)
	}
	if remaining.Ended {
		return fmt.Errorf("service: %w - auction for item %s has ended", auctionerrors.ErrAuctionNotActive, item.ItemID)
	}
	return nil
}

// ledger loads the bid history, treating an empty ledger as a valid state
func (s *BiddingService) ledger(itemID string) ([]model.Bid, error) {
	bids, err := s.repo.GetBidsByItem(itemID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		return nil, fmt.Errorf("service: failed to load bids for item %s: %w", itemID, err)
	}
	return bids, nil
}

// publish pushes the accepted bid to live watchers. Delivery failures are
// logged, never surfaced: the bid is already recorded.
func (s *BiddingService) publish(ctx context.Context, bid model.Bid, bids []model.Bid, item model.Item) {
	if s.broker == nil {
		return
	}

	current := auction.CurrentPrice(bids, item.StartingPrice)
	event := live.BidEvent{
		ItemID:         bid.ItemID,
		Bid:            bid,
		CurrentBid:     current,
		MinimumNextBid: auction.MinimumNextBid(current, item.StartingPrice),
	}
	if err := s.broker.PublishBid(ctx, event); err != nil {
		utils.Error("service: failed to publish bid event", map[string]any{
			"bid_id":  bid.BidID,
			"item_id": bid.ItemID,
			"error":   err.Error(),
		})
	}
}

// GetBidsForItem returns all bids for a specific item
func (s *BiddingService) GetBidsForItem(itemID string) ([]model.Bid, error) {
	if itemID == "" {
		return nil, fmt.Errorf("service: %w - empty item ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByItem(itemID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for item %s: %w", itemID, err)
	}
	return bids, nil
}

// GetBidsByUser returns all bids a user has placed
func (s *BiddingService) GetBidsByUser(userID string) ([]model.Bid, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for user %s: %w", userID, err)
	}
	return bids, nil
}

// GetItemsByUser returns all items a user has placed bids on
func (s *BiddingService) GetItemsByUser(userID string) ([]model.Item, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}

	items, err := s.repo.GetItemsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get items for user %s: %w", userID, err)
	}
	return items, nil
}

// GetWinningBid returns the winning bid for an item. It only answers once the
// auction has ended; until then the highest bid is provisional.
func (s *BiddingService) GetWinningBid(itemID string) (model.Bid, error) {
	if itemID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - empty item ID", auctionerrors.ErrInvalidBid)
	}

	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load item %s: %w", itemID, err)
	}

	remaining, err := auction.ComputeRemaining(item.EndTime, s.now())
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: item %s: %w", itemID, err)
	}
	if !remaining.Ended {
		return model.Bid{}, fmt.Errorf("service: %w - item %s", auctionerrors.ErrAuctionNotEnded, itemID)
	}

	bids, err := s.ledger(itemID)
	if err != nil {
		return model.Bid{}, err
	}

	winner, ok := auction.Winner(bids, item.EndTime, s.now())
	if !ok {
		return model.Bid{}, fmt.Errorf("service: get winning bid for item %s: %w", itemID, auctionerrors.ErrNoBids)
	}
	return winner, nil
}

// IsUserWinner reports whether userID won the (ended) auction for itemID
func (s *BiddingService) IsUserWinner(itemID, userID string) (bool, error) {
	winner, err := s.GetWinningBid(itemID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			return false, nil
		}
		return false, err
	}
	return winner.BidderID == userID, nil
}

const maxChatMessageLen = 500

// PostChatMessage fans a chat message out to everyone watching the item's
// auction. Messages are ephemeral; they live only on the wire.
func (s *BiddingService) PostChatMessage(ctx context.Context, itemID, userID, message string) (live.ChatEvent, error) {
	if itemID == "" || userID == "" {
		return live.ChatEvent{}, fmt.Errorf("service: %w - missing itemID or userID", auctionerrors.ErrInvalidInput)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return live.ChatEvent{}, fmt.Errorf("service: %w - empty chat message", auctionerrors.ErrInvalidInput)
	}
	if len(message) > maxChatMessageLen {
		return live.ChatEvent{}, fmt.Errorf("service: %w - chat message exceeds %d characters", auctionerrors.ErrInvalidInput, maxChatMessageLen)
	}

	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return live.ChatEvent{}, fmt.Errorf("service: failed to load item %s: %w", itemID, err)
	}

	if err := s.checkAuctionOpen(item, s.now()); err != nil {
		return live.ChatEvent{}, err
	}

	sender, err := s.repo.GetUser(userID)
	if err != nil {
		return live.ChatEvent{}, fmt.Errorf("service: failed to load user %s: %w", userID, err)
	}

	event := live.ChatEvent{
		ItemID:    item.ItemID,
		MessageID: utils.GenerateID(),
		UserID:    sender.UserID,
		Username:  sender.Username,
		Message:   message,
		SentAt:    s.now(),
	}

	if s.broker != nil {
		if err := s.broker.PublishChat(ctx, event); err != nil {
			return live.ChatEvent{}, fmt.Errorf("service: failed to publish chat message for item %s: %w", itemID, err)
		}
	}
	return event, nil
}

// TopBidders ranks an item's bidders by their best bid. limit <= 0 returns
// the whole leaderboard.
func (s *BiddingService) TopBidders(itemID string, limit int) ([]auction.BidderStanding, error) {
	if itemID == "" {
		return nil, fmt.Errorf("service: %w - empty item ID", auctionerrors.ErrInvalidBid)
	}

	if _, err := s.repo.GetItem(itemID); err != nil {
		return nil, fmt.Errorf("service: failed to load item %s: %w", itemID, err)
	}

	bids, err := s.ledger(itemID)
	if err != nil {
		return nil, err
	}
	return auction.TopBidders(bids, limit), nil
}

// BiddingPanel computes the panel snapshot for one viewer. viewerID is empty
// for anonymous visitors, who always see the sign-in prompt.
func (s *BiddingService) BiddingPanel(itemID, viewerID string) (auction.Snapshot, error) {
	if itemID == "" {
		return auction.Snapshot{}, fmt.Errorf("service: %w - empty item ID", auctionerrors.ErrInvalidBid)
	}

	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return auction.Snapshot{}, fmt.Errorf("service: failed to load item %s: %w", itemID, err)
	}

	bids, err := s.ledger(itemID)
	if err != nil {
		return auction.Snapshot{}, err
	}

	snap, err := auction.BiddingPanel(viewerID, bids, item.StartingPrice, item.EndTime, s.now())
	if err != nil {
		return auction.Snapshot{}, fmt.Errorf("service: panel for item %s: %w", itemID, err)
	}
	return snap, nil
}
