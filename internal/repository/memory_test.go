package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
)

// Helper to create a new Item
func newItem(itemID, sellerID, name string, startingPrice int64) model.Item {
	return model.Item{
		ItemID:        itemID,
		SellerID:      sellerID,
		Name:          name,
		Description:   fmt.Sprintf("%s description", name),
		StartingPrice: decimal.NewFromInt(startingPrice),
		Status:        model.ItemApproved,
		AuctionStatus: model.AuctionActive,
	}
}

// Helper to create a new Bid
func newBid(bidID, itemID, bidderID string, amount int64, createdAt time.Time) model.Bid {
	return model.Bid{
		BidID:     bidID,
		ItemID:    itemID,
		BidderID:  bidderID,
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: createdAt,
	}
}

// Test RecordBidForItem
func TestMemoryRepo_RecordBidForItem(t *testing.T) {
	t.Parallel() // Allow running in parallel with other test functions

	// Initialize repo and seed with an item
	repo := NewMemoryRepo()
	require.NoError(t, repo.AddItem(newItem("item1", "seller1", "Item 1", 50)))

	// Table-driven test cases
	tests := []struct {
		name      string
		bid       model.Bid
		wantError bool
	}{
		{name: "valid_bid", bid: newBid("bid1", "item1", "user1", 100, time.Now()), wantError: false},
		{name: "item_not_found", bid: newBid("bid2", "itemX", "user1", 50, time.Now()), wantError: true},
		{name: "bid_with_past_timestamp", bid: newBid("bid3", "item1", "user4", 120, time.Now().Add(-24*time.Hour)), wantError: false},
		{name: "empty_itemID", bid: newBid("bid-empty", "", "userY", 100, time.Now()), wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := repo.RecordBidForItem(tc.bid)
			if tc.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)

				bids, err := repo.GetBidsByItem(tc.bid.ItemID)
				require.NoError(t, err)
				require.Contains(t, bids, tc.bid)

				byID, err := repo.GetBidByID(tc.bid.BidID)
				require.NoError(t, err)
				require.Equal(t, tc.bid, byID)
			}
		})
	}

	// concurrency test
	t.Run("concurrent_bids", func(t *testing.T) {
		t.Parallel() // Run concurrency test in parallel

		repo := NewMemoryRepo()
		require.NoError(t, repo.AddItem(newItem("item1", "seller1", "Item 1", 50)))

		var wg sync.WaitGroup
		concurrentCount := 50

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				b := newBid(fmt.Sprintf("bid-%d", i), "item1", fmt.Sprintf("user-%d", i), int64(100+i), time.Now())
				require.NoError(t, repo.RecordBidForItem(b))
			}()
		}

		wg.Wait()

		bids, err := repo.GetBidsByItem("item1")
		require.NoError(t, err)
		require.Len(t, bids, concurrentCount)
	})
}

// Test GetBidsByItem
func TestMemoryRepo_GetBidsByItem(t *testing.T) {
	t.Parallel() // Allow running in parallel with other test functions

	repo := NewMemoryRepo()
	require.NoError(t, repo.AddItem(newItem("item1", "seller1", "Item 1", 50)))
	require.NoError(t, repo.AddItem(newItem("item2", "seller1", "Item 2", 75)))

	bid1 := newBid("bid1", "item1", "user1", 100, time.Now())
	bid2 := newBid("bid2", "item1", "user2", 150, time.Now())
	require.NoError(t, repo.RecordBidForItem(bid1))
	require.NoError(t, repo.RecordBidForItem(bid2))

	tests := []struct {
		name      string
		itemID    string
		wantBids  []model.Bid
		wantError bool
	}{
		{name: "existing_item_with_bids", itemID: "item1", wantBids: []model.Bid{bid1, bid2}, wantError: false},
		{name: "existing_item_no_bids", itemID: "item2", wantBids: nil, wantError: true}, // empty ledger reported as ErrNoBids
		{name: "non_existing_item", itemID: "itemX", wantBids: nil, wantError: true},
		{name: "empty_itemID", itemID: "", wantBids: nil, wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Run table test cases in parallel

			bids, err := repo.GetBidsByItem(tc.itemID)
			if tc.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.ElementsMatch(t, bids, tc.wantBids)
			}
		})
	}

	// Concurrent read test
	t.Run("concurrent_reads", func(t *testing.T) {
		t.Parallel() // Run concurrent read test in parallel

		var wg sync.WaitGroup
		readCount := 50

		for i := 0; i < readCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bids, err := repo.GetBidsByItem("item1")
				require.NoError(t, err)
				require.ElementsMatch(t, bids, []model.Bid{bid1, bid2})
			}()
		}

		wg.Wait()
	})
}

// Test GetBidsByUser and GetItemsByUser
func TestMemoryRepo_UserLedgers(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.AddItem(newItem("item1", "seller1", "Item 1", 50)))
	require.NoError(t, repo.AddItem(newItem("item2", "seller1", "Item 2", 75)))

	bid1 := newBid("bid1", "item1", "user1", 100, time.Now())
	bid2 := newBid("bid2", "item2", "user1", 150, time.Now())
	bid3 := newBid("bid3", "item1", "user2", 200, time.Now())
	require.NoError(t, repo.RecordBidForItem(bid1))
	require.NoError(t, repo.RecordBidForItem(bid2))
	require.NoError(t, repo.RecordBidForItem(bid3))

	// Duplicate bids on the same item must not duplicate the item list
	require.NoError(t, repo.RecordBidForItem(newBid("bid4", "item1", "user2", 300, time.Now())))

	t.Run("bids_by_user", func(t *testing.T) {
		bids, err := repo.GetBidsByUser("user1")
		require.NoError(t, err)
		require.ElementsMatch(t, bids, []model.Bid{bid1, bid2})
	})

	t.Run("items_by_user", func(t *testing.T) {
		items, err := repo.GetItemsByUser("user2")
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, "item1", items[0].ItemID)
	})

	t.Run("user_with_no_bids", func(t *testing.T) {
		_, err := repo.GetBidsByUser("userX")
		require.ErrorIs(t, err, auctionerrors.ErrUserNoBids)

		_, err = repo.GetItemsByUser("userX")
		require.ErrorIs(t, err, auctionerrors.ErrUserNoBids)
	})
}

// Test item CRUD and filtering
func TestMemoryRepo_Items(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	item := newItem("item1", "seller1", "Item 1", 50)
	item.CategoryID = "cat1"
	require.NoError(t, repo.AddItem(item))

	pending := newItem("item2", "seller2", "Item 2", 75)
	pending.Status = model.ItemPending
	pending.CategoryID = "cat2"
	require.NoError(t, repo.AddItem(pending))

	t.Run("get_item", func(t *testing.T) {
		got, err := repo.GetItem("item1")
		require.NoError(t, err)
		require.Equal(t, item, got)
	})

	t.Run("get_missing_item", func(t *testing.T) {
		_, err := repo.GetItem("itemX")
		require.ErrorIs(t, err, auctionerrors.ErrItemNotFound)
	})

	t.Run("filter_by_status", func(t *testing.T) {
		items, err := repo.ListItems(ItemFilter{Status: model.ItemApproved})
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, "item1", items[0].ItemID)
	})

	t.Run("filter_by_seller", func(t *testing.T) {
		items, err := repo.ListItems(ItemFilter{SellerID: "seller2"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, "item2", items[0].ItemID)
	})

	t.Run("update_item", func(t *testing.T) {
		updated := item
		updated.Name = "Renamed"
		require.NoError(t, repo.UpdateItem(updated))

		got, err := repo.GetItem("item1")
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.Name)
	})

	t.Run("update_missing_item", func(t *testing.T) {
		missing := newItem("itemX", "seller1", "Ghost", 10)
		require.ErrorIs(t, repo.UpdateItem(missing), auctionerrors.ErrItemNotFound)
	})

	t.Run("delete_item_drops_bids", func(t *testing.T) {
		require.NoError(t, repo.RecordBidForItem(newBid("bid1", "item2", "user1", 100, time.Now())))
		require.NoError(t, repo.DeleteItem("item2"))

		_, err := repo.GetItem("item2")
		require.ErrorIs(t, err, auctionerrors.ErrItemNotFound)

		_, err = repo.GetBidsByItem("item2")
		require.ErrorIs(t, err, auctionerrors.ErrNoBids)
	})
}

// Test user CRUD and username uniqueness
func TestMemoryRepo_Users(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	alice := model.User{UserID: "u1", Username: "alice", Role: model.RoleCustomer}
	require.NoError(t, repo.AddUser(alice))

	t.Run("duplicate_username_rejected", func(t *testing.T) {
		dup := model.User{UserID: "u2", Username: "alice", Role: model.RoleCustomer}
		require.ErrorIs(t, repo.AddUser(dup), auctionerrors.ErrDuplicateUsername)
	})

	t.Run("lookup_by_username", func(t *testing.T) {
		got, err := repo.GetUserByUsername("alice")
		require.NoError(t, err)
		require.Equal(t, alice, got)

		_, err = repo.GetUserByUsername("nobody")
		require.ErrorIs(t, err, auctionerrors.ErrUserNotFound)
	})

	t.Run("list_users_by_role", func(t *testing.T) {
		admin := model.User{UserID: "u3", Username: "root", Role: model.RoleAdmin}
		require.NoError(t, repo.AddUser(admin))

		admins, err := repo.ListUsers(model.RoleAdmin)
		require.NoError(t, err)
		require.ElementsMatch(t, admins, []model.User{admin})

		all, err := repo.ListUsers("")
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("update_and_delete", func(t *testing.T) {
		promoted := alice
		promoted.Role = model.RoleSeller
		require.NoError(t, repo.UpdateUser(promoted))

		got, err := repo.GetUser("u1")
		require.NoError(t, err)
		require.Equal(t, model.RoleSeller, got.Role)

		require.NoError(t, repo.DeleteUser("u1"))
		_, err = repo.GetUser("u1")
		require.ErrorIs(t, err, auctionerrors.ErrUserNotFound)
	})
}

// Test seller applications
func TestMemoryRepo_Applications(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	app := model.SellerApplication{
		ApplicationID: "app1",
		UserID:        "u1",
		Description:   "I paint",
		Status:        model.ApplicationPending,
		AppliedAt:     time.Now(),
	}
	require.NoError(t, repo.AddApplication(app))

	t.Run("get_by_user", func(t *testing.T) {
		got, err := repo.GetApplicationByUser("u1")
		require.NoError(t, err)
		require.Equal(t, app, got)

		_, err = repo.GetApplicationByUser("u2")
		require.ErrorIs(t, err, auctionerrors.ErrApplicationNotFound)
	})

	t.Run("update_status", func(t *testing.T) {
		approved := app
		approved.Status = model.ApplicationApproved
		require.NoError(t, repo.UpdateApplication(approved))

		got, err := repo.GetApplication("app1")
		require.NoError(t, err)
		require.Equal(t, model.ApplicationApproved, got.Status)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteApplication("app1"))
		_, err := repo.GetApplication("app1")
		require.ErrorIs(t, err, auctionerrors.ErrApplicationNotFound)
	})
}

// Test payments
func TestMemoryRepo_Payments(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	p1 := model.Payment{PaymentID: "p1", BidID: "bid1", CustomerID: "u1", SellerID: "s1", Amount: decimal.NewFromInt(100), Status: model.PaymentCompleted}
	p2 := model.Payment{PaymentID: "p2", BidID: "bid2", CustomerID: "u2", SellerID: "s1", Amount: decimal.NewFromInt(200), Status: model.PaymentCompleted}
	require.NoError(t, repo.AddPayment(p1))
	require.NoError(t, repo.AddPayment(p2))

	t.Run("get_payment", func(t *testing.T) {
		got, err := repo.GetPayment("p1")
		require.NoError(t, err)
		require.Equal(t, p1, got)

		_, err = repo.GetPayment("pX")
		require.ErrorIs(t, err, auctionerrors.ErrPaymentNotFound)
	})

	t.Run("list_by_customer", func(t *testing.T) {
		got, err := repo.ListPaymentsByCustomer("u1")
		require.NoError(t, err)
		require.ElementsMatch(t, got, []model.Payment{p1})
	})

	t.Run("list_by_seller", func(t *testing.T) {
		got, err := repo.ListPaymentsBySeller("s1")
		require.NoError(t, err)
		require.ElementsMatch(t, got, []model.Payment{p1, p2})
	})
}
