package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	accounts "art-auction/internal/accountService"
	"art-auction/internal/auth"
	bidding "art-auction/internal/biddingService"
	catalog "art-auction/internal/catalogService"
	"art-auction/internal/live"
	model "art-auction/internal/models"
	payments "art-auction/internal/paymentService"
	"art-auction/internal/repository"
	"art-auction/internal/server"
	sellers "art-auction/internal/sellerService"
)

const testPassword = "password123"

// hashed once; bcrypt per seeded user would dominate the suite's runtime
var testPasswordHash string

func init() {
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		panic(err)
	}
	testPasswordHash = hash
}

// TestEnv bundles the router with the seeded repo and token manager so tests
// can mint sessions and reach behind the API where the flow requires it.
type TestEnv struct {
	Router *gin.Engine
	Repo   *repository.MemoryRepo
	Tokens *auth.TokenManager
}

// SetupTestEnv initializes the router with an in-memory repository seeded
// with an admin, a seller, two customers, one category and three items: an
// open auction, an ended auction and a pending listing.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	tokens := auth.NewTokenManager("integration-test-secret", time.Hour)
	hub := live.NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	seedUsers(t, repo)
	seedCatalog(t, repo)

	router := server.SetupRouter(server.Deps{
		Accounts: accounts.NewAccountService(repo, tokens, nil),
		Bidding:  bidding.NewBiddingService(repo, live.NewLocalBroker(hub), nil),
		Catalog:  catalog.NewCatalogService(repo, nil),
		Payments: payments.NewPaymentService(repo, nil),
		Sellers:  sellers.NewSellerService(repo, nil),
		Tokens:   tokens,
		Hub:      hub,
	})

	return &TestEnv{Router: router, Repo: repo, Tokens: tokens}
}

func seedUsers(t *testing.T, repo *repository.MemoryRepo) {
	t.Helper()
	users := []model.User{
		{UserID: "admin1", Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin},
		{UserID: "seller1", Username: "seller", Email: "seller@example.com", Role: model.RoleSeller},
		{UserID: "customer1", Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer},
		{UserID: "customer2", Username: "bob", Email: "bob@example.com", Role: model.RoleCustomer},
	}
	for _, u := range users {
		u.PasswordHash = testPasswordHash
		u.CreatedAt = time.Now().UTC()
		if err := repo.AddUser(u); err != nil {
			t.Fatalf("failed to seed user %s: %v", u.UserID, err)
		}
	}
}

func seedCatalog(t *testing.T, repo *repository.MemoryRepo) {
	t.Helper()
	now := time.Now().UTC()

	if err := repo.AddCategory(model.Category{CategoryID: "cat1", Name: "Paintings"}); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	approvedAt := now.Add(-2 * time.Hour)
	items := []model.Item{
		{
			ItemID: "item-open", SellerID: "seller1", CategoryID: "cat1",
			Name: "Open Auction", StartingPrice: decimal.NewFromInt(100),
			Status: model.ItemApproved, ApprovedAt: &approvedAt, AdminID: "admin1",
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
			AuctionStatus: model.AuctionActive, CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ItemID: "item-ended", SellerID: "seller1", CategoryID: "cat1",
			Name: "Ended Auction", StartingPrice: decimal.NewFromInt(200),
			Status: model.ItemApproved, ApprovedAt: &approvedAt, AdminID: "admin1",
			StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Minute),
			AuctionStatus: model.AuctionEnded, CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ItemID: "item-pending", SellerID: "seller1", CategoryID: "cat1",
			Name: "Pending Listing", StartingPrice: decimal.NewFromInt(50),
			Status: model.ItemPending,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
			AuctionStatus: model.AuctionNotStarted, CreatedAt: now,
		},
	}
	for _, item := range items {
		if err := repo.AddItem(item); err != nil {
			t.Fatalf("failed to seed item %s: %v", item.ItemID, err)
		}
	}
}

// TokenFor mints a session token for a seeded user
func (env *TestEnv) TokenFor(t *testing.T, userID string) string {
	t.Helper()
	user, err := env.Repo.GetUser(userID)
	if err != nil {
		t.Fatalf("failed to load user %s: %v", userID, err)
	}
	token, err := env.Tokens.Issue(user, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to issue token for %s: %v", userID, err)
	}
	return token
}

// ExecuteRequest executes an HTTP request and parses the response envelope.
// token may be empty for anonymous requests.
func (env *TestEnv) ExecuteRequest(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		marshalled, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reqBody = marshalled
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// Data extracts the data field of a response envelope as an object
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no object data field: %v", resp)
	}
	return data
}
