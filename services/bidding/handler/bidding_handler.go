package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"art-auction/internal/auction"
	"art-auction/internal/auctionerrors"
	"art-auction/internal/live"
	model "art-auction/internal/models"
	"art-auction/services/helpers"
	"art-auction/utils"
)

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, itemID, userID string, amount decimal.Decimal) (model.Bid, error)
	GetBidsForItem(itemID string) ([]model.Bid, error)
	GetBidsByUser(userID string) ([]model.Bid, error)
	GetItemsByUser(userID string) ([]model.Item, error)
	GetWinningBid(itemID string) (model.Bid, error)
	BiddingPanel(itemID, viewerID string) (auction.Snapshot, error)
	PostChatMessage(ctx context.Context, itemID, userID, message string) (live.ChatEvent, error)
	TopBidders(itemID string, limit int) ([]auction.BidderStanding, error)
}

const defaultLeaderboardLimit = 10

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// RecordBidHandler handles POST /bids. The bidder is always the authenticated
// caller; the request body never names a user.
func (h *BiddingHandler) RecordBidHandler(c *gin.Context) {
	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	userID := helpers.CallerID(c)
	bid, err := h.service.PlaceBid(c.Request.Context(), req.ItemID, userID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("RecordBidHandler: failed to record bid", map[string]any{
			"handler": "RecordBidHandler",
			"item_id": req.ItemID,
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, toBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("RecordBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": bid.ItemID,
		"user_id": userID,
		"amount":  bid.Amount.String(),
	})
}

// GetBidsByItemHandler handles GET /items/:item_id/bids
func (h *BiddingHandler) GetBidsByItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	bids, err := h.service.GetBidsForItem(itemID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByItemHandler: error retrieving bids", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}

	resp := make([]BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, toBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByItemHandler", "bids retrieved successfully", map[string]any{
		"item_id": itemID,
		"count":   len(resp),
	})
}

// GetWinningBidHandler handles GET /items/:item_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	bid, err := h.service.GetWinningBid(itemID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"item_id": itemID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": bid.ItemID,
		"user_id": bid.BidderID,
		"amount":  bid.Amount.String(),
	})
}

// GetPanelHandler handles GET /items/:item_id/panel. Anonymous viewers get
// the sign-in prompt state; authenticated viewers get their own view of the
// auction.
func (h *BiddingHandler) GetPanelHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	viewerID := helpers.CallerID(c)

	snap, err := h.service.BiddingPanel(itemID, viewerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetPanelHandler: panel error", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, snap, "bidding panel retrieved successfully")
}

// GetItemsByUserHandler handles GET /users/:user_id/items
func (h *BiddingHandler) GetItemsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	items, err := h.service.GetItemsByUser(userID)
	if err != nil && !errors.Is(err, auctionerrors.ErrUserNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetItemsByUserHandler: error retrieving items", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if items == nil {
		items = []model.Item{}
	}

	utils.JSONResponse(c, http.StatusOK, items, "items retrieved successfully")
	helpers.LogSuccess("GetItemsByUserHandler", "items retrieved successfully", map[string]any{
		"user_id":     userID,
		"items_count": len(items),
	})
}

// GetBidsByUserHandler handles GET /users/:user_id/bids
func (h *BiddingHandler) GetBidsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	bids, err := h.service.GetBidsByUser(userID)
	if err != nil && !errors.Is(err, auctionerrors.ErrUserNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByUserHandler: error retrieving bids", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	resp := make([]BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, toBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
}

// PostChatMessageHandler handles POST /items/:item_id/chat. The sender is the
// authenticated caller; the message is fanned out to the item's watchers.
func (h *BiddingHandler) PostChatMessageHandler(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PostChatMessageHandler", err)
		return
	}

	itemID := c.Param("item_id")
	userID := helpers.CallerID(c)
	event, err := h.service.PostChatMessage(c.Request.Context(), itemID, userID, req.Message)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PostChatMessageHandler: failed to post message", map[string]any{
			"item_id": itemID,
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, toChatMessageResponse(event), "chat message sent successfully")
	helpers.LogSuccess("PostChatMessageHandler", "chat message sent successfully", map[string]any{
		"message_id": event.MessageID,
		"item_id":    event.ItemID,
		"user_id":    event.UserID,
	})
}

// GetTopBiddersHandler handles GET /items/:item_id/bidders
func (h *BiddingHandler) GetTopBiddersHandler(c *gin.Context) {
	itemID := c.Param("item_id")

	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid limit %q: %w", raw, auctionerrors.ErrInvalidInput), "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	standings, err := h.service.TopBidders(itemID, limit)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetTopBiddersHandler: leaderboard error", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}

	resp := make([]BidderStandingResponse, 0, len(standings))
	for _, standing := range standings {
		resp = append(resp, toBidderStandingResponse(standing))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "top bidders retrieved successfully")
	helpers.LogSuccess("GetTopBiddersHandler", "top bidders retrieved successfully", map[string]any{
		"item_id": itemID,
		"count":   len(resp),
	})
}

func toBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:      bid.BidID,
		ItemID:     bid.ItemID,
		BidderID:   bid.BidderID,
		BidderName: bid.BidderName,
		Amount:     bid.Amount.String(),
		CreatedAt:  bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toChatMessageResponse(event live.ChatEvent) ChatMessageResponse {
	return ChatMessageResponse{
		MessageID: event.MessageID,
		ItemID:    event.ItemID,
		UserID:    event.UserID,
		Username:  event.Username,
		Message:   event.Message,
		SentAt:    event.SentAt.UTC().Format(time.RFC3339),
	}
}

func toBidderStandingResponse(standing auction.BidderStanding) BidderStandingResponse {
	return BidderStandingResponse{
		BidderID:   standing.BidderID,
		BidderName: standing.BidderName,
		BestBid:    standing.BestBid.String(),
		BidCount:   standing.BidCount,
	}
}
