package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	catalog "art-auction/internal/catalogService"
	model "art-auction/internal/models"
	"art-auction/internal/repository"
	"art-auction/services/helpers"
	"art-auction/utils"
)

type CatalogServiceInterface interface {
	ListItems(filter repository.ItemFilter) ([]model.Item, error)
	GetItem(itemID string) (model.Item, error)
	CreateItem(sellerID string, input catalog.ItemInput) (model.Item, error)
	UpdateItem(itemID, sellerID string, input catalog.ItemInput) (model.Item, error)
	DeleteItem(itemID, actorID string) error
	UpdateItemStatus(itemID, adminID string, status model.ItemStatus) (model.Item, error)
	RefreshAuctionStatuses() (int, error)
	CreateCategory(name string) (model.Category, error)
	ListCategories() ([]model.Category, error)
}

type CatalogHandler struct {
	service CatalogServiceInterface
}

func NewCatalogHandler(service CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListItemsHandler handles GET /items with optional status, category_id and
// seller_id query filters.
func (h *CatalogHandler) ListItemsHandler(c *gin.Context) {
	filter := repository.ItemFilter{
		Status:     model.ItemStatus(c.Query("status")),
		CategoryID: c.Query("category_id"),
		SellerID:   c.Query("seller_id"),
	}

	items, err := h.service.ListItems(filter)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListItemsHandler: error listing items", map[string]any{"error": err.Error()})
		return
	}

	if items == nil {
		items = []model.Item{}
	}
	utils.JSONResponse(c, http.StatusOK, items, "items retrieved successfully")
}

// GetItemHandler handles GET /items/:item_id
func (h *CatalogHandler) GetItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	item, err := h.service.GetItem(itemID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetItemHandler: error retrieving item", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}
	utils.JSONResponse(c, http.StatusOK, item, "item retrieved successfully")
}

// CreateItemHandler handles POST /items. The seller is the authenticated
// caller.
func (h *CatalogHandler) CreateItemHandler(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}

	sellerID := helpers.CallerID(c)
	item, err := h.service.CreateItem(sellerID, req.toInput())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateItemHandler: failed to create item", map[string]any{
			"seller_id": sellerID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "item created successfully")
	helpers.LogSuccess("CreateItemHandler", "item created successfully", map[string]any{
		"item_id":   item.ItemID,
		"seller_id": sellerID,
	})
}

// UpdateItemHandler handles PUT /items/:item_id
func (h *CatalogHandler) UpdateItemHandler(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateItemHandler", err)
		return
	}

	itemID := c.Param("item_id")
	sellerID := helpers.CallerID(c)
	item, err := h.service.UpdateItem(itemID, sellerID, req.toInput())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateItemHandler: failed to update item", map[string]any{
			"item_id":   itemID,
			"seller_id": sellerID,
			"error":     err.Error(),
		})
		return
	}
	utils.JSONResponse(c, http.StatusOK, item, "item updated successfully")
}

// DeleteItemHandler handles DELETE /items/:item_id
func (h *CatalogHandler) DeleteItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	actorID := helpers.CallerID(c)

	if err := h.service.DeleteItem(itemID, actorID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteItemHandler: failed to delete item", map[string]any{
			"item_id": itemID,
			"user_id": actorID,
			"error":   err.Error(),
		})
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "item deleted successfully")
}

// UpdateItemStatusHandler handles PUT /items/:item_id/status, the admin
// moderation decision.
func (h *CatalogHandler) UpdateItemStatusHandler(c *gin.Context) {
	var req ItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateItemStatusHandler", err)
		return
	}

	itemID := c.Param("item_id")
	adminID := helpers.CallerID(c)
	item, err := h.service.UpdateItemStatus(itemID, adminID, model.ItemStatus(req.Status))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateItemStatusHandler: failed to update status", map[string]any{
			"item_id":  itemID,
			"admin_id": adminID,
			"status":   req.Status,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "item status updated successfully")
	helpers.LogSuccess("UpdateItemStatusHandler", "item status updated successfully", map[string]any{
		"item_id": itemID,
		"status":  req.Status,
	})
}

// RefreshAuctionStatusesHandler handles POST /items/refresh. The background
// sweep does the same on a timer; this lets an admin force it.
func (h *CatalogHandler) RefreshAuctionStatusesHandler(c *gin.Context) {
	changed, err := h.service.RefreshAuctionStatuses()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"changed": changed}, "auction statuses refreshed")
}

// CreateCategoryHandler handles POST /categories
func (h *CatalogHandler) CreateCategoryHandler(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateCategoryHandler", err)
		return
	}

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, category, "category created successfully")
}

// ListCategoriesHandler handles GET /categories
func (h *CatalogHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}
	utils.JSONResponse(c, http.StatusOK, categories, "categories retrieved successfully")
}
