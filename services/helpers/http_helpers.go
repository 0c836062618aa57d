// Package helpers carries the HTTP plumbing shared by all handler packages:
// error mapping, bind-error responses and the context keys the auth
// middleware populates.
package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"art-auction/internal/auctionerrors"
	"art-auction/utils"
)

// Context keys set by the auth middleware
const (
	CtxUserID   = "auth_user_id"
	CtxUsername = "auth_username"
	CtxUserRole = "auth_role"
)

// CallerID returns the authenticated user's ID, empty for anonymous requests
func CallerID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrCategoryNotFound):
		return http.StatusNotFound, "category not found"
	case errors.Is(err, auctionerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, auctionerrors.ErrApplicationNotFound):
		return http.StatusNotFound, "application not found"
	case errors.Is(err, auctionerrors.ErrPaymentNotFound):
		return http.StatusNotFound, "payment not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrInvalidAuctionEnd):
		return http.StatusBadRequest, "invalid auction end time"
	case errors.Is(err, auctionerrors.ErrWeakPassword):
		return http.StatusBadRequest, "password too weak"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auctionerrors.ErrRoleNotAllowed):
		return http.StatusForbidden, "operation not allowed for this role"
	case errors.Is(err, auctionerrors.ErrNotOwner):
		return http.StatusForbidden, "operation not allowed on another user's resource"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not open for bidding"
	case errors.Is(err, auctionerrors.ErrAuctionNotEnded):
		return http.StatusConflict, "auction has not ended yet"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusConflict, "sellers cannot bid on their own items"
	case errors.Is(err, auctionerrors.ErrDuplicateUsername):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, auctionerrors.ErrDuplicateApplication):
		return http.StatusConflict, "application already submitted"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for item"
	case errors.Is(err, auctionerrors.ErrUserNoBids):
		return http.StatusOK, "no items found for user"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
