package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	model "art-auction/internal/models"
	"art-auction/services/helpers"
	"art-auction/utils"
)

type PaymentServiceInterface interface {
	CreatePayment(bidID, customerID string) (model.Payment, error)
	GetPayment(paymentID, actorID string) (model.Payment, error)
	ListPaymentsByCustomer(customerID string) ([]model.Payment, error)
	ListPaymentsBySeller(sellerID, actorID string) ([]model.Payment, error)
}

type PaymentHandler struct {
	service PaymentServiceInterface
}

func NewPaymentHandler(service PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePaymentHandler handles POST /payments. The paying customer is the
// authenticated caller.
func (h *PaymentHandler) CreatePaymentHandler(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreatePaymentHandler", err)
		return
	}

	customerID := helpers.CallerID(c)
	payment, err := h.service.CreatePayment(req.BidID, customerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreatePaymentHandler: payment failed", map[string]any{
			"bid_id":      req.BidID,
			"customer_id": customerID,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, payment, "payment recorded successfully")
	helpers.LogSuccess("CreatePaymentHandler", "payment recorded successfully", map[string]any{
		"payment_id":  payment.PaymentID,
		"bid_id":      payment.BidID,
		"customer_id": customerID,
		"amount":      payment.Amount.String(),
	})
}

// GetPaymentHandler handles GET /payments/:payment_id. Access is limited to
// the payment's customer, the item's seller and admins.
func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	paymentID := c.Param("payment_id")
	payment, err := h.service.GetPayment(paymentID, helpers.CallerID(c))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, payment, "payment retrieved successfully")
}

// ListMyPaymentsHandler handles GET /payments, returning the authenticated
// customer's payment history.
func (h *PaymentHandler) ListMyPaymentsHandler(c *gin.Context) {
	customerID := helpers.CallerID(c)
	payments, err := h.service.ListPaymentsByCustomer(customerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if payments == nil {
		payments = []model.Payment{}
	}
	utils.JSONResponse(c, http.StatusOK, payments, "payments retrieved successfully")
}

// ListSellerPaymentsHandler handles GET /sellers/:seller_id/payments. Only
// the seller themselves or an admin may read the list.
func (h *PaymentHandler) ListSellerPaymentsHandler(c *gin.Context) {
	sellerID := c.Param("seller_id")
	payments, err := h.service.ListPaymentsBySeller(sellerID, helpers.CallerID(c))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if payments == nil {
		payments = []model.Payment{}
	}
	utils.JSONResponse(c, http.StatusOK, payments, "payments retrieved successfully")
}
