package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	model "art-auction/internal/models"
	"art-auction/services/helpers"
	"art-auction/utils"
)

type SellerServiceInterface interface {
	Apply(userID, description string) (model.SellerApplication, error)
	GetApplication(applicationID string) (model.SellerApplication, error)
	ListApplications() ([]model.SellerApplication, error)
	UpdateStatus(applicationID, adminID string, status model.ApplicationStatus) (model.SellerApplication, error)
	DeleteApplication(applicationID string) error
}

type SellerHandler struct {
	service SellerServiceInterface
}

func NewSellerHandler(service SellerServiceInterface) *SellerHandler {
	return &SellerHandler{service: service}
}

// ApplyHandler handles POST /applications. The applicant is the authenticated
// caller.
func (h *SellerHandler) ApplyHandler(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ApplyHandler", err)
		return
	}

	userID := helpers.CallerID(c)
	app, err := h.service.Apply(userID, req.Description)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ApplyHandler: application failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, app, "application submitted successfully")
	helpers.LogSuccess("ApplyHandler", "application submitted successfully", map[string]any{
		"application_id": app.ApplicationID,
		"user_id":        userID,
	})
}

// GetApplicationHandler handles GET /applications/:application_id
func (h *SellerHandler) GetApplicationHandler(c *gin.Context) {
	applicationID := c.Param("application_id")
	app, err := h.service.GetApplication(applicationID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, app, "application retrieved successfully")
}

// ListApplicationsHandler handles GET /applications
func (h *SellerHandler) ListApplicationsHandler(c *gin.Context) {
	apps, err := h.service.ListApplications()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if apps == nil {
		apps = []model.SellerApplication{}
	}
	utils.JSONResponse(c, http.StatusOK, apps, "applications retrieved successfully")
}

// UpdateStatusHandler handles PUT /applications/:application_id/status, the
// admin decision on a pending application.
func (h *SellerHandler) UpdateStatusHandler(c *gin.Context) {
	var req ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateStatusHandler", err)
		return
	}

	applicationID := c.Param("application_id")
	adminID := helpers.CallerID(c)
	app, err := h.service.UpdateStatus(applicationID, adminID, model.ApplicationStatus(req.Status))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateStatusHandler: decision failed", map[string]any{
			"application_id": applicationID,
			"admin_id":       adminID,
			"error":          err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, app, "application status updated successfully")
	helpers.LogSuccess("UpdateStatusHandler", "application status updated successfully", map[string]any{
		"application_id": applicationID,
		"status":         req.Status,
	})
}

// DeleteApplicationHandler handles DELETE /applications/:application_id
func (h *SellerHandler) DeleteApplicationHandler(c *gin.Context) {
	applicationID := c.Param("application_id")
	if err := h.service.DeleteApplication(applicationID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "application deleted successfully")
}
