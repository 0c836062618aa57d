package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	accounts "art-auction/internal/accountService"
	model "art-auction/internal/models"
	"art-auction/services/helpers"
	"art-auction/utils"
)

type AccountServiceInterface interface {
	Register(input accounts.RegisterInput) (model.User, error)
	Login(username, password string) (string, model.User, error)
	GetUser(userID string) (model.User, error)
	ListUsers(role model.Role) ([]model.User, error)
	UpdateUser(userID, actorID string, input accounts.UpdateInput) (model.User, error)
	DeleteUser(userID string) error
}

type AccountHandler struct {
	service AccountServiceInterface
}

func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterHandler handles POST /auth/register
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(accounts.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Bio:       req.Bio,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterHandler: registration failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "user registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// LoginHandler handles POST /auth/login
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, user, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LoginHandler: login failed", map[string]any{"username": req.Username})
		return
	}

	utils.JSONResponse(c, http.StatusOK, LoginResponse{Token: token, User: user}, "login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// GetUserHandler handles GET /users/:user_id
func (h *AccountHandler) GetUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	user, err := h.service.GetUser(userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, user, "user retrieved successfully")
}

// ListUsersHandler handles GET /users with an optional role query filter
func (h *AccountHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.service.ListUsers(model.Role(c.Query("role")))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if users == nil {
		users = []model.User{}
	}
	utils.JSONResponse(c, http.StatusOK, users, "users retrieved successfully")
}

// UpdateUserHandler handles PUT /users/:user_id. The service decides whether
// the caller may edit the target profile.
func (h *AccountHandler) UpdateUserHandler(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateUserHandler", err)
		return
	}

	userID := c.Param("user_id")
	actorID := helpers.CallerID(c)
	user, err := h.service.UpdateUser(userID, actorID, accounts.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Bio:       req.Bio,
		Password:  req.Password,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateUserHandler: update failed", map[string]any{
			"user_id":  userID,
			"actor_id": actorID,
			"error":    err.Error(),
		})
		return
	}
	utils.JSONResponse(c, http.StatusOK, user, "user updated successfully")
}

// DeleteUserHandler handles DELETE /users/:user_id. Admin only; the router
// enforces the role.
func (h *AccountHandler) DeleteUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	if err := h.service.DeleteUser(userID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "user deleted successfully")
}
