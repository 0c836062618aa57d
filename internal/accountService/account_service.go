package accounts

import (
	"fmt"
	"time"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/auth"
	model "art-auction/internal/models"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// AccountService handles registration, login and user administration
type AccountService struct {
	repo   repository.Store
	tokens *auth.TokenManager
	now    func() time.Time
}

// NewAccountService creates a new AccountService instance
func NewAccountService(repo repository.Store, tokens *auth.TokenManager, now func() time.Time) *AccountService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &AccountService{repo: repo, tokens: tokens, now: now}
}

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Bio       string
}

// Register creates a new account. Everyone starts as a customer; seller is
// earned through an approved application.
func (s *AccountService) Register(input RegisterInput) (model.User, error) {
	if input.Username == "" || input.Email == "" {
		return model.User{}, fmt.Errorf("service: %w - username and email are required", auctionerrors.ErrInvalidInput)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("service: register %s: %w", input.Username, err)
	}

	user := model.User{
		UserID:       utils.GenerateID(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		Bio:          input.Bio,
		CreatedAt:    s.now(),
	}

	if err := s.repo.AddUser(user); err != nil {
		return model.User{}, fmt.Errorf("service: failed to save user %s: %w", input.Username, err)
	}
	return user, nil
}

// Login checks credentials and issues a session token
func (s *AccountService) Login(username, password string) (string, model.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		// do not reveal whether the username exists
		return "", model.User{}, fmt.Errorf("service: login %s: %w", username, auctionerrors.ErrInvalidCredentials)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", model.User{}, fmt.Errorf("service: login %s: %w", username, err)
	}

	token, err := s.tokens.Issue(user, s.now())
	if err != nil {
		return "", model.User{}, fmt.Errorf("service: failed to issue token for %s: %w", username, err)
	}
	return token, user, nil
}

// GetUser returns a user by ID
func (s *AccountService) GetUser(userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}

	user, err := s.repo.GetUser(userID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers returns all users, optionally filtered by role
func (s *AccountService) ListUsers(role model.Role) ([]model.User, error) {
	users, err := s.repo.ListUsers(role)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}
	return users, nil
}

// UpdateInput carries the updatable profile fields; empty fields keep their
// current value.
type UpdateInput struct {
	FirstName string
	LastName  string
	Email     string
	Bio       string
	Password  string
}

// UpdateUser updates a profile. Users may edit themselves; admins may edit
// anyone.
func (s *AccountService) UpdateUser(userID, actorID string, input UpdateInput) (model.User, error) {
	actor, err := s.repo.GetUser(actorID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to load user %s: %w", actorID, err)
	}
	if actorID != userID && actor.Role != model.RoleAdmin {
		return model.User{}, fmt.Errorf("service: %w - cannot edit another user's profile", auctionerrors.ErrNotOwner)
	}

	user, err := s.repo.GetUser(userID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to get user %s: %w", userID, err)
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("service: update user %s: %w", userID, err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.UpdateUser(user); err != nil {
		return model.User{}, fmt.Errorf("service: failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// DeleteUser removes an account. Admin only; enforced at the router.
func (s *AccountService) DeleteUser(userID string) error {
	if err := s.repo.DeleteUser(userID); err != nil {
		return fmt.Errorf("service: failed to delete user %s: %w", userID, err)
	}
	return nil
}
