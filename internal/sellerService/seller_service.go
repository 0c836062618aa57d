package sellers

import (
	"errors"
	"fmt"
	"time"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// SellerService manages seller applications: a customer applies, an admin
// decides, and approval promotes the applicant to seller.
type SellerService struct {
	repo repository.Store
	now  func() time.Time
}

// NewSellerService creates a new SellerService instance
func NewSellerService(repo repository.Store, now func() time.Time) *SellerService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &SellerService{repo: repo, now: now}
}

// Apply submits a seller application for a user. One application per user.
func (s *SellerService) Apply(userID, description string) (model.SellerApplication, error) {
	if userID == "" {
		return model.SellerApplication{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}

	if _, err := s.repo.GetUser(userID); err != nil {
		return model.SellerApplication{}, fmt.Errorf("service: failed to load user %s: %w", userID, err)
	}

	if _, err := s.repo.GetApplicationByUser(userID); err == nil {
		return model.SellerApplication{}, fmt.Errorf("service: user %s: %w", userID, auctionerrors.ErrDuplicateApplication)
	} else if !errors.Is(err, auctionerrors.ErrApplicationNotFound) {
		return model.SellerApplication{}, fmt.Errorf("service: failed to check applications for user %s: %w", userID, err)
	}

	app := model.SellerApplication{
		ApplicationID: utils.GenerateID(),
		UserID:        userID,
		Description:   description,
		Status:        model.ApplicationPending,
		AppliedAt:     s.now(),
	}

	if err := s.repo.AddApplication(app); err != nil {
		return model.SellerApplication{}, fmt.Errorf("service: failed to save application for user %s: %w", userID, err)
	}
	return app, nil
}

// GetApplication returns a seller application by ID
func (s *SellerService) GetApplication(applicationID string) (model.SellerApplication, error) {
	app, err := s.repo.GetApplication(applicationID)
	if err != nil {
		return model.SellerApplication{}, fmt.Errorf("service: failed to get application %s: %w", applicationID, err)
	}
	return app, nil
}

// ListApplications returns all seller applications
func (s *SellerService) ListApplications() ([]model.SellerApplication, error) {
	apps, err := s.repo.ListApplications()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus records the admin decision. Approval promotes the applicant
// to seller.
func (s *SellerService) UpdateStatus(applicationID, adminID string, status model.ApplicationStatus) (model.SellerApplication, error) {
	admin, err := s.repo.GetUser(adminID)
	if err != nil {
		return model.SellerApplication{}, fmt.Errorf("service: failed to load admin %s: %w", adminID, err)
	}
	if admin.Role != model.RoleAdmin {
		return model.SellerApplication{}, fmt.Errorf("service: %w - only admins can decide applications", auctionerrors.ErrRoleNotAllowed)
	}

	app, err := s.repo.GetApplication(applicationID)
	if err != nil {
		return model.SellerApplication{}, fmt.Errorf("service: failed to get application %s: %w", applicationID, err)
	}

	app.Status = status
	app.AdminID = adminID
	// the approval timestamp marks an approval, not a decision of any kind
	if status == model.ApplicationApproved {
		now := s.now()
		app.ApprovedAt = &now
	} else {
		app.ApprovedAt = nil
	}

	if err := s.repo.UpdateApplication(app); err != nil {
		return model.SellerApplication{}, fmt.Errorf("service: failed to update application %s: %w", applicationID, err)
	}

	if status == model.ApplicationApproved {
		applicant, err := s.repo.GetUser(app.UserID)
		if err != nil {
			return model.SellerApplication{}, fmt.Errorf("service: failed to load applicant %s: %w", app.UserID, err)
		}
		applicant.Role = model.RoleSeller
		if err := s.repo.UpdateUser(applicant); err != nil {
			return model.SellerApplication{}, fmt.Errorf("service: failed to promote user %s: %w", app.UserID, err)
		}
	}
	return app, nil
}

// DeleteApplication removes a seller application
func (s *SellerService) DeleteApplication(applicationID string) error {
	if err := s.repo.DeleteApplication(applicationID); err != nil {
		return fmt.Errorf("service: failed to delete application %s: %w", applicationID, err)
	}
	return nil
}
