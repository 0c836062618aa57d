package handler

// Request DTOs
type ApplicationRequest struct {
	Description string `json:"description" binding:"required"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}
