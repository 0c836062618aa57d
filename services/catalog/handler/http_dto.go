package handler

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "art-auction/internal/catalogService"
)

// Request DTOs
type ItemRequest struct {
	CategoryID    string          `json:"category_id" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	StartTime     time.Time       `json:"start_time" binding:"required"`
	EndTime       time.Time       `json:"end_time" binding:"required"`
	ImageBase64   string          `json:"image_base64"`
}

func (r ItemRequest) toInput() catalog.ItemInput {
	return catalog.ItemInput{
		CategoryID:    r.CategoryID,
		Name:          r.Name,
		Description:   r.Description,
		StartingPrice: r.StartingPrice,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		ImageBase64:   r.ImageBase64,
	}
}

type ItemStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
