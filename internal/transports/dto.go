package transports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transportly/transportly-backend/internal/files"
	"github.com/transportly/transportly-backend/pkg/db/models"
	"github.com/transportly/transportly-backend/pkg/enums"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

// TransportDTO flattens the listing row and its embedded technical sheet.
type TransportDTO struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Price       decimal.Decimal       `json:"price"`
	Status      enums.TransportStatus `json:"status"`
	Description *string               `json:"description,omitempty"`
	MaxSpeed    *int                  `json:"maxSpeed,omitempty"`
	Type        enums.TransportType   `json:"type"`
	Weight      *float64              `json:"weight,omitempty"`
	Seats       *int                  `json:"seats,omitempty"`
	Power       *int                  `json:"power,omitempty"`
	Color       *string               `json:"color,omitempty"`
	LicenceType *enums.LicenceType    `json:"licenceType,omitempty"`
	Image       *files.FileDTO        `json:"image,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ListResult is one page of transports plus its pagination metadata.
type ListResult struct {
	Items      []TransportDTO  `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// FromModel maps a transport row to its DTO, rewriting the image key into a
// public URL under the provided base.
func FromModel(t *models.Transport, mediaBase string) *TransportDTO {
	if t == nil {
		return nil
	}
	return &TransportDTO{
		ID:          t.ID,
		Title:       t.Title,
		Price:       t.Price,
		Status:      t.Status,
		Description: t.Description.Description,
		MaxSpeed:    t.Description.MaxSpeed,
		Type:        t.Description.Type,
		Weight:      t.Description.Weight,
		Seats:       t.Description.Seats,
		Power:       t.Description.Power,
		Color:       t.Description.Color,
		LicenceType: t.Description.LicenceType,
		Image:       files.FromModel(t.Image, mediaBase),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
