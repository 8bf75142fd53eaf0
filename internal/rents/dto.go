package rents

import (
	"time"

	"github.com/google/uuid"

	"github.com/transportly/transportly-backend/internal/transports"
	"github.com/transportly/transportly-backend/internal/users"
	"github.com/transportly/transportly-backend/pkg/db/models"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

// RentDTO is the transport shape for a rental, with its relations populated
// when the query preloads them.
type RentDTO struct {
	ID          uuid.UUID                 `json:"id"`
	UserID      uuid.UUID                 `json:"userId"`
	TransportID uuid.UUID                 `json:"transportId"`
	FromDate    time.Time                 `json:"fromDate"`
	ToDate      *time.Time                `json:"toDate,omitempty"`
	StoppedAt   *time.Time                `json:"stoppedAt,omitempty"`
	Transport   *transports.TransportDTO  `json:"transport,omitempty"`
	User        *users.UserDTO            `json:"user,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// ListResult is one page of rents plus its pagination metadata.
type ListResult struct {
	Items      []RentDTO       `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// FromModel maps a rent row to its DTO, rewriting any image keys under the
// provided media base.
func FromModel(r *models.Rent, mediaBase string) *RentDTO {
	if r == nil {
		return nil
	}
	return &RentDTO{
		ID:          r.ID,
		UserID:      r.UserID,
		TransportID: r.TransportID,
		FromDate:    r.FromDate,
		ToDate:      r.ToDate,
		StoppedAt:   r.StoppedAt,
		Transport:   transports.FromModel(r.Transport, mediaBase),
		User:        users.FromModel(r.User, mediaBase),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
