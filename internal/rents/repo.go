package rents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/internal/repo"
	"github.com/transportly/transportly-backend/pkg/db/models"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"fromDate":  "from_date",
	"toDate":    "to_date",
	"stoppedAt": "stopped_at",
}

// Repository exposes rent persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a rents repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new rent row.
func (r *Repository) Create(ctx context.Context, rent *models.Rent) (*models.Rent, error) {
	if err := r.DB(ctx).Create(rent).Error; err != nil {
		return nil, err
	}
	return rent, nil
}

// FindByID loads a rent with its transport (and image) and user.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rent, error) {
	var rent models.Rent
	err := r.DB(ctx).
		Preload("Transport.Image").
		Preload("User.Image").
		First(&rent, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rent, nil
}

// Update persists the full rent row.
func (r *Repository) Update(ctx context.Context, rent *models.Rent) (*models.Rent, error) {
	if err := r.DB(ctx).Save(rent).Error; err != nil {
		return nil, err
	}
	return rent, nil
}

// ListByUser returns one page of the user's rents plus the total count.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Rent, int64, error) {
	params = params.Normalize()
	query := r.DB(ctx).Model(&models.Rent{}).Where("user_id = ?", userID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[params.SortKey]
	if !ok {
		column = "created_at"
	}

	var rows []models.Rent
	err := query.
		Preload("Transport.Image").
		Preload("User.Image").
		Order(fmt.Sprintf("%s %s", column, params.SortOrder)).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}

// FindActive returns the user's running rent for the transport, or nil when
// there is none.
func (r *Repository) FindActive(ctx context.Context, userID, transportID uuid.UUID) (*models.Rent, error) {
	var rent models.Rent
	err := r.DB(ctx).
		Preload("Transport.Image").
		Where("user_id = ? AND transport_id = ? AND stopped_at IS NULL", userID, transportID).
		First(&rent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rent, nil
}
