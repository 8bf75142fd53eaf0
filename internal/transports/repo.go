package transports

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/internal/repo"
	"github.com/transportly/transportly-backend/pkg/db/models"
	"github.com/transportly/transportly-backend/pkg/enums"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

// ListFilter holds the optional catalog filters. Every provided field adds
// one conjunctive clause; absent fields add nothing.
type ListFilter struct {
	Search      *string
	Type        *enums.TransportType
	Color       *string
	LicenceType *enums.LicenceType
	MaxSpeed    *float64
	PriceRange  *[2]float64
	PowerRange  *[2]float64
}

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"price":     "price",
	"maxSpeed":  "max_speed",
}

// Repository exposes transport persistence, including the rent status flips.
type Repository struct {
	repo.Base
}

// NewRepository constructs a transports repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new transport row.
func (r *Repository) Create(ctx context.Context, transport *models.Transport) (*models.Transport, error) {
	if err := r.DB(ctx).Create(transport).Error; err != nil {
		return nil, err
	}
	return transport, nil
}

// FindByID loads a transport with its image.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transport, error) {
	var transport models.Transport
	if err := r.DB(ctx).Preload("Image").First(&transport, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transport, nil
}

// Update persists the full transport row.
func (r *Repository) Update(ctx context.Context, transport *models.Transport) (*models.Transport, error) {
	if err := r.DB(ctx).Save(transport).Error; err != nil {
		return nil, err
	}
	return transport, nil
}

// Delete removes a transport by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Transport{}).Error
}

// List returns one page of transports matching the filter plus the total
// count before pagination.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transport, int64, error) {
	params = params.Normalize()
	query := applyFilter(r.DB(ctx).Model(&models.Transport{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[params.SortKey]
	if !ok {
		column = "created_at"
	}

	var rows []models.Transport
	err := query.
		Preload("Image").
		Order(fmt.Sprintf("%s %s", column, params.SortOrder)).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}

// ClaimForRent flips a FREE transport to IN_RENT. The conditional update is
// the only serialization point for double-booking: losing callers see zero
// affected rows.
func (r *Repository) ClaimForRent(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Transport{}).
		Where("id = ? AND status = ?", id, enums.TransportStatusFree).
		Update("status", enums.TransportStatusInRent)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Release flips the transport back to FREE.
func (r *Repository) Release(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.Transport{}).
		Where("id = ?", id).
		Update("status", enums.TransportStatusFree).Error
}

func applyFilter(query *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Search != nil {
		pattern := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ?", pattern)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Color != nil {
		query = query.Where("color = ?", *filter.Color)
	}
	if filter.LicenceType != nil {
		query = query.Where("licence_type = ?", *filter.LicenceType)
	}
	if filter.MaxSpeed != nil {
		query = query.Where("max_speed >= ?", *filter.MaxSpeed)
	}
	if filter.PriceRange != nil {
		query = query.Where("price BETWEEN ? AND ?", filter.PriceRange[0], filter.PriceRange[1])
	}
	if filter.PowerRange != nil {
		query = query.Where("power BETWEEN ? AND ?", filter.PowerRange[0], filter.PowerRange[1])
	}
	return query
}
