package files

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/internal/repo"
	"github.com/transportly/transportly-backend/pkg/db/models"
)

// Repository exposes file metadata persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a files repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new file row.
func (r *Repository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if err := r.DB(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

// FindByID loads a file row by ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	if err := r.DB(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// Delete removes a file row by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.File{}).Error
}
