package transports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/pkg/config"
	"github.com/transportly/transportly-backend/pkg/db/models"
	"github.com/transportly/transportly-backend/pkg/enums"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

// CreateInput holds the validated payload to create a transport listing.
type CreateInput struct {
	Title       string
	Price       decimal.Decimal
	Description *string
	MaxSpeed    *int
	Type        enums.TransportType
	Weight      *float64
	Seats       *int
	Power       *int
	Color       *string
	LicenceType *enums.LicenceType
	ImageID     *uuid.UUID
}

// UpdateInput holds optional mutation values for a transport listing.
type UpdateInput struct {
	Title       *string
	Price       *decimal.Decimal
	Description *string
	MaxSpeed    *int
	Type        *enums.TransportType
	Weight      *float64
	Seats       *int
	Power       *int
	Color       *string
	LicenceType *enums.LicenceType
	ImageID     *uuid.UUID
}

// ListInput pairs the catalog filter with pagination.
type ListInput struct {
	Filter ListFilter
	Params pagination.Params
}

// Service exposes catalog management and the public listing queries.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*TransportDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*TransportDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*TransportDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, input ListInput) (*ListResult, error)
}

type transportRepository interface {
	Create(ctx context.Context, transport *models.Transport) (*models.Transport, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transport, error)
	Update(ctx context.Context, transport *models.Transport) (*models.Transport, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transport, int64, error)
}

type fileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
}

type fileRemover interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        transportRepository
	fileRepo    fileReader
	fileRemover fileRemover
	media       config.MediaConfig
	logg        *logger.Logger
}

// ServiceParams bundles the dependencies required to build a transports service.
type ServiceParams struct {
	Repo        transportRepository
	FileRepo    fileReader
	FileRemover fileRemover
	Media       config.MediaConfig
	Logger      *logger.Logger
}

// NewService constructs a transports service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("transport repository is required")
	}
	if params.FileRepo == nil {
		return nil, fmt.Errorf("file repository is required")
	}
	if params.FileRemover == nil {
		return nil, fmt.Errorf("file remover is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:        params.Repo,
		fileRepo:    params.FileRepo,
		fileRemover: params.FileRemover,
		media:       params.Media,
		logg:        params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*TransportDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transport type")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.LicenceType != nil && !input.LicenceType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid licence type")
	}

	transport := &models.Transport{
		Title:  title,
		Price:  input.Price,
		Status: enums.TransportStatusFree,
		Description: models.TransportDescription{
			Description: input.Description,
			MaxSpeed:    input.MaxSpeed,
			Type:        input.Type,
			Weight:      input.Weight,
			Seats:       input.Seats,
			Power:       input.Power,
			Color:       input.Color,
			LicenceType: input.LicenceType,
		},
	}

	if input.ImageID != nil {
		image, err := s.loadImage(ctx, *input.ImageID)
		if err != nil {
			return nil, err
		}
		transport.ImageID = &image.ID
		transport.Image = image
	}

	created, err := s.repo.Create(ctx, transport)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create transport")
	}
	return FromModel(created, s.media.PublicBaseURL), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TransportDTO, error) {
	transport, err := s.loadTransport(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(transport, s.media.PublicBaseURL), nil
}

// Update merges the provided fields. Replacing the image removes the old
// file after the row is saved so a failed cleanup never blocks the change.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*TransportDTO, error) {
	transport, err := s.loadTransport(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		transport.Title = title
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		transport.Price = *input.Price
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transport type")
		}
		transport.Description.Type = *input.Type
	}
	if input.LicenceType != nil {
		if !input.LicenceType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid licence type")
		}
		transport.Description.LicenceType = input.LicenceType
	}
	if input.Description != nil {
		transport.Description.Description = input.Description
	}
	if input.MaxSpeed != nil {
		transport.Description.MaxSpeed = input.MaxSpeed
	}
	if input.Weight != nil {
		transport.Description.Weight = input.Weight
	}
	if input.Seats != nil {
		transport.Description.Seats = input.Seats
	}
	if input.Power != nil {
		transport.Description.Power = input.Power
	}
	if input.Color != nil {
		transport.Description.Color = input.Color
	}

	var previousImageID *uuid.UUID
	if input.ImageID != nil && (transport.ImageID == nil || *transport.ImageID != *input.ImageID) {
		image, err := s.loadImage(ctx, *input.ImageID)
		if err != nil {
			return nil, err
		}
		previousImageID = transport.ImageID
		transport.ImageID = &image.ID
		transport.Image = image
	}

	if _, err := s.repo.Update(ctx, transport); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update transport")
	}

	if previousImageID != nil {
		if err := s.fileRemover.Delete(ctx, *previousImageID); err != nil {
			s.logg.Error(s.logg.WithField(ctx, "file_id", previousImageID.String()), "remove replaced transport image", err)
		}
	}

	return FromModel(transport, s.media.PublicBaseURL), nil
}

// Delete removes the listing and cascades its image file.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	transport, err := s.loadTransport(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete transport")
	}

	if transport.ImageID != nil {
		if err := s.fileRemover.Delete(ctx, *transport.ImageID); err != nil {
			s.logg.Error(s.logg.WithField(ctx, "file_id", transport.ImageID.String()), "remove transport image", err)
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, count, err := s.repo.List(ctx, input.Filter, input.Params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transports")
	}

	items := make([]TransportDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i], s.media.PublicBaseURL))
	}
	return &ListResult{
		Items:      items,
		Pagination: pagination.MetaFor(input.Params, count),
	}, nil
}

func (s *service) loadTransport(ctx context.Context, id uuid.UUID) (*models.Transport, error) {
	transport, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transport not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup transport")
	}
	return transport, nil
}

func (s *service) loadImage(ctx context.Context, id uuid.UUID) (*models.File, error) {
	image, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "image file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup image file")
	}
	return image, nil
}
