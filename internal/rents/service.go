package rents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/pkg/config"
	"github.com/transportly/transportly-backend/pkg/db/models"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

// CreateInput holds the payload to start a rent.
type CreateInput struct {
	TransportID uuid.UUID
	FromDate    *time.Time
	ToDate      *time.Time
}

// UpdateInput holds optional mutation values for a rent. A non-nil StoppedAt
// also returns the transport to the pool.
type UpdateInput struct {
	FromDate  *time.Time
	ToDate    *time.Time
	StoppedAt *time.Time
}

// Service exposes the rental lifecycle.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*RentDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*RentDTO, error)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error)
	ActiveForTransport(ctx context.Context, userID, transportID uuid.UUID) (*RentDTO, error)
}

type rentRepository interface {
	Create(ctx context.Context, rent *models.Rent) (*models.Rent, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rent, error)
	Update(ctx context.Context, rent *models.Rent) (*models.Rent, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Rent, int64, error)
	FindActive(ctx context.Context, userID, transportID uuid.UUID) (*models.Rent, error)
}

type transportClaimer interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transport, error)
	ClaimForRent(ctx context.Context, id uuid.UUID) (bool, error)
	Release(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       rentRepository
	transports transportClaimer
	media      config.MediaConfig
	logg       *logger.Logger
}

// ServiceParams bundles the dependencies required to build a rents service.
type ServiceParams struct {
	Repo          rentRepository
	TransportRepo transportClaimer
	Media         config.MediaConfig
	Logger        *logger.Logger
}

// NewService constructs a rents service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("rent repository is required")
	}
	if params.TransportRepo == nil {
		return nil, fmt.Errorf("transport repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:       params.Repo,
		transports: params.TransportRepo,
		media:      params.Media,
		logg:       params.Logger,
	}, nil
}

// Create claims the transport with a conditional status flip before writing
// the rent row. Concurrent callers race on the flip; exactly one wins, the
// rest see a conflict. A failed insert puts the status back and reports both
// errors together.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*RentDTO, error) {
	if _, err := s.transports.FindByID(ctx, input.TransportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transport not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup transport")
	}

	claimed, err := s.transports.ClaimForRent(ctx, input.TransportID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "claim transport")
	}
	if !claimed {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "transport already rented")
	}

	fromDate := time.Now().UTC()
	if input.FromDate != nil {
		fromDate = *input.FromDate
	}

	rent := &models.Rent{
		UserID:      userID,
		TransportID: input.TransportID,
		FromDate:    fromDate,
		ToDate:      input.ToDate,
	}
	created, err := s.repo.Create(ctx, rent)
	if err != nil {
		if releaseErr := s.transports.Release(ctx, input.TransportID); releaseErr != nil {
			err = multierr.Append(err, releaseErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create rent")
	}

	return FromModel(created, s.media.PublicBaseURL), nil
}

// Update applies the provided dates and always persists the merged rent.
// Setting StoppedAt on a running rent frees the transport.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*RentDTO, error) {
	rent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup rent")
	}

	stopping := input.StoppedAt != nil && rent.StoppedAt == nil

	if input.FromDate != nil {
		rent.FromDate = *input.FromDate
	}
	if input.ToDate != nil {
		rent.ToDate = input.ToDate
	}
	if input.StoppedAt != nil {
		rent.StoppedAt = input.StoppedAt
	}
	if rent.ToDate != nil && rent.ToDate.Before(rent.FromDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "toDate cannot precede fromDate")
	}

	if _, err := s.repo.Update(ctx, rent); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update rent")
	}

	if stopping {
		if err := s.transports.Release(ctx, rent.TransportID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "release transport")
		}
	}

	return FromModel(rent, s.media.PublicBaseURL), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error) {
	rows, count, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rents")
	}

	items := make([]RentDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i], s.media.PublicBaseURL))
	}
	return &ListResult{
		Items:      items,
		Pagination: pagination.MetaFor(params, count),
	}, nil
}

// ActiveForTransport returns the caller's running rent for the transport.
// No rent is not an error; the DTO is simply nil.
func (s *service) ActiveForTransport(ctx context.Context, userID, transportID uuid.UUID) (*RentDTO, error) {
	rent, err := s.repo.FindActive(ctx, userID, transportID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find active rent")
	}
	if rent == nil {
		return nil, nil
	}
	return FromModel(rent, s.media.PublicBaseURL), nil
}
