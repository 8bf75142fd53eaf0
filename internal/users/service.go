package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/pkg/config"
	"github.com/transportly/transportly-backend/pkg/db/models"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
	"github.com/transportly/transportly-backend/pkg/security"
)

// UpdateInput holds optional mutation values for the caller's profile.
type UpdateInput struct {
	Name    *string
	Email   *string
	ImageID *uuid.UUID
}

// Service exposes profile operations scoped to the authenticated user.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, password string) error
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type fileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
}

type fileRemover interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        userRepository
	fileRepo    fileReader
	fileRemover fileRemover
	passwordCfg config.PasswordConfig
	media       config.MediaConfig
	logg        *logger.Logger
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo           userRepository
	FileRepo       fileReader
	FileRemover    fileRemover
	PasswordConfig config.PasswordConfig
	Media          config.MediaConfig
	Logger         *logger.Logger
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository is required")
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
		passwordCfg: params.PasswordConfig,
		media:       params.Media,
		logg:        params.Logger,
	}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user, s.media.PublicBaseURL), nil
}

// Update merges the provided fields into the profile. Swapping the avatar
// detaches the previous file first and then removes it, so a failed blob
// delete never blocks the profile change.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = name
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		if email != user.Email {
			if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing.ID != user.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
			}
			user.Email = email
		}
	}

	var previousImageID *uuid.UUID
	if input.ImageID != nil && (user.ImageID == nil || *user.ImageID != *input.ImageID) {
		image, err := s.fileRepo.FindByID(ctx, *input.ImageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "image file not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup image file")
		}
		previousImageID = user.ImageID
		user.ImageID = &image.ID
		user.Image = image
	}

	if _, err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}

	if previousImageID != nil {
		if err := s.fileRemover.Delete(ctx, *previousImageID); err != nil {
			s.logg.Error(s.logg.WithField(ctx, "file_id", previousImageID.String()), "remove replaced avatar", err)
		}
	}

	return FromModel(user, s.media.PublicBaseURL), nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, password string) error {
	if strings.TrimSpace(password) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	if _, err := s.loadUser(ctx, userID); err != nil {
		return err
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
