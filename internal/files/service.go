package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/pkg/config"
	"github.com/transportly/transportly-backend/pkg/db/models"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
)

var allowedImageMimeTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

type fileRepository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blobStore interface {
	Upload(ctx context.Context, objectKey, contentType string, body io.Reader) error
	Delete(ctx context.Context, objectKey string) error
}

// UploadInput models a single multipart file part.
type UploadInput struct {
	Name        string
	Encoding    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// Service exposes file upload and deletion semantics.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*FileDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  fileRepository
	store blobStore
	media config.MediaConfig
	logg  *logger.Logger
}

// ServiceParams bundles the dependencies required to build a files service.
type ServiceParams struct {
	Repo   fileRepository
	Store  blobStore
	Media  config.MediaConfig
	Logger *logger.Logger
}

// NewService constructs a files service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("file repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if params.Media.PublicBaseURL == "" {
		return nil, fmt.Errorf("media public base url is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:  params.Repo,
		store: params.Store,
		media: params.Media,
		logg:  params.Logger,
	}, nil
}

// Upload stores the blob first and only then the metadata row, removing the
// blob again when the row insert fails so no orphan objects accumulate.
func (s *service) Upload(ctx context.Context, input UploadInput) (*FileDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file body is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if _, ok := allowedImageMimeTypes[contentType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are allowed")
	}

	maxBytes := int64(s.media.MaxUploadMB) * 1024 * 1024
	if input.SizeBytes > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file exceeds the %dMB upload limit", s.media.MaxUploadMB))
	}

	key := buildObjectKey(name)
	if err := s.store.Upload(ctx, key, contentType, input.Body); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload blob")
	}

	file := &models.File{
		Name:      name,
		Encoding:  input.Encoding,
		MimeType:  contentType,
		SizeBytes: input.SizeBytes,
		FileSrc:   key,
	}
	created, err := s.repo.Create(ctx, file)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logg.Error(s.logg.WithField(ctx, "object_key", key), "remove orphaned blob", delErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist file row")
	}

	return FromModel(created, s.media.PublicBaseURL), nil
}

// Delete removes the blob and then the metadata row. A failed blob delete is
// logged and skipped so stale rows never pin broken objects.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup file")
	}

	if err := s.store.Delete(ctx, file.FileSrc); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "object_key", file.FileSrc), "delete blob", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete file row")
	}
	return nil
}

func buildObjectKey(name string) string {
	clean := sanitizeFileName(name)
	id := uuid.New()
	if clean == "" {
		clean = id.String()
	}
	return fmt.Sprintf("uploads/%s/%s", id, clean)
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.TrimSpace(name))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
