package transports

import (
	"context"
	"io"
	"testing"

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

type stubTransportRepo struct {
	byID    map[uuid.UUID]*models.Transport
	created *models.Transport
	updated *models.Transport
	deleted []uuid.UUID
	rows    []models.Transport
	count   int64
}

func newStubTransportRepo() *stubTransportRepo {
	return &stubTransportRepo{byID: make(map[uuid.UUID]*models.Transport)}
}

func (s *stubTransportRepo) Create(ctx context.Context, transport *models.Transport) (*models.Transport, error) {
	transport.ID = uuid.New()
	s.byID[transport.ID] = transport
	s.created = transport
	return transport, nil
}

func (s *stubTransportRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Transport, error) {
	if transport, ok := s.byID[id]; ok {
		return transport, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTransportRepo) Update(ctx context.Context, transport *models.Transport) (*models.Transport, error) {
	s.updated = transport
	return transport, nil
}

func (s *stubTransportRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func (s *stubTransportRepo) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transport, int64, error) {
	return s.rows, s.count, nil
}

type stubFileReader struct {
	files map[uuid.UUID]*models.File
}

func (s *stubFileReader) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	if file, ok := s.files[id]; ok {
		return file, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubFileRemover struct {
	deleted []uuid.UUID
	err     error
}

func (s *stubFileRemover) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func buildService(t *testing.T, repo *stubTransportRepo, reader *stubFileReader, remover *stubFileRemover) Service {
	t.Helper()
	if reader == nil {
		reader = &stubFileReader{files: map[uuid.UUID]*models.File{}}
	}
	if remover == nil {
		remover = &stubFileRemover{}
	}
	svc, err := NewService(ServiceParams{
		Repo:        repo,
		FileRepo:    reader,
		FileRemover: remover,
		Media:       config.MediaConfig{PublicBaseURL: "https://media.transportly.dev"},
		Logger:      logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestCreateStartsFree(t *testing.T) {
	repo := newStubTransportRepo()
	svc := buildService(t, repo, nil, nil)

	dto, err := svc.Create(context.Background(), CreateInput{
		Title: "City Hatchback",
		Price: decimal.NewFromInt(40),
		Type:  enums.TransportTypeCar,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Status != enums.TransportStatusFree {
		t.Fatalf("expected new transport FREE, got %s", dto.Status)
	}
	if repo.created == nil || repo.created.Status != enums.TransportStatusFree {
		t.Fatalf("expected FREE persisted")
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := buildService(t, newStubTransportRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Title: "Mystery",
		Price: decimal.NewFromInt(10),
		Type:  enums.TransportType("HOVERCRAFT"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateReplacingImageRemovesOldFile(t *testing.T) {
	repo := newStubTransportRepo()
	oldImageID := uuid.New()
	newImageID := uuid.New()
	transport := &models.Transport{
		ID:      uuid.New(),
		Title:   "Van",
		Price:   decimal.NewFromInt(80),
		Status:  enums.TransportStatusFree,
		ImageID: &oldImageID,
		Description: models.TransportDescription{
			Type: enums.TransportTypeBus,
		},
	}
	repo.byID[transport.ID] = transport

	reader := &stubFileReader{files: map[uuid.UUID]*models.File{
		newImageID: {ID: newImageID, FileSrc: "uploads/n/new.png"},
	}}
	remover := &stubFileRemover{}
	svc := buildService(t, repo, reader, remover)

	dto, err := svc.Update(context.Background(), transport.ID, UpdateInput{ImageID: &newImageID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Image == nil || dto.Image.ID != newImageID {
		t.Fatalf("expected new image attached")
	}
	if len(remover.deleted) != 1 || remover.deleted[0] != oldImageID {
		t.Fatalf("expected old image file removed, got %v", remover.deleted)
	}
}

func TestDeleteCascadesImageAndSurvivesCleanupFailure(t *testing.T) {
	repo := newStubTransportRepo()
	imageID := uuid.New()
	transport := &models.Transport{
		ID:      uuid.New(),
		Title:   "Bike",
		Price:   decimal.NewFromInt(15),
		Status:  enums.TransportStatusFree,
		ImageID: &imageID,
		Description: models.TransportDescription{
			Type: enums.TransportTypeBike,
		},
	}
	repo.byID[transport.ID] = transport
	remover := &stubFileRemover{err: gorm.ErrInvalidDB}
	svc := buildService(t, repo, nil, remover)

	if err := svc.Delete(context.Background(), transport.ID); err != nil {
		t.Fatalf("expected delete to succeed despite cleanup failure, got %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected transport row deleted")
	}
	if len(remover.deleted) != 1 || remover.deleted[0] != imageID {
		t.Fatalf("expected image cascade attempted")
	}
}

func TestGetMissingTransportIsNotFound(t *testing.T) {
	svc := buildService(t, newStubTransportRepo(), nil, nil)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListRewritesImageURLsAndBuildsMeta(t *testing.T) {
	repo := newStubTransportRepo()
	imageID := uuid.New()
	repo.rows = []models.Transport{{
		ID:      uuid.New(),
		Title:   "Pictured",
		Price:   decimal.NewFromInt(30),
		Status:  enums.TransportStatusFree,
		ImageID: &imageID,
		Image:   &models.File{ID: imageID, FileSrc: "uploads/p/pic.png"},
		Description: models.TransportDescription{
			Type: enums.TransportTypeCar,
		},
	}}
	repo.count = 11
	svc := buildService(t, repo, nil, nil)

	result, err := svc.List(context.Background(), ListInput{
		Params: pagination.Params{Page: 1, Limit: 5},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(result.Items))
	}
	if result.Items[0].Image.FileSrc != "https://media.transportly.dev/uploads/p/pic.png" {
		t.Fatalf("expected rewritten image url, got %q", result.Items[0].Image.FileSrc)
	}
	if result.Pagination.TotalPages != 3 || result.Pagination.Count != 11 {
		t.Fatalf("unexpected meta: %+v", result.Pagination)
	}
}
