package rents

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transportly/transportly-backend/pkg/config"
	"github.com/transportly/transportly-backend/pkg/db/models"
	"github.com/transportly/transportly-backend/pkg/enums"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

type stubRentRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*models.Rent
	created   []*models.Rent
	createErr error
	updated   *models.Rent
	rows      []models.Rent
	count     int64
	active    *models.Rent
}

func newStubRentRepo() *stubRentRepo {
	return &stubRentRepo{byID: make(map[uuid.UUID]*models.Rent)}
}

func (s *stubRentRepo) Create(ctx context.Context, rent *models.Rent) (*models.Rent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	rent.ID = uuid.New()
	s.byID[rent.ID] = rent
	s.created = append(s.created, rent)
	return rent, nil
}

func (s *stubRentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Rent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rent, ok := s.byID[id]; ok {
		return rent, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRentRepo) Update(ctx context.Context, rent *models.Rent) (*models.Rent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = rent
	return rent, nil
}

func (s *stubRentRepo) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Rent, int64, error) {
	return s.rows, s.count, nil
}

func (s *stubRentRepo) FindActive(ctx context.Context, userID, transportID uuid.UUID) (*models.Rent, error) {
	return s.active, nil
}

type stubTransportClaimer struct {
	mu        sync.Mutex
	transport *models.Transport
	status    enums.TransportStatus
	released  int
}

func newStubTransportClaimer(transport *models.Transport) *stubTransportClaimer {
	return &stubTransportClaimer{transport: transport, status: enums.TransportStatusFree}
}

func (s *stubTransportClaimer) FindByID(ctx context.Context, id uuid.UUID) (*models.Transport, error) {
	if s.transport == nil || s.transport.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.transport, nil
}

func (s *stubTransportClaimer) ClaimForRent(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != enums.TransportStatusFree {
		return false, nil
	}
	s.status = enums.TransportStatusInRent
	return true, nil
}

func (s *stubTransportClaimer) Release(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = enums.TransportStatusFree
	s.released++
	return nil
}

func buildService(t *testing.T, repo *stubRentRepo, claimer *stubTransportClaimer) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:          repo,
		TransportRepo: claimer,
		Media:         config.MediaConfig{PublicBaseURL: "https://media.transportly.dev"},
		Logger:        logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func testTransport() *models.Transport {
	return &models.Transport{
		ID:     uuid.New(),
		Title:  "Contested Car",
		Status: enums.TransportStatusFree,
		Description: models.TransportDescription{
			Type: enums.TransportTypeCar,
		},
	}
}

func TestCreateClaimsTransport(t *testing.T) {
	transport := testTransport()
	repo := newStubRentRepo()
	claimer := newStubTransportClaimer(transport)
	svc := buildService(t, repo, claimer)

	dto, err := svc.Create(context.Background(), uuid.New(), CreateInput{TransportID: transport.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.FromDate.IsZero() {
		t.Fatalf("expected fromDate to default to now")
	}
	if claimer.status != enums.TransportStatusInRent {
		t.Fatalf("expected transport claimed, got %s", claimer.status)
	}
}

func TestCreateMissingTransportIsNotFound(t *testing.T) {
	svc := buildService(t, newStubRentRepo(), newStubTransportClaimer(nil))

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{TransportID: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateRaceHasSingleWinner(t *testing.T) {
	transport := testTransport()
	repo := newStubRentRepo()
	claimer := newStubTransportClaimer(transport)
	svc := buildService(t, repo, claimer)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), uuid.New(), CreateInput{TransportID: transport.ID})
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			conflicts++
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner and one conflict, got wins=%d conflicts=%d errs=%v", wins, conflicts, errs)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected a single rent row, got %d", len(repo.created))
	}
}

func TestCreateCompensatesFailedInsert(t *testing.T) {
	transport := testTransport()
	repo := newStubRentRepo()
	repo.createErr = fmt.Errorf("insert failed")
	claimer := newStubTransportClaimer(transport)
	svc := buildService(t, repo, claimer)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{TransportID: transport.ID})
	if err == nil {
		t.Fatalf("expected error when insert fails")
	}
	if claimer.status != enums.TransportStatusFree {
		t.Fatalf("expected status flip compensated, got %s", claimer.status)
	}
	if claimer.released != 1 {
		t.Fatalf("expected one release, got %d", claimer.released)
	}
}

func TestUpdateStoppingFreesTransport(t *testing.T) {
	transport := testTransport()
	repo := newStubRentRepo()
	claimer := newStubTransportClaimer(transport)
	claimer.status = enums.TransportStatusInRent

	rent := &models.Rent{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TransportID: transport.ID,
		FromDate:    time.Now().UTC().Add(-time.Hour),
	}
	repo.byID[rent.ID] = rent
	svc := buildService(t, repo, claimer)

	stoppedAt := time.Now().UTC()
	dto, err := svc.Update(context.Background(), rent.ID, UpdateInput{StoppedAt: &stoppedAt})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.StoppedAt == nil {
		t.Fatalf("expected stoppedAt persisted")
	}
	if claimer.status != enums.TransportStatusFree {
		t.Fatalf("expected transport freed, got %s", claimer.status)
	}
	if repo.updated == nil {
		t.Fatalf("expected merged rent persisted")
	}
}

func TestUpdateAlwaysPersistsEvenWithoutChanges(t *testing.T) {
	transport := testTransport()
	repo := newStubRentRepo()
	rent := &models.Rent{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TransportID: transport.ID,
		FromDate:    time.Now().UTC(),
	}
	repo.byID[rent.ID] = rent
	svc := buildService(t, repo, newStubTransportClaimer(transport))

	if _, err := svc.Update(context.Background(), rent.ID, UpdateInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.updated == nil {
		t.Fatalf("expected rent persisted even with no field changes")
	}
}

func TestUpdateRejectsInvertedDates(t *testing.T) {
	transport := testTransport()
	repo := newStubRentRepo()
	rent := &models.Rent{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TransportID: transport.ID,
		FromDate:    time.Now().UTC(),
	}
	repo.byID[rent.ID] = rent
	svc := buildService(t, repo, newStubTransportClaimer(transport))

	toDate := rent.FromDate.Add(-time.Hour)
	_, err := svc.Update(context.Background(), rent.ID, UpdateInput{ToDate: &toDate})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestActiveForTransportReturnsNilWithoutError(t *testing.T) {
	svc := buildService(t, newStubRentRepo(), newStubTransportClaimer(testTransport()))

	dto, err := svc.ActiveForTransport(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("active lookup: %v", err)
	}
	if dto != nil {
		t.Fatalf("expected nil rent, got %+v", dto)
	}
}

func TestListBuildsMetaAndRewritesImages(t *testing.T) {
	transport := testTransport()
	imageID := uuid.New()
	transport.ImageID = &imageID
	transport.Image = &models.File{ID: imageID, FileSrc: "uploads/t/car.png"}

	repo := newStubRentRepo()
	repo.rows = []models.Rent{{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TransportID: transport.ID,
		FromDate:    time.Now().UTC(),
		Transport:   transport,
	}}
	repo.count = 6
	svc := buildService(t, repo, newStubTransportClaimer(transport))

	result, err := svc.List(context.Background(), uuid.New(), pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one item")
	}
	item := result.Items[0]
	if item.Transport == nil || item.Transport.Image == nil {
		t.Fatalf("expected transport and image populated")
	}
	if item.Transport.Image.FileSrc != "https://media.transportly.dev/uploads/t/car.png" {
		t.Fatalf("expected rewritten image url, got %q", item.Transport.Image.FileSrc)
	}
	if result.Pagination.TotalPages != 1 || result.Pagination.Count != 6 {
		t.Fatalf("unexpected meta: %+v", result.Pagination)
	}
}
