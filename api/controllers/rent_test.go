package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/transportly/transportly-backend/api/middleware"
	rentsvc "github.com/transportly/transportly-backend/internal/rents"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

type stubRentService struct {
	rent   *rentsvc.RentDTO
	list   *rentsvc.ListResult
	active *rentsvc.RentDTO
	err    error

	lastUserID      uuid.UUID
	lastTransportID uuid.UUID
	lastCreate      rentsvc.CreateInput
	lastUpdateID    uuid.UUID
}

func (s *stubRentService) Create(ctx context.Context, userID uuid.UUID, input rentsvc.CreateInput) (*rentsvc.RentDTO, error) {
	s.lastUserID = userID
	s.lastCreate = input
	return s.rent, s.err
}

func (s *stubRentService) Update(ctx context.Context, id uuid.UUID, input rentsvc.UpdateInput) (*rentsvc.RentDTO, error) {
	s.lastUpdateID = id
	return s.rent, s.err
}

func (s *stubRentService) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*rentsvc.ListResult, error) {
	s.lastUserID = userID
	return s.list, s.err
}

func (s *stubRentService) ActiveForTransport(ctx context.Context, userID, transportID uuid.UUID) (*rentsvc.RentDTO, error) {
	s.lastUserID = userID
	s.lastTransportID = transportID
	return s.active, s.err
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestRentCreateClaimsForCaller(t *testing.T) {
	userID := uuid.New()
	transportID := uuid.New()
	svc := &stubRentService{rent: &rentsvc.RentDTO{ID: uuid.New(), UserID: userID, TransportID: transportID}}
	handler := RentCreate(svc, nil)

	body := []byte(`{"transportId":"` + transportID.String() + `"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/rent", body, userID))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastUserID != userID {
		t.Fatalf("expected caller id %s got %s", userID, svc.lastUserID)
	}
	if svc.lastCreate.TransportID != transportID {
		t.Fatalf("expected transport id %s got %s", transportID, svc.lastCreate.TransportID)
	}
}

func TestRentCreateWithoutUserContext(t *testing.T) {
	handler := RentCreate(&stubRentService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/rent", bytes.NewReader([]byte(`{"transportId":"`+uuid.NewString()+`"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user context got %d", resp.Code)
	}
}

func TestRentCreateSurfacesConflict(t *testing.T) {
	svc := &stubRentService{err: pkgerrors.New(pkgerrors.CodeConflict, "transport already rented")}
	handler := RentCreate(svc, nil)

	body := []byte(`{"transportId":"` + uuid.NewString() + `"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/rent", body, uuid.New()))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestRentUpdateParsesRouteID(t *testing.T) {
	rentID := uuid.New()
	svc := &stubRentService{rent: &rentsvc.RentDTO{ID: rentID}}

	router := chi.NewRouter()
	router.Put("/api/rent/{id}", RentUpdate(svc, nil))

	body := []byte(`{"stoppedAt":"2026-09-01T12:00:00Z"}`)
	req := authedRequest(http.MethodPut, "/api/rent/"+rentID.String(), body, uuid.New())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastUpdateID != rentID {
		t.Fatalf("expected rent id %s got %s", rentID, svc.lastUpdateID)
	}
}

func TestRentUpdateRejectsBadID(t *testing.T) {
	router := chi.NewRouter()
	router.Put("/api/rent/{id}", RentUpdate(&stubRentService{}, nil))

	req := authedRequest(http.MethodPut, "/api/rent/not-a-uuid", []byte(`{}`), uuid.New())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRentActiveReturnsNullWithoutRent(t *testing.T) {
	svc := &stubRentService{}

	router := chi.NewRouter()
	router.Get("/api/rent/{id}", RentActive(svc, nil))

	req := authedRequest(http.MethodGet, "/api/rent/"+uuid.NewString(), nil, uuid.New())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(envelope.Data) != "null" {
		t.Fatalf("expected null data got %s", envelope.Data)
	}
}

func TestRentListForwardsPagination(t *testing.T) {
	userID := uuid.New()
	svc := &stubRentService{list: &rentsvc.ListResult{
		Items:      []rentsvc.RentDTO{},
		Pagination: pagination.Meta{Count: 0, Limit: 5, Page: 2},
	}}
	handler := RentList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/rent?page=2&limit=5&sortKey=fromDate&sortOrder=desc", nil, userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastUserID != userID {
		t.Fatalf("expected caller id %s got %s", userID, svc.lastUserID)
	}
}
