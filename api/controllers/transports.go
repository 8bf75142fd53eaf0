package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transportly/transportly-backend/api/responses"
	"github.com/transportly/transportly-backend/api/validators"
	transportsvc "github.com/transportly/transportly-backend/internal/transports"
	"github.com/transportly/transportly-backend/pkg/enums"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
	"github.com/transportly/transportly-backend/pkg/pagination"
)

type createTransportRequest struct {
	Title       string          `json:"title" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Type        string          `json:"type" validate:"required"`
	Description *string         `json:"description,omitempty"`
	MaxSpeed    *int            `json:"maxSpeed,omitempty" validate:"omitempty,min=0"`
	Weight      *float64        `json:"weight,omitempty" validate:"omitempty,min=0"`
	Seats       *int            `json:"seats,omitempty" validate:"omitempty,min=0"`
	Power       *int            `json:"power,omitempty" validate:"omitempty,min=0"`
	Color       *string         `json:"color,omitempty"`
	LicenceType *string         `json:"licenceType,omitempty"`
	ImageID     *string         `json:"imageId,omitempty" validate:"omitempty,uuid"`
}

type updateTransportRequest struct {
	Title       *string          `json:"title,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Description *string          `json:"description,omitempty"`
	MaxSpeed    *int             `json:"maxSpeed,omitempty" validate:"omitempty,min=0"`
	Weight      *float64         `json:"weight,omitempty" validate:"omitempty,min=0"`
	Seats       *int             `json:"seats,omitempty" validate:"omitempty,min=0"`
	Power       *int             `json:"power,omitempty" validate:"omitempty,min=0"`
	Color       *string          `json:"color,omitempty"`
	LicenceType *string          `json:"licenceType,omitempty"`
	ImageID     *string          `json:"imageId,omitempty" validate:"omitempty,uuid"`
}

// TransportList serves the public catalog with filters and pagination.
func TransportList(svc transportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transport service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TransportGet serves a single public listing.
func TransportGet(svc transportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transport service unavailable"))
			return
		}

		transportID, err := uuid.Parse(chi.URLParam(r, "transportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transport id"))
			return
		}

		transport, err := svc.Get(r.Context(), transportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transport)
	}
}

// TransportCreate handles catalog additions.
func TransportCreate(svc transportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transport service unavailable"))
			return
		}

		var body createTransportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transport, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transport)
	}
}

// TransportUpdate merges the provided fields into a listing.
func TransportUpdate(svc transportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transport service unavailable"))
			return
		}

		transportID, err := uuid.Parse(chi.URLParam(r, "transportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transport id"))
			return
		}

		var body updateTransportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transport, err := svc.Update(r.Context(), transportID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transport)
	}
}

// TransportDelete removes a listing and its image.
func TransportDelete(svc transportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transport service unavailable"))
			return
		}

		transportID, err := uuid.Parse(chi.URLParam(r, "transportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transport id"))
			return
		}

		if err := svc.Delete(r.Context(), transportID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseListInput(r *http.Request) (transportsvc.ListInput, error) {
	params, err := parsePaginationParams(r)
	if err != nil {
		return transportsvc.ListInput{}, err
	}

	var filter transportsvc.ListFilter
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		filter.Search = &search
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		kind, err := enums.ParseTransportType(raw)
		if err != nil {
			return transportsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type")
		}
		filter.Type = &kind
	}
	if color := strings.TrimSpace(r.URL.Query().Get("color")); color != "" {
		filter.Color = &color
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("licenceType")); raw != "" {
		licence, err := enums.ParseLicenceType(raw)
		if err != nil {
			return transportsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid licence type")
		}
		filter.LicenceType = &licence
	}

	if filter.MaxSpeed, err = validators.ParseQueryFloat(r, "maxSpeed"); err != nil {
		return transportsvc.ListInput{}, err
	}
	if filter.PriceRange, err = validators.ParseQueryRange(r, "priceRange"); err != nil {
		return transportsvc.ListInput{}, err
	}
	if filter.PowerRange, err = validators.ParseQueryRange(r, "powerRange"); err != nil {
		return transportsvc.ListInput{}, err
	}

	return transportsvc.ListInput{Filter: filter, Params: params}, nil
}

func parsePaginationParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, math.MinInt32, math.MaxInt32)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Page:      page,
		Limit:     limit,
		SortKey:   strings.TrimSpace(r.URL.Query().Get("sortKey")),
		SortOrder: pagination.SortOrder(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("sortOrder")))),
	}, nil
}

func (req createTransportRequest) toCreateInput() (transportsvc.CreateInput, error) {
	kind, err := enums.ParseTransportType(strings.TrimSpace(req.Type))
	if err != nil {
		return transportsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type")
	}

	input := transportsvc.CreateInput{
		Title:       req.Title,
		Price:       req.Price,
		Type:        kind,
		Description: req.Description,
		MaxSpeed:    req.MaxSpeed,
		Weight:      req.Weight,
		Seats:       req.Seats,
		Power:       req.Power,
		Color:       req.Color,
	}
	if req.LicenceType != nil {
		licence, err := enums.ParseLicenceType(strings.TrimSpace(*req.LicenceType))
		if err != nil {
			return transportsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid licence type")
		}
		input.LicenceType = &licence
	}
	if req.ImageID != nil {
		imageID, err := uuid.Parse(*req.ImageID)
		if err != nil {
			return transportsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image id")
		}
		input.ImageID = &imageID
	}
	return input, nil
}

func (req updateTransportRequest) toUpdateInput() (transportsvc.UpdateInput, error) {
	input := transportsvc.UpdateInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		MaxSpeed:    req.MaxSpeed,
		Weight:      req.Weight,
		Seats:       req.Seats,
		Power:       req.Power,
		Color:       req.Color,
	}
	if req.Type != nil {
		kind, err := enums.ParseTransportType(strings.TrimSpace(*req.Type))
		if err != nil {
			return transportsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type")
		}
		input.Type = &kind
	}
	if req.LicenceType != nil {
		licence, err := enums.ParseLicenceType(strings.TrimSpace(*req.LicenceType))
		if err != nil {
			return transportsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid licence type")
		}
		input.LicenceType = &licence
	}
	if req.ImageID != nil {
		imageID, err := uuid.Parse(*req.ImageID)
		if err != nil {
			return transportsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image id")
		}
		input.ImageID = &imageID
	}
	return input, nil
}
