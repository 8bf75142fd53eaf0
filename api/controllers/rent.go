package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/transportly/transportly-backend/api/responses"
	"github.com/transportly/transportly-backend/api/validators"
	rentsvc "github.com/transportly/transportly-backend/internal/rents"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
)

type createRentRequest struct {
	TransportID string     `json:"transportId" validate:"required,uuid"`
	FromDate    *time.Time `json:"fromDate,omitempty"`
	ToDate      *time.Time `json:"toDate,omitempty"`
}

// TransportID is accepted because clients echo the full rent body back,
// but the transport binding is immutable once the rent exists.
type updateRentRequest struct {
	TransportID *string    `json:"transportId,omitempty" validate:"omitempty,uuid"`
	FromDate    *time.Time `json:"fromDate,omitempty"`
	ToDate      *time.Time `json:"toDate,omitempty"`
	StoppedAt   *time.Time `json:"stoppedAt,omitempty"`
}

// RentCreate starts a rent for the caller, claiming the transport.
func RentCreate(svc rentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rent service unavailable"))
			return
		}

		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createRentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transportID, err := uuid.Parse(body.TransportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transport id"))
			return
		}

		rent, err := svc.Create(r.Context(), userID, rentsvc.CreateInput{
			TransportID: transportID,
			FromDate:    body.FromDate,
			ToDate:      body.ToDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, rent)
	}
}

// RentUpdate edits a rent's dates; setting stoppedAt ends it.
func RentUpdate(svc rentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rent service unavailable"))
			return
		}

		rentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rent id"))
			return
		}

		var body updateRentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rent, err := svc.Update(r.Context(), rentID, rentsvc.UpdateInput{
			FromDate:  body.FromDate,
			ToDate:    body.ToDate,
			StoppedAt: body.StoppedAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rent)
	}
}

// RentList pages through the caller's rent history.
func RentList(svc rentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rent service unavailable"))
			return
		}

		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parsePaginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RentActive returns the caller's running rent for a transport, or null
// data when there is none.
func RentActive(svc rentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rent service unavailable"))
			return
		}

		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transportID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transport id"))
			return
		}

		rent, err := svc.ActiveForTransport(r.Context(), userID, transportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rent)
	}
}
