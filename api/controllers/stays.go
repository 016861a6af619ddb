package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/staybnb/staybnb-backend/api/middleware"
	"github.com/staybnb/staybnb-backend/api/responses"
	"github.com/staybnb/staybnb-backend/api/validators"
	staysvc "github.com/staybnb/staybnb-backend/internal/stays"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

// ListStays handles the public stay listing with filters, sort and paging.
func ListStays(svc staysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stay service unavailable"))
			return
		}

		filter, err := stayFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stays, err := svc.Query(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stays)
	}
}

// GetStay returns a single stay by id.
func GetStay(svc staysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stay service unavailable"))
			return
		}

		stay, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stay)
	}
}

// CreateStay handles stay creation for the signed-in host.
func CreateStay(svc staysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stay service unavailable"))
			return
		}

		var draft staysvc.Draft
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stay, err := svc.Add(r.Context(), middleware.CallerFromContext(r.Context()), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, stay)
	}
}

// UpdateStay replaces the mutable fields of a stay.
func UpdateStay(svc staysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stay service unavailable"))
			return
		}

		var input staysvc.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ID = chi.URLParam(r, "id")

		stay, err := svc.Update(r.Context(), middleware.CallerFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stay)
	}
}

// DeleteStay removes a stay owned by the caller.
func DeleteStay(svc staysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stay service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")
		if err := svc.Remove(r.Context(), middleware.CallerFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"removedId": id})
	}
}

type addReviewRequest struct {
	Txt string `json:"txt" validate:"required"`
}

// AddStayReview appends a review authored by the caller.
func AddStayReview(svc staysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stay service unavailable"))
			return
		}

		var payload addReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.AddReview(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"), payload.Txt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// DeleteStayReview removes a review authored by the caller.
func DeleteStayReview(svc staysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stay service unavailable"))
			return
		}

		reviewID := chi.URLParam(r, "reviewId")
		err := svc.RemoveReview(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"), reviewID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"removedId": reviewID})
	}
}

func stayFilterFromQuery(r *http.Request) (staysvc.Filter, error) {
	minPrice, err := validators.ParseQueryFloat(r, "minPrice", 0)
	if err != nil {
		return staysvc.Filter{}, err
	}
	guests, err := validators.ParseQueryInt(r, "guests", 0, 0, 100)
	if err != nil {
		return staysvc.Filter{}, err
	}
	sortDir, err := validators.ParseQueryInt(r, "sortDir", 1, -1, 1)
	if err != nil {
		return staysvc.Filter{}, err
	}
	pageIdx, err := validators.ParseQueryIntPtr(r, "pageIdx", 0, 10000)
	if err != nil {
		return staysvc.Filter{}, err
	}

	q := r.URL.Query()
	return staysvc.Filter{
		Txt:       strings.TrimSpace(q.Get("txt")),
		MinPrice:  minPrice,
		Type:      strings.TrimSpace(q.Get("type")),
		City:      strings.TrimSpace(q.Get("city")),
		Guests:    guests,
		SortField: strings.TrimSpace(q.Get("sortField")),
		SortDir:   sortDir,
		PageIdx:   pageIdx,
	}, nil
}
