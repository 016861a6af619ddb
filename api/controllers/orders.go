package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/staybnb/staybnb-backend/api/middleware"
	"github.com/staybnb/staybnb-backend/api/responses"
	"github.com/staybnb/staybnb-backend/api/validators"
	ordersvc "github.com/staybnb/staybnb-backend/internal/orders"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

// ListOrders returns the caller's bookings, filtered.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		filter, err := orderFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.Query(r.Context(), middleware.CallerFromContext(r.Context()), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// GetOrder returns a single booking the caller takes part in.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		order, err := svc.GetByID(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// CreateOrder books a stay for the caller.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var draft ordersvc.Draft
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Add(r.Context(), middleware.CallerFromContext(r.Context()), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// UpdateOrder replaces the mutable fields of a booking.
func UpdateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var input ordersvc.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ID = chi.URLParam(r, "id")

		order, err := svc.Update(r.Context(), middleware.CallerFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// DeleteOrder cancels a booking made by the caller.
func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
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

func orderFilterFromQuery(r *http.Request) (ordersvc.Filter, error) {
	priceMin, err := validators.ParseQueryFloat(r, "totalPriceMin", 0)
	if err != nil {
		return ordersvc.Filter{}, err
	}
	priceMax, err := validators.ParseQueryFloat(r, "totalPriceMax", 0)
	if err != nil {
		return ordersvc.Filter{}, err
	}

	q := r.URL.Query()
	return ordersvc.Filter{
		HostID:        strings.TrimSpace(q.Get("hostId")),
		GuestID:       strings.TrimSpace(q.Get("guestId")),
		StayID:        strings.TrimSpace(q.Get("stayId")),
		Status:        strings.TrimSpace(q.Get("status")),
		TotalPriceMin: priceMin,
		TotalPriceMax: priceMax,
		StartDate:     strings.TrimSpace(q.Get("startDate")),
		EndDate:       strings.TrimSpace(q.Get("endDate")),
	}, nil
}
