package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/staybnb/staybnb-backend/api/middleware"
	"github.com/staybnb/staybnb-backend/api/responses"
	"github.com/staybnb/staybnb-backend/api/validators"
	wishlistsvc "github.com/staybnb/staybnb-backend/internal/wishlists"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

// ListWishlists returns wishlists scoped to the caller.
func ListWishlists(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		filter := wishlistsvc.Filter{UserID: strings.TrimSpace(r.URL.Query().Get("userId"))}
		wishlists, err := svc.Query(r.Context(), middleware.CallerFromContext(r.Context()), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlists)
	}
}

// GetWishlist returns a single wishlist by id.
func GetWishlist(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		wishlist, err := svc.GetByID(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlist)
	}
}

// CreateWishlist creates a wishlist owned by the caller.
func CreateWishlist(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var draft wishlistsvc.Draft
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishlist, err := svc.Add(r.Context(), middleware.CallerFromContext(r.Context()), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, wishlist)
	}
}

// UpdateWishlist rewrites the mutable fields of a wishlist.
func UpdateWishlist(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var input wishlistsvc.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ID = chi.URLParam(r, "id")

		wishlist, err := svc.Update(r.Context(), middleware.CallerFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlist)
	}
}

// DeleteWishlist removes a wishlist owned by the caller.
func DeleteWishlist(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
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

type addWishlistStayRequest struct {
	StayID string `json:"stayId" validate:"required"`
}

// AddWishlistStay puts a stay on a wishlist.
func AddWishlistStay(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload addWishlistStayRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishlist, err := svc.AddStay(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"), payload.StayID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlist)
	}
}

// DeleteWishlistStay takes a stay off a wishlist.
func DeleteWishlistStay(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		wishlist, err := svc.RemoveStay(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "stayId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlist)
	}
}
