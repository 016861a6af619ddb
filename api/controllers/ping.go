package controllers

import (
	"net/http"

	"github.com/staybnb/staybnb-backend/api/middleware"
	"github.com/staybnb/staybnb-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if caller := middleware.CallerFromContext(r.Context()); !caller.IsZero() {
			payload["user_id"] = caller.ID.Hex()
		}
		responses.WriteSuccess(w, payload)
	}
}
