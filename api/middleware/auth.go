package middleware

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staybnb/staybnb-backend/api/responses"
	"github.com/staybnb/staybnb-backend/internal/identity"
	pkgAuth "github.com/staybnb/staybnb-backend/pkg/auth"
	"github.com/staybnb/staybnb-backend/pkg/auth/session"
	"github.com/staybnb/staybnb-backend/pkg/config"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// resolved caller. Requests without a valid identity never reach the handler.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			caller, err := resolveCaller(r, cfg, verifier, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithCaller(r.Context(), caller)
			if logg != nil {
				ctx = logg.WithUserID(ctx, caller.ID.Hex())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the caller when a valid bearer token is present and
// lets the request through anonymously otherwise.
func OptionalAuth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := resolveCaller(r, cfg, verifier, token)
			if err != nil {
				// no credentials beats bad credentials on an open route
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithCaller(r.Context(), caller)
			if logg != nil {
				ctx = logg.WithUserID(ctx, caller.ID.Hex())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func resolveCaller(r *http.Request, cfg config.JWTConfig, verifier session.AccessSessionChecker, token string) (identity.Caller, error) {
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return identity.Caller{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return identity.Caller{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token subject")
	}

	if claims.ID == "" {
		return identity.Caller{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if verifier != nil {
		ok, err := verifier.HasSession(r.Context(), claims.ID)
		if err != nil {
			return identity.Caller{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if !ok {
			return identity.Caller{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
		}
	}

	return identity.Caller{
		ID:       userID,
		Fullname: claims.Fullname,
		ImgURL:   claims.ImgURL,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
