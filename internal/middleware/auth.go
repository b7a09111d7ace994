package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/userfront/internal/models"
	"github.com/vaughan-dsouza/userfront/internal/store"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

type TokenVerifier interface {
	Verify(token string) (*utils.AccessClaims, error)
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id int64) (models.User, error)
}

// Auth verifies the bearer token, loads the caller and stores it in the
// request context. The token's userUuid must match the stored user.
func Auth(verifier TokenVerifier, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := zerolog.Ctx(r.Context())

			token, ok := bearerToken(r)
			if !ok {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Debug().Err(err).Msg("rejected access token")
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := users.FindUserByID(r.Context(), claims.UserID)
			if errors.Is(err, store.ErrNotFound) {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if err != nil {
				log.Error().Err(err).Int64("user_id", claims.UserID).Msg("resolve caller")
				utils.JSONError(w, http.StatusInternalServerError, "internal error")
				return
			}

			if user.UUID.String() != claims.UserUUID {
				log.Debug().Int64("user_id", claims.UserID).Msg("token uuid mismatch")
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := utils.WithUser(r.Context(), user)
			l := log.With().Int64("user_id", user.ID).Logger()
			ctx = l.WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
