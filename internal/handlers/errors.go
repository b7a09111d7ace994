package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/userfront/internal/models"
	"github.com/vaughan-dsouza/userfront/internal/store"
	"github.com/vaughan-dsouza/userfront/internal/users"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

// writeError maps domain errors to status codes. Anything unrecognised is an
// infrastructure failure: logged, and answered with a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError

	switch {
	case errors.Is(err, users.ErrPermissionDenied):
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("permission denied")
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, store.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, store.ErrRoleNotFound):
		utils.JSONError(w, http.StatusNotFound, "role not found")
	case errors.Is(err, store.ErrEmailTaken):
		utils.JSONError(w, http.StatusConflict, "email already exists")
	case errors.As(err, &verr):
		utils.JSONError(w, http.StatusBadRequest, verr.Message)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
	}
}
