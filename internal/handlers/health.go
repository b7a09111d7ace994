package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/userfront/internal/store"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

type HealthHandler struct {
	Store store.Store
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		utils.JSONError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
