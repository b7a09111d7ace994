package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/userfront/internal/middleware"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

func NewRouter(h *Handler, issuer *utils.TokenIssuer, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	// Public
	r.Get("/healthz", h.Health.Healthz)
	r.Post("/signup", h.Auth.SignUp)
	r.Post("/login", h.Auth.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(issuer, h.Store))

		r.Get("/users", h.Users.GetUser)
		r.Get("/users/{userID}", h.Users.GetUser)
		r.Put("/users/{userID}/roles/{role}", h.Users.AssignRole)
		r.Delete("/users/{userID}/roles/{role}", h.Users.RevokeRole)
	})

	return r
}
