package handlers

import (
	"github.com/vaughan-dsouza/userfront/internal/store"
	"github.com/vaughan-dsouza/userfront/internal/users"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

type Handler struct {
	Store  store.Store
	Auth   *AuthHandler
	Users  *UserHandler
	Health *HealthHandler
}

func NewHandler(s store.Store, issuer *utils.TokenIssuer) *Handler {
	return &Handler{
		Store:  s,
		Auth:   NewAuthHandler(s, issuer),
		Users:  NewUserHandler(users.NewService(s)),
		Health: &HealthHandler{Store: s},
	}
}
