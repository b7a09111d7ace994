package handlers

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/userfront/internal/models"
	"github.com/vaughan-dsouza/userfront/internal/store"
	"github.com/vaughan-dsouza/userfront/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Store  store.Store
	Issuer *utils.TokenIssuer
}

func NewAuthHandler(s store.Store, issuer *utils.TokenIssuer) *AuthHandler {
	return &AuthHandler{Store: s, Issuer: issuer}
}

// ----------- Request/Response DTOs -------------

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// -------------- SIGN UP ----------------------

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	email := models.NormalizeEmail(req.Email)
	if err := models.ValidateEmail(email); err != nil {
		writeError(w, r, err)
		return
	}
	if err := models.ValidatePassword(req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Store.CreateUser(r.Context(), email, string(hash))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusCreated, models.NewUserView(u, nil))
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.Store.FindUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	access, exp, err := h.Issuer.Issue(u)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, tokenResp{
		AccessToken: access,
		ExpiresIn:   exp,
	})
}
