package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vaughan-dsouza/userfront/internal/users"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

// selfAlias in the path means the authenticated caller.
const selfAlias = "self"

type UserHandler struct {
	Users *users.Service
}

func NewUserHandler(svc *users.Service) *UserHandler {
	return &UserHandler{Users: svc}
}

// ---------------------- GET ----------------------

// GetUser serves GET /users, /users/self and /users/{userID}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.UserFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	targetID, ok := targetUserID(w, r, caller.ID)
	if !ok {
		return
	}

	view, err := h.Users.ReadWithPermission(r.Context(), caller.ID, targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, view)
}

// ---------------------- ROLES ----------------------

func (h *UserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	h.changeRole(w, r, true)
}

func (h *UserHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	h.changeRole(w, r, false)
}

func (h *UserHandler) changeRole(w http.ResponseWriter, r *http.Request, grant bool) {
	caller, ok := utils.UserFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	targetID, ok := targetUserID(w, r, caller.ID)
	if !ok {
		return
	}

	if err := h.Users.ChangeRole(r.Context(), caller.ID, targetID, chi.URLParam(r, "role"), grant); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// targetUserID resolves the {userID} path value. Empty or "self" is the caller.
func targetUserID(w http.ResponseWriter, r *http.Request, callerID int64) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	if raw == "" || raw == selfAlias {
		return callerID, true
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.JSONError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}
