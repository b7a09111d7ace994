package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com"}`))
	w := httptest.NewRecorder()
	require.NoError(t, DecodeJSON(w, r, &body))
	assert.Equal(t, "a@example.com", body.Email)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com","admin":true}`))
	w = httptest.NewRecorder()
	assert.Error(t, DecodeJSON(w, r, &body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON")

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	w = httptest.NewRecorder()
	assert.Error(t, DecodeJSON(w, r, &body))
	assert.Contains(t, w.Body.String(), "empty request body")
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusUnauthorized, "unauthorized")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}
