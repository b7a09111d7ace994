package middleware

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaughan-dsouza/userfront/internal/models"
	"github.com/vaughan-dsouza/userfront/internal/store"
	"github.com/vaughan-dsouza/userfront/internal/utils"
)

type authFixture struct {
	store   *store.MemoryStore
	issuer  *utils.TokenIssuer
	user    models.User
	handler http.Handler
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	s := store.NewMemoryStore("admin")
	u, err := s.CreateUser(context.Background(), "caller@example.com", "hash")
	require.NoError(t, err)

	issuer := utils.NewTokenIssuer(key, "userfront", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := utils.UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]int64{"id": caller.ID})
	})

	return &authFixture{store: s, issuer: issuer, user: u, handler: Auth(issuer, s)(next)}
}

func (f *authFixture) do(authHeader string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/users/self", nil)
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, r)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	f := newAuthFixture(t)
	tok, _, err := f.issuer.Issue(f.user)
	require.NoError(t, err)

	w := f.do("Bearer " + tok)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestAuth_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	good, _, err := f.issuer.Issue(f.user)
	require.NoError(t, err)

	ghost, _, err := f.issuer.Issue(models.User{ID: 99, UUID: uuid.New()})
	require.NoError(t, err)

	forged, _, err := f.issuer.Issue(models.User{ID: f.user.ID, UUID: uuid.New()})
	require.NoError(t, err)

	tests := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic " + good,
		"empty token":     "Bearer   ",
		"garbage token":   "Bearer not.a.jwt",
		"unknown user":    "Bearer " + ghost,
		"uuid mismatch":   "Bearer " + forged,
		"no scheme split": good,
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			w := f.do(header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		})
	}
}

func TestAuth_StorageFailureIs500(t *testing.T) {
	f := newAuthFixture(t)
	tok, _, err := f.issuer.Issue(f.user)
	require.NoError(t, err)

	f.store.SetErr(errors.New("db down"))
	w := f.do("Bearer " + tok)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestLogger_WritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger(base))
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	out := buf.String()
	assert.Contains(t, out, `"message":"inside"`)
	assert.Contains(t, out, `"status":204`)
	assert.Contains(t, out, `"path":"/ping"`)
	assert.Contains(t, out, `"request_id":`)
}
