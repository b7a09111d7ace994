package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaughan-dsouza/userfront/internal/models"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func testUser() models.User {
	return models.User{ID: 42, UUID: uuid.New(), Email: "u@example.com"}
}

func TestIssue_PayloadAndExpiry(t *testing.T) {
	key := newKey(t)
	issuer := NewTokenIssuer(key, "userfront", 30*24*time.Hour)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	u := testUser()
	tok, exp, err := issuer.Issue(u)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour).Unix(), exp)

	parsed, err := jwt.Parse(tok, func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil },
		jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)
	assert.Equal(t, "RS256", parsed.Method.Alg())

	m := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), m["userId"])
	assert.Equal(t, u.UUID.String(), m["userUuid"])
	assert.Equal(t, "userfront", m["iss"])
}

func TestVerify_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(newKey(t), "userfront", time.Hour)
	u := testUser()

	tok, _, err := issuer.Issue(u)
	require.NoError(t, err)

	claims, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.UUID.String(), claims.UserUUID)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer(newKey(t), "userfront", time.Hour)
	start := time.Now()
	issuer.now = func() time.Time { return start }

	tok, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongKey(t *testing.T) {
	a := NewTokenIssuer(newKey(t), "userfront", time.Hour)
	b := NewTokenIssuer(newKey(t), "userfront", time.Hour)

	tok, _, err := a.Issue(testUser())
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerify_WrongIssuer(t *testing.T) {
	key := newKey(t)
	a := NewTokenIssuer(key, "someone-else", time.Hour)
	b := NewTokenIssuer(key, "userfront", time.Hour)

	tok, _, err := a.Issue(testUser())
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestVerify_RejectsHS256(t *testing.T) {
	issuer := NewTokenIssuer(newKey(t), "userfront", time.Hour)

	claims := AccessClaims{
		UserID:   1,
		UserUUID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "userfront",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.Error(t, err)
}

func TestIssue_NoKey(t *testing.T) {
	_, _, err := NewTokenIssuer(nil, "userfront", time.Hour).Issue(testUser())
	assert.Error(t, err)
}
