package utils

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vaughan-dsouza/userfront/internal/models"
)

// AccessClaims is the signed access-token payload.
type AccessClaims struct {
	UserID   int64  `json:"userId"`
	UserUUID string `json:"userUuid"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies RS256 access tokens. Tokens are never stored.
type TokenIssuer struct {
	key    *rsa.PrivateKey
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(key *rsa.PrivateKey, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: key, issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue returns the signed token and its expiry as a unix timestamp.
func (i *TokenIssuer) Issue(u models.User) (string, int64, error) {
	if i.key == nil {
		return "", 0, errors.New("signing key not configured")
	}

	now := i.now()
	expTime := now.Add(i.ttl)

	claims := AccessClaims{
		UserID:   u.ID,
		UserUUID: u.UUID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
	if err != nil {
		return "", 0, err
	}

	return signed, expTime.Unix(), nil
}

func (i *TokenIssuer) Verify(tokenStr string) (*AccessClaims, error) {
	if i.key == nil {
		return nil, errors.New("signing key not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	var claims AccessClaims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return &i.key.PublicKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims.UserID == 0 {
		return nil, errors.New("token missing userId")
	}
	if _, err := uuid.Parse(claims.UserUUID); err != nil {
		return nil, errors.New("token carries malformed userUuid")
	}

	return &claims, nil
}
