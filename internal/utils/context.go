package utils

import (
	"context"

	"github.com/vaughan-dsouza/userfront/internal/models"
)

// context key
type ctxKey string

const CtxUserKey ctxKey = "user"

func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, CtxUserKey, u)
}

// UserFromContext returns the caller resolved by the auth middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(CtxUserKey).(models.User)
	return u, ok
}
