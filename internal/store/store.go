package store

import (
	"context"
	"errors"

	"github.com/vaughan-dsouza/userfront/internal/models"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
	ErrEmailTaken   = errors.New("email already exists")
)

// Store is the storage port. PostgresStore is the production implementation
// and MemoryStore backs tests.
type Store interface {
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindRoleNamesForUser(ctx context.Context, userID int64) ([]string, error)
	FindAdminRoleAssociation(ctx context.Context, userID int64) (bool, error)

	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	AssignRole(ctx context.Context, userID int64, role string) error
	RevokeRole(ctx context.Context, userID int64, role string) error

	Ping(ctx context.Context) error
}
