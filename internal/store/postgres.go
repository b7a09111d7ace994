package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/userfront/internal/db"
	"github.com/vaughan-dsouza/userfront/internal/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostgresStore struct {
	DB        *sqlx.DB
	adminRole string
}

func NewPostgresStore(conn *sqlx.DB, adminRole string) *PostgresStore {
	return &PostgresStore{DB: conn, adminRole: adminRole}
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `
		SELECT id, uuid, email, password_hash, created_at, updated_at
		FROM users
		WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: find user %d: %w", id, err)
	}
	return u, nil
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `
		SELECT id, uuid, email, password_hash, created_at, updated_at
		FROM users
		WHERE email=$1
	`, models.NormalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: find user by email: %w", err)
	}
	return u, nil
}

// FindRoleNamesForUser returns distinct role names sorted by name.
func (s *PostgresStore) FindRoleNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	names := []string{}
	err := s.DB.SelectContext(ctx, &names, `
		SELECT DISTINCT r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id=$1
		ORDER BY r.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: roles for user %d: %w", userID, err)
	}
	return names, nil
}

func (s *PostgresStore) FindAdminRoleAssociation(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := s.DB.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id=$1 AND r.name=$2
		)
	`, userID, s.adminRole)
	if err != nil {
		return false, fmt.Errorf("store: admin lookup for user %d: %w", userID, err)
	}
	return exists, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	u := models.User{
		UUID:     uuid.New(),
		Email:    models.NormalizeEmail(email),
		Password: passwordHash,
	}

	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO users (uuid, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.UUID, u.Email, u.Password).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if isPgError(err, pgUniqueViolation) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: create user: %w", err)
	}
	return u, nil
}

// AssignRole is idempotent: assigning a role the user already holds is a no-op.
func (s *PostgresStore) AssignRole(ctx context.Context, userID int64, role string) error {
	roleID, err := s.roleID(ctx, role)
	if err != nil {
		return err
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, roleID)

	if isPgError(err, pgForeignKeyViolation) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: assign role %q to user %d: %w", role, userID, err)
	}
	return nil
}

func (s *PostgresStore) RevokeRole(ctx context.Context, userID int64, role string) error {
	roleID, err := s.roleID(ctx, role)
	if err != nil {
		return err
	}

	_, err = s.DB.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id=$1 AND role_id=$2`, userID, roleID)
	if err != nil {
		return fmt.Errorf("store: revoke role %q from user %d: %w", role, userID, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return db.Ping(ctx, s.DB)
}

func (s *PostgresStore) roleID(ctx context.Context, role string) (int64, error) {
	var id int64
	err := s.DB.GetContext(ctx, &id, `SELECT id FROM roles WHERE name=$1`, role)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRoleNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("store: role %q: %w", role, err)
	}
	return id, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
