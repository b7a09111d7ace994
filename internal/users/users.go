// Package users decides who may read a profile and assembles the public view.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaughan-dsouza/userfront/internal/models"
	"golang.org/x/sync/errgroup"
)

var ErrPermissionDenied = errors.New("permission denied")

// Repository is the subset of the storage port the service reads from.
type Repository interface {
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindRoleNamesForUser(ctx context.Context, userID int64) ([]string, error)
	FindAdminRoleAssociation(ctx context.Context, userID int64) (bool, error)
}

// RoleWriter is implemented by stores that can change role assignments.
type RoleWriter interface {
	AssignRole(ctx context.Context, userID int64, role string) error
	RevokeRole(ctx context.Context, userID int64, role string) error
}

type Store interface {
	Repository
	RoleWriter
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// CanRead reports whether requesterID may read targetID. Self-reads are always
// allowed; otherwise the requester must hold the admin role. A missing admin
// association is a false result, not an error.
func (s *Service) CanRead(ctx context.Context, requesterID, targetID int64) (bool, error) {
	if requesterID == targetID {
		return true, nil
	}
	return s.IsAdmin(ctx, requesterID)
}

func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.repo.FindAdminRoleAssociation(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("users: admin check: %w", err)
	}
	return ok, nil
}

// Assemble loads the user row and its role names concurrently and merges them
// into the public view. Callers must have passed CanRead first.
func (s *Service) Assemble(ctx context.Context, targetID int64) (models.UserView, error) {
	var (
		user  models.User
		roles []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.repo.FindUserByID(gctx, targetID)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = s.repo.FindRoleNamesForUser(gctx, targetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.UserView{}, fmt.Errorf("users: assemble %d: %w", targetID, err)
	}

	return models.NewUserView(user, dedupe(roles)), nil
}

// ReadWithPermission runs the gate and, if allowed, the assembler.
func (s *Service) ReadWithPermission(ctx context.Context, requesterID, targetID int64) (models.UserView, error) {
	ok, err := s.CanRead(ctx, requesterID, targetID)
	if err != nil {
		return models.UserView{}, err
	}
	if !ok {
		return models.UserView{}, ErrPermissionDenied
	}
	return s.Assemble(ctx, targetID)
}

// ChangeRole assigns (grant=true) or revokes a role. Only admins may do either.
func (s *Service) ChangeRole(ctx context.Context, requesterID, targetID int64, role string, grant bool) error {
	ok, err := s.IsAdmin(ctx, requesterID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}

	if grant {
		err = s.repo.AssignRole(ctx, targetID, role)
	} else {
		err = s.repo.RevokeRole(ctx, targetID, role)
	}
	if err != nil {
		return fmt.Errorf("users: change role %q for %d: %w", role, targetID, err)
	}
	return nil
}

// dedupe keeps the first occurrence of each name, preserving order.
func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
