package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vaughan-dsouza/userfront/internal/models"
)

// MemoryStore is an in-process Store. Roles are seeded the same way the
// migrations seed them (admin=1, owner=2, member=3).
type MemoryStore struct {
	mu        sync.RWMutex
	adminRole string
	nextID    int64
	users     map[int64]models.User
	roles     map[string]int64
	userRoles map[int64]map[int64]time.Time

	err error
}

func NewMemoryStore(adminRole string) *MemoryStore {
	return &MemoryStore{
		adminRole: adminRole,
		users:     map[int64]models.User{},
		roles:     map[string]int64{"admin": 1, "owner": 2, "member": 3},
		userRoles: map[int64]map[int64]time.Time{},
	}
}

func (s *MemoryStore) FindUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return models.User{}, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return models.User{}, s.err
	}
	email = models.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) FindRoleNamesForUser(_ context.Context, userID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	names := []string{}
	for name, id := range s.roles {
		if _, ok := s.userRoles[userID][id]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) FindAdminRoleAssociation(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return false, s.err
	}
	id, ok := s.roles[s.adminRole]
	if !ok {
		return false, nil
	}
	_, ok = s.userRoles[userID][id]
	return ok, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.User{}, s.err
	}
	email = models.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, ErrEmailTaken
		}
	}

	s.nextID++
	now := time.Now().UTC()
	u := models.User{
		ID:        s.nextID,
		UUID:      uuid.New(),
		Email:     email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *MemoryStore) AssignRole(_ context.Context, userID int64, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	roleID, ok := s.roles[role]
	if !ok {
		return ErrRoleNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return ErrNotFound
	}
	if s.userRoles[userID] == nil {
		s.userRoles[userID] = map[int64]time.Time{}
	}
	if _, ok := s.userRoles[userID][roleID]; !ok {
		s.userRoles[userID][roleID] = time.Now()
	}
	return nil
}

func (s *MemoryStore) RevokeRole(_ context.Context, userID int64, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	roleID, ok := s.roles[role]
	if !ok {
		return ErrRoleNotFound
	}
	delete(s.userRoles[userID], roleID)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SetErr makes every subsequent call fail with err.
func (s *MemoryStore) SetErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
