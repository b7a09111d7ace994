package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored row. It is never written to the wire directly; see UserView.
type User struct {
	ID        int64     `db:"id"`
	UUID      uuid.UUID `db:"uuid"`
	Email     string    `db:"email"`
	Password  string    `db:"password_hash"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type UserRole struct {
	UserID    int64     `db:"user_id"`
	RoleID    int64     `db:"role_id"`
	CreatedAt time.Time `db:"created_at"`
}

// UserView is the public projection of a user plus its role names.
type UserView struct {
	UUID      uuid.UUID `json:"uuid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Roles     []string  `json:"roles"`
}

// NewUserView copies only the public fields. A nil roles slice becomes empty
// so the wire payload always carries a list.
func NewUserView(u User, roles []string) UserView {
	if roles == nil {
		roles = []string{}
	}
	return UserView{
		UUID:      u.UUID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Roles:     roles,
	}
}
