package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "Admin"
	RolePublic = "Public"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	NameComplete string    `db:"name_complete" json:"name_complete"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Deleted      bool      `db:"deleted" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Log is an append-only audit record. One row is written for every mutating
// user/task operation, in the same transaction as the mutation itself.
type Log struct {
	ID        string    `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Claims defines the structure of the JWT claims. The subject is the user's
// email.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
