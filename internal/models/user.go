package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
// Registration in the single-tenant deployment always assigns RoleAdmin,
// but the role is an explicit parameter everywhere below the handler layer
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Email          string
	Name           string
	Role           string
	HashedPassword string
}

// PublicUser is the external representation of a user.
// The password hash must never leave the service layer in any form.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
