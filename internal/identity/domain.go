// internal/identity/domain.go
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Roles understood by the HTTP allow-lists. The garage core itself never
// interprets them.
const (
	RoleAdmin    = "ADMIN"
	RoleEngineer = "ENGINEER"
)

// User is an operator account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID uuid.UUID
	Role   string
}
