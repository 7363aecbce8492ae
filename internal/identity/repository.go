// internal/identity/repository.go
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for user accounts. Lookups return
// (nil, nil) when no user matches.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}
