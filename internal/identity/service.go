// internal/identity/service.go
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for account management and session
// issuance.
type Service interface {
	Signup(ctx context.Context, name, email, password, role string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	Me(ctx context.Context, userID uuid.UUID) (*User, error)
	Verify(token string) (*Session, error)
}
