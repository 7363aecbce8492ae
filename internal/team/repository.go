// internal/team/repository.go
package team

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for the team aggregate. Mutation is
// replace-on-write: the service rebuilds the aggregate and swaps it in
// atomically. FindByID and Replace return (nil, nil) when the team does
// not exist.
type Repository interface {
	List(ctx context.Context) ([]*Team, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Team, error)
	Create(ctx context.Context, t *Team) (*Team, error)
	Replace(ctx context.Context, t *Team) (*Team, error)
	Remove(ctx context.Context, id uuid.UUID) (bool, error)
}
