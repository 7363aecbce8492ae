// internal/sponsors/repository.go
package sponsors

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists sponsor directory entries. Lookups return
// (nil, nil) when no entry matches.
type Repository interface {
	List(ctx context.Context) ([]Sponsor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Sponsor, error)
	FindByName(ctx context.Context, name string) (*Sponsor, error)
	Create(ctx context.Context, s *Sponsor) error
	Update(ctx context.Context, s *Sponsor) (*Sponsor, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
