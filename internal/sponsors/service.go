// internal/sponsors/service.go
package sponsors

import (
	"context"

	"github.com/google/uuid"
)

// Service manages the global sponsor directory.
type Service interface {
	List(ctx context.Context) ([]Sponsor, error)
	Get(ctx context.Context, id uuid.UUID) (*Sponsor, error)
	Create(ctx context.Context, name string, date string) (*Sponsor, error)
	Update(ctx context.Context, id uuid.UUID, name string, date string) (*Sponsor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
