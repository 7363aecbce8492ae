// internal/catalog/repository.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for parts. Stock adjustments are
// atomic per part row: AdjustStock applies delta only if the resulting
// stock stays non-negative, and returns (nil, nil) as a no-op sentinel
// when it would underflow. The service translates the sentinel into a
// user-facing error.
type Repository interface {
	List(ctx context.Context) ([]*Part, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Part, error)
	FindByName(ctx context.Context, name string) (*Part, error)
	Create(ctx context.Context, part *Part) (*Part, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Part, error)
}
