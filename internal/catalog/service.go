// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the part store.
type Service interface {
	List(ctx context.Context) ([]*Part, error)
	Get(ctx context.Context, id uuid.UUID) (*Part, error)
	Create(ctx context.Context, name, category string, price float64, stock int, perf Performance) (*Part, error)
	Restock(ctx context.Context, id uuid.UUID, qty int) (*Part, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*Part, error)
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (*Part, error)
}
