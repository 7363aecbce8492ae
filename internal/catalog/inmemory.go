// internal/catalog/inmemory.go
package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository is a map-backed Repository used for tests and for
// running the service without a database.
type InMemoryRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*Part
}

// NewInMemoryRepository creates an empty in-memory part store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[uuid.UUID]*Part)}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := make([]*Part, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		parts = append(parts, &cp)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].CreatedAt.Before(parts[j].CreatedAt) })
	return parts, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryRepository) FindByName(ctx context.Context, name string) (*Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.byID {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, part *Part) (*Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *part
	r.byID[part.ID] = &cp
	out := cp
	return &out, nil
}

// AdjustStock applies delta under the repository mutex, so each part row
// is its own lock scope. A delta that would push stock negative is a
// no-op returning (nil, nil).
func (r *InMemoryRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	next := p.Stock + delta
	if next < 0 {
		return nil, nil
	}
	p.Stock = next
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}
