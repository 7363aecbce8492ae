// internal/team/inmemory.go
package team

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository is a map-backed Repository. It deep-copies
// aggregates on the way in and out, so callers never share state with
// the store.
type InMemoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Team
}

// NewInMemoryRepository creates an empty in-memory team store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[uuid.UUID]*Team)}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]*Team, 0, len(r.byID))
	for _, t := range r.byID {
		teams = append(teams, t.Clone())
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].CreatedAt.Before(teams[j].CreatedAt) })
	return teams, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return t.Clone(), nil
}

func (r *InMemoryRepository) Create(ctx context.Context, t *Team) (*Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[t.ID] = t.Clone()
	return t.Clone(), nil
}

// Replace swaps the stored aggregate atomically.
func (r *InMemoryRepository) Replace(ctx context.Context, t *Team) (*Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID]; !ok {
		return nil, nil
	}
	r.byID[t.ID] = t.Clone()
	return t.Clone(), nil
}

func (r *InMemoryRepository) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}
