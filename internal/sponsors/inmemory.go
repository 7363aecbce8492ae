// internal/sponsors/inmemory.go
package sponsors

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type inMemoryRepository struct {
	mu       sync.RWMutex
	sponsors map[uuid.UUID]Sponsor
}

func NewInMemoryRepository() Repository {
	return &inMemoryRepository{sponsors: make(map[uuid.UUID]Sponsor)}
}

func (r *inMemoryRepository) List(_ context.Context) ([]Sponsor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Sponsor, 0, len(r.sponsors))
	for _, sp := range r.sponsors {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *inMemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Sponsor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sp, ok := r.sponsors[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r *inMemoryRepository) FindByName(_ context.Context, name string) (*Sponsor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sp := range r.sponsors {
		if strings.EqualFold(sp.Name, name) {
			out := sp
			return &out, nil
		}
	}
	return nil, nil
}

func (r *inMemoryRepository) Create(_ context.Context, s *Sponsor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sponsors[s.ID] = *s
	return nil
}

func (r *inMemoryRepository) Update(_ context.Context, s *Sponsor) (*Sponsor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sponsors[s.ID]; !ok {
		return nil, nil
	}
	r.sponsors[s.ID] = *s
	out := *s
	return &out, nil
}

func (r *inMemoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sponsors[id]; !ok {
		return false, nil
	}
	delete(r.sponsors, id)
	return true, nil
}
