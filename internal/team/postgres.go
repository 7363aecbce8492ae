// internal/team/postgres.go
package team

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"paddock/pkg/aggstore"
)

const teamsCollection = "teams"

// PostgresRepository stores each team aggregate as a versioned JSONB
// document. The service serializes writers per team, and the document
// version check makes a lost update impossible even for a writer that
// bypasses the service lock.
type PostgresRepository struct {
	store *aggstore.Store
}

// NewPostgresRepository creates a team repository over a document store.
func NewPostgresRepository(store *aggstore.Store) *PostgresRepository {
	return &PostgresRepository{store: store}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Team, error) {
	docs, err := r.store.List(ctx, teamsCollection)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teams := make([]*Team, 0, len(docs))
	for _, doc := range docs {
		t := &Team{}
		if err := json.Unmarshal(doc, t); err != nil {
			return nil, fmt.Errorf("decode team document: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	doc, _, err := r.store.Get(ctx, teamsCollection, id)
	if errors.Is(err, aggstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load team: %w", err)
	}

	t := &Team{}
	if err := json.Unmarshal(doc, t); err != nil {
		return nil, fmt.Errorf("decode team document: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *Team) (*Team, error) {
	if err := r.store.Insert(ctx, teamsCollection, t.ID, t); err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return t.Clone(), nil
}

func (r *PostgresRepository) Replace(ctx context.Context, t *Team) (*Team, error) {
	_, version, err := r.store.Get(ctx, teamsCollection, t.ID)
	if errors.Is(err, aggstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load team version: %w", err)
	}

	if err := r.store.Replace(ctx, teamsCollection, t.ID, version, t); err != nil {
		if errors.Is(err, aggstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("replace team: %w", err)
	}
	return t.Clone(), nil
}

func (r *PostgresRepository) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	err := r.store.Delete(ctx, teamsCollection, id)
	if errors.Is(err, aggstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete team: %w", err)
	}
	return true, nil
}
