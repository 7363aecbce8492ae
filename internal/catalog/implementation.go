// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"paddock/internal/apperr"
)

// service implements the Service interface.
type service struct {
	repo Repository
}

// NewService creates a new catalog service instance.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List returns every part in the store.
func (s *service) List(ctx context.Context) ([]*Part, error) {
	parts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, nil
}

// Get retrieves a part by its ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Part, error) {
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get part: %w", err)
	}
	if part == nil {
		return nil, apperr.NotFound(fmt.Sprintf("part %s not found", id))
	}
	return part, nil
}

// Create validates and stores a new part definition.
func (s *service) Create(ctx context.Context, name, category string, price float64, stock int, perf Performance) (*Part, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("part name is required")
	}
	if !IsRequiredCategory(category) {
		return nil, apperr.Validation(fmt.Sprintf("category %q is not one of the required categories", category))
	}
	if price < 0 {
		return nil, apperr.Validation("price must be a non-negative number")
	}
	if stock < 0 {
		return nil, apperr.Validation("stock must be a non-negative integer")
	}
	for _, rating := range []int{perf.P, perf.A, perf.M} {
		if rating < 0 || rating > 9 {
			return nil, apperr.Validation("performance ratings must be integers between 0 and 9")
		}
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check part name: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict(fmt.Sprintf("a part named %q already exists", name))
	}

	now := time.Now().UTC()
	part := &Part{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Price:       price,
		Stock:       stock,
		Performance: perf,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, part)
	if err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}
	return created, nil
}

// Restock adds qty units of stock to a part.
func (s *service) Restock(ctx context.Context, id uuid.UUID, qty int) (*Part, error) {
	return s.IncrementStock(ctx, id, qty)
}

// DecrementStock removes qty units of stock. The repository performs the
// decrement as an atomic conditional update on the part row, so two
// teams racing for the last unit cannot both win.
func (s *service) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*Part, error) {
	if qty <= 0 {
		return nil, apperr.Validation("quantity must be a positive integer")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	part, err := s.repo.AdjustStock(ctx, id, -qty)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}
	if part == nil {
		return nil, apperr.Insufficient(fmt.Sprintf("insufficient stock for part %q: have %d, need %d", current.Name, current.Stock, qty))
	}
	return part, nil
}

// IncrementStock adds qty units of stock.
func (s *service) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (*Part, error) {
	if qty <= 0 {
		return nil, apperr.Validation("quantity must be a positive integer")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	part, err := s.repo.AdjustStock(ctx, id, qty)
	if err != nil {
		return nil, fmt.Errorf("failed to increment stock: %w", err)
	}
	if part == nil {
		return nil, apperr.NotFound(fmt.Sprintf("part %s not found", id))
	}
	return part, nil
}
