// internal/sponsors/implementation.go
package sponsors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"paddock/internal/apperr"
)

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Sponsor, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Sponsor, error) {
	sp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, apperr.NotFound(fmt.Sprintf("sponsor %s not found", id))
	}
	return sp, nil
}

func (s *service) Create(ctx context.Context, name string, date string) (*Sponsor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("sponsor name is required")
	}
	when, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict(fmt.Sprintf("sponsor %q already exists", name))
	}

	sp := &Sponsor{
		ID:        uuid.New(),
		Name:      name,
		Date:      when,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, name string, date string) (*Sponsor, error) {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		other, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperr.Conflict(fmt.Sprintf("sponsor %q already exists", name))
		}
		sp.Name = name
	}
	if date != "" {
		when, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		sp.Date = when
	}

	updated, err := s.repo.Update(ctx, sp)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound(fmt.Sprintf("sponsor %s not found", id))
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(fmt.Sprintf("sponsor %s not found", id))
	}
	return nil
}

// parseDate accepts a date-only or full RFC 3339 stamp; empty means now.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperr.Validation(fmt.Sprintf("invalid sponsor date %q", raw))
}
