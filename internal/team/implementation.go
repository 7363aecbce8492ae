// internal/team/implementation.go
package team

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"paddock/internal/apperr"
	"paddock/internal/catalog"
)

// service implements the Service interface. All mutation of one team
// runs under that team's lock, so every operation observes and produces
// a consistent aggregate.
type service struct {
	repo   Repository
	parts  catalog.Service
	locks  *teamLocks
	tracer trace.Tracer
}

// NewService creates a new team service instance.
func NewService(repo Repository, parts catalog.Service) Service {
	return &service{
		repo:   repo,
		parts:  parts,
		locks:  newTeamLocks(),
		tracer: otel.Tracer("paddock/team"),
	}
}

// List returns every team.
func (s *service) List(ctx context.Context) ([]*Team, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// Get retrieves a team by its ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Team, error) {
	return s.getTeam(ctx, id)
}

func (s *service) getTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if t == nil {
		return nil, apperr.NotFound(fmt.Sprintf("team %s not found", id))
	}
	return t, nil
}

// save stamps and atomically replaces the aggregate.
func (s *service) save(ctx context.Context, t *Team) (*Team, error) {
	t.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Replace(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to save team: %w", err)
	}
	if updated == nil {
		return nil, apperr.NotFound(fmt.Sprintf("team %s not found", t.ID))
	}
	return updated, nil
}

// Create registers a new team with an empty budget and no children.
func (s *service) Create(ctx context.Context, name, country string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("team name is required")
	}

	now := time.Now().UTC()
	t := &Team{
		ID:            uuid.New(),
		Name:          name,
		Country:       strings.TrimSpace(country),
		Budget:        Budget{},
		Sponsors:      []Sponsor{},
		Contributions: []Contribution{},
		Inventory:     []InventoryItem{},
		Cars:          []Car{},
		Drivers:       []Driver{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return created, nil
}

// Update changes the team's name and/or country.
func (s *service) Update(ctx context.Context, id uuid.UUID, name, country *string) (*Team, error) {
	defer s.locks.lock(id)()

	t, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperr.Validation("team name is required")
		}
		t.Name = trimmed
	}
	if country != nil {
		t.Country = strings.TrimSpace(*country)
	}

	return s.save(ctx, t)
}

// Delete removes the team aggregate.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	defer s.locks.lock(id)()

	ok, err := s.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if !ok {
		return apperr.NotFound(fmt.Sprintf("team %s not found", id))
	}
	s.locks.forget(id)
	return nil
}

// AddSponsor attaches a sponsor to the team. Contributions are recorded
// separately through AddContribution.
func (s *service) AddSponsor(ctx context.Context, teamID uuid.UUID, name, description string) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("sponsor name is required")
	}

	t.Sponsors = append(t.Sponsors, Sponsor{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	})

	return s.save(ctx, t)
}

// RemoveSponsor detaches a sponsor. Its recorded contributions stay in
// the ledger so the budget total is preserved.
func (s *service) RemoveSponsor(ctx context.Context, teamID, sponsorID uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if t.findSponsor(sponsorID) == nil {
		return nil, apperr.NotFound(fmt.Sprintf("sponsor %s not found", sponsorID))
	}

	kept := t.Sponsors[:0]
	for _, sp := range t.Sponsors {
		if sp.ID != sponsorID {
			kept = append(kept, sp)
		}
	}
	t.Sponsors = kept

	return s.save(ctx, t)
}

// PurchasePart runs the store purchase as one logical transaction:
// category check, stock check, budget check, catalog decrement, budget
// debit and inventory upsert. A failure after the decrement rolls the
// stock back before the error surfaces, so observers only ever see full
// success or the pre-purchase state.
func (s *service) PurchasePart(ctx context.Context, teamID, partID uuid.UUID, qty int) (*Team, error) {
	ctx, span := s.tracer.Start(ctx, "team.purchase_part",
		trace.WithAttributes(
			attribute.String("team.id", teamID.String()),
			attribute.String("part.id", partID.String()),
			attribute.Int("purchase.qty", qty),
		),
	)
	defer span.End()

	if qty <= 0 {
		return nil, apperr.Validation("quantity must be a positive integer")
	}

	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	part, err := s.parts.Get(ctx, partID)
	if err != nil {
		return nil, err
	}
	if !catalog.IsRequiredCategory(part.Category) {
		return nil, apperr.Validation(fmt.Sprintf("part category %q is not one of the required categories", part.Category))
	}
	if part.Stock < qty {
		return nil, apperr.Insufficient(fmt.Sprintf("insufficient stock for part %q: have %d, need %d", part.Name, part.Stock, qty))
	}

	totalCost := part.Price * float64(qty)
	if t.AvailableBudget() < totalCost {
		return nil, apperr.Insufficient(fmt.Sprintf("insufficient budget: available %.2f, need %.2f", t.AvailableBudget(), totalCost))
	}

	// Commit phase. The catalog decrement is atomic per part row, so a
	// concurrent purchase of the last unit by another team loses here.
	if _, err := s.parts.DecrementStock(ctx, partID, qty); err != nil {
		return nil, err
	}

	compensate := func() {
		log.Printf("compensating failed purchase: restoring %d units of part %s", qty, partID)
		if _, cerr := s.parts.IncrementStock(ctx, partID, qty); cerr != nil {
			log.Printf("failed to restore catalog stock for part %s: %v", partID, cerr)
		}
	}

	if err := reserve(t, totalCost); err != nil {
		compensate()
		return nil, err
	}
	upsertFromPurchase(t, part, qty)

	updated, err := s.save(ctx, t)
	if err != nil {
		compensate()
		return nil, err
	}

	span.SetAttributes(attribute.Float64("purchase.cost", totalCost))
	return updated, nil
}
