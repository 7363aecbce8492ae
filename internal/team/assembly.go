// internal/team/assembly.go
package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"paddock/internal/apperr"
	"paddock/internal/catalog"
)

// AddCar registers a car shell. A team owns at most two cars.
func (s *service) AddCar(ctx context.Context, teamID uuid.UUID, code, name string) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if len(t.Cars) >= 2 {
		return nil, apperr.Conflict("a team may own at most 2 cars")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperr.Validation("car code is required")
	}

	t.Cars = append(t.Cars, Car{
		ID:             uuid.New(),
		Code:           code,
		Name:           strings.TrimSpace(name),
		InstalledParts: []InstalledPart{},
	})

	return s.save(ctx, t)
}

// RemoveCar deletes a car. Every installed part is returned to its
// backing inventory item first, so parts are never silently destroyed.
func (s *service) RemoveCar(ctx context.Context, teamID, carID uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	car := t.findCar(carID)
	if car == nil {
		return nil, apperr.NotFound(fmt.Sprintf("car %s not found", carID))
	}

	for _, installed := range car.InstalledParts {
		returnToInventory(t, installed)
	}

	kept := t.Cars[:0]
	for _, c := range t.Cars {
		if c.ID != carID {
			kept = append(kept, c)
		}
	}
	t.Cars = kept

	return s.save(ctx, t)
}

// returnToInventory hands one unit back to the installed part's backing
// item. The backing row always exists while a reference is live, because
// RemoveInventoryItem refuses to delete referenced items.
func returnToInventory(t *Team, installed InstalledPart) {
	if item := t.findInventoryItem(installed.InventoryItemID); item != nil {
		item.Qty++
	}
}

// categoryKey normalizes the category string used for the
// one-per-category rule, falling back to the part name for manual items
// without a category.
func categoryKey(category, partName string) string {
	if key := strings.TrimSpace(category); key != "" {
		return key
	}
	return partName
}

// InstallPart consumes one unit of an inventory item and mounts it on
// the car. If the car already carries a part in that category the old
// part is swapped out first: its unit returns to inventory in the same
// step, so the category is never observably empty and no unit is
// duplicated. A finalized car refuses installation; the caller must
// unfinalize first.
func (s *service) InstallPart(ctx context.Context, teamID, carID, inventoryItemID uuid.UUID) (*Team, error) {
	ctx, span := s.tracer.Start(ctx, "team.install_part",
		trace.WithAttributes(
			attribute.String("team.id", teamID.String()),
			attribute.String("car.id", carID.String()),
			attribute.String("inventory.item_id", inventoryItemID.String()),
		),
	)
	defer span.End()

	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	car := t.findCar(carID)
	if car == nil {
		return nil, apperr.NotFound(fmt.Sprintf("car %s not found", carID))
	}
	if car.IsFinalized {
		return nil, apperr.Conflict(fmt.Sprintf("car %s is finalized; unfinalize it before changing parts", car.Code))
	}

	item := t.findInventoryItem(inventoryItemID)
	if item == nil {
		return nil, apperr.NotFound(fmt.Sprintf("inventory item %s not found", inventoryItemID))
	}
	if !catalog.IsRequiredCategory(item.Category) {
		return nil, apperr.Validation(fmt.Sprintf("category %q is not one of the required categories", item.Category))
	}
	if item.Qty <= 0 {
		return nil, apperr.Insufficient(fmt.Sprintf("no units of %q left in inventory", item.PartName))
	}

	key := categoryKey(item.Category, item.PartName)

	// Swap: return the currently installed part in this category, if any.
	kept := car.InstalledParts[:0]
	for _, installed := range car.InstalledParts {
		if installed.CategoryKey == key {
			returnToInventory(t, installed)
			span.SetAttributes(attribute.Bool("install.swap", true))
			continue
		}
		kept = append(kept, installed)
	}
	car.InstalledParts = kept

	item.Qty--
	car.InstalledParts = append(car.InstalledParts, InstalledPart{
		ID:              uuid.New(),
		InventoryItemID: item.ID,
		PartName:        item.PartName,
		Category:        item.Category,
		CategoryKey:     key,
		Performance:     item.Performance,
		InstalledAt:     time.Now().UTC(),
	})

	// Safety net: any install leaves the car editable even if a store
	// bypassed the finalized precondition.
	car.IsFinalized = false

	return s.save(ctx, t)
}

// UninstallPart removes an installed part and returns its unit to the
// backing inventory item.
func (s *service) UninstallPart(ctx context.Context, teamID, carID, installedPartID uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	car := t.findCar(carID)
	if car == nil {
		return nil, apperr.NotFound(fmt.Sprintf("car %s not found", carID))
	}
	if car.IsFinalized {
		return nil, apperr.Conflict(fmt.Sprintf("car %s is finalized; unfinalize it before changing parts", car.Code))
	}

	found := false
	kept := car.InstalledParts[:0]
	for _, installed := range car.InstalledParts {
		if installed.ID == installedPartID {
			returnToInventory(t, installed)
			found = true
			continue
		}
		kept = append(kept, installed)
	}
	if !found {
		return nil, apperr.NotFound(fmt.Sprintf("installed part %s not found", installedPartID))
	}
	car.InstalledParts = kept

	return s.save(ctx, t)
}

// AssignDriver sets or clears the car's driver. The driver must belong
// to the same team.
func (s *service) AssignDriver(ctx context.Context, teamID, carID uuid.UUID, driverID *uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	car := t.findCar(carID)
	if car == nil {
		return nil, apperr.NotFound(fmt.Sprintf("car %s not found", carID))
	}
	if car.IsFinalized {
		return nil, apperr.Conflict(fmt.Sprintf("car %s is finalized; unfinalize it before reassigning the driver", car.Code))
	}

	if driverID == nil {
		car.DriverID = nil
		return s.save(ctx, t)
	}

	if t.findDriver(*driverID) == nil {
		return nil, apperr.NotFound(fmt.Sprintf("driver %s not found", *driverID))
	}
	id := *driverID
	car.DriverID = &id

	return s.save(ctx, t)
}

// FinalizeCar locks the build as race-ready. It succeeds only when a
// driver is assigned and every required category has an installed part;
// otherwise it fails naming what is missing and leaves the car
// unchanged.
func (s *service) FinalizeCar(ctx context.Context, teamID, carID uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	car := t.findCar(carID)
	if car == nil {
		return nil, apperr.NotFound(fmt.Sprintf("car %s not found", carID))
	}

	installed := make(map[string]bool, len(car.InstalledParts))
	for _, p := range car.InstalledParts {
		installed[p.CategoryKey] = true
	}
	var missing []string
	for _, cat := range catalog.RequiredCategories() {
		if !installed[cat] {
			missing = append(missing, cat)
		}
	}

	var problems []string
	if car.DriverID == nil {
		problems = append(problems, "missing driver")
	}
	if len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("missing %d categories (%s)", len(missing), strings.Join(missing, ", ")))
	}
	if len(problems) > 0 {
		return nil, apperr.Validation("cannot finalize car: " + strings.Join(problems, ", "))
	}

	car.IsFinalized = true

	return s.save(ctx, t)
}

// UnfinalizeCar unlocks the build for editing. Installed parts stay on
// the car; this is an editing unlock, not a teardown.
func (s *service) UnfinalizeCar(ctx context.Context, teamID, carID uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	car := t.findCar(carID)
	if car == nil {
		return nil, apperr.NotFound(fmt.Sprintf("car %s not found", carID))
	}

	car.IsFinalized = false

	return s.save(ctx, t)
}
