// internal/team/inventory.go
package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"paddock/internal/apperr"
	"paddock/internal/catalog"
)

// upsertFromPurchase merges purchased units into the inventory. Identity
// is the source catalog part id: buying more of the same part grows the
// existing row and refreshes its unit cost and performance to the latest
// purchase instead of fragmenting the inventory.
func upsertFromPurchase(t *Team, part *catalog.Part, qty int) {
	for i := range t.Inventory {
		item := &t.Inventory[i]
		if item.SourcePartID != nil && *item.SourcePartID == part.ID {
			item.Qty += qty
			item.UnitCost = part.Price
			item.Performance = part.Performance
			item.PartName = part.Name
			item.Category = part.Category
			return
		}
	}

	sourceID := part.ID
	t.Inventory = append(t.Inventory, InventoryItem{
		ID:           uuid.New(),
		SourcePartID: &sourceID,
		PartName:     part.Name,
		Category:     part.Category,
		Performance:  part.Performance,
		Qty:          qty,
		UnitCost:     part.Price,
		AcquiredAt:   time.Now().UTC(),
	})
}

// AddInventoryItem adds a manual entry. Manual items never merge and
// carry no source part reference.
func (s *service) AddInventoryItem(ctx context.Context, teamID uuid.UUID, partName, category string, qty int, unitCost float64) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	partName = strings.TrimSpace(partName)
	if partName == "" {
		return nil, apperr.Validation("part name is required")
	}
	if qty < 0 {
		return nil, apperr.Validation("quantity must be a non-negative integer")
	}
	if unitCost < 0 {
		return nil, apperr.Validation("unit cost must be a non-negative number")
	}

	t.Inventory = append(t.Inventory, InventoryItem{
		ID:         uuid.New(),
		PartName:   partName,
		Category:   strings.TrimSpace(category),
		Qty:        qty,
		UnitCost:   unitCost,
		AcquiredAt: time.Now().UTC(),
	})

	return s.save(ctx, t)
}

// RemoveInventoryItem deletes an inventory row. Items referenced by an
// installed part on any of the team's cars cannot be deleted out from
// under the car.
func (s *service) RemoveInventoryItem(ctx context.Context, teamID, itemID uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if t.findInventoryItem(itemID) == nil {
		return nil, apperr.NotFound(fmt.Sprintf("inventory item %s not found", itemID))
	}
	if refs := t.installedRefs(itemID); refs > 0 {
		return nil, apperr.Conflict(fmt.Sprintf("inventory item %s is installed on a car and cannot be removed", itemID))
	}

	kept := t.Inventory[:0]
	for _, item := range t.Inventory {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	t.Inventory = kept

	return s.save(ctx, t)
}
