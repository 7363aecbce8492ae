// internal/team/domain.go
package team

import (
	"time"

	"github.com/google/uuid"

	"paddock/internal/catalog"
)

// Budget is derived state: Total always equals the sum of recorded
// contribution amounts, Spent accumulates purchases. Neither is ever set
// directly by a caller.
type Budget struct {
	Total float64 `json:"total"`
	Spent float64 `json:"spent"`
}

// Sponsor is a sponsor attached to a team. Its contribution history
// lives in Team.Contributions.
type Sponsor struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Contribution records a single sponsor payment into the team budget.
type Contribution struct {
	ID          uuid.UUID `json:"id"`
	SponsorID   uuid.UUID `json:"sponsorId"`
	SponsorName string    `json:"sponsorName"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// InventoryItem is one row of the team's owned-part multiset.
// SourcePartID is nil for manually added items; purchase upserts merge
// by it.
type InventoryItem struct {
	ID           uuid.UUID           `json:"id"`
	SourcePartID *uuid.UUID          `json:"sourcePartId"`
	PartName     string              `json:"partName"`
	Category     string              `json:"category"`
	Performance  catalog.Performance `json:"performance"`
	Qty          int                 `json:"qty"`
	UnitCost     float64             `json:"unitCost"`
	AcquiredAt   time.Time           `json:"acquiredAt"`
}

// Result is one race outcome for a driver.
type Result struct {
	Date     time.Time `json:"date"`
	Race     string    `json:"race"`
	Position int       `json:"position"`
	Points   float64   `json:"points"`
}

// Driver belongs to a team and may be assigned to one of its cars.
type Driver struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Skill   int       `json:"skill"`
	Results []Result  `json:"results"`
}

// DriverStats aggregates a driver's race results. BestPosition is nil
// when no races are recorded; the averages are 0, not NaN.
type DriverStats struct {
	Races        int     `json:"races"`
	AvgPosition  float64 `json:"avgPosition"`
	AvgPoints    float64 `json:"avgPoints"`
	BestPosition *int    `json:"bestPosition"`
	TotalPoints  float64 `json:"totalPoints"`
}

// InstalledPart is one unit transferred from inventory onto a car. It
// back-references the inventory item; inventory remains the source of
// truth for remaining stock.
type InstalledPart struct {
	ID              uuid.UUID           `json:"id"`
	InventoryItemID uuid.UUID           `json:"inventoryItemId"`
	PartName        string              `json:"partName"`
	Category        string              `json:"category"`
	CategoryKey     string              `json:"categoryKey"`
	Performance     catalog.Performance `json:"performance"`
	InstalledAt     time.Time           `json:"installedAt"`
}

// Car holds at most one installed part per category key. A finalized car
// refuses install, uninstall and driver reassignment until unfinalized.
type Car struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	DriverID       *uuid.UUID      `json:"driverId"`
	IsFinalized    bool            `json:"isFinalized"`
	InstalledParts []InstalledPart `json:"installedParts"`
}

// Team is the root aggregate. Every child collection is owned by it and
// only mutated through it.
type Team struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Country       string          `json:"country"`
	Budget        Budget          `json:"budget"`
	Sponsors      []Sponsor       `json:"sponsors"`
	Contributions []Contribution  `json:"contributions"`
	Inventory     []InventoryItem `json:"inventory"`
	Cars          []Car           `json:"cars"`
	Drivers       []Driver        `json:"drivers"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AvailableBudget is the purchase ceiling: total minus spent.
func (t *Team) AvailableBudget() float64 {
	return t.Budget.Total - t.Budget.Spent
}

// Clone returns a deep copy of the aggregate, so repository callers can
// mutate freely before replacing.
func (t *Team) Clone() *Team {
	cp := *t

	cp.Sponsors = append([]Sponsor(nil), t.Sponsors...)
	cp.Contributions = append([]Contribution(nil), t.Contributions...)
	cp.Inventory = append([]InventoryItem(nil), t.Inventory...)

	cp.Drivers = make([]Driver, len(t.Drivers))
	for i, d := range t.Drivers {
		cp.Drivers[i] = d
		cp.Drivers[i].Results = append([]Result(nil), d.Results...)
	}

	cp.Cars = make([]Car, len(t.Cars))
	for i, c := range t.Cars {
		cp.Cars[i] = c
		if c.DriverID != nil {
			id := *c.DriverID
			cp.Cars[i].DriverID = &id
		}
		cp.Cars[i].InstalledParts = append([]InstalledPart(nil), c.InstalledParts...)
	}

	for i, item := range t.Inventory {
		if item.SourcePartID != nil {
			id := *item.SourcePartID
			cp.Inventory[i].SourcePartID = &id
		}
	}

	return &cp
}

func (t *Team) findSponsor(id uuid.UUID) *Sponsor {
	for i := range t.Sponsors {
		if t.Sponsors[i].ID == id {
			return &t.Sponsors[i]
		}
	}
	return nil
}

func (t *Team) findInventoryItem(id uuid.UUID) *InventoryItem {
	for i := range t.Inventory {
		if t.Inventory[i].ID == id {
			return &t.Inventory[i]
		}
	}
	return nil
}

func (t *Team) findDriver(id uuid.UUID) *Driver {
	for i := range t.Drivers {
		if t.Drivers[i].ID == id {
			return &t.Drivers[i]
		}
	}
	return nil
}

func (t *Team) findCar(id uuid.UUID) *Car {
	for i := range t.Cars {
		if t.Cars[i].ID == id {
			return &t.Cars[i]
		}
	}
	return nil
}

// installedRefs counts installed parts across all cars that reference
// the given inventory item.
func (t *Team) installedRefs(itemID uuid.UUID) int {
	n := 0
	for i := range t.Cars {
		for _, p := range t.Cars[i].InstalledParts {
			if p.InventoryItemID == itemID {
				n++
			}
		}
	}
	return n
}
