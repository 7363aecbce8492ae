// internal/team/service.go
package team

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the interface for team management: the aggregate CRUD,
// the budget ledger, the inventory, the assembly engine and the purchase
// orchestration. Every mutator returns the updated team snapshot.
type Service interface {
	List(ctx context.Context) ([]*Team, error)
	Get(ctx context.Context, id uuid.UUID) (*Team, error)
	Create(ctx context.Context, name, country string) (*Team, error)
	Update(ctx context.Context, id uuid.UUID, name, country *string) (*Team, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddSponsor(ctx context.Context, teamID uuid.UUID, name, description string) (*Team, error)
	RemoveSponsor(ctx context.Context, teamID, sponsorID uuid.UUID) (*Team, error)
	AddContribution(ctx context.Context, teamID, sponsorID uuid.UUID, amount float64, date time.Time, description string) (*Team, error)

	AddInventoryItem(ctx context.Context, teamID uuid.UUID, partName, category string, qty int, unitCost float64) (*Team, error)
	RemoveInventoryItem(ctx context.Context, teamID, itemID uuid.UUID) (*Team, error)

	AddDriver(ctx context.Context, teamID uuid.UUID, name string, skill int) (*Team, error)
	RemoveDriver(ctx context.Context, teamID, driverID uuid.UUID) (*Team, error)
	AddDriverResult(ctx context.Context, teamID, driverID uuid.UUID, date time.Time, race string, position int, points float64) (*Team, error)
	DriverStats(ctx context.Context, teamID, driverID uuid.UUID) (*DriverStats, error)

	AddCar(ctx context.Context, teamID uuid.UUID, code, name string) (*Team, error)
	RemoveCar(ctx context.Context, teamID, carID uuid.UUID) (*Team, error)

	InstallPart(ctx context.Context, teamID, carID, inventoryItemID uuid.UUID) (*Team, error)
	UninstallPart(ctx context.Context, teamID, carID, installedPartID uuid.UUID) (*Team, error)
	AssignDriver(ctx context.Context, teamID, carID uuid.UUID, driverID *uuid.UUID) (*Team, error)
	FinalizeCar(ctx context.Context, teamID, carID uuid.UUID) (*Team, error)
	UnfinalizeCar(ctx context.Context, teamID, carID uuid.UUID) (*Team, error)

	PurchasePart(ctx context.Context, teamID, partID uuid.UUID, qty int) (*Team, error)
}
