// internal/team/assembly_test.go
package team

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddock/internal/apperr"
	"paddock/internal/catalog"
)

// buildCar seeds one part per required category, purchases one unit of
// each and installs them all on a fresh car, returning the team and the
// car id. The team ends up with a driver assigned and ready to finalize.
func buildCar(t *testing.T, env *testEnv) (*Team, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	tm := env.createTeam(t)
	env.fund(t, tm.ID, 10_000_000)

	tm, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "Primary")
	require.NoError(t, err)
	carID := tm.Cars[0].ID

	for _, category := range catalog.RequiredCategories() {
		part := env.seedPart(t, category+" Spec A", category, 100_000, 3)
		tm, err = env.teams.PurchasePart(ctx, tm.ID, part.ID, 1)
		require.NoError(t, err)
		item := tm.Inventory[len(tm.Inventory)-1]
		tm, err = env.teams.InstallPart(ctx, tm.ID, carID, item.ID)
		require.NoError(t, err)
	}

	tm, err = env.teams.AddDriver(ctx, tm.ID, "Lena Maris", 88)
	require.NoError(t, err)
	driverID := tm.Drivers[0].ID
	tm, err = env.teams.AssignDriver(ctx, tm.ID, carID, &driverID)
	require.NoError(t, err)

	return tm, carID
}

func TestAddCarLimit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tm := env.createTeam(t)

	_, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "")
	require.NoError(t, err)
	_, err = env.teams.AddCar(ctx, tm.ID, "SN-02", "")
	require.NoError(t, err)

	_, err = env.teams.AddCar(ctx, tm.ID, "SN-03", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
}

func TestInstallPartConsumesInventory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tm := env.createTeam(t)
	env.fund(t, tm.ID, 1_000_000)

	tm, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "")
	require.NoError(t, err)
	carID := tm.Cars[0].ID

	part := env.seedPart(t, "V6 Turbo Hybrid", catalog.CategoryPowerUnit, 100_000, 3)
	tm, err = env.teams.PurchasePart(ctx, tm.ID, part.ID, 2)
	require.NoError(t, err)
	itemID := tm.Inventory[0].ID

	tm, err = env.teams.InstallPart(ctx, tm.ID, carID, itemID)
	require.NoError(t, err)

	assert.Equal(t, 1, tm.Inventory[0].Qty)
	car := tm.findCar(carID)
	require.Len(t, car.InstalledParts, 1)
	assert.Equal(t, itemID, car.InstalledParts[0].InventoryItemID)
	assert.Equal(t, catalog.CategoryPowerUnit, car.InstalledParts[0].Category)
}

func TestInstallPartSwapsWithinCategory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tm := env.createTeam(t)
	env.fund(t, tm.ID, 1_000_000)

	tm, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "")
	require.NoError(t, err)
	carID := tm.Cars[0].ID

	specA := env.seedPart(t, "PU Spec A", catalog.CategoryPowerUnit, 100_000, 1)
	specB := env.seedPart(t, "PU Spec B", catalog.CategoryPowerUnit, 120_000, 1)
	tm, err = env.teams.PurchasePart(ctx, tm.ID, specA.ID, 1)
	require.NoError(t, err)
	tm, err = env.teams.PurchasePart(ctx, tm.ID, specB.ID, 1)
	require.NoError(t, err)
	itemA, itemB := tm.Inventory[0], tm.Inventory[1]

	tm, err = env.teams.InstallPart(ctx, tm.ID, carID, itemA.ID)
	require.NoError(t, err)
	tm, err = env.teams.InstallPart(ctx, tm.ID, carID, itemB.ID)
	require.NoError(t, err)

	// One slot per category: B replaced A and A's unit went back.
	car := tm.findCar(carID)
	require.Len(t, car.InstalledParts, 1)
	assert.Equal(t, "PU Spec B", car.InstalledParts[0].PartName)
	assert.Equal(t, 1, tm.findInventoryItem(itemA.ID).Qty)
	assert.Equal(t, 0, tm.findInventoryItem(itemB.ID).Qty)
}

func TestInstallPartErrors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tm := env.createTeam(t)
	env.fund(t, tm.ID, 1_000_000)

	tm, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "")
	require.NoError(t, err)
	carID := tm.Cars[0].ID

	t.Run("missing item", func(t *testing.T) {
		_, err := env.teams.InstallPart(ctx, tm.ID, carID, uuid.New())
		assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
	})

	t.Run("category outside the required set", func(t *testing.T) {
		withItem, err := env.teams.AddInventoryItem(ctx, tm.ID, "Pit Jack", "Garage Gear", 1, 500)
		require.NoError(t, err)
		itemID := withItem.Inventory[len(withItem.Inventory)-1].ID
		_, err = env.teams.InstallPart(ctx, tm.ID, carID, itemID)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	})

	t.Run("zero quantity", func(t *testing.T) {
		withItem, err := env.teams.AddInventoryItem(ctx, tm.ID, "Worn Gearbox", catalog.CategoryGearbox, 0, 500)
		require.NoError(t, err)
		itemID := withItem.Inventory[len(withItem.Inventory)-1].ID
		_, err = env.teams.InstallPart(ctx, tm.ID, carID, itemID)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	})
}

func TestUninstallPartReturnsUnit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tm := env.createTeam(t)
	env.fund(t, tm.ID, 1_000_000)

	tm, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "")
	require.NoError(t, err)
	carID := tm.Cars[0].ID

	part := env.seedPart(t, "Soft Compound", catalog.CategoryTires, 10_000, 4)
	tm, err = env.teams.PurchasePart(ctx, tm.ID, part.ID, 1)
	require.NoError(t, err)
	itemID := tm.Inventory[0].ID

	tm, err = env.teams.InstallPart(ctx, tm.ID, carID, itemID)
	require.NoError(t, err)
	installedID := tm.findCar(carID).InstalledParts[0].ID

	// The backing item is referenced and cannot be removed mid-install.
	_, err = env.teams.RemoveInventoryItem(ctx, tm.ID, itemID)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	tm, err = env.teams.UninstallPart(ctx, tm.ID, carID, installedID)
	require.NoError(t, err)
	assert.Empty(t, tm.findCar(carID).InstalledParts)
	assert.Equal(t, 1, tm.findInventoryItem(itemID).Qty)
}

func TestRemoveCarReturnsAllParts(t *testing.T) {
	env := newTestEnv()
	tm, carID := buildCar(t, env)
	ctx := context.Background()

	before := 0
	for _, item := range tm.Inventory {
		before += item.Qty
	}

	tm, err := env.teams.RemoveCar(ctx, tm.ID, carID)
	require.NoError(t, err)
	assert.Empty(t, tm.Cars)

	after := 0
	for _, item := range tm.Inventory {
		after += item.Qty
	}
	assert.Equal(t, before+5, after)
}

func TestAssignDriver(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tm := env.createTeam(t)

	tm, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "")
	require.NoError(t, err)
	carID := tm.Cars[0].ID
	tm, err = env.teams.AddDriver(ctx, tm.ID, "Lena Maris", 88)
	require.NoError(t, err)
	driverID := tm.Drivers[0].ID

	tm, err = env.teams.AssignDriver(ctx, tm.ID, carID, &driverID)
	require.NoError(t, err)
	require.NotNil(t, tm.findCar(carID).DriverID)
	assert.Equal(t, driverID, *tm.findCar(carID).DriverID)

	// An assigned driver cannot be removed from the roster.
	_, err = env.teams.RemoveDriver(ctx, tm.ID, driverID)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	tm, err = env.teams.AssignDriver(ctx, tm.ID, carID, nil)
	require.NoError(t, err)
	assert.Nil(t, tm.findCar(carID).DriverID)

	unknown := uuid.New()
	_, err = env.teams.AssignDriver(ctx, tm.ID, carID, &unknown)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestFinalizeCar(t *testing.T) {
	env := newTestEnv()
	tm, carID := buildCar(t, env)
	ctx := context.Background()

	tm, err := env.teams.FinalizeCar(ctx, tm.ID, carID)
	require.NoError(t, err)
	assert.True(t, tm.findCar(carID).IsFinalized)

	// A finalized car rejects every build mutation.
	itemID := tm.Inventory[0].ID
	_, err = env.teams.InstallPart(ctx, tm.ID, carID, itemID)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	installedID := tm.findCar(carID).InstalledParts[0].ID
	_, err = env.teams.UninstallPart(ctx, tm.ID, carID, installedID)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	_, err = env.teams.AssignDriver(ctx, tm.ID, carID, nil)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	tm, err = env.teams.UnfinalizeCar(ctx, tm.ID, carID)
	require.NoError(t, err)
	assert.False(t, tm.findCar(carID).IsFinalized)
	require.Len(t, tm.findCar(carID).InstalledParts, 5)
}

func TestFinalizeCarIncomplete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tm := env.createTeam(t)
	env.fund(t, tm.ID, 1_000_000)

	tm, err := env.teams.AddCar(ctx, tm.ID, "SN-01", "")
	require.NoError(t, err)
	carID := tm.Cars[0].ID

	part := env.seedPart(t, "V6 Turbo Hybrid", catalog.CategoryPowerUnit, 100_000, 1)
	tm, err = env.teams.PurchasePart(ctx, tm.ID, part.ID, 1)
	require.NoError(t, err)
	tm, err = env.teams.InstallPart(ctx, tm.ID, carID, tm.Inventory[0].ID)
	require.NoError(t, err)

	_, err = env.teams.FinalizeCar(ctx, tm.ID, carID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "missing driver")
	assert.Contains(t, err.Error(), "missing 4 categories")

	// The failed attempt changed nothing.
	current, err := env.teams.Get(ctx, tm.ID)
	require.NoError(t, err)
	assert.False(t, current.findCar(carID).IsFinalized)
}
