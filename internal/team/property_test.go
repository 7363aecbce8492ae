// internal/team/property_test.go
package team

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"paddock/internal/catalog"
)

// The budget total must equal the sum of recorded contributions no
// matter how sponsors come and go around the ledger.
func TestBudgetTotalAlwaysMatchesLedger(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := newTestEnv()
		ctx := context.Background()
		tm, err := env.teams.Create(ctx, "Scuderia Nova", "Italy")
		require.NoError(t, err)

		sum := 0.0
		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				tm, err = env.teams.AddSponsor(ctx, tm.ID, rapid.StringMatching(`[A-Z][a-z]{2,8}`).Draw(rt, "name"), "")
				require.NoError(rt, err)
			case 1:
				if len(tm.Sponsors) == 0 {
					continue
				}
				sponsor := tm.Sponsors[rapid.IntRange(0, len(tm.Sponsors)-1).Draw(rt, "sponsor")]
				amount := float64(rapid.IntRange(0, 1_000_000).Draw(rt, "amount"))
				tm, err = env.teams.AddContribution(ctx, tm.ID, sponsor.ID, amount, time.Time{}, "")
				require.NoError(rt, err)
				sum += amount
			case 2:
				if len(tm.Sponsors) == 0 {
					continue
				}
				sponsor := tm.Sponsors[rapid.IntRange(0, len(tm.Sponsors)-1).Draw(rt, "removed")]
				tm, err = env.teams.RemoveSponsor(ctx, tm.ID, sponsor.ID)
				require.NoError(rt, err)
			}
		}

		require.Equal(rt, sum, tm.Budget.Total)
	})
}

// Units are conserved across purchase, install, swap, uninstall and car
// removal: catalog stock plus team holdings never changes in total.
func TestUnitConservation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := newTestEnv()
		ctx := context.Background()
		tm, err := env.teams.Create(ctx, "Scuderia Nova", "Italy")
		require.NoError(t, err)
		env.fund(t, tm.ID, 100_000_000)

		initialStock := rapid.IntRange(1, 6).Draw(rt, "stock")
		part, err := env.parts.Create(ctx, "PU Spec A", catalog.CategoryPowerUnit, 1_000, initialStock, catalog.Performance{})
		require.NoError(rt, err)

		tm, err = env.teams.AddCar(ctx, tm.ID, "SN-01", "")
		require.NoError(rt, err)
		carID := tm.Cars[0].ID

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				_, _ = env.teams.PurchasePart(ctx, tm.ID, part.ID, rapid.IntRange(1, 3).Draw(rt, "qty"))
			case 1:
				tm, _ = env.teams.Get(ctx, tm.ID)
				for _, item := range tm.Inventory {
					_, _ = env.teams.InstallPart(ctx, tm.ID, carID, item.ID)
					break
				}
			case 2:
				tm, _ = env.teams.Get(ctx, tm.ID)
				if car := tm.findCar(carID); car != nil && len(car.InstalledParts) > 0 {
					_, _ = env.teams.UninstallPart(ctx, tm.ID, carID, car.InstalledParts[0].ID)
				}
			case 3:
				if rapid.Bool().Draw(rt, "teardown") {
					if _, err := env.teams.RemoveCar(ctx, tm.ID, carID); err == nil {
						tm, err = env.teams.AddCar(ctx, tm.ID, "SN-01", "")
						require.NoError(rt, err)
						tm, _ = env.teams.Get(ctx, tm.ID)
						carID = tm.Cars[0].ID
					}
				}
			}
		}

		tm, err = env.teams.Get(ctx, tm.ID)
		require.NoError(rt, err)
		current, err := env.parts.Get(ctx, part.ID)
		require.NoError(rt, err)

		held := 0
		for _, item := range tm.Inventory {
			held += item.Qty
		}
		for _, car := range tm.Cars {
			held += len(car.InstalledParts)
		}
		require.Equal(rt, initialStock, current.Stock+held)
	})
}

// A car never carries two parts in the same category, whatever sequence
// of installs ran.
func TestOnePartPerCategory(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := newTestEnv()
		ctx := context.Background()
		tm, err := env.teams.Create(ctx, "Scuderia Nova", "Italy")
		require.NoError(t, err)
		env.fund(t, tm.ID, 100_000_000)

		tm, err = env.teams.AddCar(ctx, tm.ID, "SN-01", "")
		require.NoError(rt, err)
		carID := tm.Cars[0].ID

		categories := catalog.RequiredCategories()
		variants := rapid.IntRange(2, 4).Draw(rt, "variants")
		for v := 0; v < variants; v++ {
			category := categories[rapid.IntRange(0, len(categories)-1).Draw(rt, "category")]
			part, err := env.parts.Create(ctx, rapid.StringMatching(`[A-Z]{2}-[0-9]{3}`).Draw(rt, "name"), category, 1_000, 5, catalog.Performance{})
			if err != nil {
				continue // duplicate generated name
			}
			tm, err = env.teams.PurchasePart(ctx, tm.ID, part.ID, 2)
			require.NoError(rt, err)
		}

		tm, _ = env.teams.Get(ctx, tm.ID)
		installs := rapid.IntRange(1, 10).Draw(rt, "installs")
		for i := 0; i < installs; i++ {
			if len(tm.Inventory) == 0 {
				break
			}
			item := tm.Inventory[rapid.IntRange(0, len(tm.Inventory)-1).Draw(rt, "item")]
			if next, err := env.teams.InstallPart(ctx, tm.ID, carID, item.ID); err == nil {
				tm = next
			}
		}

		car := tm.findCar(carID)
		seen := map[string]bool{}
		for _, installed := range car.InstalledParts {
			require.False(rt, seen[installed.CategoryKey], "category %q installed twice", installed.CategoryKey)
			seen[installed.CategoryKey] = true
		}
	})
}
