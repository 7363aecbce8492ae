// internal/catalog/implementation_test.go
package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddock/internal/apperr"
)

func newTestService() Service {
	return NewService(NewInMemoryRepository())
}

func TestCreatePart(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	part, err := svc.Create(ctx, "V6 Turbo Hybrid", CategoryPowerUnit, 1_200_000, 3, Performance{P: 9, A: 2, M: 5})
	require.NoError(t, err)
	assert.Equal(t, "V6 Turbo Hybrid", part.Name)
	assert.Equal(t, CategoryPowerUnit, part.Category)
	assert.Equal(t, 3, part.Stock)
	assert.NotEqual(t, uuid.Nil, part.ID)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCreatePartValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name     string
		partName string
		category string
		price    float64
		stock    int
		perf     Performance
	}{
		{"empty name", "  ", CategoryTires, 100, 1, Performance{}},
		{"unknown category", "Wing", "Rear Wing", 100, 1, Performance{}},
		{"negative price", "Soft Compound", CategoryTires, -1, 1, Performance{}},
		{"negative stock", "Soft Compound", CategoryTires, 100, -1, Performance{}},
		{"rating above 9", "Soft Compound", CategoryTires, 100, 1, Performance{P: 10}},
		{"negative rating", "Soft Compound", CategoryTires, 100, 1, Performance{M: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.partName, tc.category, tc.price, tc.stock, tc.perf)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
		})
	}
}

func TestCreatePartDuplicateName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "DRS Wing", CategoryAeroPkg, 500, 2, Performance{A: 8})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "DRS Wing", CategoryAeroPkg, 600, 1, Performance{A: 7})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
}

func TestGetPartNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestRestock(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	part, err := svc.Create(ctx, "8-Speed Seamless", CategoryGearbox, 250_000, 1, Performance{M: 7})
	require.NoError(t, err)

	updated, err := svc.Restock(ctx, part.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stock)

	_, err = svc.Restock(ctx, part.ID, 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestDecrementStock(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	part, err := svc.Create(ctx, "Pushrod Front", CategorySuspension, 80_000, 2, Performance{M: 6})
	require.NoError(t, err)

	updated, err := svc.DecrementStock(ctx, part.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)

	// The row is exhausted; further decrements fail without going negative.
	_, err = svc.DecrementStock(ctx, part.ID, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "insufficient stock")

	current, err := svc.Get(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Stock)
}

func TestDecrementStockConcurrentLastUnit(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	part, err := svc.Create(ctx, "Halo Mount", CategorySuspension, 10_000, 1, Performance{})
	require.NoError(t, err)

	const racers = 16
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		go func() {
			_, err := svc.DecrementStock(ctx, part.ID, 1)
			results <- err
		}()
	}

	wins := 0
	for i := 0; i < racers; i++ {
		if err := <-results; err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	current, err := svc.Get(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Stock)
}

func TestRequiredCategories(t *testing.T) {
	got := RequiredCategories()
	require.Len(t, got, 5)
	for _, c := range got {
		assert.True(t, IsRequiredCategory(c))
	}
	assert.False(t, IsRequiredCategory("power unit"))
	assert.False(t, IsRequiredCategory(""))
}
