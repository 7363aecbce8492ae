// internal/sponsors/implementation_test.go
package sponsors

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddock/internal/apperr"
)

func newTestService() Service {
	return NewService(NewInMemoryRepository())
}

func TestSponsorDirectoryCRUD(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sp, err := svc.Create(ctx, "Apex Fuels", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "Apex Fuels", sp.Name)
	assert.Equal(t, 2026, sp.Date.Year())

	got, err := svc.Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, sp.ID, got.ID)

	updated, err := svc.Update(ctx, sp.ID, "Apex Energy", "")
	require.NoError(t, err)
	assert.Equal(t, "Apex Energy", updated.Name)
	assert.Equal(t, sp.Date, updated.Date)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.Delete(ctx, sp.ID))
	_, err = svc.Get(ctx, sp.ID)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestSponsorDuplicateName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Apex Fuels", "")
	require.NoError(t, err)

	// Matching is case-insensitive.
	_, err = svc.Create(ctx, "apex fuels", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
}

func TestSponsorValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "  ", "")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = svc.Create(ctx, "Apex Fuels", "not-a-date")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = svc.Update(ctx, uuid.New(), "Anything", "")
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	err = svc.Delete(ctx, uuid.New())
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestSponsorDateDefaultsToNow(t *testing.T) {
	svc := newTestService()

	before := time.Now().UTC()
	sp, err := svc.Create(context.Background(), "Vortex Telecom", "")
	require.NoError(t, err)
	assert.False(t, sp.Date.Before(before))

	// RFC 3339 stamps are accepted too.
	sp2, err := svc.Create(context.Background(), "Ion Dynamics", "2026-05-04T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), sp2.Date)
}
