package usecase

import (
	"context"
	"errors"
	"testing"

	"real-estate-system/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySort_PageAware(t *testing.T) {
	listings := &fakeListings{page: &domain.ListingsPage{TotalCount: 42, CurrentPage: 1, ItemsPerPage: 20}}
	uc := NewApplySortUseCase(listings)

	out, err := uc.Execute(context.Background(), domain.ApplySortRequest{
		Filters:   domain.URLParams{TypeID: 1, PriceMin: domain.IntPtr(1000), Sort: "max", SortName: "Highest price"},
		TypeID:    1,
		Fixed:     domain.URLParams{RegionName: "Downtown"},
		Sort:      "min",
		PageAware: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Page)
	assert.Equal(t, "min", out.Filters.Sort)
	assert.Equal(t, "Lowest price", out.Filters.SortName)
	assert.Equal(t, "Downtown", out.Filters.RegionName)
	assert.Equal(t, domain.IntPtr(1000), out.Filters.PriceMin)
	assert.Equal(t, int64(42), out.Result.TotalCount)

	require.Len(t, listings.calls, 1)
	assert.Equal(t, out.Filters, listings.calls[0].params)
	assert.Equal(t, 0, listings.calls[0].offset)
}

func TestApplySort_MostRecentClearsSort(t *testing.T) {
	listings := &fakeListings{}
	uc := NewApplySortUseCase(listings)

	out, err := uc.Execute(context.Background(), domain.ApplySortRequest{
		Filters: domain.URLParams{TypeID: 2, Sort: "max", SortName: "Highest price"},
		TypeID:  2,
		Sort:    "",
		PerPage: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Filters.Sort)
	assert.Equal(t, "most recent", out.Filters.SortName)
	assert.Equal(t, 5, listings.calls[0].limit)
}

func TestApplySort_UnknownSort(t *testing.T) {
	listings := &fakeListings{}
	uc := NewApplySortUseCase(listings)

	_, err := uc.Execute(context.Background(), domain.ApplySortRequest{TypeID: 1, Sort: "cheapest"})
	assert.ErrorIs(t, err, domain.ErrUnknownSort)
	assert.Empty(t, listings.calls)
}

func TestApplySort_StorageError(t *testing.T) {
	cause := errors.New("db down")
	uc := NewApplySortUseCase(&fakeListings{err: cause})

	_, err := uc.Execute(context.Background(), domain.ApplySortRequest{TypeID: 1, Sort: "max", PageAware: true})
	assert.ErrorIs(t, err, cause)
}
