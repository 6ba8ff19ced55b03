package searchparams

import (
	"testing"

	"real-estate-system/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sortRecorder struct {
	filters   []domain.URLParams
	pages     []int
	fetched   []domain.URLParams
	collapsed int
}

func (r *sortRecorder) config(current domain.URLParams) SortHandlerConfig {
	return SortHandlerConfig{
		Current:          func() domain.URLParams { return current },
		TypeID:           1,
		Fixed:            domain.URLParams{RegionName: "Dubai Marina"},
		SetFilters:       func(p domain.URLParams) { r.filters = append(r.filters, p) },
		SetPage:          func(p int) { r.pages = append(r.pages, p) },
		Fetch:            func(p domain.URLParams) { r.fetched = append(r.fetched, p) },
		CollapseOverlays: func() { r.collapsed++ },
	}
}

func TestPaginatedSortHandler_LowestPrice(t *testing.T) {
	rec := &sortRecorder{}
	handler := NewPaginatedSortHandler(SortLowestPrice, rec.config(domain.URLParams{PriceMin: domain.IntPtr(10)}))

	handler()

	require.Len(t, rec.filters, 1)
	got := rec.filters[0]
	assert.Equal(t, "min", got.Sort)
	assert.Equal(t, "Lowest price", got.SortName)
	assert.Equal(t, 1, got.TypeID)
	assert.Equal(t, "Dubai Marina", got.RegionName)
	assert.Equal(t, 10, *got.PriceMin)

	assert.Equal(t, []int{1}, rec.pages)
	require.Len(t, rec.fetched, 1)
	assert.Equal(t, got, rec.fetched[0])
	assert.Equal(t, 1, rec.collapsed)
}

func TestPaginatedSortHandler_MostRecentClearsSort(t *testing.T) {
	rec := &sortRecorder{}
	handler := NewPaginatedSortHandler(SortMostRecent, rec.config(domain.URLParams{Sort: "max", SortName: "Highest price"}))

	handler()

	require.Len(t, rec.fetched, 1)
	assert.Empty(t, rec.fetched[0].Sort)
	assert.Equal(t, "most recent", rec.fetched[0].SortName)
}

func TestPaginatedSortHandler_ReadsStateOnEachCall(t *testing.T) {
	current := domain.URLParams{Search: "first"}
	var fetched []domain.URLParams
	handler := NewPaginatedSortHandler(SortHighestPrice, SortHandlerConfig{
		Current: func() domain.URLParams { return current },
		TypeID:  2,
		Fetch:   func(p domain.URLParams) { fetched = append(fetched, p) },
	})

	handler()
	current = domain.URLParams{Search: "second"}
	handler()

	require.Len(t, fetched, 2)
	assert.Equal(t, "first", fetched[0].Search)
	assert.Equal(t, "second", fetched[1].Search)
	assert.Equal(t, "max", fetched[1].Sort)
}

func TestSearchSortHandler_DoesNotResetPage(t *testing.T) {
	rec := &sortRecorder{}
	var searched []domain.URLParams
	handler := NewSearchSortHandler(SortHighestPrice, rec.config(domain.URLParams{}), func(p domain.URLParams) {
		searched = append(searched, p)
	})

	handler()

	assert.Empty(t, rec.pages)
	assert.Empty(t, rec.fetched)
	require.Len(t, searched, 1)
	assert.Equal(t, "Highest price", searched[0].SortName)
	assert.Len(t, rec.filters, 1)
	assert.Equal(t, 1, rec.collapsed)
}

func TestParseSortOption(t *testing.T) {
	opt, err := ParseSortOption("")
	require.NoError(t, err)
	assert.Equal(t, SortMostRecent, opt)

	opt, err = ParseSortOption("MAX")
	require.NoError(t, err)
	assert.Equal(t, SortHighestPrice, opt)

	opt, err = ParseSortOption("min")
	require.NoError(t, err)
	assert.Equal(t, SortLowestPrice, opt)

	_, err = ParseSortOption("cheapest")
	assert.ErrorIs(t, err, domain.ErrUnknownSort)
}
