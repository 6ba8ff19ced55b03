package searchparams

import (
	"testing"

	"real-estate-system/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDevelopers = []domain.Developer{
	{ID: 7, Name: "Emaar Properties"},
	{ID: 12, Name: "Damac"},
	{ID: 31, Name: "Sobha Realty"},
}

func TestSplitSegments(t *testing.T) {
	assert.Equal(t, []string{"buy", "villa", "above-5"}, SplitSegments("/buy//villa/above-5/"))
	assert.Equal(t, []string{"sobha realty"}, SplitSegments("/sobha%20realty"))
	assert.Empty(t, SplitSegments("/"))
}

func TestExtractBedrooms(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		min, max *int
	}{
		{"range", []string{"buy", "with-1-to-3-bedrooms"}, domain.IntPtr(1), domain.IntPtr(3)},
		{"range wins over min and max", []string{"more-than-5-bedrooms", "with-2-to-4-bedrooms", "under-9-bedrooms"}, domain.IntPtr(2), domain.IntPtr(4)},
		{"min only", []string{"more-than-2-bedrooms"}, domain.IntPtr(2), nil},
		{"max only", []string{"under-4-bedrooms"}, nil, domain.IntPtr(4)},
		{"min and max segments", []string{"more-than-2-bedrooms", "under-4-bedrooms"}, domain.IntPtr(2), domain.IntPtr(4)},
		{"no match", []string{"villa", "with-bedrooms"}, nil, nil},
		{"partial segment does not match", []string{"xwith-1-to-3-bedrooms"}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBedrooms(tt.segments)
			assert.Equal(t, tt.min, got.BedroomMin)
			assert.Equal(t, tt.max, got.BedroomMax)
			assert.Nil(t, got.PriceMin)
			assert.Nil(t, got.AreaMin)
		})
	}
}

func TestExtractPrice(t *testing.T) {
	got := ExtractPrice([]string{"buy", "above-200000"})
	assert.Equal(t, domain.URLParams{PriceMin: domain.IntPtr(200000)}, got)

	got = ExtractPrice([]string{"below-100", "between-10-50", "above-5"})
	assert.Equal(t, domain.URLParams{PriceMin: domain.IntPtr(10), PriceMax: domain.IntPtr(50)}, got)

	got = ExtractPrice([]string{"below-900"})
	assert.Equal(t, domain.URLParams{PriceMax: domain.IntPtr(900)}, got)

	// area segments are not price segments
	got = ExtractPrice([]string{"area-more-than-500-sqft", "area-between-1-2-sqft"})
	assert.Equal(t, domain.URLParams{}, got)
}

func TestExtractArea(t *testing.T) {
	got := ExtractArea([]string{"area-between-800-1500-sqft", "area-under-100-sqft"})
	assert.Equal(t, domain.URLParams{AreaMin: domain.IntPtr(800), AreaMax: domain.IntPtr(1500)}, got)

	got = ExtractArea([]string{"area-more-than-500-sqft"})
	assert.Equal(t, domain.URLParams{AreaMin: domain.IntPtr(500)}, got)

	got = ExtractArea([]string{"area-under-2000-sqft"})
	assert.Equal(t, domain.URLParams{AreaMax: domain.IntPtr(2000)}, got)
}

func TestExtractArea_RequiresSqftSuffix(t *testing.T) {
	for _, seg := range []string{"area-above-500", "area-more-than-500", "area-between-1-2"} {
		got := ExtractArea([]string{seg})
		assert.Nil(t, got.AreaMin, seg)
		assert.Nil(t, got.AreaMax, seg)
	}
}

func TestExtractors_OverflowFailsClosed(t *testing.T) {
	got := ExtractPrice([]string{"above-99999999999999999999999"})
	assert.Nil(t, got.PriceMin)

	got = ExtractBedrooms([]string{"with-1-to-99999999999999999999999-bedrooms"})
	assert.Equal(t, domain.IntPtr(1), got.BedroomMin)
	assert.Nil(t, got.BedroomMax)
}

func TestExtractDeveloper(t *testing.T) {
	got := ExtractDeveloper([]string{"buy", "developed-by-emaar-properties"}, testDevelopers)
	require.NotNil(t, got.DeveloperID)
	assert.Equal(t, 7, *got.DeveloperID)
	assert.Equal(t, "Emaar Properties", got.DeveloperName)

	got = ExtractDeveloper([]string{"developed-by-DAMAC-properties"}, testDevelopers)
	require.NotNil(t, got.DeveloperID)
	assert.Equal(t, 12, *got.DeveloperID)

	got = ExtractDeveloper([]string{"developed-by-sobha-realty"}, testDevelopers)
	require.NotNil(t, got.DeveloperID)
	assert.Equal(t, 31, *got.DeveloperID)
}

func TestExtractDeveloper_NoMatch(t *testing.T) {
	got := ExtractDeveloper([]string{"developed-by-nakheel-properties"}, testDevelopers)
	assert.Nil(t, got.DeveloperID)
	assert.Empty(t, got.DeveloperName)

	got = ExtractDeveloper([]string{"developed-by-emaar-properties"}, nil)
	assert.Equal(t, domain.URLParams{}, got)
}
