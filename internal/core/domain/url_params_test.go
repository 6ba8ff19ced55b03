package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLParams_MergeOverwritesOnlySetFields(t *testing.T) {
	base := URLParams{
		TypeID:      1,
		Search:      "marina",
		PriceMin:    IntPtr(100),
		PriceMax:    IntPtr(900),
		RegionNames: []string{"Dubai"},
	}
	overlay := URLParams{PriceMin: IntPtr(500), IsFinish: BoolPtr(false)}

	got := base.Merge(overlay)

	assert.Equal(t, 1, got.TypeID)
	assert.Equal(t, "marina", got.Search)
	assert.Equal(t, 500, *got.PriceMin)
	assert.Equal(t, 900, *got.PriceMax)
	require.NotNil(t, got.IsFinish)
	assert.False(t, *got.IsFinish)
	assert.Equal(t, 100, *base.PriceMin)
}

func TestURLParams_MergeDoesNotShareSlices(t *testing.T) {
	base := URLParams{PropertyIDs: []int{1, 2}}
	got := base.Merge(URLParams{})
	got.PropertyIDs[0] = 42

	assert.Equal(t, []int{1, 2}, base.PropertyIDs)
}

func TestURLParams_Validate(t *testing.T) {
	ok := URLParams{TypeID: 1, BedroomMin: IntPtr(1), BedroomMax: IntPtr(3)}
	assert.NoError(t, ok.Validate())

	assert.ErrorIs(t, URLParams{}.Validate(), ErrInvalidTypeID)

	inverted := URLParams{TypeID: 1, AreaMin: IntPtr(10), AreaMax: IntPtr(5)}
	assert.ErrorIs(t, inverted.Validate(), ErrInvertedRange)

	negative := URLParams{TypeID: 1, PriceMax: IntPtr(-1)}
	assert.ErrorIs(t, negative.Validate(), ErrNegativeValue)
}

func TestURLParams_JSONOmitsUnsetFields(t *testing.T) {
	raw, err := json.Marshal(URLParams{TypeID: 2, PriceMin: IntPtr(0)})
	require.NoError(t, err)

	assert.JSONEq(t, `{"type_id":2,"price_min":0}`, string(raw))
}
