package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogOrder(t *testing.T) {
	catalog := Default()

	require.Equal(t, 7, catalog.Len())
	assert.Equal(t, []string{
		"A320neo",
		"A321neo",
		"A350-900",
		"A350-900ULR",
		"B787-8",
		"B787-9",
		"B777-300ER",
	}, catalog.Models())
}

func TestLookup(t *testing.T) {
	catalog := Default()

	spec, ok := catalog.Lookup("A350-900ULR")
	require.True(t, ok)
	assert.Equal(t, 18000, spec.RangeKM)
	assert.Equal(t, "133/48/8", spec.SeatLayout())

	_, ok = catalog.Lookup("A380")
	assert.False(t, ok)
}

func TestSpecsReturnsCopy(t *testing.T) {
	catalog := Default()

	specs := catalog.Specs()
	specs[0].RangeKM = 1

	fresh, ok := catalog.Lookup("A320neo")
	require.True(t, ok)
	assert.Equal(t, 6300, fresh.RangeKM)
}

func TestVersionStableAndSensitive(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Version(), b.Version())

	specs := a.Specs()
	specs[0].RangeKM = 9999
	changed := New(specs)
	assert.NotEqual(t, a.Version(), changed.Version())
}
