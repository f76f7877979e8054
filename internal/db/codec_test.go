package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/udisondev/hexnav/internal/nav"
)

func TestGridCodecRoundTrip(t *testing.T) {
	heights := nav.NewGrid(3, 2, 1.5)
	heights.Set(nav.Hex{Col: 1, Row: 1}, nav.NoHeight)
	heights.Set(nav.Hex{Col: 2, Row: 0}, -7.25)
	regions := nav.NewGrid(3, 2, int32(0))
	regions.Set(nav.Hex{Col: 1, Row: 1}, nav.Unassigned)
	regions.Set(nav.Hex{Col: 2, Row: 0}, 1)

	data, err := EncodeGrids(heights, regions)
	require.NoError(t, err)

	gotHeights, gotRegions, err := DecodeGrids(data)
	require.NoError(t, err)
	assert.Equal(t, 3, gotHeights.Width())
	assert.Equal(t, 2, gotHeights.Depth())
	assert.Equal(t, heights.Cells(), gotHeights.Cells())
	assert.Equal(t, regions.Cells(), gotRegions.Cells())
	assert.False(t, nav.HasTerrain(gotHeights.At(nav.Hex{Col: 1, Row: 1})))
}

func TestEncodeGridsShapeMismatch(t *testing.T) {
	_, err := EncodeGrids(nav.NewGrid(2, 2, 0.0), nav.NewGrid(2, 3, int32(0)))
	assert.Error(t, err)
}

func TestDecodeGridsErrors(t *testing.T) {
	_, _, err := DecodeGrids([]byte{0xc1})
	assert.Error(t, err)

	// Valid msgpack, cell count does not match the shape.
	bad, err := msgpack.Marshal(gridBlob{Width: 3, Depth: 2, Heights: make([]float64, 4), Regions: make([]int32, 6)})
	require.NoError(t, err)
	_, _, err = DecodeGrids(bad)
	assert.Error(t, err)
}
