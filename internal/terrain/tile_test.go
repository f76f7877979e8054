package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hexnav/internal/nav"
)

// stepSampler rises by one world unit per block along X inside each tile and
// has a hole wherever Z is inside [holeMin, holeMax).
func stepSampler(holeMin, holeMax float64) nav.HeightSampler {
	return nav.SamplerFunc(func(x, z float64) (float64, bool) {
		if z >= holeMin && z < holeMax {
			return 0, false
		}
		return float64((CellX(x) % TileCells) / BlockCells), true
	})
}

func TestLoadTileRoundTrip(t *testing.T) {
	tile := NewEmptyTile()
	var heights [BlockArea]int16
	for i := range heights {
		heights[i] = int16(i)
	}
	var layers [BlockArea][]int16
	layers[3] = []int16{5, 80}
	tile.SetBlock(0, 0, NewFlatBlock(40))
	tile.SetBlock(1, 2, NewComplexBlock(heights))
	tile.SetBlock(15, 15, NewMultilayerBlock(layers))

	loaded, err := LoadTile(tile.Encode())
	require.NoError(t, err)

	h, ok := loaded.Top(0, 0)
	require.True(t, ok)
	assert.InDelta(t, Dequantize(40), h, 1e-9)

	h, ok = loaded.Top(1*BlockCells+1, 2*BlockCells+1)
	require.True(t, ok)
	assert.InDelta(t, Dequantize(int16(BlockCells+1)), h, 1e-9)

	h, ok = loaded.Top(15*BlockCells, 15*BlockCells+3)
	require.True(t, ok)
	assert.InDelta(t, Dequantize(80), h, 1e-9)

	_, ok = loaded.Top(5*BlockCells, 5*BlockCells)
	assert.False(t, ok)
}

func TestLoadTileErrors(t *testing.T) {
	good := NewEmptyTile().Encode()

	tests := []struct {
		name string
		data []byte
	}{
		{"no header", []byte("NOPE")},
		{"short", []byte("HM")},
		{"truncated", good[:len(good)-1]},
		{"trailing bytes", append(append([]byte(nil), good...), 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTile(tt.data)
			assert.ErrorIs(t, err, ErrBadTile)
		})
	}
}

func TestBakeTilePicksCompactBlocks(t *testing.T) {
	// Tile (8, 8) starts at world origin; the hole covers block row 2 fully
	// and half of block row 3.
	holeMin := WorldZ(8*TileCells+2*BlockCells) - 0.5
	holeMax := WorldZ(8*TileCells+3*BlockCells+4) - 0.5
	tile := BakeTile(8, 8, stepSampler(holeMin, holeMax))

	assert.IsType(t, &FlatBlock{}, tile.Block(0, 0))
	assert.IsType(t, EmptyBlock{}, tile.Block(0, 2))
	assert.IsType(t, &MultilayerBlock{}, tile.Block(0, 3))

	cx := 8*TileCells + 4*BlockCells
	cz := 8*TileCells + 1
	h, ok := tile.Top(cx, cz)
	require.True(t, ok)
	assert.InDelta(t, 4.0, h, HeightQuantum)

	_, ok = tile.Top(cx, 8*TileCells+3*BlockCells+1)
	assert.False(t, ok)
	_, ok = tile.Top(cx, 8*TileCells+3*BlockCells+6)
	assert.True(t, ok)
}

func TestBakeTileComplexBlock(t *testing.T) {
	sampler := nav.SamplerFunc(func(x, z float64) (float64, bool) {
		return float64(CellZ(z) % BlockCells), true
	})
	tile := BakeTile(0, 0, sampler)
	assert.IsType(t, &ComplexBlock{}, tile.Block(3, 3))

	h, ok := tile.Top(3*BlockCells, 3*BlockCells+5)
	require.True(t, ok)
	assert.InDelta(t, 5.0, h, HeightQuantum)
}
