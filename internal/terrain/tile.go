package terrain

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/udisondev/hexnav/internal/nav"
)

// ErrBadTile is returned for malformed .hmap data.
var ErrBadTile = errors.New("malformed heightmap tile")

// Tile is one loaded heightmap file: 16×16 blocks of 8×8 cells.
type Tile struct {
	blocks [TileArea]Block
}

// LoadTile parses a .hmap file's raw bytes into a Tile.
func LoadTile(data []byte) (*Tile, error) {
	if len(data) < len(tileMagic) || !bytes.Equal(data[:len(tileMagic)], tileMagic[:]) {
		return nil, fmt.Errorf("%w: missing header", ErrBadTile)
	}

	t := &Tile{}
	offset := len(tileMagic)
	for i := range TileArea {
		block, consumed, err := ParseBlock(data, offset)
		if err != nil {
			return nil, fmt.Errorf("load tile block %d: %w", i, err)
		}
		t.blocks[i] = block
		offset += consumed
	}
	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadTile, len(data)-offset)
	}
	return t, nil
}

// Encode serializes the tile in .hmap format.
func (t *Tile) Encode() []byte {
	buf := append([]byte(nil), tileMagic[:]...)
	for _, b := range t.blocks {
		buf = b.appendTo(buf)
	}
	return buf
}

// Block returns the block at (blockX, blockZ) within the tile.
func (t *Tile) Block(blockX, blockZ int) Block {
	return t.blocks[blockX*TileBlocks+blockZ]
}

// SetBlock replaces the block at (blockX, blockZ).
func (t *Tile) SetBlock(blockX, blockZ int, b Block) {
	t.blocks[blockX*TileBlocks+blockZ] = b
}

// Top returns the highest surface at global cell coordinates inside this tile.
func (t *Tile) Top(cellX, cellZ int) (float64, bool) {
	q, ok := t.blocks[BlockIndex(cellX, cellZ)].Top(CellIndex(cellX, cellZ))
	if !ok {
		return 0, false
	}
	return Dequantize(q), true
}

// NewEmptyTile creates a tile without terrain.
func NewEmptyTile() *Tile {
	t := &Tile{}
	for i := range t.blocks {
		t.blocks[i] = EmptyBlock{}
	}
	return t
}

// BakeTile samples sampler at every cell centre of tile (tileX, tileZ) and
// stores the result in the most compact block type per block.
func BakeTile(tileX, tileZ int, sampler nav.HeightSampler) *Tile {
	t := &Tile{}
	for bx := range TileBlocks {
		for bz := range TileBlocks {
			var heights [BlockArea]int16
			var hit [BlockArea]bool
			hits := 0
			for cx := range BlockCells {
				for cz := range BlockCells {
					cellX := tileX*TileCells + bx*BlockCells + cx
					cellZ := tileZ*TileCells + bz*BlockCells + cz
					h, ok := sampler.SampleHeight(WorldX(cellX), WorldZ(cellZ))
					if !ok {
						continue
					}
					idx := cx*BlockCells + cz
					heights[idx] = Quantize(h)
					hit[idx] = true
					hits++
				}
			}
			t.SetBlock(bx, bz, packBlock(heights, hit, hits))
		}
	}
	return t
}

func packBlock(heights [BlockArea]int16, hit [BlockArea]bool, hits int) Block {
	switch hits {
	case 0:
		return EmptyBlock{}
	case BlockArea:
		flat := true
		for _, h := range heights[1:] {
			if h != heights[0] {
				flat = false
				break
			}
		}
		if flat {
			return NewFlatBlock(heights[0])
		}
		return NewComplexBlock(heights)
	}

	var layers [BlockArea][]int16
	for i, ok := range hit {
		if ok {
			layers[i] = []int16{heights[i]}
		}
	}
	return NewMultilayerBlock(layers)
}
