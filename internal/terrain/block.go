package terrain

import (
	"encoding/binary"
	"fmt"
)

// Block provides surface heights for 8x8 cells.
type Block interface {
	// Top returns the highest surface of a cell, false when the cell has
	// no terrain.
	Top(cell int) (int16, bool)
	// HasGeoData returns true if the block stores per-cell heights.
	HasGeoData() bool

	appendTo(buf []byte) []byte
}

// EmptyBlock has no terrain at all.
// Binary format: 1 byte type (0x03).
type EmptyBlock struct{}

func (EmptyBlock) Top(int) (int16, bool) { return 0, false }
func (EmptyBlock) HasGeoData() bool { return false }

func (EmptyBlock) appendTo(buf []byte) []byte {
	return append(buf, BlockTypeEmpty)
}

// FlatBlock has one height shared by all 64 cells.
// Binary format: 1 byte type (0x00) + 2 bytes int16 height (LE).
type FlatBlock struct {
	height int16
}

// NewFlatBlock creates a flat block at quantized height h.
func NewFlatBlock(h int16) *FlatBlock {
	return &FlatBlock{height: h}
}

func (b *FlatBlock) Top(int) (int16, bool) { return b.height, true }
func (b *FlatBlock) HasGeoData() bool { return false }

func (b *FlatBlock) appendTo(buf []byte) []byte {
	buf = append(buf, BlockTypeFlat)
	return binary.LittleEndian.AppendUint16(buf, uint16(b.height))
}

// ComplexBlock stores one height per cell.
// Binary format: 1 byte type (0x01) + 64×2 bytes.
type ComplexBlock struct {
	data [BlockArea]int16
}

// NewComplexBlock creates a complex block from per-cell heights.
func NewComplexBlock(heights [BlockArea]int16) *ComplexBlock {
	return &ComplexBlock{data: heights}
}

func (b *ComplexBlock) Top(cell int) (int16, bool) { return b.data[cell], true }
func (b *ComplexBlock) HasGeoData() bool { return true }

func (b *ComplexBlock) appendTo(buf []byte) []byte {
	buf = append(buf, BlockTypeComplex)
	for _, h := range b.data {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(h))
	}
	return buf
}

// MultilayerBlock stores any number of surfaces per cell (bridges, ledges).
// A cell with no layers is a hole.
// Binary format: 1 byte type (0x02) + per cell: 1 byte nLayers + nLayers×2 bytes.
type MultilayerBlock struct {
	data        []byte
	cellOffsets [BlockArea]int
}

// NewMultilayerBlock creates a multilayer block from per-cell layer lists.
// Lists longer than MaxLayers are truncated.
func NewMultilayerBlock(layers [BlockArea][]int16) *MultilayerBlock {
	b := &MultilayerBlock{}
	for cell, ls := range layers {
		if len(ls) > MaxLayers {
			ls = ls[:MaxLayers]
		}
		b.cellOffsets[cell] = len(b.data)
		b.data = append(b.data, byte(len(ls)))
		for _, h := range ls {
			b.data = binary.LittleEndian.AppendUint16(b.data, uint16(h))
		}
	}
	return b
}

func (b *MultilayerBlock) Top(cell int) (int16, bool) {
	offset := b.cellOffsets[cell]
	nLayers := int(b.data[offset])
	offset++

	var top int16
	found := false
	for range nLayers {
		h := int16(binary.LittleEndian.Uint16(b.data[offset:]))
		offset += 2
		if !found || h > top {
			top = h
			found = true
		}
	}
	return top, found
}

func (b *MultilayerBlock) HasGeoData() bool { return true }

func (b *MultilayerBlock) appendTo(buf []byte) []byte {
	buf = append(buf, BlockTypeMultilayer)
	return append(buf, b.data...)
}

// ParseBlock reads one block from data at the given offset.
// Returns the parsed Block and the number of bytes consumed.
func ParseBlock(data []byte, offset int) (Block, int, error) {
	if offset >= len(data) {
		return nil, 0, fmt.Errorf("%w: offset %d beyond data length %d", ErrBadTile, offset, len(data))
	}

	blockType := data[offset]
	offset++

	switch blockType {
	case BlockTypeEmpty:
		return EmptyBlock{}, 1, nil

	case BlockTypeFlat:
		if offset+2 > len(data) {
			return nil, 0, fmt.Errorf("%w: flat block truncated at offset %d", ErrBadTile, offset)
		}
		height := int16(binary.LittleEndian.Uint16(data[offset:]))
		return &FlatBlock{height: height}, 3, nil

	case BlockTypeComplex:
		need := BlockArea * 2
		if offset+need > len(data) {
			return nil, 0, fmt.Errorf("%w: complex block truncated at offset %d", ErrBadTile, offset)
		}
		b := &ComplexBlock{}
		for i := range BlockArea {
			b.data[i] = int16(binary.LittleEndian.Uint16(data[offset:]))
			offset += 2
		}
		return b, 1 + need, nil

	case BlockTypeMultilayer:
		start := offset
		cellOffsets := [BlockArea]int{}

		for cellIdx := range BlockArea {
			if offset >= len(data) {
				return nil, 0, fmt.Errorf("%w: multilayer block ends at cell %d", ErrBadTile, cellIdx)
			}
			cellOffsets[cellIdx] = offset - start
			nLayers := int(data[offset])
			if nLayers > MaxLayers {
				return nil, 0, fmt.Errorf("%w: invalid layer count %d at cell %d", ErrBadTile, nLayers, cellIdx)
			}
			offset++
			offset += nLayers * 2
		}
		if offset > len(data) {
			return nil, 0, fmt.Errorf("%w: multilayer block overflows data", ErrBadTile)
		}

		blockData := make([]byte, offset-start)
		copy(blockData, data[start:offset])

		return &MultilayerBlock{
			data:        blockData,
			cellOffsets: cellOffsets,
		}, 1 + (offset - start), nil

	default:
		return nil, 0, fmt.Errorf("%w: unknown block type 0x%02X at offset %d", ErrBadTile, blockType, offset-1)
	}
}
