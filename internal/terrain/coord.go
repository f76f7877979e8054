package terrain

import "math"

// CellX converts world X to a global heightmap column.
// Positions west of the map give negative columns.
func CellX(worldX float64) int {
	return int(math.Floor((worldX - WorldMinX) / CellSpacing))
}

// CellZ converts world Z to a global heightmap row.
func CellZ(worldZ float64) int {
	return int(math.Floor((worldZ - WorldMinZ) / CellSpacing))
}

// WorldX converts a heightmap column to world X (centred in cell).
func WorldX(cellX int) float64 {
	return WorldMinX + (float64(cellX)+0.5)*CellSpacing
}

// WorldZ converts a heightmap row to world Z (centred in cell).
func WorldZ(cellZ int) float64 {
	return WorldMinZ + (float64(cellZ)+0.5)*CellSpacing
}

// TileXZ returns tile indices from global cell coordinates.
func TileXZ(cellX, cellZ int) (int, int) {
	return cellX / TileCells, cellZ / TileCells
}

// BlockIndex returns the block index within a tile from global cell coordinates.
func BlockIndex(cellX, cellZ int) int {
	localX := (cellX % TileCells) / BlockCells
	localZ := (cellZ % TileCells) / BlockCells
	return localX*TileBlocks + localZ
}

// CellIndex returns the cell index within a block from global cell coordinates.
func CellIndex(cellX, cellZ int) int {
	return (cellX%BlockCells)*BlockCells + cellZ%BlockCells
}

// Quantize converts a world height to its stored form, clamping to int16.
func Quantize(h float64) int16 {
	q := math.Round(h / HeightQuantum)
	switch {
	case q > math.MaxInt16:
		return math.MaxInt16
	case q < math.MinInt16:
		return math.MinInt16
	}
	return int16(q)
}

// Dequantize converts a stored height back to world units.
func Dequantize(q int16) float64 {
	return float64(q) * HeightQuantum
}
