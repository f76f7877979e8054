package terrain

// Heightmap grid dimensions.
const (
	MaxTilesX   = 16
	MaxTilesZ   = 16
	TileBlocks  = 16 // blocks per tile side
	BlockCells  = 8  // cells per block side
	BlockArea   = BlockCells * BlockCells // 64
	TileCells   = TileBlocks * BlockCells // 128
	TileArea    = TileBlocks * TileBlocks // 256 blocks
	CellSpacing = 1.0                     // world units per heightmap cell
)

// World extent covered by the heightmap, centred on the origin.
const (
	WorldMinX = -MaxTilesX * TileCells / 2 * CellSpacing
	WorldMinZ = -MaxTilesZ * TileCells / 2 * CellSpacing
)

// HeightQuantum is the world height of one stored int16 step.
const HeightQuantum = 0.05

// Block type identifiers in the .hmap binary format.
const (
	BlockTypeFlat       byte = 0x00
	BlockTypeComplex    byte = 0x01
	BlockTypeMultilayer byte = 0x02
	BlockTypeEmpty      byte = 0x03
)

// MaxLayers bounds the surfaces stored for one multilayer cell.
const MaxLayers = 16

// TileExt is the file extension of tile files.
const TileExt = ".hmap"

var tileMagic = [4]byte{'H', 'M', 'A', 'P'}
