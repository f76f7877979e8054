package db

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/udisondev/hexnav/internal/nav"
)

// gridBlob is the msgpack form of the static grids of a snapshot.
// Missing cells are derived from the heights on decode.
type gridBlob struct {
	Width   int       `msgpack:"w"`
	Depth   int       `msgpack:"d"`
	Heights []float64 `msgpack:"h"`
	Regions []int32   `msgpack:"r"`
}

// EncodeGrids serializes the height and region grids.
func EncodeGrids(heights *nav.Grid[float64], regions *nav.Grid[int32]) ([]byte, error) {
	if heights.Width() != regions.Width() || heights.Depth() != regions.Depth() {
		return nil, fmt.Errorf("encoding grids: heights %dx%d, regions %dx%d",
			heights.Width(), heights.Depth(), regions.Width(), regions.Depth())
	}
	data, err := msgpack.Marshal(gridBlob{
		Width:   heights.Width(),
		Depth:   heights.Depth(),
		Heights: heights.Cells(),
		Regions: regions.Cells(),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding grids: %w", err)
	}
	return data, nil
}

// DecodeGrids restores grids written by EncodeGrids.
func DecodeGrids(data []byte) (heights *nav.Grid[float64], regions *nav.Grid[int32], err error) {
	var blob gridBlob
	if err := msgpack.Unmarshal(data, &blob); err != nil {
		return nil, nil, fmt.Errorf("decoding grids: %w", err)
	}
	heights, err = nav.GridFrom(blob.Width, blob.Depth, blob.Heights)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding heights: %w", err)
	}
	regions, err = nav.GridFrom(blob.Width, blob.Depth, blob.Regions)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding regions: %w", err)
	}
	return heights, regions, nil
}
