// Package nav discretizes terrain into an offset-column hex grid and answers
// steering queries over it.
//
// A rebuild samples heights under every cell (BuildHeights), groups cells into
// locally convex, height-coherent regions (PartitionRegions) and seeds a
// breadth-first distance field at the target (BuildDistanceField). Queries
// (Snapshot.PathDirection) go straight to the target inside a region and
// otherwise descend the distance field for a bounded number of hops.
// Service owns the grids and publishes immutable snapshots.
package nav
