// Package terrain provides height samplers for the navigation grid: a tiled
// heightmap engine backed by .hmap files and a procedural noise field.
package terrain
