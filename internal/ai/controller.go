package ai

import "github.com/go-gl/mathgl/mgl64"

// Controller represents a mover driven by the tick manager.
type Controller interface {
	// Start starts the controller
	Start()

	// Stop stops the controller
	Stop()

	// CurrentIntention returns current intention
	CurrentIntention() Intention

	// Position returns the mover's world position
	Position() mgl64.Vec3

	// Tick advances the mover by one simulation tick
	Tick(tick uint64)
}

// Navigator answers steering queries. *nav.Service implements it.
type Navigator interface {
	QueryDirection(from mgl64.Vec3) mgl64.Vec3
}
