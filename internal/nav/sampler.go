package nav

import "github.com/go-gl/mathgl/mgl64"

// HeightSampler answers vertical terrain queries. ok is false when no
// terrain exists at (x, z).
type HeightSampler interface {
	SampleHeight(x, z float64) (height float64, ok bool)
}

// SamplerFunc adapts a plain function to HeightSampler.
type SamplerFunc func(x, z float64) (float64, bool)

func (f SamplerFunc) SampleHeight(x, z float64) (float64, bool) {
	return f(x, z)
}

// PositionProvider reports where the tracked target currently is.
type PositionProvider interface {
	CurrentTargetPosition() mgl64.Vec3
}

// StaticPosition is a PositionProvider that never moves.
type StaticPosition mgl64.Vec3

func (p StaticPosition) CurrentTargetPosition() mgl64.Vec3 {
	return mgl64.Vec3(p)
}
