package ai

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hexnav/internal/nav"
)

type fixedSteer mgl64.Vec3

func (f fixedSteer) QueryDirection(mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3(f) }

func TestChaserNotRunningDoesNothing(t *testing.T) {
	c := NewChaserAI(1, mgl64.Vec3{}, fixedSteer{1, 0, 0}, nil, nil, 1, 0)
	c.Tick(0)
	assert.Equal(t, mgl64.Vec3{}, c.Position())
	assert.Zero(t, c.Moved())
}

func TestChaserStepIsClampedToSpeed(t *testing.T) {
	tests := []struct {
		name  string
		steer mgl64.Vec3
		want  mgl64.Vec3
	}{
		{"long vector", mgl64.Vec3{10, 0, 0}, mgl64.Vec3{2, 0, 0}},
		{"short vector", mgl64.Vec3{0, 0, 0.5}, mgl64.Vec3{0, 0, 0.5}},
		{"vertical part ignored", mgl64.Vec3{0, 40, 3}, mgl64.Vec3{0, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChaserAI(1, mgl64.Vec3{}, fixedSteer(tt.steer), nil, nil, 2, 0)
			c.Start()
			c.Tick(0)
			assert.True(t, c.Position().ApproxEqual(tt.want), "got %v", c.Position())
			assert.Equal(t, IntentionChase, c.CurrentIntention())
		})
	}
}

func TestChaserZeroSteeringWaits(t *testing.T) {
	EnableDebugLogging(true)
	defer EnableDebugLogging(false)

	c := NewChaserAI(1, mgl64.Vec3{3, 0, 3}, fixedSteer{}, nil, nil, 1, 0)
	c.Start()
	c.Tick(0)

	assert.Equal(t, mgl64.Vec3{3, 0, 3}, c.Position())
	assert.Equal(t, IntentionIdle, c.CurrentIntention())
	assert.Zero(t, c.Moved())
}

func TestChaserSnapsToGround(t *testing.T) {
	ground := nav.SamplerFunc(func(x, z float64) (float64, bool) { return x * 2, true })
	c := NewChaserAI(1, mgl64.Vec3{}, fixedSteer{1, 0, 0}, ground, nil, 1, 0)
	c.Start()
	c.Tick(0)

	assert.InDelta(t, 1.0, c.Position().X(), 1e-9)
	assert.InDelta(t, 2.0, c.Position().Y(), 1e-9)
}

func TestChaserArrives(t *testing.T) {
	target := nav.StaticPosition{0.5, 0, 0}
	c := NewChaserAI(1, mgl64.Vec3{}, fixedSteer{1, 0, 0}, nil, target, 1, 1)
	c.Start()
	c.Tick(0)

	assert.Equal(t, IntentionArrived, c.CurrentIntention())
	assert.Zero(t, c.Moved())
}

func TestChaserReachesTargetThroughService(t *testing.T) {
	flat := nav.SamplerFunc(func(x, z float64) (float64, bool) { return 0, true })
	target := nav.StaticPosition{12, 0, 3}

	opts := nav.DefaultOptions()
	opts.HalfExtent = 24
	svc := nav.NewService(flat, target, opts)
	require.NoError(t, svc.RebuildGrid(nav.BoundsAround(mgl64.Vec3{}, 24)))

	c := NewChaserAI(1, mgl64.Vec3{-12, 0, -9}, svc, flat, target, 1, 1)
	c.Start()
	for tick := range uint64(200) {
		c.Tick(tick)
		if c.CurrentIntention() == IntentionArrived {
			break
		}
	}

	assert.Equal(t, IntentionArrived, c.CurrentIntention())
	assert.LessOrEqual(t, horizontal(mgl64.Vec3(target).Sub(c.Position())).Len(), 1.0)
}
