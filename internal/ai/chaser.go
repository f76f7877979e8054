package ai

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/hexnav/internal/nav"
)

// minSteer is the shortest steering vector treated as a direction.
const minSteer = 1e-6

// ChaserAI moves an enemy along the steering vectors of a Navigator.
type ChaserAI struct {
	id     uint32
	nav    Navigator
	ground nav.HeightSampler
	target nav.PositionProvider

	speed        float64 // world units per tick
	arriveRadius float64

	mu  sync.Mutex
	pos mgl64.Vec3

	intention atomic.Uint32
	isRunning atomic.Bool
	moved     atomic.Int64
}

// NewChaserAI creates a chaser at pos. ground keeps the mover on the terrain
// surface and may be nil.
func NewChaserAI(id uint32, pos mgl64.Vec3, navigator Navigator, ground nav.HeightSampler, target nav.PositionProvider, speed, arriveRadius float64) *ChaserAI {
	return &ChaserAI{
		id:           id,
		nav:          navigator,
		ground:       ground,
		target:       target,
		speed:        speed,
		arriveRadius: arriveRadius,
		pos:          pos,
	}
}

// ID returns the chaser's object id.
func (c *ChaserAI) ID() uint32 {
	return c.id
}

// Start starts AI controller
func (c *ChaserAI) Start() {
	c.isRunning.Store(true)
	c.setIntention(IntentionChase)
	slog.Debug("chaser started", "objectID", c.id)
}

// Stop stops AI controller
func (c *ChaserAI) Stop() {
	c.isRunning.Store(false)
	c.setIntention(IntentionIdle)
	slog.Debug("chaser stopped", "objectID", c.id)
}

// CurrentIntention returns current intention
func (c *ChaserAI) CurrentIntention() Intention {
	return Intention(c.intention.Load())
}

// Position returns the chaser's world position.
func (c *ChaserAI) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// Moved returns the number of ticks the chaser actually moved.
func (c *ChaserAI) Moved() int64 {
	return c.moved.Load()
}

// Tick steps the chaser at most speed units along the steering vector.
// A zero steering vector means no path; the chaser waits in place.
func (c *ChaserAI) Tick(tick uint64) {
	if !c.isRunning.Load() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target != nil && horizontal(c.target.CurrentTargetPosition().Sub(c.pos)).Len() <= c.arriveRadius {
		c.setIntention(IntentionArrived)
		return
	}

	steer := horizontal(c.nav.QueryDirection(c.pos))
	dist := steer.Len()
	if dist < minSteer {
		c.setIntention(IntentionIdle)
		return
	}

	step := c.speed
	if dist < step {
		step = dist
	}
	next := c.pos.Add(steer.Mul(step / dist))
	if c.ground != nil {
		if h, ok := c.ground.SampleHeight(next.X(), next.Z()); ok {
			next[1] = h
		}
	}
	c.pos = next
	c.moved.Add(1)
	c.setIntention(IntentionChase)
}

func (c *ChaserAI) setIntention(intention Intention) {
	old := Intention(c.intention.Swap(uint32(intention)))
	if old != intention && IsDebugEnabled() {
		slog.Debug("chaser intention changed",
			"objectID", c.id,
			"from", old,
			"to", intention)
	}
}

// horizontal drops the vertical component; movers walk on the surface.
func horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}
