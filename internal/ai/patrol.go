package ai

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/hexnav/internal/nav"
)

// PatrolTarget walks a closed loop of waypoints. It is the tracked target
// chasers pursue and implements nav.PositionProvider.
type PatrolTarget struct {
	ground nav.HeightSampler
	speed  float64

	mu    sync.Mutex
	route []mgl64.Vec3
	next  int
	pos   mgl64.Vec3
}

// NewPatrolTarget creates a patrol starting at the first waypoint.
// route must not be empty.
func NewPatrolTarget(route []mgl64.Vec3, speed float64, ground nav.HeightSampler) *PatrolTarget {
	p := &PatrolTarget{
		ground: ground,
		speed:  speed,
		route:  append([]mgl64.Vec3(nil), route...),
		pos:    route[0],
	}
	if len(p.route) > 1 {
		p.next = 1
	}
	return p
}

// CurrentTargetPosition returns the patrol's world position.
func (p *PatrolTarget) CurrentTargetPosition() mgl64.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Step moves the patrol speed units along its route, wrapping at the end.
func (p *PatrolTarget) Step() {
	p.mu.Lock()
	defer p.mu.Unlock()

	budget := p.speed
	for legs := 0; budget > 0 && len(p.route) > 1 && legs <= len(p.route); legs++ {
		goal := p.route[p.next]
		leg := horizontal(goal.Sub(p.pos))
		d := leg.Len()
		if d <= budget {
			p.pos = mgl64.Vec3{goal.X(), p.pos.Y(), goal.Z()}
			p.next = (p.next + 1) % len(p.route)
			budget -= d
			continue
		}
		p.pos = p.pos.Add(leg.Mul(budget / d))
		budget = 0
	}

	if p.ground != nil {
		if h, ok := p.ground.SampleHeight(p.pos.X(), p.pos.Z()); ok {
			p.pos[1] = h
		}
	}
}
