package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/physics2d/vec"
)

// Axis indices for the revert/probe operations.
const (
	AxisX = 0
	AxisY = 1
)

// ErrInvalidMass is returned when a movable is constructed with mass <= 0.
var ErrInvalidMass = errors.New("physics: mass must be positive")

// Movable is a spatial entity that moves under accumulated forces and can
// have collisions resolved against it.
//
// All game objects can technically move, but a collision with one has no
// simple resolution; doing nothing leaves the object stuck inside whatever
// it hit. Movables track a previous position so penetrating motion can be
// reverted, and an active checkpoint so a death trigger can put them back
// somewhere safe.
type Movable struct {
	Object

	previousPosition vec.Vec
	netForce         vec.Vec
	velocity         vec.Vec
	mass             float64
	checkpoint       vec.Vec
	cfg              Config
}

// NewMovable creates a movable body. Mass must be positive; cfg zero fields
// get defaults.
func NewMovable(x, y, w, h float64, forward vec.Vec, mass float64, cfg Config) (*Movable, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	m := &Movable{
		previousPosition: vec.Of(x, y),
		netForce:         vec.New(2),
		velocity:         vec.New(2),
		mass:             mass,
		checkpoint:       vec.Of(x, y),
		cfg:              cfg.WithDefaults(),
	}
	m.Object.position = vec.Of(x, y)
	m.Object.width = w
	m.Object.height = h
	m.Object.forward = forward.Clone()
	m.Object.updateBounds()
	return m, nil
}

func (m *Movable) Velocity() vec.Vec         { return m.velocity }
func (m *Movable) NetForce() vec.Vec         { return m.netForce }
func (m *Movable) Mass() float64             { return m.mass }
func (m *Movable) PreviousPosition() vec.Vec { return m.previousPosition }
func (m *Movable) Checkpoint() vec.Vec       { return m.checkpoint }
func (m *Movable) Config() Config            { return m.cfg }

// AddForce accumulates f into the net force. Zero and negative components
// are valid.
func (m *Movable) AddForce(f vec.Vec) {
	m.netForce.Add(f)
}

// ForceMove performs a full integration step: net force becomes acceleration,
// acceleration feeds velocity, velocity is capped on X, the body moves by
// velocity, and the net force is zeroed for the next tick.
func (m *Movable) ForceMove() {
	m.velocity.Add(m.netForce.Scaled(1.0 / m.mass))
	m.clampAxis(AxisX)
	// The Y axis stays uncapped. See the note on Config.MaxSpeed.
	m.Move(m.velocity)
	m.netForce.ScalarMultiply(0)
}

// SpecifiedForceMove integrates and moves on a single axis only. The X cap
// applies only when axis is AxisX, and the net force is NOT zeroed. The
// floor probe leans on that, so full-tick callers must zero it themselves.
func (m *Movable) SpecifiedForceMove(axis int) {
	m.velocity.IncrementComponent(axis, m.netForce.Component(axis)/m.mass)
	if axis == AxisX {
		m.clampAxis(AxisX)
	}
	axisVelocity := vec.New(2)
	axisVelocity.SetComponent(axis, m.velocity.Component(axis))
	m.Move(axisVelocity)
}

// Move snapshots the current position, shifts the body by v, and rebuilds
// the bounds.
func (m *Movable) Move(v vec.Vec) {
	m.previousPosition.Copy(m.position)
	m.position.Add(v)
	m.updateBounds()
}

// Revert restores the position captured before the most recent move.
func (m *Movable) Revert() {
	m.position.Copy(m.previousPosition)
	m.updateBounds()
}

// RevertAxis restores a single component of the position captured before the
// most recent move, leaving the other axis where it is.
func (m *Movable) RevertAxis(axis int) {
	m.position.SetComponent(axis, m.previousPosition.Component(axis))
	m.updateBounds()
}

// Refresh resynchronizes the previous-position snapshot to the current
// position without moving, so a later Revert doesn't rewind stale motion.
func (m *Movable) Refresh() {
	m.previousPosition.Copy(m.position)
}

// SetCheckpoint records p as the position Respawn returns to.
func (m *Movable) SetCheckpoint(p vec.Vec) {
	m.checkpoint.Copy(p)
}

// Respawn teleports the body to its active checkpoint and clears velocity
// and net force.
func (m *Movable) Respawn() {
	m.position.Copy(m.checkpoint)
	m.previousPosition.Copy(m.checkpoint)
	m.velocity.Zero()
	m.netForce.Zero()
	m.updateBounds()
}

// CollisionSource answers collision queries for the current tick. The
// concrete Manager satisfies it; movables only ever see the interface.
type CollisionSource interface {
	CollisionsOn(c Collider) ([]*Collision, error)
}

// ResolveCollisions queries src and cancels this body's penetrating motion
// along each contact axis. A query failure fails the whole tick: skipping
// resolution silently would leave bodies interpenetrating.
func (m *Movable) ResolveCollisions(src CollisionSource) error {
	cols, err := src.CollisionsOn(m)
	if err != nil {
		return fmt.Errorf("physics: resolve collisions: %w", err)
	}
	for _, c := range cols {
		side := c.SideOf(m)
		for axis := 0; axis < side.Dimension(); axis++ {
			if side.Component(axis) != 0 {
				m.RevertAxis(axis)
			}
		}
	}
	return nil
}

// CheckAllOnFloor reports whether the body is standing on something. It
// probes by speculatively moving on the Y axis, querying src for resulting
// contacts, and unconditionally restoring velocity and position afterwards.
// The restore runs even when the query fails or panics.
func (m *Movable) CheckAllOnFloor(src CollisionSource) (onFloor bool, err error) {
	savedVelocity := m.velocity.Clone()
	defer func() {
		m.velocity.Copy(savedVelocity)
		m.position.Copy(m.previousPosition)
		m.updateBounds()
	}()

	m.SpecifiedForceMove(AxisY)

	cols, err := src.CollisionsOn(m)
	if err != nil {
		return false, fmt.Errorf("physics: floor probe: %w", err)
	}
	for _, c := range cols {
		if m.CheckOnFloor(c) {
			onFloor = true
		}
	}
	return onFloor, nil
}

// CheckOnFloor reports whether a single collision record represents floor
// contact for this body: a Y-axis contact on our side of the pair, with the
// counterpart's top edge within MaxSpeed of our bottom edge.
func (m *Movable) CheckOnFloor(c *Collision) bool {
	if c == nil {
		return false
	}
	other := c.Counterpart(m)
	if other == nil {
		return false
	}
	if c.SideOf(m).Component(AxisY) == 0 {
		return false
	}
	bottom := m.position.Component(AxisY) + m.height
	gap := math.Abs(other.Body().Position().Component(AxisY) - bottom)
	return gap <= m.cfg.MaxSpeed
}

func (m *Movable) clampAxis(axis int) {
	if m.velocity.Component(axis) > m.cfg.MaxSpeed {
		m.velocity.SetComponent(axis, m.cfg.MaxSpeed)
	}
	if m.velocity.Component(axis) < -m.cfg.MaxSpeed {
		m.velocity.SetComponent(axis, -m.cfg.MaxSpeed)
	}
}
