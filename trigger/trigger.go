// Package trigger holds the actions the engine binds to collidable regions.
// A trigger is invoked with whatever collided and the collision record; it
// checks capabilities on the target instead of concrete types, so firing one
// at an object that can't respond is a defined no-op rather than an error.
package trigger

import (
	"github.com/milk9111/physics2d/physics"
	"github.com/milk9111/physics2d/vec"
)

// AddForce pushes a configured force at anything force-capable that touches
// the trigger's region. Wind zones, springs, conveyor floors.
type AddForce struct {
	force vec.Vec
}

func NewAddForce(force vec.Vec) *AddForce {
	return &AddForce{force: force.Clone()}
}

func (t *AddForce) Action(triggeredBy physics.Collider, _ *physics.Collision) {
	if r, ok := triggeredBy.(physics.ForceReceiver); ok {
		r.AddForce(t.force)
	}
}

// Checkpoint stores the toucher's current position as its active checkpoint.
type Checkpoint struct{}

func NewCheckpoint() *Checkpoint { return &Checkpoint{} }

func (t *Checkpoint) Action(triggeredBy physics.Collider, _ *physics.Collision) {
	r, ok := triggeredBy.(physics.Respawner)
	if !ok {
		return
	}
	r.SetCheckpoint(triggeredBy.Body().Position())
}

// Death sends the toucher back to its active checkpoint with velocity and
// net force cleared. Spikes, pits, kill planes.
type Death struct{}

func NewDeath() *Death { return &Death{} }

func (t *Death) Action(triggeredBy physics.Collider, _ *physics.Collision) {
	if r, ok := triggeredBy.(physics.Respawner); ok {
		r.Respawn()
	}
}
