package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/physics2d/vec"
)

// Collider is anything the collision manager can track. Both Object and
// Movable satisfy it; Body gives access to the shared spatial state.
type Collider interface {
	Body() *Object
}

// ForceReceiver is the capability a trigger checks before pushing a force at
// whatever collided with it. Plain objects don't have it, so force triggers
// are silent no-ops for them.
type ForceReceiver interface {
	AddForce(f vec.Vec)
}

// Respawner is the capability death and checkpoint triggers act through.
type Respawner interface {
	SetCheckpoint(p vec.Vec)
	Respawn()
}

// Trigger is an action bound to an object's region, invoked with whatever
// collided with that object and the collision record for context. The engine
// loop dispatches these after resolution; the physics core never calls them
// itself.
type Trigger interface {
	Action(triggeredBy Collider, c *Collision)
}

// Object is a spatial entity: top-left position, size, a forward vector, and
// an axis-aligned bounding box recomputed on every position change.
type Object struct {
	position vec.Vec
	width    float64
	height   float64
	forward  vec.Vec
	bounds   cp.BB

	triggers []Trigger
}

// NewObject creates a static spatial entity at the given top-left position.
func NewObject(x, y, w, h float64, forward vec.Vec) *Object {
	o := &Object{
		position: vec.Of(x, y),
		width:    w,
		height:   h,
		forward:  forward.Clone(),
	}
	o.updateBounds()
	return o
}

func (o *Object) Body() *Object { return o }

// Position returns the object's position vector. Mutating it without going
// through Move leaves the bounds stale; collaborators should treat it as
// read-only.
func (o *Object) Position() vec.Vec { return o.position }

func (o *Object) Width() float64   { return o.width }
func (o *Object) Height() float64  { return o.height }
func (o *Object) Forward() vec.Vec { return o.forward }

// Bounds returns the derived axis-aligned bounding box.
func (o *Object) Bounds() cp.BB { return o.bounds }

// SetPosition teleports the object. Used during level construction, not by
// the per-tick integration path.
func (o *Object) SetPosition(x, y float64) {
	o.position.SetComponent(0, x)
	o.position.SetComponent(1, y)
	o.updateBounds()
}

// AddTrigger binds a trigger to this object's region.
func (o *Object) AddTrigger(t Trigger) {
	if t == nil {
		return
	}
	o.triggers = append(o.triggers, t)
}

// Triggers returns the triggers bound to this object.
func (o *Object) Triggers() []Trigger { return o.triggers }

// SetTriggers replaces the triggers bound to this object. Used when trigger
// definitions are reloaded without tearing the level down.
func (o *Object) SetTriggers(ts []Trigger) {
	o.triggers = ts
}

// updateBounds rebuilds the bounding box from position and size. Screen
// coordinates, y down: B is the top edge, T the bottom, matching how the
// box is used for interval overlap.
func (o *Object) updateBounds() {
	x := o.position.Component(0)
	y := o.position.Component(1)
	o.bounds = cp.BB{L: x, B: y, R: x + o.width, T: y + o.height}
}
