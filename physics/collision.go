package physics

import (
	"errors"
	"math"

	"github.com/milk9111/physics2d/vec"
)

// ErrNoManager is returned when a collision query is made against a nil
// manager. A tick cannot proceed without resolution, so callers should treat
// it as fatal rather than skip resolving.
var ErrNoManager = errors.New("physics: collision manager is not available")

// Collision records one pairwise overlap for the current tick: the two
// participants and, per participant, which face of its bounding box was
// struck. Component 0 is the X axis, component 1 the Y axis; a zero component
// means no contact on that axis. Records are rebuilt every tick and must not
// be retained across ticks.
type Collision struct {
	A Collider
	B Collider

	// SideA and SideB hold the struck face per participant. The sign is the
	// outward direction of the face in screen coordinates: (0,1) is A's
	// bottom face, (1,0) its right face.
	SideA vec.Vec
	SideB vec.Vec
}

// Involves reports whether c is a participant in this collision.
func (col *Collision) Involves(c Collider) bool {
	return col != nil && c != nil && (col.A.Body() == c.Body() || col.B.Body() == c.Body())
}

// SideOf returns the struck-face vector for participant c, or a zero vector
// when c is not part of the collision.
func (col *Collision) SideOf(c Collider) vec.Vec {
	switch {
	case col == nil || c == nil:
		return vec.New(2)
	case col.A.Body() == c.Body():
		return col.SideA
	case col.B.Body() == c.Body():
		return col.SideB
	default:
		return vec.New(2)
	}
}

// Counterpart returns the other participant, or nil when c is not part of
// the collision.
func (col *Collision) Counterpart(c Collider) Collider {
	switch {
	case col == nil || c == nil:
		return nil
	case col.A.Body() == c.Body():
		return col.B
	case col.B.Body() == c.Body():
		return col.A
	default:
		return nil
	}
}

// Manager tracks the colliders of a loaded level and produces the tick's
// collision records. Step builds the full pairwise set once per tick;
// CollisionsOn recomputes against current bounds on every call, which is
// what lets the floor probe see contacts created by its speculative move.
type Manager struct {
	colliders []Collider
	current   []*Collision
}

func NewManager() *Manager {
	return &Manager{}
}

// Register adds a collider to the detection set. Registering the same
// collider twice is a no-op.
func (m *Manager) Register(c Collider) {
	if m == nil || c == nil {
		return
	}
	for _, existing := range m.colliders {
		if existing.Body() == c.Body() {
			return
		}
	}
	m.colliders = append(m.colliders, c)
}

// Unregister removes a collider, e.g. on object removal mid-level.
func (m *Manager) Unregister(c Collider) {
	if m == nil || c == nil {
		return
	}
	for i, existing := range m.colliders {
		if existing.Body() == c.Body() {
			m.colliders = append(m.colliders[:i], m.colliders[i+1:]...)
			return
		}
	}
}

// Step rebuilds the tick's collision set. Each overlapping pair appears at
// most once. The previous tick's records are discarded.
func (m *Manager) Step() {
	if m == nil {
		return
	}
	m.current = m.current[:0]
	for i := 0; i < len(m.colliders); i++ {
		for j := i + 1; j < len(m.colliders); j++ {
			if col := collide(m.colliders[i], m.colliders[j]); col != nil {
				m.current = append(m.current, col)
			}
		}
	}
}

// Collisions returns the records built by the last Step. The slice is owned
// by the manager and invalidated by the next Step.
func (m *Manager) Collisions() []*Collision {
	if m == nil {
		return nil
	}
	return m.current
}

// CollisionsOn recomputes and returns all collisions currently involving c.
// Unlike Collisions, this reflects any movement since the last Step.
func (m *Manager) CollisionsOn(c Collider) ([]*Collision, error) {
	if m == nil {
		return nil, ErrNoManager
	}
	if c == nil {
		return nil, nil
	}
	var out []*Collision
	for _, other := range m.colliders {
		if other.Body() == c.Body() {
			continue
		}
		if col := collide(c, other); col != nil {
			out = append(out, col)
		}
	}
	return out, nil
}

// collide returns the collision record for a pair, or nil when the bounds
// don't touch. The contact axis is the axis of least overlap; the side sign
// comes from the relative centers.
func collide(a, b Collider) *Collision {
	abb := a.Body().Bounds()
	bbb := b.Body().Bounds()
	if !abb.Intersects(bbb) {
		return nil
	}

	overlapX := math.Min(abb.R, bbb.R) - math.Max(abb.L, bbb.L)
	overlapY := math.Min(abb.T, bbb.T) - math.Max(abb.B, bbb.B)

	col := &Collision{A: a, B: b, SideA: vec.New(2), SideB: vec.New(2)}
	if overlapX < overlapY {
		if abb.L+abb.R < bbb.L+bbb.R {
			col.SideA.SetComponent(AxisX, 1)
			col.SideB.SetComponent(AxisX, -1)
		} else {
			col.SideA.SetComponent(AxisX, -1)
			col.SideB.SetComponent(AxisX, 1)
		}
	} else {
		if abb.B+abb.T < bbb.B+bbb.T {
			col.SideA.SetComponent(AxisY, 1)
			col.SideB.SetComponent(AxisY, -1)
		} else {
			col.SideA.SetComponent(AxisY, -1)
			col.SideB.SetComponent(AxisY, 1)
		}
	}
	return col
}
