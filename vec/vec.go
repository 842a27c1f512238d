package vec

import (
	"errors"
	"fmt"
)

// Misusing a Vec is a construction bug, not a runtime condition, so the
// operations below panic instead of returning errors. Both values are
// wrapped so callers that do recover can still match on them.
var (
	ErrDimensionMismatch = errors.New("vec: dimension mismatch")
	ErrIndexOutOfRange   = errors.New("vec: component index out of range")
)

// Vec is a fixed-dimension vector of float64 components. The dimension is
// set at construction and never changes; mutating operations act in place.
type Vec struct {
	comps []float64
}

// New returns a zero vector with the given dimension.
func New(dim int) Vec {
	if dim <= 0 {
		panic(fmt.Errorf("%w: dimension %d", ErrIndexOutOfRange, dim))
	}
	return Vec{comps: make([]float64, dim)}
}

// Of returns a vector holding the given components.
func Of(comps ...float64) Vec {
	v := New(len(comps))
	copy(v.comps, comps)
	return v
}

// Dimension returns the number of components.
func (v Vec) Dimension() int {
	return len(v.comps)
}

// Component returns component i.
func (v Vec) Component(i int) float64 {
	v.check(i)
	return v.comps[i]
}

// SetComponent overwrites component i.
func (v Vec) SetComponent(i int, val float64) {
	v.check(i)
	v.comps[i] = val
}

// IncrementComponent adds delta to component i.
func (v Vec) IncrementComponent(i int, delta float64) {
	v.check(i)
	v.comps[i] += delta
}

// Add adds other to v in place. Dimensions must match; no component is
// touched before the check passes.
func (v Vec) Add(other Vec) {
	v.checkDim(other)
	for i := range v.comps {
		v.comps[i] += other.comps[i]
	}
}

// ScalarMultiply scales every component of v in place.
func (v Vec) ScalarMultiply(k float64) {
	for i := range v.comps {
		v.comps[i] *= k
	}
}

// Scaled returns a new vector equal to v scaled by k, leaving v untouched.
func (v Vec) Scaled(k float64) Vec {
	out := New(len(v.comps))
	for i, c := range v.comps {
		out.comps[i] = c * k
	}
	return out
}

// Copy overwrites every component of v with the components of other.
func (v Vec) Copy(other Vec) {
	v.checkDim(other)
	copy(v.comps, other.comps)
}

// Clone returns an independent vector with the same components.
func (v Vec) Clone() Vec {
	out := New(len(v.comps))
	copy(out.comps, v.comps)
	return out
}

// Zero sets every component to 0.
func (v Vec) Zero() {
	v.ScalarMultiply(0)
}

func (v Vec) String() string {
	return fmt.Sprintf("%v", v.comps)
}

func (v Vec) check(i int) {
	if i < 0 || i >= len(v.comps) {
		panic(fmt.Errorf("%w: index %d, dimension %d", ErrIndexOutOfRange, i, len(v.comps)))
	}
}

func (v Vec) checkDim(other Vec) {
	if len(v.comps) != len(other.comps) {
		panic(fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(v.comps), len(other.comps)))
	}
}
