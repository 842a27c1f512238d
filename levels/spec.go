// Package levels loads level definitions from yaml and builds the physics
// world they describe. Files on disk shadow the embedded defaults so a level
// can be edited and hot-reloaded while the game runs.
package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/physics2d/physics"
	"github.com/milk9111/physics2d/trigger"
	"github.com/milk9111/physics2d/vec"
)

// Spec is the yaml shape of a level.
type Spec struct {
	Name    string         `yaml:"name"`
	Physics physics.Config `yaml:"physics"`
	Bodies  []BodySpec     `yaml:"bodies"`
}

// BodySpec describes one body in a level. Static bodies ignore Mass.
type BodySpec struct {
	Name    string  `yaml:"name"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Movable bool    `yaml:"movable"`
	Mass    float64 `yaml:"mass"`

	Trigger *TriggerSpec `yaml:"trigger,omitempty"`
}

// TriggerSpec binds a trigger to a body's region.
type TriggerSpec struct {
	// Kind is one of addForce, checkpoint, death, script.
	Kind   string    `yaml:"kind"`
	Force  []float64 `yaml:"force,omitempty"`
	Script string    `yaml:"script,omitempty"`
}

// Parse decodes and validates a level spec.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("levels: parse: %w", err)
	}
	s.Physics = s.Physics.WithDefaults()

	seen := make(map[string]struct{}, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name == "" {
			return nil, fmt.Errorf("levels: body %d has no name", i)
		}
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("levels: duplicate body name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
		if b.Width <= 0 || b.Height <= 0 {
			return nil, fmt.Errorf("levels: body %q has non-positive size %vx%v", b.Name, b.Width, b.Height)
		}
		if t := b.Trigger; t != nil {
			switch t.Kind {
			case "addForce":
				if len(t.Force) != 2 {
					return nil, fmt.Errorf("levels: body %q: addForce trigger needs a 2-component force", b.Name)
				}
			case "checkpoint", "death":
			case "script":
				if t.Script == "" {
					return nil, fmt.Errorf("levels: body %q: script trigger needs a script path", b.Name)
				}
			default:
				return nil, fmt.Errorf("levels: body %q: unknown trigger kind %q", b.Name, t.Kind)
			}
		}
	}
	return &s, nil
}

// World is a built level: the collision manager with everything registered,
// plus handles for the engine loop.
type World struct {
	Config   physics.Config
	Manager  *physics.Manager
	Bodies   map[string]physics.Collider
	Movables []*physics.Movable

	// scripts remembers which bodies carry script triggers so those can be
	// recompiled in place when a script file changes.
	scripts map[string]*TriggerSpec
}

// Body returns a named body, or nil.
func (w *World) Body(name string) physics.Collider {
	if w == nil {
		return nil
	}
	return w.Bodies[name]
}

// Build constructs the physics world the spec describes.
func (s *Spec) Build() (*World, error) {
	w := &World{
		Config:  s.Physics,
		Manager: physics.NewManager(),
		Bodies:  make(map[string]physics.Collider, len(s.Bodies)),
		scripts: make(map[string]*TriggerSpec),
	}

	for _, b := range s.Bodies {
		var collider physics.Collider
		if b.Movable {
			m, err := physics.NewMovable(b.X, b.Y, b.Width, b.Height, vec.Of(1, 0), b.Mass, s.Physics)
			if err != nil {
				return nil, fmt.Errorf("levels: body %q: %w", b.Name, err)
			}
			w.Movables = append(w.Movables, m)
			collider = m
		} else {
			collider = physics.NewObject(b.X, b.Y, b.Width, b.Height, vec.Of(1, 0))
		}

		if b.Trigger != nil {
			t, err := buildTrigger(b.Name, b.Trigger)
			if err != nil {
				return nil, err
			}
			collider.Body().AddTrigger(t)
			if b.Trigger.Kind == "script" {
				w.scripts[b.Name] = b.Trigger
			}
		}

		w.Manager.Register(collider)
		w.Bodies[b.Name] = collider
	}
	return w, nil
}

// ReloadScripts recompiles every script trigger from its (possibly edited)
// source, leaving body state untouched: positions, velocities, and
// checkpoints all survive a script reload.
func (w *World) ReloadScripts() error {
	if w == nil {
		return nil
	}
	for name, ts := range w.scripts {
		body := w.Body(name)
		if body == nil {
			continue
		}
		t, err := buildTrigger(name, ts)
		if err != nil {
			return err
		}
		body.Body().SetTriggers([]physics.Trigger{t})
	}
	return nil
}

func buildTrigger(body string, spec *TriggerSpec) (physics.Trigger, error) {
	switch spec.Kind {
	case "addForce":
		return trigger.NewAddForce(vec.Of(spec.Force[0], spec.Force[1])), nil
	case "checkpoint":
		return trigger.NewCheckpoint(), nil
	case "death":
		return trigger.NewDeath(), nil
	case "script":
		src, err := LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("levels: body %q: %w", body, err)
		}
		return trigger.NewScript(spec.Script, src)
	default:
		return nil, fmt.Errorf("levels: body %q: unknown trigger kind %q", body, spec.Kind)
	}
}
