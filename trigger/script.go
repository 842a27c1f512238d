package trigger

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/physics2d/physics"
	"github.com/milk9111/physics2d/vec"
)

// Script runs a tengo script when something touches the trigger's region.
// The script sees the toucher's position (x, y), velocity (vx, vy) and the
// struck side (side_x, side_y); whatever it leaves in force_x/force_y is
// applied as a force when the toucher can receive one. Script failures are
// logged and swallowed; a broken script must not take the tick down.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

// NewScript compiles src once up front so a bad script fails at load, not
// mid-tick.
func NewScript(name string, src []byte) (*Script, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("trigger: script %q is empty", name)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, v := range []string{"x", "y", "vx", "vy", "side_x", "side_y", "force_x", "force_y"} {
		if err := script.Add(v, 0.0); err != nil {
			return nil, fmt.Errorf("trigger: script %q: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("trigger: compile script %q: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (t *Script) Action(triggeredBy physics.Collider, c *physics.Collision) {
	if t == nil || t.compiled == nil || triggeredBy == nil {
		return
	}

	run := t.compiled.Clone()
	pos := triggeredBy.Body().Position()
	_ = run.Set("x", pos.Component(0))
	_ = run.Set("y", pos.Component(1))
	if m, ok := triggeredBy.(*physics.Movable); ok {
		_ = run.Set("vx", m.Velocity().Component(0))
		_ = run.Set("vy", m.Velocity().Component(1))
	}
	side := c.SideOf(triggeredBy)
	_ = run.Set("side_x", side.Component(0))
	_ = run.Set("side_y", side.Component(1))

	if err := run.Run(); err != nil {
		fmt.Printf("trigger: script %q error: %v\n", t.name, err)
		return
	}

	fx := run.Get("force_x").Float()
	fy := run.Get("force_y").Float()
	if fx == 0 && fy == 0 {
		return
	}
	if r, ok := triggeredBy.(physics.ForceReceiver); ok {
		r.AddForce(vec.Of(fx, fy))
	}
}
