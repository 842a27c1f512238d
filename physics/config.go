package physics

// DefaultMaxSpeed is the horizontal speed cap applied when a level does not
// override it, in world units per tick.
const DefaultMaxSpeed = 0.005

// Config holds the tunables a body captures at construction. It replaces the
// globals the engine grew up with so a level (or a test) can run with its own
// scale.
type Config struct {
	// MaxSpeed caps velocity on the X axis only; the Y axis is uncapped.
	MaxSpeed float64 `yaml:"maxSpeed"`
	// Gravity is the per-tick downward force the engine loop applies to every
	// movable. The physics core itself never reads it.
	Gravity float64 `yaml:"gravity"`
}

// WithDefaults fills in zero fields.
func (c Config) WithDefaults() Config {
	if c.MaxSpeed == 0 {
		c.MaxSpeed = DefaultMaxSpeed
	}
	return c
}
