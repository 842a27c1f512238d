package sprite

// Clock is the delta-frames contract sprites consume. DeltaFrames reports
// how many animation frames have elapsed since the last reset; it is
// non-negative and only grows within a tick. FlagReset is called by the
// consumer once it has used the value; the reset takes effect on the next
// tick so every consumer in the same tick sees the same delta.
type Clock interface {
	DeltaFrames() float64
	FlagReset()
}

// TickClock accumulates animation frames at a fixed rate per engine tick.
type TickClock struct {
	framesPerTick float64
	accumulated   float64
	resetFlagged  bool
}

// NewTickClock creates a clock advancing animationFPS frames per second at
// ticksPerSecond engine ticks.
func NewTickClock(animationFPS, ticksPerSecond float64) *TickClock {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}
	return &TickClock{framesPerTick: animationFPS / ticksPerSecond}
}

// Tick advances the clock by one engine tick, applying any pending reset
// first.
func (c *TickClock) Tick() {
	if c.resetFlagged {
		c.accumulated = 0
		c.resetFlagged = false
	}
	c.accumulated += c.framesPerTick
}

func (c *TickClock) DeltaFrames() float64 {
	return c.accumulated
}

func (c *TickClock) FlagReset() {
	c.resetFlagged = true
}
