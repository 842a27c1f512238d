package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/physics2d/levels"
	"github.com/milk9111/physics2d/physics"
	"github.com/milk9111/physics2d/sprite"
	"github.com/milk9111/physics2d/vec"
)

const (
	baseWidth  = 1280
	baseHeight = 448

	moveAccel      = 0.6
	jumpForce      = -9.5
	groundFriction = 0.8

	playerFrameW = 24
	playerFrameH = 32
)

type Game struct {
	frames    int
	levelName string
	debug     bool

	input   *Input
	world   *levels.World
	player  *physics.Movable
	watcher *levels.Watcher

	clock      *sprite.TickClock
	playerSpr  *sprite.Sprite
	grounded   bool
	lastReload string
}

func NewGame(levelName string, debug bool) (*Game, error) {
	g := &Game{
		levelName: levelName,
		debug:     debug,
		input:     NewInput(),
		clock:     sprite.NewTickClock(8, 60),
		playerSpr: newPlayerSprite(),
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}

	watcher, err := levels.NewWatcher("levels", "levels/scripts")
	if err != nil {
		// Not fatal: running away from the repo just means no hot reload.
		log.Printf("level: watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadLevel() error {
	spec, err := levels.LoadLevel(g.levelName)
	if err != nil {
		return err
	}
	world, err := spec.Build()
	if err != nil {
		return err
	}

	player, _ := world.Body("player").(*physics.Movable)
	if player == nil && len(world.Movables) > 0 {
		player = world.Movables[0]
	}
	if player == nil {
		return fmt.Errorf("level %q has no movable body to control", g.levelName)
	}

	g.world = world
	g.player = player
	return nil
}

// Update runs exactly one simulation tick: accumulate forces, integrate,
// detect, resolve, dispatch triggers.
func (g *Game) Update() error {
	g.frames++
	g.consumeWatcher()
	g.input.Update()

	if g.input.ReloadPressed {
		if err := g.loadLevel(); err != nil {
			log.Printf("level: reload: %v", err)
		}
	}

	cfg := g.world.Config
	for _, m := range g.world.Movables {
		m.AddForce(vec.Of(0, cfg.Gravity*m.Mass()))
	}
	if g.input.MoveX != 0 {
		g.player.AddForce(vec.Of(moveAccel*g.input.MoveX, 0))
	}

	// The floor probe runs against this tick's accumulated forces and leaves
	// them (and the player) untouched.
	onFloor, err := g.player.CheckAllOnFloor(g.world.Manager)
	if err != nil {
		return err
	}
	g.grounded = onFloor
	if g.input.JumpPressed && onFloor {
		g.player.AddForce(vec.Of(0, jumpForce))
	}
	if g.input.MoveX == 0 && onFloor {
		g.player.Velocity().SetComponent(physics.AxisX, g.player.Velocity().Component(physics.AxisX)*groundFriction)
	}

	for _, m := range g.world.Movables {
		m.ForceMove()
	}

	g.world.Manager.Step()
	for _, m := range g.world.Movables {
		if err := m.ResolveCollisions(g.world.Manager); err != nil {
			return err
		}
	}

	for _, c := range g.world.Manager.Collisions() {
		for _, t := range c.A.Body().Triggers() {
			t.Action(c.B, c)
		}
		for _, t := range c.B.Body().Triggers() {
			t.Action(c.A, c)
		}
		// After triggers have seen the impact velocity, stop motion into the
		// contact so resting bodies don't accumulate speed tick over tick.
		stopOnContact(c, c.A)
		stopOnContact(c, c.B)
	}

	g.clock.Tick()
	if g.input.MoveX != 0 {
		g.playerSpr.Update(g.clock)
	}
	return nil
}

func (g *Game) consumeWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-g.watcher.Events():
			if !ok {
				g.watcher = nil
				return
			}
			g.lastReload = ev.Path
			// A script edit only needs its triggers recompiled; the world
			// (and the player's position) stays put. A spec edit rebuilds.
			var err error
			if ev.Kind == levels.KindScript {
				err = g.world.ReloadScripts()
			} else {
				err = g.loadLevel()
			}
			if err != nil {
				log.Printf("level: reload after %s: %v", ev.Path, err)
			}
		case err := <-g.watcher.Errors():
			log.Printf("level: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	for name, c := range g.world.Bodies {
		obj := c.Body()
		clr := bodyColor(name, obj, obj == g.player.Body())
		bb := obj.Bounds()
		vector.FillRect(screen, float32(bb.L), float32(bb.B), float32(obj.Width()), float32(obj.Height()), clr, false)
	}

	// Animated placeholder sprite on top of the player rect.
	px := g.player.Position().Component(0) + g.player.Width()/2
	py := g.player.Position().Component(1) + g.player.Height()/2
	g.playerSpr.Draw(screen, px, py, g.player.Width(), g.player.Height())

	if g.debug {
		msg := fmt.Sprintf(
			"FPS: %.1f  frames: %d\npos: (%.1f, %.1f)  vel: (%.2f, %.2f)\ngrounded: %v  collisions: %d",
			ebiten.ActualFPS(), g.frames,
			g.player.Position().Component(0), g.player.Position().Component(1),
			g.player.Velocity().Component(0), g.player.Velocity().Component(1),
			g.grounded, len(g.world.Manager.Collisions()),
		)
		if g.lastReload != "" {
			msg += "\nreloaded: " + g.lastReload
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

func stopOnContact(c *physics.Collision, who physics.Collider) {
	m, ok := who.(*physics.Movable)
	if !ok {
		return
	}
	side := c.SideOf(who)
	for axis := 0; axis < side.Dimension(); axis++ {
		if side.Component(axis) != 0 {
			m.Velocity().SetComponent(axis, 0)
		}
	}
}

func bodyColor(name string, obj *physics.Object, isPlayer bool) color.Color {
	switch {
	case isPlayer:
		return colornames.Lightgreen
	case len(obj.Triggers()) > 0:
		return colornames.Orangered
	case name == "crate":
		return colornames.Burlywood
	default:
		return colornames.Slategray
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// newPlayerSprite builds a tiny procedural sheet so the demo can exercise
// the animation queue without shipping art.
func newPlayerSprite() *sprite.Sprite {
	const frames = 4
	sheet := ebiten.NewImage(frames*playerFrameW, playerFrameH)
	shades := []color.Color{
		colornames.Seagreen,
		colornames.Mediumseagreen,
		colornames.Springgreen,
		colornames.Mediumseagreen,
	}
	for i := 0; i < frames; i++ {
		vector.FillRect(sheet, float32(i*playerFrameW), 0, playerFrameW, playerFrameH, shades[i], false)
	}

	s := sprite.New(sheet, []int{frames}, playerFrameW, playerFrameH)
	s.QueueAnimation(0, true)
	return s
}
