// Package sprite animates frames out of a sprite sheet. Each row of the
// sheet is one animation; each column is a frame of that row. Sprites only
// consume the Clock contract for timing; they never own a timer.
package sprite

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

type instruction struct {
	row    int
	repeat bool
}

// Sprite is a possibly animated image. Animations are queued; a queued row
// takes over once the current row reaches its final frame.
type Sprite struct {
	sheet   *ebiten.Image
	columns []int // frames per row
	frameW  int
	frameH  int

	row       int
	column    int
	repeating bool
	queue     []instruction
}

// New creates a sprite over sheet with len(columns) animation rows.
func New(sheet *ebiten.Image, columns []int, frameW, frameH int) *Sprite {
	return &Sprite{
		sheet:   sheet,
		columns: columns,
		frameW:  frameW,
		frameH:  frameH,
	}
}

func (s *Sprite) FrameWidth() int  { return s.frameW }
func (s *Sprite) FrameHeight() int { return s.frameH }

// Frame returns the current row and column.
func (s *Sprite) Frame() (row, column int) { return s.row, s.column }

// QueueAnimation enqueues row to play once the current animation finishes.
// A repeating row loops until something else is queued.
func (s *Sprite) QueueAnimation(row int, repeat bool) {
	s.queue = append(s.queue, instruction{row: row, repeat: repeat})
}

// Update advances the animation by however many whole frames the clock has
// accumulated. Fewer than one frame leaves the sprite untouched and the
// clock unflagged.
func (s *Sprite) Update(clock Clock) {
	if s == nil || clock == nil || len(s.columns) == 0 {
		return
	}

	exact := clock.DeltaFrames()
	if exact < 1 {
		return
	}
	df := int(math.Floor(exact))
	clock.FlagReset()

	last := s.columns[s.row] - 1
	if s.column == last {
		switch {
		case len(s.queue) > 0:
			next := s.queue[0]
			s.queue = s.queue[1:]
			s.row = next.row
			s.repeating = next.repeat
			s.column = 0
		case s.repeating:
			s.column = 0
		}
		// Not repeating and nothing queued: hold the final frame.
		return
	}

	if s.column+df < s.columns[s.row] {
		s.column += df
	} else {
		s.column = s.columns[s.row] - 1
	}
}

// Draw blits the current frame centered on (x, y), scaled to w by h.
func (s *Sprite) Draw(screen *ebiten.Image, x, y, w, h float64) {
	if s == nil || s.sheet == nil || screen == nil {
		return
	}
	fx := s.column * s.frameW
	fy := s.row * s.frameH
	frame := s.sheet.SubImage(image.Rect(fx, fy, fx+s.frameW, fy+s.frameH)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(s.frameW), h/float64(s.frameH))
	op.GeoM.Translate(x-w/2, y-h/2)
	screen.DrawImage(frame, op)
}
