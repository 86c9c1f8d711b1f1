// Package window renders the game in a raylib window.
package window

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tomz197/snake/internal/snake"
	"github.com/tomz197/snake/internal/window/grid"
)

// Options is the presentation configuration of the window.
type Options struct {
	Width  int32
	Height int32
	Title  string
	VSync  bool
	MSAA4X bool

	Background rl.Color
	Head       rl.Color
	Segment    rl.Color
	Food       rl.Color
	Text       rl.Color
}

// DefaultOptions is a 600x600 window with the classic palette.
func DefaultOptions() Options {
	return Options{
		Width:      600,
		Height:     600,
		Title:      "Snake..!",
		VSync:      true,
		MSAA4X:     true,
		Background: rl.Gray,
		Head:       rl.NewColor(178, 178, 178, 255),
		Segment:    rl.NewColor(76, 76, 76, 255),
		Food:       rl.NewColor(255, 0, 255, 255),
		Text:       rl.Black,
	}
}

// Square sizes relative to a 60px tile: head 46, segment 36, food 26.
const (
	headScale    = 46.0 / 60.0
	segmentScale = 36.0 / 60.0
	foodScale    = 26.0 / 60.0
)

// Window is a loop.Frontend backed by raylib. Raylib keeps global state, so
// only one Window may be open at a time and it must be used from the
// goroutine that opened it.
type Window struct {
	opts Options
}

// Open creates the window.
func Open(opts Options) *Window {
	var flags uint32
	if opts.VSync {
		flags |= rl.FlagVsyncHint
	}
	if opts.MSAA4X {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	rl.SetExitKey(rl.KeyEscape)
	return &Window{opts: opts}
}

// Close destroys the window.
func (w *Window) Close() {
	rl.CloseWindow()
}

// ShouldClose reports whether the user closed the window.
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// PollDirection dequeues one pressed key per frame and maps arrows to a
// direction. Other keys are dropped.
func (w *Window) PollDirection() (snake.Direction, bool) {
	return directionForKey(rl.GetKeyPressed())
}

func directionForKey(key int32) (snake.Direction, bool) {
	switch key {
	case rl.KeyUp:
		return snake.Up, true
	case rl.KeyDown:
		return snake.Down, true
	case rl.KeyLeft:
		return snake.Left, true
	case rl.KeyRight:
		return snake.Right, true
	}
	return 0, false
}

// Render draws the background, food, snake and score.
func (w *Window) Render(v snake.View) error {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(w.opts.Background)

	layout, err := grid.New(w.opts.Width, w.opts.Height, v.Width, v.Height)
	if err != nil {
		return err
	}

	for _, p := range v.Food {
		w.drawSquare(layout, p, foodScale, w.opts.Food)
	}
	// Body first so the head stays on top when segments overlap.
	for i := len(v.Segments) - 1; i >= 1; i-- {
		w.drawSquare(layout, v.Segments[i], segmentScale, w.opts.Segment)
	}
	if len(v.Segments) > 0 {
		w.drawSquare(layout, v.Segments[0], headScale, w.opts.Head)
	}

	rl.DrawText(fmt.Sprintf("score: %d", v.Score), 0, 0, 20, w.opts.Text)
	return nil
}

func (w *Window) drawSquare(layout grid.Layout, p snake.Position, scale float64, c rl.Color) {
	x, y, size := layout.Square(p, scale)
	rl.DrawRectangle(x, y, size, size, c)
}
