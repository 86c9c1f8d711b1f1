// Package loop drives a snake.Game at a fixed rate and connects it to a
// presentation front-end.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snake/internal/snake"
)

// Input yields at most one direction request per frame.
type Input interface {
	PollDirection() (snake.Direction, bool)
}

// Renderer draws one frame of game state.
type Renderer interface {
	Render(v snake.View) error
}

// Host decides when the loop should stop.
type Host interface {
	ShouldClose() bool
}

// Frontend is everything the loop needs from a presentation layer.
type Frontend interface {
	Input
	Renderer
	Host
}

// Options tunes a Runner. Zero values fall back to the defaults.
type Options struct {
	MoveInterval time.Duration
	FoodInterval time.Duration
	FrameTime    time.Duration // sleep budget per frame; 0 means no pacing
	Clock        Clock
	Logger       *log.Logger
}

// Default tick rates.
const (
	DefaultMoveInterval = 150 * time.Millisecond
	DefaultFoodInterval = time.Second
)

// Runner owns the frame loop: Input -> Update -> Draw.
type Runner struct {
	game      *snake.Game
	front     Frontend
	clock     Clock
	move      Interval
	food      Interval
	frameTime time.Duration
	logger    *log.Logger
}

// NewRunner wires a game to a front-end.
func NewRunner(game *snake.Game, front Frontend, opts Options) *Runner {
	if opts.MoveInterval <= 0 {
		opts.MoveInterval = DefaultMoveInterval
	}
	if opts.FoodInterval <= 0 {
		opts.FoodInterval = DefaultFoodInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Runner{
		game:      game,
		front:     front,
		clock:     opts.Clock,
		move:      NewInterval(opts.MoveInterval),
		food:      NewInterval(opts.FoodInterval),
		frameTime: opts.FrameTime,
		logger:    opts.Logger,
	}
}

// Run loops until the front-end asks to close or ctx is done. It only fails
// when rendering fails.
func (r *Runner) Run(ctx context.Context) error {
	lastTime := r.clock.Now()

	for !r.front.ShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := r.clock.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := r.Frame(delta); err != nil {
			return err
		}

		if r.frameTime > 0 {
			elapsed := r.clock.Now().Sub(frameStart)
			if elapsed < r.frameTime {
				time.Sleep(r.frameTime - elapsed)
			}
		}
	}
	return nil
}

// Frame runs one iteration with the given time since the previous frame.
// Eating is checked before moving, so food under the head is credited from
// the position reached on the previous tick.
func (r *Runner) Frame(delta time.Duration) error {
	// ===== INPUT PHASE =====
	if d, ok := r.front.PollDirection(); ok {
		r.game.SetDirection(d)
	}

	// ===== UPDATE PHASE =====
	if r.move.Step(delta) {
		if r.game.TryEat() {
			r.logger.Debug("snake grew", "score", r.game.Score())
		}
		score := r.game.Score()
		if c := r.game.Advance(); c != snake.NoCollision {
			r.logger.Debug("snake reset", "cause", c, "score", score)
		}
	}
	if r.food.Step(delta) {
		p := r.game.TrySpawnFood()
		r.logger.Debug("food spawned", "x", p.X, "y", p.Y)
	}

	// ===== DRAW PHASE =====
	return r.front.Render(r.game.View())
}
