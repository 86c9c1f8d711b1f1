package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/snake/internal/snake"
)

// fakeFront records frames and replays queued directions.
type fakeFront struct {
	dirs      []snake.Direction
	frames    []snake.View
	closeAt   int // close after this many frames; 0 never
	renderErr error
}

func (f *fakeFront) PollDirection() (snake.Direction, bool) {
	if len(f.dirs) == 0 {
		return 0, false
	}
	d := f.dirs[0]
	f.dirs = f.dirs[1:]
	return d, true
}

func (f *fakeFront) Render(v snake.View) error {
	f.frames = append(f.frames, v)
	return f.renderErr
}

func (f *fakeFront) ShouldClose() bool {
	return f.closeAt > 0 && len(f.frames) >= f.closeAt
}

// stepClock advances by a fixed step every time it is read.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// fixedRand always returns the same cell.
type fixedRand struct{ v int }

func (r fixedRand) Intn(int) int { return r.v }

func newTestGame(t *testing.T) *snake.Game {
	t.Helper()
	g, err := snake.New(snake.DefaultConfig(), snake.WithRand(fixedRand{v: 0}))
	require.NoError(t, err)
	return g
}

func TestInterval_FiresOnFrameAfterThreshold(t *testing.T) {
	iv := NewInterval(100 * time.Millisecond)

	var fired []int
	for frame := 0; frame < 12; frame++ {
		if iv.Step(40 * time.Millisecond) {
			fired = append(fired, frame)
		}
	}

	// 0,40,80,120 -> fires on frame 3 and resets; the firing frame adds nothing.
	assert.Equal(t, []int{3, 7, 11}, fired)
}

func TestRunner_FrameMovesOnInterval(t *testing.T) {
	g := newTestGame(t)
	front := &fakeFront{}
	r := NewRunner(g, front, Options{MoveInterval: 150 * time.Millisecond, FoodInterval: time.Hour})

	require.NoError(t, r.Frame(150*time.Millisecond))
	assert.Equal(t, snake.Position{X: 5, Y: 5}, g.Head(), "accumulator only charged")

	require.NoError(t, r.Frame(16*time.Millisecond))
	assert.Equal(t, snake.Position{X: 5, Y: 4}, g.Head())
	assert.Len(t, front.frames, 2, "every frame renders")
}

func TestRunner_FrameAppliesInputBeforeMove(t *testing.T) {
	g := newTestGame(t)
	front := &fakeFront{dirs: []snake.Direction{snake.Left}}
	r := NewRunner(g, front, Options{MoveInterval: time.Millisecond, FoodInterval: time.Hour})

	require.NoError(t, r.Frame(time.Millisecond))
	require.NoError(t, r.Frame(time.Millisecond))

	assert.Equal(t, snake.Left, g.Direction())
	assert.Equal(t, snake.Position{X: 4, Y: 5}, g.Head())
}

func TestRunner_ReverseInputIgnored(t *testing.T) {
	g := newTestGame(t)
	front := &fakeFront{dirs: []snake.Direction{snake.Down}}
	r := NewRunner(g, front, Options{})

	require.NoError(t, r.Frame(0))
	assert.Equal(t, snake.Up, g.Direction())
}

func TestRunner_EatBeforeMove(t *testing.T) {
	g, err := snake.New(snake.DefaultConfig(), snake.WithRand(fixedRand{v: 5}))
	require.NoError(t, err)
	r := NewRunner(g, &fakeFront{}, Options{MoveInterval: 10 * time.Millisecond, FoodInterval: 10 * time.Millisecond})

	// Charge both accumulators, then fire both: eat (nothing), move to
	// (5,4), spawn food at (5,5) behind the head.
	require.NoError(t, r.Frame(10*time.Millisecond))
	require.NoError(t, r.Frame(0))
	require.Equal(t, snake.Position{X: 5, Y: 4}, g.Head())
	require.Equal(t, []snake.Position{{X: 5, Y: 5}}, g.Food())

	// Turn back onto the food is impossible, so steer around it.
	g.SetDirection(snake.Right)
	require.NoError(t, r.Frame(10*time.Millisecond))
	require.NoError(t, r.Frame(0))
	g.SetDirection(snake.Down)
	require.NoError(t, r.Frame(10*time.Millisecond))
	require.NoError(t, r.Frame(0))
	g.SetDirection(snake.Left)
	require.NoError(t, r.Frame(10*time.Millisecond))
	require.NoError(t, r.Frame(0))

	// Head reached (5,5) on the last tick; food there is eaten on the next
	// tick before moving, so the snake grows as it leaves the cell.
	require.Equal(t, snake.Position{X: 5, Y: 5}, g.Head())
	require.Equal(t, 2, g.Len())
	require.NoError(t, r.Frame(10*time.Millisecond))
	require.NoError(t, r.Frame(0))

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, snake.Position{X: 4, Y: 5}, g.Head())
}

func TestRunner_SpawnsFoodOnInterval(t *testing.T) {
	g := newTestGame(t)
	r := NewRunner(g, &fakeFront{}, Options{MoveInterval: time.Hour, FoodInterval: time.Second})

	for i := 0; i < 4; i++ {
		require.NoError(t, r.Frame(500*time.Millisecond))
	}

	assert.Len(t, g.Food(), 1)
}

func TestRunner_RunStopsWhenHostCloses(t *testing.T) {
	g := newTestGame(t)
	front := &fakeFront{closeAt: 20}
	clock := &stepClock{t: time.Unix(0, 0), step: 16 * time.Millisecond}
	r := NewRunner(g, front, Options{Clock: clock})

	require.NoError(t, r.Run(context.Background()))

	assert.Len(t, front.frames, 20)
	assert.NotEqual(t, snake.Position{X: 5, Y: 5}, g.Head(), "snake moved during the run")
}

func TestRunner_RunStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	front := &fakeFront{}
	r := NewRunner(newTestGame(t), front, Options{})

	require.NoError(t, r.Run(ctx))
	assert.Empty(t, front.frames)
}

func TestRunner_RunReturnsRenderError(t *testing.T) {
	boom := errors.New("broken pipe")
	front := &fakeFront{renderErr: boom}
	r := NewRunner(newTestGame(t), front, Options{})

	assert.ErrorIs(t, r.Run(context.Background()), boom)
}
