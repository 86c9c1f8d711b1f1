package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/session"
	"github.com/tomz197/snake/internal/snake"
)

// TerminalOptions configures a Terminal front-end.
type TerminalOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Profile      termenv.Profile

	// Inactivity handling; zero disables it.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration

	// Events from a session.Manager, nil for local play.
	Events          <-chan session.Event
	ShutdownDisplay time.Duration
}

// keySource is the part of input.Stream the terminal uses.
type keySource interface {
	PollKey() (input.Key, bool)
	Closed() bool
	Idle() time.Duration
	Reset()
}

// Terminal plays the game in an ANSI terminal: keys come from a byte
// stream, frames go to a draw.Board.
type Terminal struct {
	keys  keySource
	board *draw.Board
	opts  TerminalOptions
	now   func() time.Time
	stop  func()

	quit       bool
	shutdownAt time.Time // zero until the server announces shutdown
}

var _ Frontend = (*Terminal)(nil)

// NewTerminal starts reading keys from r and renders to w.
func NewTerminal(r *bufio.Reader, w io.Writer, opts TerminalOptions) *Terminal {
	keys := input.StartStream(r)
	t := newTerminal(keys, w, opts)
	t.stop = keys.Stop
	return t
}

func newTerminal(keys keySource, w io.Writer, opts TerminalOptions) *Terminal {
	theme := draw.DefaultTheme(draw.NewRenderer(w, opts.Profile))
	return &Terminal{
		keys:  keys,
		board: draw.NewBoard(w, opts.TermSizeFunc, theme),
		opts:  opts,
		now:   time.Now,
		stop:  func() {},
	}
}

// Close releases the key reader.
func (t *Terminal) Close() {
	t.stop()
}

// PollDirection returns the oldest pending key if it is a direction. Quit is
// latched for ShouldClose; other keys are dropped.
func (t *Terminal) PollDirection() (snake.Direction, bool) {
	k, ok := t.keys.PollKey()
	if !ok {
		return 0, false
	}
	switch k {
	case input.KeyUp:
		return snake.Up, true
	case input.KeyDown:
		return snake.Down, true
	case input.KeyLeft:
		return snake.Left, true
	case input.KeyRight:
		return snake.Right, true
	case input.KeyQuit:
		t.quit = true
	}
	return 0, false
}

// ShouldClose reports whether the player quit, the connection ended, the
// player idled out, or the shutdown notice has been shown long enough.
func (t *Terminal) ShouldClose() bool {
	t.processEvents()

	switch {
	case t.quit, t.keys.Closed():
		return true
	case t.opts.InactivityDisconnect > 0 && t.keys.Idle() >= t.opts.InactivityDisconnect:
		return true
	case !t.shutdownAt.IsZero() && t.now().Sub(t.shutdownAt) >= t.opts.ShutdownDisplay:
		return true
	}
	return false
}

// Render draws the board with any pending notice.
func (t *Terminal) Render(v snake.View) error {
	return t.board.Render(v, t.notices()...)
}

func (t *Terminal) processEvents() {
	if t.opts.Events == nil {
		return
	}
	for {
		select {
		case ev, ok := <-t.opts.Events:
			if !ok {
				// The manager dropped us.
				t.quit = true
				return
			}
			if ev.Type == session.EventServerShutdown && t.shutdownAt.IsZero() {
				t.shutdownAt = t.now()
				// Moves queued before the notice no longer steer.
				t.keys.Reset()
			}
		default:
			return
		}
	}
}

func (t *Terminal) notices() []string {
	if !t.shutdownAt.IsZero() {
		left := t.opts.ShutdownDisplay - t.now().Sub(t.shutdownAt)
		return []string{
			"SERVER SHUTTING DOWN",
			fmt.Sprintf("disconnecting in %ds", int(left.Seconds()+0.5)),
		}
	}
	if t.opts.InactivityWarn > 0 && t.opts.InactivityDisconnect > 0 && t.keys.Idle() >= t.opts.InactivityWarn {
		left := t.opts.InactivityDisconnect - t.keys.Idle()
		return []string{
			fmt.Sprintf("idle: disconnecting in %ds", int(left.Seconds()+0.5)),
			"press any key to continue",
		}
	}
	return nil
}

// RunTerminal plays game in the terminal behind r and w until the player
// quits, the reader ends or ctx is done.
func RunTerminal(ctx context.Context, game *snake.Game, r *bufio.Reader, w io.Writer, opts Options, topts TerminalOptions) error {
	term := NewTerminal(r, w, topts)
	defer term.Close()

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	err := NewRunner(game, term, opts).Run(ctx)

	draw.ClearScreen(w)
	return err
}
