// Package snake holds the game state: the snake body, its heading, the food on
// the grid and the rules that move them.
package snake

import (
	"time"

	"golang.org/x/exp/rand"
)

// Collision describes why an Advance reset the game.
type Collision int

const (
	NoCollision Collision = iota
	WallCollision
	SelfCollision
)

func (c Collision) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	}
	return "none"
}

// Rand picks food cells. *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Game owns all mutable game data. It is not safe for concurrent use; one
// frame loop drives it.
type Game struct {
	cfg      Config
	segments []Position // head at index 0
	food     []Position
	tail     Position // cell vacated by the last successful move
	dir      Direction
	rng      Rand
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used to place food.
func WithRand(r Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// WithDirection sets the starting heading.
func WithDirection(d Direction) Option {
	return func(g *Game) {
		g.dir = d
	}
}

// New creates a game on the given grid and puts it in its initial state.
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg: cfg,
		dir: Up,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	g.Reset()
	return g, nil
}

// Reset clears the food and puts a two-segment snake on the grid center.
// The heading and the recorded tail are left as they are.
func (g *Game) Reset() {
	g.food = g.food[:0]
	center := g.cfg.Center()
	g.segments = append(g.segments[:0], center, center)
}

// SetDirection changes the heading unless d would reverse the snake.
// It reports whether the heading was applied.
func (g *Game) SetDirection(d Direction) bool {
	if d == g.dir.Opposite() {
		return false
	}
	g.dir = d
	return true
}

// Advance moves the snake one cell along its heading. Leaving the grid or
// running into any current segment resets the game instead, and the cause is
// returned.
func (g *Game) Advance() Collision {
	candidate := g.segments[0].Add(g.dir.Delta())

	if !g.cfg.Contains(candidate) {
		g.Reset()
		return WallCollision
	}
	for _, s := range g.segments {
		if s == candidate {
			g.Reset()
			return SelfCollision
		}
	}

	g.tail = g.segments[len(g.segments)-1]
	copy(g.segments[1:], g.segments[:len(g.segments)-1])
	g.segments[0] = candidate
	return NoCollision
}

// TrySpawnFood drops one food item on a random cell and returns it. Food may
// land on the snake or on another food item.
func (g *Game) TrySpawnFood() Position {
	p := Position{
		X: g.rng.Intn(g.cfg.Width),
		Y: g.rng.Intn(g.cfg.Height),
	}
	g.food = append(g.food, p)
	return p
}

// TryEat consumes the first food item under the head, growing the snake by
// its recorded tail. At most one item is eaten per call.
func (g *Game) TryEat() bool {
	head := g.segments[0]
	for i, f := range g.food {
		if f != head {
			continue
		}
		g.food = append(g.food[:i], g.food[i+1:]...)
		g.segments = append(g.segments, g.tail)
		return true
	}
	return false
}

// Score is the number of segments grown since the last reset.
func (g *Game) Score() int {
	return len(g.segments) - 2
}

func (g *Game) Config() Config       { return g.cfg }
func (g *Game) Direction() Direction { return g.dir }
func (g *Game) Head() Position       { return g.segments[0] }
func (g *Game) Tail() Position       { return g.tail }
func (g *Game) Len() int             { return len(g.segments) }

// Segments returns a copy of the body, head first.
func (g *Game) Segments() []Position {
	return append([]Position(nil), g.segments...)
}

// Food returns a copy of the food items in spawn order.
func (g *Game) Food() []Position {
	return append([]Position(nil), g.food...)
}
