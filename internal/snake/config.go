package snake

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when a Config cannot hold a snake.
var ErrInvalidGrid = errors.New("invalid grid")

// Config holds the grid dimensions. Valid cells are [0,Width) x [0,Height).
type Config struct {
	Width  int
	Height int
}

// DefaultConfig is the 10x10 grid the game ships with.
func DefaultConfig() Config {
	return Config{Width: 10, Height: 10}
}

// Validate reports whether the grid has room for at least one cell.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, c.Width, c.Height)
	}
	return nil
}

// Contains reports whether p lies inside the grid.
func (c Config) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.Width && p.Y < c.Height
}

// Center returns the spawn cell, using integer division.
func (c Config) Center() Position {
	return Position{X: c.Width / 2, Y: c.Height / 2}
}
