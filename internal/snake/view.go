package snake

// View is a read-only copy of the state a renderer needs for one frame.
type View struct {
	Width     int
	Height    int
	Segments  []Position
	Food      []Position
	Direction Direction
	Score     int
}

// View snapshots the game for rendering.
func (g *Game) View() View {
	return View{
		Width:     g.cfg.Width,
		Height:    g.cfg.Height,
		Segments:  g.Segments(),
		Food:      g.Food(),
		Direction: g.dir,
		Score:     g.Score(),
	}
}
