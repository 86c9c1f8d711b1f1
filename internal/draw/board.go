package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/snake/internal/snake"
)

// Each grid cell is two terminal columns wide so cells come out roughly square.
const cellCols = 2

// Cell glyphs, from largest to smallest.
const (
	glyphHead  = "██"
	glyphBody  = "▐▌"
	glyphFood  = "▗▖"
	glyphEmpty = "  "
)

// Theme holds the board colours. It is presentation configuration only.
type Theme struct {
	Background lipgloss.Style
	Head       lipgloss.Style
	Body       lipgloss.Style
	Food       lipgloss.Style
	Border     lipgloss.Style
	Text       lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w. Sessions that are not a
// local tty (SSH) cannot be probed, so the colour profile is fixed.
func NewRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return r
}

// DefaultTheme mirrors the window palette: light head, dark body, magenta food
// on a gray field.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	bg := lipgloss.Color("#828282")
	return Theme{
		Background: r.NewStyle().Background(bg),
		Head:       r.NewStyle().Foreground(lipgloss.Color("#B2B2B2")).Background(bg),
		Body:       r.NewStyle().Foreground(lipgloss.Color("#4C4C4C")).Background(bg),
		Food:       r.NewStyle().Foreground(lipgloss.Color("#FF00FF")).Background(bg),
		Border:     r.NewStyle().Foreground(lipgloss.Color("#5C5C5C")),
		Text:       r.NewStyle().Bold(true),
	}
}

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellFood
	cellBody
	cellHead
)

// Board draws a snake.View into a terminal, centred and boxed.
type Board struct {
	cw       *ChunkWriter
	sizeFunc TermSizeFunc
	theme    Theme
	cells    [4]string // pre-rendered glyph per cellKind
	kinds    []cellKind

	lastTermW, lastTermH int
	lastNotices          int
	drawn                bool
}

// NewBoard creates a board writing to w.
func NewBoard(w io.Writer, sizeFunc TermSizeFunc, theme Theme) *Board {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	b := &Board{
		cw:       NewChunkWriter(w, 0, 0),
		sizeFunc: sizeFunc,
		theme:    theme,
	}
	b.cells[cellEmpty] = theme.Background.Render(glyphEmpty)
	b.cells[cellFood] = theme.Food.Render(glyphFood)
	b.cells[cellBody] = theme.Body.Render(glyphBody)
	b.cells[cellHead] = theme.Head.Render(glyphHead)
	return b
}

// Layout returns the 0-based terminal offset that centres a board for a
// gridW x gridH grid. Rows include the score line, the border and two notice
// lines.
func Layout(termW, termH, gridW, gridH int) (offCol, offRow int) {
	boardW := gridW*cellCols + 2
	boardH := gridH + 3 + 2
	return max(0, (termW-boardW)/2), max(0, (termH-boardH)/2)
}

// Render draws one frame. Notices are printed centred under the board.
func (b *Board) Render(v snake.View, notices ...string) error {
	termW, termH, err := b.sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	// Full clear on the first frame and whenever leftovers could remain.
	if !b.drawn || termW != b.lastTermW || termH != b.lastTermH || len(notices) != b.lastNotices {
		b.cw.SetOffset(0, 0)
		b.cw.WriteString("\033[H\033[2J")
		b.lastTermW, b.lastTermH = termW, termH
		b.lastNotices = len(notices)
		b.drawn = true
	}
	offCol, offRow := Layout(termW, termH, v.Width, v.Height)
	b.cw.SetOffset(offCol, offRow)

	b.drawScore(v)
	b.drawBorder(v.Width, v.Height)
	b.drawCells(v)
	b.drawNotices(v, notices)

	return b.cw.Flush()
}

func (b *Board) drawScore(v snake.View) {
	text := fmt.Sprintf("score: %d", v.Score)
	// Pad so a shorter score overwrites a longer one.
	b.cw.WriteAt(1, 1, b.theme.Text.Render(text)+strings.Repeat(" ", max(0, v.Width*cellCols+2-len(text))))
}

// drawBorder boxes the grid: rows 2 and height+3, columns 1 and width*2+2.
func (b *Board) drawBorder(w, h int) {
	line := strings.Repeat("─", w*cellCols)
	b.cw.WriteAt(1, 2, b.theme.Border.Render("┌"+line+"┐"))
	for row := 3; row < h+3; row++ {
		b.cw.WriteAt(1, row, b.theme.Border.Render("│"))
		b.cw.WriteAt(w*cellCols+2, row, b.theme.Border.Render("│"))
	}
	b.cw.WriteAt(1, h+3, b.theme.Border.Render("└"+line+"┘"))
}

func (b *Board) drawCells(v snake.View) {
	n := v.Width * v.Height
	if cap(b.kinds) < n {
		b.kinds = make([]cellKind, n)
	}
	kinds := b.kinds[:n]
	clear(kinds)

	mark := func(p snake.Position, k cellKind) {
		if p.X >= 0 && p.Y >= 0 && p.X < v.Width && p.Y < v.Height {
			kinds[p.Y*v.Width+p.X] = k
		}
	}
	for _, f := range v.Food {
		mark(f, cellFood)
	}
	for i := len(v.Segments) - 1; i >= 1; i-- {
		mark(v.Segments[i], cellBody)
	}
	if len(v.Segments) > 0 {
		mark(v.Segments[0], cellHead)
	}

	var row strings.Builder
	for y := 0; y < v.Height; y++ {
		row.Reset()
		for x := 0; x < v.Width; x++ {
			row.WriteString(b.cells[kinds[y*v.Width+x]])
		}
		b.cw.WriteAt(2, y+3, row.String())
	}
}

func (b *Board) drawNotices(v snake.View, notices []string) {
	boardW := v.Width*cellCols + 2
	for i, n := range notices {
		// Centre within the board width and pad so a shorter countdown
		// overwrites the previous one.
		width := len([]rune(n))
		left := max(0, (boardW-width)/2)
		right := max(0, boardW-width-left)
		line := strings.Repeat(" ", left) + b.theme.Text.Render(n) + strings.Repeat(" ", right)
		b.cw.WriteAt(1, v.Height+4+i, line)
	}
}
