package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/snake/internal/snake"
)

const clearSeq = "\033[H\033[2J"

func newTestBoard(buf *bytes.Buffer, w, h int) *Board {
	size := func() (int, int, error) { return w, h, nil }
	return NewBoard(buf, size, DefaultTheme(NewRenderer(buf, termenv.Ascii)))
}

func testView() snake.View {
	return snake.View{
		Width:    4,
		Height:   3,
		Segments: []snake.Position{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}},
		Food:     []snake.Position{{X: 3, Y: 0}, {X: 1, Y: 1}},
		Score:    1,
	}
}

func TestLayout(t *testing.T) {
	col, row := Layout(80, 24, 10, 10)
	assert.Equal(t, (80-22)/2, col)
	assert.Equal(t, (24-15)/2, row)

	col, row = Layout(10, 5, 10, 10)
	assert.Zero(t, col)
	assert.Zero(t, row)
}

func TestBoard_Render(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBoard(&buf, 80, 24)

	require.NoError(t, b.Render(testView()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, clearSeq))
	assert.Contains(t, out, "score: 1")
	assert.Equal(t, 1, strings.Count(out, glyphHead))
	assert.Equal(t, 2, strings.Count(out, glyphBody))
	assert.Equal(t, 1, strings.Count(out, glyphFood), "food under the head is hidden")
	// eight empty cells plus the padding after the score
	assert.Equal(t, 9, strings.Count(out, glyphEmpty))
	assert.Contains(t, out, "┌────────┐")
	assert.Contains(t, out, "└────────┘")
}

func TestBoard_ClearsOnlyWhenNeeded(t *testing.T) {
	var buf bytes.Buffer
	w, h := 80, 24
	size := func() (int, int, error) { return w, h, nil }
	b := NewBoard(&buf, size, DefaultTheme(NewRenderer(&buf, termenv.Ascii)))

	require.NoError(t, b.Render(testView()))
	buf.Reset()
	require.NoError(t, b.Render(testView()))
	assert.NotContains(t, buf.String(), clearSeq)

	w = 100
	buf.Reset()
	require.NoError(t, b.Render(testView()))
	assert.Contains(t, buf.String(), clearSeq, "resize clears")

	buf.Reset()
	require.NoError(t, b.Render(testView(), "shutting down"))
	assert.Contains(t, buf.String(), clearSeq, "notice change clears")
	assert.Contains(t, buf.String(), "shutting down")
}

func TestBoard_SizeError(t *testing.T) {
	var buf bytes.Buffer
	size := func() (int, int, error) { return 0, 0, errors.New("no tty") }
	b := NewBoard(&buf, size, DefaultTheme(NewRenderer(&buf, termenv.Ascii)))

	assert.Error(t, b.Render(testView()))
}
