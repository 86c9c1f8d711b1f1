package session

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(log.New(io.Discard))
}

func TestManager_RegisterUnregister(t *testing.T) {
	m := newTestManager()

	a := m.Register("alice")
	b := m.Register("bob")
	require.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Count())

	m.Unregister(a.ID)
	assert.Equal(t, 1, m.Count())
	_, open := <-a.Events
	assert.False(t, open, "events closed on unregister")

	m.Unregister(a.ID)
	m.Unregister("missing")
	assert.Equal(t, 1, m.Count())
}

func TestManager_ShutdownNotifiesAndWaits(t *testing.T) {
	m := newTestManager()
	h := m.Register("alice")

	go func() {
		ev := <-h.Events
		if ev.Type == EventServerShutdown {
			m.Unregister(h.ID)
		}
	}()

	assert.Equal(t, 0, m.Shutdown(2*time.Second))
	assert.Equal(t, 0, m.Count())
}

func TestManager_ShutdownTimeout(t *testing.T) {
	m := newTestManager()
	h := m.Register("idle")

	assert.Equal(t, 1, m.Shutdown(50*time.Millisecond))
	assert.Equal(t, Event{Type: EventServerShutdown}, <-h.Events)
}

func TestManager_RegisterDuringShutdown(t *testing.T) {
	m := newTestManager()
	m.Shutdown(0)

	h := m.Register("late")
	select {
	case ev := <-h.Events:
		assert.Equal(t, EventServerShutdown, ev.Type)
	default:
		t.Fatal("late session was not told about shutdown")
	}
}
