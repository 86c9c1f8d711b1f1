// Package input turns a raw terminal byte stream into key presses.
package input

import (
	"bufio"
	"sync"
	"time"
)

// Key is a decoded key press.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQuit
)

// Stream delivers input bytes via a channel and queues decoded keys until
// they are polled.
type Stream struct {
	ch         chan byte
	partial    []byte // unfinished escape sequence carried to the next drain
	pending    []Key
	closed     bool
	lastActive time.Time
	now        func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream until r ends or Stop is called.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.exited)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:         make(chan byte, 128),
		lastActive: time.Now(),
		now:        time.Now,
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
	}
}

// Stop releases the reader goroutine once it has a byte it can no longer
// deliver. A read already blocked on r returns when r does.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// PollKey drains available bytes (non-blocking) and returns the oldest
// queued key. Keys pressed between frames are handed out one per call.
func (s *Stream) PollKey() (Key, bool) {
	s.drain()
	if len(s.pending) == 0 {
		return KeyNone, false
	}
	k := s.pending[0]
	s.pending = s.pending[1:]
	return k, true
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	s.drain()
	return s.closed
}

// Idle returns how long it has been since any byte arrived.
func (s *Stream) Idle() time.Duration {
	return s.now().Sub(s.lastActive)
}

// Reset drops queued keys.
func (s *Stream) Reset() {
	s.pending = s.pending[:0]
}

// drain collects every byte currently buffered in the channel and decodes it.
func (s *Stream) drain() {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	if s.closed {
		// keep the channel from being read again
		s.ch = nil
	}
	if len(buf) == 0 {
		return
	}
	s.lastActive = s.now()
	if len(s.partial) > 0 {
		buf = append(s.partial, buf...)
		s.partial = nil
	}
	keys, rest := decode(buf)
	s.pending = append(s.pending, keys...)
	if len(rest) > 0 && !s.closed {
		s.partial = append([]byte(nil), rest...)
	}
}

// Decode parses a chunk of terminal input. Arrow keys arrive as CSI
// sequences (ESC [ A..D); everything else is one byte per key. A truncated
// sequence at the end of buf yields no key.
func Decode(buf []byte) []Key {
	keys, _ := decode(buf)
	return keys
}

// decode is Decode that also returns a trailing ESC or ESC [ that may be
// completed by later input.
func decode(buf []byte) ([]Key, []byte) {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && (i == len(buf)-1 || (i == len(buf)-2 && buf[i+1] == '[')) {
			return keys, buf[i:]
		}

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			var k Key
			switch buf[i+2] {
			case 'A':
				k = KeyUp
			case 'B':
				k = KeyDown
			case 'C':
				k = KeyRight
			case 'D':
				k = KeyLeft
			}
			if k != KeyNone {
				keys = append(keys, k)
				i += 2
				continue
			}
		}

		if k := keyForByte(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyQuit
	case 'a', 'A', 'j', 'J':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'i', 'I':
		return KeyUp
	case 's', 'S', 'k', 'K':
		return KeyDown
	}
	return KeyNone
}
