package loop

import "time"

// Interval gates a periodic action with an accumulator. On each frame the
// action fires if the accumulated time has reached Every, which also zeroes
// the accumulator; otherwise the frame delta is added. Firing therefore lands
// on the first frame after the threshold is crossed, and the overshoot is
// dropped.
type Interval struct {
	Every time.Duration
	acc   time.Duration
}

// NewInterval returns an Interval firing roughly every d.
func NewInterval(d time.Duration) Interval {
	return Interval{Every: d}
}

// Step advances the accumulator by one frame and reports whether the action
// fires this frame.
func (i *Interval) Step(delta time.Duration) bool {
	if i.acc >= i.Every {
		i.acc = 0
		return true
	}
	i.acc += delta
	return false
}

// Clock supplies monotonic frame timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock; time.Time carries a monotonic reading.
var SystemClock Clock = systemClock{}
