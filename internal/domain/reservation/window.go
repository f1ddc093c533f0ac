package reservation

import "time"

// Window is the assumed occupancy span of a seated party, half-open
// [start, end).
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start time.Time, duration time.Duration) Window {
	return Window{start: start, end: start.Add(duration)}
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

func (w Window) Intersects(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// SameDay reports whether both windows begin on the same calendar date.
func (w Window) SameDay(other Window) bool {
	y1, m1, d1 := w.start.Date()
	y2, m2, d2 := other.start.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
