package debug

import "time"

// FrameCounter measures frames per second over fixed windows.
type FrameCounter struct {
	window time.Duration
	start  time.Time
	frames int
	last   float64
}

// NewFrameCounter starts counting at now.
func NewFrameCounter(window time.Duration, now time.Time) *FrameCounter {
	return &FrameCounter{window: window, start: now}
}

// Tick records one frame. It reports true when a window closed, with the
// frame rate measured over it.
func (fc *FrameCounter) Tick(now time.Time) (fps float64, done bool) {
	fc.frames++
	elapsed := now.Sub(fc.start)
	if elapsed < fc.window {
		return fc.last, false
	}
	fc.last = float64(fc.frames) / elapsed.Seconds()
	fc.frames = 0
	fc.start = now
	return fc.last, true
}
