package monitoring

import "time"

// PixelSizeAdvisor trades resolution for frame rate. Frames are counted over
// a sampling window; at the end of each window the pixel size grows by one
// when the rate is below Low and shrinks by one when it is above High.
type PixelSizeAdvisor struct {
	Min, Max  int
	Low, High float64
	Window    time.Duration

	windowStart time.Time
	frames      int
	lastFPS     float64
}

// NewPixelSizeAdvisor creates an advisor with a one second window.
func NewPixelSizeAdvisor(min, max int, low, high float64) *PixelSizeAdvisor {
	return &PixelSizeAdvisor{Min: min, Max: max, Low: low, High: high, Window: time.Second}
}

// FPS returns the rate measured over the last complete window.
func (a *PixelSizeAdvisor) FPS() float64 { return a.lastFPS }

// Frame counts one frame at now and returns the pixel size to use next.
// sampled is true when a window closed on this call.
func (a *PixelSizeAdvisor) Frame(now time.Time, current int, adjust bool) (next int, sampled bool) {
	if a.windowStart.IsZero() {
		a.windowStart = now
	}
	a.frames++

	elapsed := now.Sub(a.windowStart)
	if elapsed < a.Window {
		return current, false
	}

	a.lastFPS = float64(a.frames) / elapsed.Seconds()
	a.frames = 0
	a.windowStart = now

	if !adjust {
		return current, true
	}
	switch {
	case a.lastFPS < a.Low && current < a.Max:
		return current + 1, true
	case a.lastFPS > a.High && current > a.Min:
		return current - 1, true
	}
	return current, true
}

// Reset restarts the sampling window.
func (a *PixelSizeAdvisor) Reset() {
	a.windowStart = time.Time{}
	a.frames = 0
}
