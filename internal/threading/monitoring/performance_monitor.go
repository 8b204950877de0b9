package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks frame and render-stage timings. All setters are
// safe to call from the game goroutine while another goroutine reads.
type PerformanceMonitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	raycastTime    atomic.Uint64
	backgroundTime atomic.Uint64
	spriteTime     atomic.Uint64

	columnsCast  atomic.Uint64
	spritesDrawn atomic.Uint64
	pixelSize    atomic.Int32

	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time
}

// NewPerformanceMonitor creates a monitor with all counters at zero.
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{startTime: time.Now()}
}

// smoothing factor of the running averages
const avgWeight = 0.1

func runningAvg(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + (sample-avg)*avgWeight
}

// FrameTimer measures one frame.
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing.
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: pm, startTime: time.Now()}
}

// EndFrame completes frame timing.
func (ft *FrameTimer) EndFrame() {
	d := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(d.Nanoseconds()))
	ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	ft.monitor.avgFrameTime = runningAvg(ft.monitor.avgFrameTime, float64(d.Nanoseconds()))
	ft.monitor.mutex.Unlock()
}

// Stage names a timed part of a frame.
type Stage int

const (
	StageRaycast Stage = iota
	StageBackground
	StageSprites
)

// StageTimer measures one render stage.
type StageTimer struct {
	monitor   *PerformanceMonitor
	stage     Stage
	startTime time.Time
}

// Start begins timing a stage. A nil monitor returns a nil timer whose End is
// a no-op, so callers need not check.
func (pm *PerformanceMonitor) Start(stage Stage) *StageTimer {
	if pm == nil {
		return nil
	}
	return &StageTimer{monitor: pm, stage: stage, startTime: time.Now()}
}

// End stores the elapsed time of the stage.
func (st *StageTimer) End() {
	if st == nil {
		return
	}
	ns := uint64(time.Since(st.startTime).Nanoseconds())
	switch st.stage {
	case StageRaycast:
		st.monitor.raycastTime.Store(ns)
		st.monitor.mutex.Lock()
		st.monitor.avgRaycastTime = runningAvg(st.monitor.avgRaycastTime, float64(ns))
		st.monitor.mutex.Unlock()
	case StageBackground:
		st.monitor.backgroundTime.Store(ns)
	case StageSprites:
		st.monitor.spriteTime.Store(ns)
	}
}

// RecordFrame stores the work done by the last render call.
func (pm *PerformanceMonitor) RecordFrame(columns, sprites, pixelSize int) {
	if pm == nil {
		return
	}
	pm.columnsCast.Store(uint64(columns))
	pm.spritesDrawn.Store(uint64(sprites))
	pm.pixelSize.Store(int32(pixelSize))
}

// FrameMetrics is a snapshot of the monitor.
type FrameMetrics struct {
	Frames          uint64
	FramesPerSecond float64
	FrameTime       time.Duration
	AvgFrameTime    time.Duration
	RaycastTime     time.Duration
	AvgRaycastTime  time.Duration
	BackgroundTime  time.Duration
	SpriteTime      time.Duration
	Columns         uint64
	Sprites         uint64
	PixelSize       int
	MemoryUsageMB   uint64
	Uptime          time.Duration
}

// GetCurrentMetrics returns the current values. FramesPerSecond is derived
// from the smoothed frame time.
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	avgCast := pm.avgRaycastTime
	start := pm.startTime
	pm.mutex.RUnlock()

	fps := 0.0
	if avgFrame > 0 {
		fps = float64(time.Second) / avgFrame
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		Frames:          pm.frameCount.Load(),
		FramesPerSecond: fps,
		FrameTime:       time.Duration(pm.frameTime.Load()),
		AvgFrameTime:    time.Duration(avgFrame),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		AvgRaycastTime:  time.Duration(avgCast),
		BackgroundTime:  time.Duration(pm.backgroundTime.Load()),
		SpriteTime:      time.Duration(pm.spriteTime.Load()),
		Columns:         pm.columnsCast.Load(),
		Sprites:         pm.spritesDrawn.Load(),
		PixelSize:       int(pm.pixelSize.Load()),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
		Uptime:          time.Since(start),
	}
}

// PerformanceAlert represents a performance warning.
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports a low frame rate and a raycast stage that
// takes more than half of the frame.
func (pm *PerformanceMonitor) CheckPerformanceAlerts(minFPS float64) []PerformanceAlert {
	var alerts []PerformanceAlert
	m := pm.GetCurrentMetrics()
	now := time.Now()

	if m.FramesPerSecond > 0 && m.FramesPerSecond < minFPS {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "frame rate is below the target",
			Value:     m.FramesPerSecond,
			Threshold: minFPS,
			Timestamp: now,
		})
	}
	if m.AvgFrameTime > 0 && m.AvgRaycastTime > m.AvgFrameTime/2 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_raycast",
			Message:   "wall casting takes more than half of the frame",
			Value:     float64(m.AvgRaycastTime) / float64(m.AvgFrameTime),
			Threshold: 0.5,
			Timestamp: now,
		})
	}
	return alerts
}

// Reset clears all counters.
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.backgroundTime.Store(0)
	pm.spriteTime.Store(0)
	pm.columnsCast.Store(0)
	pm.spritesDrawn.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
