package threading

import (
	"falkenstein/internal/config"
	"falkenstein/internal/threading/core"
	"falkenstein/internal/threading/monitoring"
)

// ThreadingComponents holds the worker pool and the monitors of a running
// game.
type ThreadingComponents struct {
	WorkerPool         *core.WorkerPool // nil when columns are cast in order
	PerformanceMonitor *monitoring.PerformanceMonitor
	PixelSizeAdvisor   *monitoring.PixelSizeAdvisor
}

// NewThreadingComponents creates the components for cfg. The pool is
// started only when parallel column casting is enabled.
func NewThreadingComponents(cfg config.RenderConfig) *ThreadingComponents {
	tc := &ThreadingComponents{
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
		PixelSizeAdvisor:   monitoring.NewPixelSizeAdvisor(cfg.MinPixelSize, cfg.MaxPixelSize, cfg.LowFPS, cfg.HighFPS),
	}
	if cfg.ParallelColumns {
		tc.WorkerPool = core.NewStartedPool(cfg.Workers)
	}
	return tc
}

// Shutdown stops the worker pool. It is safe to call more than once.
func (tc *ThreadingComponents) Shutdown() {
	if tc.WorkerPool != nil {
		tc.WorkerPool.Stop()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.FrameMetrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts(minFPS float64) []monitoring.PerformanceAlert {
	return tc.PerformanceMonitor.CheckPerformanceAlerts(minFPS)
}
