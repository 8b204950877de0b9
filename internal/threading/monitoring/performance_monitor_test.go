package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()
	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
	if m := pm.GetCurrentMetrics(); m.FramesPerSecond != 0 || m.Frames != 0 {
		t.Errorf("fresh monitor reports %+v", m)
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond)
	frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	minExpectedTime := uint64(10 * time.Millisecond)
	if frameTime := pm.frameTime.Load(); frameTime < minExpectedTime {
		t.Errorf("Expected frame time to be at least %d ns, got %d ns", minExpectedTime, frameTime)
	}

	m := pm.GetCurrentMetrics()
	if m.FramesPerSecond <= 0 || m.FramesPerSecond > 100 {
		t.Errorf("FPS for a 10ms frame = %f", m.FramesPerSecond)
	}
}

func TestStageTimers(t *testing.T) {
	pm := NewPerformanceMonitor()
	for _, stage := range []Stage{StageRaycast, StageBackground, StageSprites} {
		st := pm.Start(stage)
		time.Sleep(time.Millisecond)
		st.End()
	}
	m := pm.GetCurrentMetrics()
	if m.RaycastTime == 0 || m.BackgroundTime == 0 || m.SpriteTime == 0 {
		t.Errorf("stage times not recorded: %+v", m)
	}
	if m.AvgRaycastTime == 0 {
		t.Error("raycast average not updated")
	}

	var nilMonitor *PerformanceMonitor
	nilMonitor.Start(StageRaycast).End()
	nilMonitor.RecordFrame(1, 2, 3)
}

func TestRecordFrameAndReset(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.RecordFrame(320, 3, 2)
	m := pm.GetCurrentMetrics()
	if m.Columns != 320 || m.Sprites != 3 || m.PixelSize != 2 {
		t.Errorf("metrics = %+v", m)
	}
	pm.Reset()
	if m := pm.GetCurrentMetrics(); m.Columns != 0 || m.Frames != 0 {
		t.Errorf("after reset: %+v", m)
	}
}

func TestCheckPerformanceAlerts(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.mutex.Lock()
	pm.avgFrameTime = float64(50 * time.Millisecond)
	pm.avgRaycastTime = float64(40 * time.Millisecond)
	pm.mutex.Unlock()

	alerts := pm.CheckPerformanceAlerts(30)
	types := map[string]bool{}
	for _, a := range alerts {
		types[a.Type] = true
	}
	if !types["low_fps"] || !types["slow_raycast"] {
		t.Errorf("alerts = %+v", alerts)
	}

	pm.Reset()
	if alerts := pm.CheckPerformanceAlerts(30); len(alerts) != 0 {
		t.Errorf("idle monitor raised %+v", alerts)
	}
}

func TestPerformanceMonitorConcurrency(t *testing.T) {
	pm := NewPerformanceMonitor()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ft := pm.StartFrame()
				pm.Start(StageRaycast).End()
				ft.EndFrame()
				_ = pm.GetCurrentMetrics()
			}
		}()
	}
	wg.Wait()
	if got := pm.frameCount.Load(); got != 400 {
		t.Errorf("frame count = %d, want 400", got)
	}
}

func TestPixelSizeAdvisor(t *testing.T) {
	t0 := time.Unix(1000, 0)

	run := func(a *PixelSizeAdvisor, frames int, current int) int {
		next := current
		for i := 0; i <= frames; i++ {
			at := t0.Add(time.Duration(i) * time.Second / time.Duration(frames))
			next, _ = a.Frame(at, next, true)
		}
		return next
	}

	tests := []struct {
		name    string
		frames  int
		current int
		want    int
	}{
		{"slow grows", 20, 4, 5},
		{"slow capped", 20, 16, 16},
		{"fast shrinks", 150, 4, 3},
		{"fast floored", 150, 1, 1},
		{"steady", 60, 4, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewPixelSizeAdvisor(1, 16, 30, 100)
			if got := run(a, tc.frames, tc.current); got != tc.want {
				t.Errorf("pixel size = %d, want %d (fps %.1f)", got, tc.want, a.FPS())
			}
		})
	}
}

func TestPixelSizeAdvisorWaitsForWindow(t *testing.T) {
	a := NewPixelSizeAdvisor(1, 16, 30, 100)
	t0 := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		next, sampled := a.Frame(t0.Add(time.Duration(i)*100*time.Millisecond), 3, true)
		if sampled || next != 3 {
			t.Fatalf("frame %d: sampled=%v next=%d before the window closed", i, sampled, next)
		}
	}
	next, sampled := a.Frame(t0.Add(time.Second), 3, false)
	if !sampled || next != 3 {
		t.Errorf("disabled advisor changed size: sampled=%v next=%d", sampled, next)
	}
}
