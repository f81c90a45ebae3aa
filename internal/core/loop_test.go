package core

import "testing"

func TestLoopStopsWhenStepReportsDone(t *testing.T) {
	sched := NewManualScheduler()
	steps := 0
	loop := NewLoop(sched, func() bool {
		steps++
		return steps < 5
	})

	loop.Start()
	frames := sched.RunUntilIdle(100)

	if steps != 5 {
		t.Errorf("expected 5 steps, got %d", steps)
	}
	if frames != 5 {
		t.Errorf("expected 5 frames, got %d", frames)
	}
	if loop.Pending() {
		t.Error("loop should not have a pending frame after finishing")
	}
}

func TestLoopOneStepPerFrame(t *testing.T) {
	sched := NewManualScheduler()
	steps := 0
	loop := NewLoop(sched, func() bool {
		steps++
		return true
	})

	loop.Start()
	loop.Start() // second start while pending must not double-schedule

	for i := 0; i < 3; i++ {
		sched.RunFrame()
	}

	if steps != 3 {
		t.Errorf("expected 3 steps for 3 frames, got %d", steps)
	}
}

func TestLoopStopCancelsPendingFrame(t *testing.T) {
	sched := NewManualScheduler()
	steps := 0
	loop := NewLoop(sched, func() bool {
		steps++
		return true
	})

	loop.Start()
	sched.RunFrame()
	loop.Stop()

	if sched.Len() != 0 {
		t.Errorf("expected no queued frames after Stop, got %d", sched.Len())
	}
	if sched.RunFrame() != 0 {
		t.Error("cancelled frame should not run")
	}
	if steps != 1 {
		t.Errorf("expected 1 step, got %d", steps)
	}

	// Restartable after stop
	loop.Start()
	sched.RunFrame()
	if steps != 2 {
		t.Errorf("expected loop to resume after Start, steps=%d", steps)
	}
}
