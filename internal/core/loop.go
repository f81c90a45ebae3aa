package core

// FrameID identifies a frame request handed out by a Scheduler.
// The zero value never identifies a live request.
type FrameID uint64

// Scheduler is the host's "run this on the next rendered frame" primitive.
// RequestFrame must not call fn synchronously.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Loop drives a step function once per scheduled frame and keeps requesting
// frames only while the step reports that the simulation is still running.
type Loop struct {
	sched   Scheduler
	step    func() bool
	pending FrameID
}

// NewLoop creates a loop around step. step returns whether another frame is wanted.
func NewLoop(sched Scheduler, step func() bool) *Loop {
	return &Loop{sched: sched, step: step}
}

// Start requests the first frame. Calling Start while a frame is already
// pending is a no-op, so the loop never runs twice per frame.
func (l *Loop) Start() {
	if l.pending != 0 {
		return
	}
	l.pending = l.sched.RequestFrame(l.frame)
}

// Stop cancels any pending frame.
func (l *Loop) Stop() {
	if l.pending == 0 {
		return
	}
	l.sched.CancelFrame(l.pending)
	l.pending = 0
}

// Pending reports whether a frame request is outstanding.
func (l *Loop) Pending() bool {
	return l.pending != 0
}

func (l *Loop) frame() {
	l.pending = 0
	if l.step() {
		l.pending = l.sched.RequestFrame(l.frame)
	}
}

// ManualScheduler is a Scheduler that runs frames only when told to.
// Used by headless hosts (tests, simulations, replays).
type ManualScheduler struct {
	next    FrameID
	pending map[FrameID]func()
	order   []FrameID
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameID]func())}
}

// RequestFrame queues fn for the next call to RunFrame.
func (m *ManualScheduler) RequestFrame(fn func()) FrameID {
	m.next++
	m.pending[m.next] = fn
	m.order = append(m.order, m.next)
	return m.next
}

// CancelFrame drops a queued request.
func (m *ManualScheduler) CancelFrame(id FrameID) {
	delete(m.pending, id)
}

// Len returns the number of queued requests.
func (m *ManualScheduler) Len() int {
	return len(m.pending)
}

// RunFrame runs every request queued before the call and returns how many ran.
// Requests made while running are deferred to the next call.
func (m *ManualScheduler) RunFrame() int {
	order := m.order
	m.order = nil
	ran := 0
	for _, id := range order {
		fn, ok := m.pending[id]
		if !ok {
			continue
		}
		delete(m.pending, id)
		fn()
		ran++
	}
	return ran
}

// RunUntilIdle runs frames until nothing is queued or limit frames have run.
func (m *ManualScheduler) RunUntilIdle(limit int) int {
	frames := 0
	for frames < limit && m.RunFrame() > 0 {
		frames++
	}
	return frames
}
