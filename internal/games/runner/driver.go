package runner

import "github.com/vovakirdan/clayrun/internal/core"

// Driver runs an Engine on a host scheduler: one Step per frame, and the
// next frame is requested only while the session is running. Inbound
// control signals go through the driver so the loop is resumed on round
// advance and halted on restart.
type Driver struct {
	engine  *Engine
	loop    *core.Loop
	onFrame func(events []Event)
	frames  uint64
}

// NewDriver binds engine to sched. onFrame, if not nil, is called after
// every step with the events it raised; hosts render from there.
func NewDriver(engine *Engine, sched core.Scheduler, onFrame func(events []Event)) *Driver {
	d := &Driver{engine: engine, onFrame: onFrame}
	d.loop = core.NewLoop(sched, d.frame)
	return d
}

// Engine returns the driven engine.
func (d *Driver) Engine() *Engine { return d.engine }

// Frames returns how many frames this driver has stepped.
func (d *Driver) Frames() uint64 { return d.frames }

// Pending reports whether a frame is scheduled.
func (d *Driver) Pending() bool { return d.loop.Pending() }

// Start begins a session with character and schedules the first frame.
func (d *Driver) Start(character int) []Event {
	return d.sync(d.engine.Start(character))
}

// Jump forwards a jump request. It never touches scheduling.
func (d *Driver) Jump() []Event {
	return d.engine.Jump()
}

// ConfirmRoundAdvance resumes the loop when the next round starts.
func (d *Driver) ConfirmRoundAdvance() []Event {
	return d.sync(d.engine.ConfirmRoundAdvance())
}

// ConfirmRestart clears the session and halts any pending frame.
func (d *Driver) ConfirmRestart() []Event {
	return d.sync(d.engine.ConfirmRestart())
}

// ChooseVictoryBranch selects the victory ending.
func (d *Driver) ChooseVictoryBranch(b VictoryBranch) []Event {
	return d.sync(d.engine.ChooseVictoryBranch(b))
}

// Apply dispatches cmd and keeps the loop in step with the session.
func (d *Driver) Apply(cmd Command) []Event {
	return d.sync(d.engine.Apply(cmd))
}

// Stop halts scheduling without touching the session.
func (d *Driver) Stop() {
	d.loop.Stop()
}

func (d *Driver) sync(events []Event) []Event {
	if d.engine.Running() {
		d.loop.Start()
	} else {
		d.loop.Stop()
	}
	return events
}

func (d *Driver) frame() bool {
	events := d.engine.Step()
	d.frames++
	if d.onFrame != nil {
		d.onFrame(events)
	}
	return d.engine.Running()
}
