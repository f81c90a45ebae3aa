package runner

// Event is a notification raised by the engine for the presentation layer.
type Event interface {
	runnerEvent()
}

// SessionStarted is raised when a new session begins with a character.
type SessionStarted struct {
	Character int
	Sprite    SpriteRef
}

// ProgressUpdated is raised every running frame.
type ProgressUpdated struct {
	Round    int
	Meters   int     // Whole meters run this round
	Progress float64 // Fraction of the victory distance, 0..1
}

// ObstacleCleared is raised once per obstacle the player gets past.
type ObstacleCleared struct {
	Sprite     SpriteRef
	RoundScore int
	Speed      float64 // Speed after the increment
}

// RoundEnded is raised when a collision ends the current round.
type RoundEnded struct {
	Round       int
	Meters      int
	CanContinue bool
	Jumped      []SpriteRef
}

// RoundStarted is raised when a confirmed advance begins the next round.
type RoundStarted struct {
	Round int
	Speed float64
}

// GameOver is raised once the final round has been confirmed.
type GameOver struct {
	TotalScore int
	History    []int
	Victory    bool
	Breakdown  string
}

// VictoryChosen is raised when the player picks a victory branch.
type VictoryChosen struct {
	Branch VictoryBranch
}

// SessionReset is raised by a confirmed restart.
type SessionReset struct{}

func (SessionStarted) runnerEvent()  {}
func (ProgressUpdated) runnerEvent() {}
func (ObstacleCleared) runnerEvent() {}
func (RoundEnded) runnerEvent()      {}
func (RoundStarted) runnerEvent()    {}
func (GameOver) runnerEvent()        {}
func (VictoryChosen) runnerEvent()   {}
func (SessionReset) runnerEvent()    {}

// Notifier receives engine events as they happen.
type Notifier interface {
	Notify(ev Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ev Event)

// Notify calls f(ev).
func (f NotifierFunc) Notify(ev Event) { f(ev) }

// Notifiers fans one event out to several notifiers, in order.
type Notifiers []Notifier

// Notify forwards ev to every non-nil notifier.
func (ns Notifiers) Notify(ev Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ev)
		}
	}
}

type discard struct{}

func (discard) Notify(Event) {}
