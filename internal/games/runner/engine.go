package runner

import (
	"math/rand"

	"github.com/vovakirdan/clayrun/internal/config"
	"github.com/vovakirdan/clayrun/internal/core"
)

// Engine is the per-frame simulation: player physics, obstacle stream,
// collision, scoring and the session state machine. It has no rendering
// and no clock; a host calls Step once per frame while Running is true and
// forwards input through the inbound methods. Every inbound method and Step
// return the events they raised, which are also passed to the notifier.
//
// Engine is not safe for concurrent use.
type Engine struct {
	cfg      config.RunnerConfig
	ramp     *config.SpeedRamp
	rng      *rand.Rand
	seed     int64
	session  SessionState
	player   *PlayerBody
	stream   *ObstacleStream
	rain     *RainField
	bgX      float64
	jumped   []SpriteRef
	notifier Notifier
	frame    uint64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithNotifier routes engine events to n.
func WithNotifier(n Notifier) EngineOption {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// NewEngine creates an engine in the NotStarted phase. cfg is assumed valid.
func NewEngine(cfg config.RunnerConfig, seed int64, opts ...EngineOption) *Engine {
	rng := rand.New(rand.NewSource(seed))
	ramp := config.NewSpeedRamp(cfg.Speed, cfg.Obstacles)

	e := &Engine{
		cfg:      cfg,
		ramp:     ramp,
		rng:      rng,
		seed:     seed,
		notifier: discard{},
		session: NewSession(SessionRules{
			MaxRounds:       cfg.Session.MaxRounds,
			VictoryDistance: cfg.Session.VictoryDistance,
		}),
		player: NewPlayerBody(cfg.Player, cfg.Canvas.GroundY),
		stream: NewObstacleStream(cfg.Obstacles, ramp, Detector{Padding: cfg.Collision.Padding}, cfg.Canvas.Width, rng),
		rain:   NewRainField(cfg.Rain, cfg.Canvas.Width, cfg.Canvas.Height, rng),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetNotifier replaces the event notifier. nil discards events.
func (e *Engine) SetNotifier(n Notifier) {
	if n == nil {
		n = discard{}
	}
	e.notifier = n
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.RunnerConfig { return e.cfg }

// Seed returns the seed the engine was created with.
func (e *Engine) Seed() int64 { return e.seed }

// Session returns a copy of the session state.
func (e *Engine) Session() SessionState { return e.session.clone() }

// Player returns the player body. Callers must not mutate it.
func (e *Engine) Player() *PlayerBody { return e.player }

// Obstacles returns the live obstacles. The slice must not be modified.
func (e *Engine) Obstacles() []Obstacle { return e.stream.Obstacles() }

// Rain returns the cosmetic rain drops.
func (e *Engine) Rain() []RainDrop { return e.rain.Drops() }

// Background returns the background scroll offset, in (-BackgroundWidth, 0].
func (e *Engine) Background() float64 { return e.bgX }

// Jumped returns the sprites cleared in the current round, in order.
func (e *Engine) Jumped() []SpriteRef { return append([]SpriteRef(nil), e.jumped...) }

// Frame returns the number of frames stepped since the engine was created.
func (e *Engine) Frame() uint64 { return e.frame }

// Running reports whether the host should keep stepping frames.
func (e *Engine) Running() bool { return e.session.Running() }

// PlayerSprite returns the sprite of the selected character.
func (e *Engine) PlayerSprite() SpriteRef {
	if e.session.Character <= 0 {
		return NoSprite
	}
	return CharacterSprite(e.session.Character)
}

// Start begins a new session with the given character. The obstacle bag is
// refilled. Ignored unless the session is NotStarted.
func (e *Engine) Start(character int) []Event {
	next, ok := e.session.Begin(character, e.ramp.Base(1))
	if !ok {
		return nil
	}
	e.session = next
	e.stream.RefillBag()
	e.resetRound()

	return e.emit(SessionStarted{Character: character, Sprite: e.PlayerSprite()})
}

// Jump forwards a jump request to the player body. Ignored unless running;
// requests past the jump cap are dropped.
func (e *Engine) Jump() []Event {
	if !e.session.Running() {
		return nil
	}
	e.player.Jump()
	return nil
}

// ConfirmRoundAdvance moves on from a round summary: to the next round when
// one remains, to game over otherwise. Ignored outside RoundEnded.
func (e *Engine) ConfirmRoundAdvance() []Event {
	next, ok := e.session.Advance(e.ramp.Base)
	if !ok {
		return nil
	}
	e.session = next

	if next.Phase == core.PhaseGameOver {
		return e.emit(GameOver{
			TotalScore: next.TotalScore,
			History:    append([]int(nil), next.History...),
			Victory:    next.Outcome() == OutcomeVictory,
			Breakdown:  next.Breakdown(),
		})
	}

	e.resetRound()
	return e.emit(RoundStarted{Round: next.CurrentRound, Speed: next.Speed})
}

// ConfirmRestart clears all score state and returns to character selection.
// Ignored unless the game is over.
func (e *Engine) ConfirmRestart() []Event {
	next, ok := e.session.Restart()
	if !ok {
		return nil
	}
	e.session = next
	e.resetRound()
	return e.emit(SessionReset{})
}

// ChooseVictoryBranch selects the victory ending. Ignored unless the game
// ended in victory.
func (e *Engine) ChooseVictoryBranch(b VictoryBranch) []Event {
	next, ok := e.session.ChooseBranch(b)
	if !ok {
		return nil
	}
	e.session = next
	return e.emit(VictoryChosen{Branch: b})
}

// CommandKind identifies an inbound command.
type CommandKind int

const (
	CmdStart CommandKind = iota + 1
	CmdJump
	CmdAdvance
	CmdRestart
	CmdBranch
)

// Command is an inbound control signal as a value, for recording and replay.
type Command struct {
	Kind      CommandKind
	Character int
	Branch    VictoryBranch
}

// CanApply reports whether cmd would change anything in the current phase.
func (e *Engine) CanApply(cmd Command) bool {
	switch cmd.Kind {
	case CmdStart:
		return e.session.Phase == core.PhaseNotStarted
	case CmdJump:
		return e.session.Running()
	case CmdAdvance:
		return e.session.Phase == core.PhaseRoundEnded
	case CmdRestart:
		return e.session.Phase == core.PhaseGameOver || e.session.Phase == core.PhaseVictory
	case CmdBranch:
		return e.session.Phase == core.PhaseGameOver && e.session.Outcome() == OutcomeVictory
	}
	return false
}

// Apply dispatches cmd to the matching inbound method.
func (e *Engine) Apply(cmd Command) []Event {
	switch cmd.Kind {
	case CmdStart:
		return e.Start(cmd.Character)
	case CmdJump:
		return e.Jump()
	case CmdAdvance:
		return e.ConfirmRoundAdvance()
	case CmdRestart:
		return e.ConfirmRestart()
	case CmdBranch:
		return e.ChooseVictoryBranch(cmd.Branch)
	}
	return nil
}

// Step runs one frame. The order is fixed: rain, background, distance,
// player physics, spawn timer, then every obstacle (move, recycle, collide,
// pass), then progress. Returns nil when the session is not running.
func (e *Engine) Step() []Event {
	if !e.session.Running() {
		return nil
	}
	e.frame++

	var events []Event

	e.rain.Advance()

	e.bgX -= e.ramp.BackgroundScroll(e.session.Speed)
	if w := e.cfg.Canvas.BackgroundWidth; e.bgX <= -w {
		e.bgX += w
	}

	e.session = e.session.Travel(e.ramp.Distance(e.session.Speed))

	e.player.Integrate()

	e.stream.Tick(e.session.Speed)

	res := e.stream.Advance(e.player.Bounds(), func() float64 {
		return e.session.Speed
	}, func(o Obstacle) {
		e.session = e.session.Clear(e.cfg.Obstacles.PassReward, e.ramp.Increment())
		e.jumped = append(e.jumped, o.Sprite)
		events = append(events, ObstacleCleared{
			Sprite:     o.Sprite,
			RoundScore: e.session.RoundScore,
			Speed:      e.session.Speed,
		})
	})

	if res.Hit {
		next, meters, _ := e.session.EndRound()
		e.session = next
		events = append(events, RoundEnded{
			Round:       next.CurrentRound,
			Meters:      meters,
			CanContinue: next.CanContinue(),
			Jumped:      e.Jumped(),
		})
		return e.emit(events...)
	}

	events = append(events, ProgressUpdated{
		Round:    e.session.CurrentRound,
		Meters:   e.session.Meters(),
		Progress: e.session.Progress(),
	})
	return e.emit(events...)
}

// resetRound puts the world back to the start of a round. Session counters
// are reset by the session transitions themselves.
func (e *Engine) resetRound() {
	e.stream.Reset()
	e.jumped = e.jumped[:0]
	e.player.ResetPosition()
	e.bgX = 0
}

func (e *Engine) emit(events ...Event) []Event {
	for _, ev := range events {
		e.notifier.Notify(ev)
	}
	return events
}
