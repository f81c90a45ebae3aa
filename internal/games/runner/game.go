// Package runner implements the clay runner: an auto-running character
// jumps over a stream of obstacles across three rounds, and the total
// distance decides the ending.
package runner

import (
	"github.com/vovakirdan/clayrun/internal/config"
	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/registry"
)

const (
	variantRevised = "clayrun"
	variantClassic = "clayrun_classic"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config file's own values.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// LoadConfig loads the runner config with the CLI overrides applied.
// variantPreset is applied first; the CLI preset wins over it.
func LoadConfig(variantPreset config.DifficultyPreset) (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		return config.DefaultRunnerConfig(), err
	}
	if variantPreset != "" {
		config.ApplyRunnerPreset(&cfg, variantPreset)
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// screenPhase is the presentation state layered over the session phase
// while no round has started yet.
type screenPhase int

const (
	screenSelect screenPhase = iota
	screenTutorial
	screenPlay
)

// Game adapts the engine to the platform: it maps actions to inbound
// commands and draws the canvas into a terminal screen.
type Game struct {
	id     string
	title  string
	preset config.DifficultyPreset

	cfg       config.RunnerConfig
	configErr error
	engine    *Engine
	driver    *Driver
	sprites   SpriteSet

	screen   screenPhase
	cursor   int // Index into cfg.Characters on the select screen
	notifier Notifier
	recorder func(frame uint64, cmd Command)
}

// New creates the revised variant (speed +1 per cleared obstacle).
func New() *Game {
	return &Game{id: variantRevised, title: "Clay Runner"}
}

// NewClassic creates the classic variant (speed +0.2 per cleared obstacle).
func NewClassic() *Game {
	return &Game{id: variantClassic, title: "Clay Runner (classic)", preset: config.DifficultyClassic}
}

// ID returns the unique identifier for this variant.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this variant.
func (g *Game) Title() string { return g.title }

// Preset returns the preset this variant applies on top of the config.
func (g *Game) Preset() config.DifficultyPreset { return g.preset }

// SetNotifier routes engine events to n. Takes effect immediately and
// survives Reset.
func (g *Game) SetNotifier(n Notifier) {
	g.notifier = n
	if g.engine != nil {
		g.engine.SetNotifier(n)
	}
}

// SetRecorder registers fn to receive every accepted command stamped with
// the engine frame it was applied after.
func (g *Game) SetRecorder(fn func(frame uint64, cmd Command)) {
	g.recorder = fn
}

// ConfigError returns the error from the last config load, if any.
// The game falls back to built-in defaults when loading fails.
func (g *Game) ConfigError() error { return g.configErr }

// Engine returns the underlying engine, nil before Reset.
func (g *Game) Engine() *Engine { return g.engine }

// Characters returns the selectable character ids.
func (g *Game) Characters() []int { return append([]int(nil), g.cfg.Characters...) }

// Reset loads the config, builds a fresh engine and binds it to sched.
func (g *Game) Reset(runtime core.RuntimeConfig, sched core.Scheduler) {
	cfg, err := LoadConfig(g.preset)
	g.cfg = cfg
	g.configErr = err

	if g.driver != nil {
		g.driver.Stop()
	}
	g.engine = NewEngine(cfg, runtime.Seed, WithNotifier(g.notifier))
	g.driver = NewDriver(g.engine, sched, nil)
	g.sprites = DefaultSpriteSet(cfg.Characters, cfg.Obstacles.Pool)
	g.screen = screenSelect
	g.cursor = 0
}

// Handle maps input actions to engine commands for the current phase.
func (g *Game) Handle(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{}
	}

	switch g.engine.Session().Phase {
	case core.PhaseNotStarted:
		g.handleSelect(in)
	case core.PhaseRunning:
		if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
			g.apply(Command{Kind: CmdJump})
		}
	case core.PhaseRoundEnded:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.apply(Command{Kind: CmdAdvance})
		}
	case core.PhaseGameOver:
		branches := VictoryBranches()
		for i, a := range []core.Action{core.ActionChoice1, core.ActionChoice2, core.ActionChoice3} {
			if in.Has(a) {
				g.apply(Command{Kind: CmdBranch, Branch: branches[i]})
				break
			}
		}
		defeat := g.engine.Session().Outcome() == OutcomeDefeat
		if in.Has(core.ActionRestart) || (defeat && in.Has(core.ActionConfirm)) {
			g.restart()
		}
	case core.PhaseVictory:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.restart()
		}
	}

	return core.StepResult{State: g.State(), Frame: g.engine.Frame()}
}

func (g *Game) handleSelect(in core.InputFrame) {
	switch g.screen {
	case screenSelect:
		n := len(g.cfg.Characters)
		if n == 0 {
			g.screen = screenTutorial
			return
		}
		if in.Has(core.ActionLeft) || in.Has(core.ActionUp) {
			g.cursor = (g.cursor - 1 + n) % n
		}
		if in.Has(core.ActionRight) || in.Has(core.ActionDown) {
			g.cursor = (g.cursor + 1) % n
		}
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.screen = screenTutorial
		}
	case screenTutorial:
		if in.Has(core.ActionBack) {
			g.screen = screenSelect
			return
		}
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.apply(Command{Kind: CmdStart, Character: g.selectedCharacter()})
			g.screen = screenPlay
		}
	default:
		g.screen = screenSelect
	}
}

func (g *Game) restart() {
	if g.apply(Command{Kind: CmdRestart}) {
		g.screen = screenSelect
	}
}

// apply runs cmd through the driver, recording it when it is accepted.
func (g *Game) apply(cmd Command) bool {
	if !g.engine.CanApply(cmd) {
		return false
	}
	if g.recorder != nil {
		g.recorder(g.engine.Frame(), cmd)
	}
	g.driver.Apply(cmd)
	return true
}

func (g *Game) selectedCharacter() int {
	if len(g.cfg.Characters) == 0 {
		return 0
	}
	return g.cfg.Characters[core.Clamp(g.cursor, 0, len(g.cfg.Characters)-1)]
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{Phase: core.PhaseNotStarted, Round: 1}
	}
	return g.engine.Session().GameState()
}

// Summary returns the run so far.
func (g *Game) Summary() core.RunSummary {
	if g.engine == nil {
		return core.RunSummary{}
	}
	s := g.engine.Session()
	return core.RunSummary{
		Character: s.Character,
		Rounds:    s.History,
		Total:     s.TotalScore,
		Victory:   s.Outcome() == OutcomeVictory,
		Branch:    string(s.Branch),
	}
}

func init() {
	registry.Register(variantRevised, func() registry.Game { return New() })
	registry.Register(variantClassic, func() registry.Game { return NewClassic() })
}
