package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/registry"
	"github.com/vovakirdan/clayrun/internal/storage"
)

// Options configures a game model beyond the runtime config.
type Options struct {
	Player string      // Name stored with finished runs
	Logger *log.Logger // nil discards
	Embed  bool        // Back returns to the caller instead of quitting the program
}

// GameModel is the Bubble Tea model for one game. Frames arrive as
// FrameMsg from the tick scheduler; keys are applied to the game between
// frames as soon as they arrive.
type GameModel struct {
	game      registry.Game
	sched     *TickScheduler
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	opts      Options
	keyMapper *KeyMapper
	gameState core.GameState
	bestBar   progress.Model
	best      int

	runID      int64 // Row of the saved run, 0 until saved
	runSaved   bool
	branchSent bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. The game is reset in Init.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := GameModel{
		game:      game,
		sched:     NewTickScheduler(cfg.TickRate),
		screen:    core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		store:     store,
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		bestBar:   newBestBar(20),
	}
	m.loadBest()
	return m
}

// Init resets the game and binds it to the tick scheduler. No frame is
// requested until a round starts.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config, m.sched)
	return m.sched.Cmd()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		return m, nil

	case FrameMsg:
		m.sched.Fire(msg.ID)
		m.afterUpdate()
		return m, m.sched.Cmd()
	}

	return m, nil
}

// handleKey maps the key and applies it to the game immediately.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	// Back to the menu is only offered while no round is in play.
	if msg.String() == "b" && !m.gameState.Running && m.gameState.Phase != core.PhaseRoundEnded {
		return m.leave()
	}

	in := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &in) {
		m.quitting = true
		return m, tea.Quit
	}

	m.game.Handle(in)
	m.afterUpdate()
	return m, m.sched.Cmd()
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.opts.Embed {
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// afterUpdate refreshes the cached state and persists finished runs.
func (m *GameModel) afterUpdate() {
	prev := m.gameState
	m.gameState = m.game.State()

	if prev.GameOver && m.gameState.Phase == core.PhaseNotStarted {
		m.runID, m.runSaved, m.branchSent = 0, false, false
		m.loadBest()
		return
	}
	if !m.gameState.GameOver {
		return
	}

	summary := m.game.Summary()
	if !m.runSaved {
		m.saveRun(summary)
	}
	if summary.Branch != "" && !m.branchSent && m.runID != 0 {
		m.branchSent = true
		if err := m.store.SetBranch(m.runID, summary.Branch); err != nil {
			m.opts.Logger.Warn("could not record victory branch", "error", err)
		}
	}
}

// saveRun stores the finished run (best-effort, game continues regardless).
func (m *GameModel) saveRun(summary core.RunSummary) {
	m.runSaved = true
	if m.store == nil {
		return
	}

	id, err := m.store.SaveRun(storage.RunRecord{
		GameID:     m.game.ID(),
		Player:     m.opts.Player,
		Character:  summary.Character,
		TotalScore: summary.Total,
		Rounds:     summary.Rounds,
		Victory:    summary.Victory,
		Branch:     summary.Branch,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "game", m.game.ID(), "error", err)
		return
	}
	m.runID = id
	m.opts.Logger.Info("run saved", "game", m.game.ID(), "total", summary.Total, "victory", summary.Victory)
}

func (m *GameModel) loadBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.opts.Logger.Warn("could not load high score", "error", err)
		return
	}
	m.best = best
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".clayrun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the game screen and the status bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	status := RenderStatusBar(m.bestBar, m.game.Title(), m.gameState.Score, m.best, m.config.ScreenW)
	return RenderScreen(m.screen) + "\n" + status
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting && !m.backToMenu
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
