package runner

import "github.com/charmbracelet/log"

// LogNotifier writes engine events to a structured logger: session and
// round transitions at info, cleared obstacles at debug.
type LogNotifier struct {
	Logger *log.Logger
}

// NewLogNotifier wraps logger. A nil logger uses the package default.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{Logger: logger}
}

// Notify logs ev. Per-frame progress is not logged.
func (n *LogNotifier) Notify(ev Event) {
	switch ev := ev.(type) {
	case SessionStarted:
		n.Logger.Info("session started", "character", ev.Character, "sprite", ev.Sprite)
	case ObstacleCleared:
		n.Logger.Debug("obstacle cleared", "sprite", ev.Sprite, "round_score", ev.RoundScore, "speed", ev.Speed)
	case RoundEnded:
		n.Logger.Info("round ended", "round", ev.Round, "meters", ev.Meters, "can_continue", ev.CanContinue, "jumped", len(ev.Jumped))
	case RoundStarted:
		n.Logger.Info("round started", "round", ev.Round, "speed", ev.Speed)
	case GameOver:
		n.Logger.Info("game over", "total", ev.TotalScore, "victory", ev.Victory, "breakdown", ev.Breakdown)
	case VictoryChosen:
		n.Logger.Info("victory branch chosen", "branch", ev.Branch)
	case SessionReset:
		n.Logger.Info("session reset")
	}
}
