package runner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/clayrun/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '═'
	RainChar     = '│'
	SkylineChar  = '░'
	WindowChar   = '▪'
	ProgressFull = '█'
	ProgressGap  = '░'
	PlayerFill   = '▒'
)

// viewport maps canvas coordinates to terminal cells. Row 0 is the HUD, the
// last row is the ground line and the canvas fills the rows in between.
type viewport struct {
	cols, rows int
	canvasW    float64
	canvasH    float64
}

func newViewport(dst *core.Screen, canvasW, canvasH float64) viewport {
	return viewport{cols: dst.Width(), rows: dst.Height(), canvasW: canvasW, canvasH: canvasH}
}

func (v viewport) col(x float64) int {
	return int(x * float64(v.cols) / v.canvasW)
}

func (v viewport) row(y float64) int {
	playH := v.rows - 2
	if playH < 1 {
		playH = 1
	}
	return 1 + int(y*float64(playH)/v.canvasH)
}

// cells converts a canvas box to an inclusive cell range at least one cell wide.
func (v viewport) cells(r core.RectF) core.Rect {
	x0, y0 := v.col(r.Left()), v.row(r.Top())
	x1, y1 := v.col(r.Right()), v.row(r.Bottom())
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	session := g.engine.Session()
	if session.Phase == core.PhaseNotStarted {
		g.renderWorld(dst, false)
		switch g.screen {
		case screenTutorial:
			g.renderTutorial(dst)
		default:
			g.renderSelect(dst)
		}
		return
	}

	g.renderWorld(dst, true)
	g.renderHUD(dst, session)

	switch session.Phase {
	case core.PhaseRoundEnded:
		g.renderRoundSummary(dst, session)
	case core.PhaseGameOver:
		g.renderGameOver(dst, session)
	case core.PhaseVictory:
		g.renderVictory(dst, session)
	}
}

// renderWorld draws background, rain, ground and, when withActors is set,
// the player and obstacles.
func (g *Game) renderWorld(dst *core.Screen, withActors bool) {
	vp := newViewport(dst, g.cfg.Canvas.Width, g.cfg.Canvas.Height)

	g.drawSkyline(dst, vp)

	for _, d := range g.engine.Rain() {
		x := vp.col(d.X)
		top, bottom := vp.row(d.Y), vp.row(d.Y+d.Length)
		for y := core.Max(top, 1); y <= bottom && y < dst.Height()-1; y++ {
			dst.SetColored(x, y, RainChar, core.ColorGray)
		}
	}

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorMagenta)

	if !withActors {
		return
	}

	for _, o := range g.engine.Obstacles() {
		glyph, ok := g.sprites.Resolve(o.Sprite)
		if !ok {
			continue
		}
		dst.DrawRect(vp.cells(o.Bounds()), glyph.Rune, glyph.Color)
	}

	if glyph, ok := g.sprites.Resolve(g.engine.PlayerSprite()); ok {
		box := vp.cells(g.engine.Player().Bounds())
		dst.DrawRect(box, PlayerFill, glyph.Color)
		dst.SetColored(box.X+box.W/2, box.Y, glyph.Rune, glyph.Color)
	}
}

// drawSkyline draws a scrolling row of buildings driven by the background offset.
func (g *Game) drawSkyline(dst *core.Screen, vp viewport) {
	const blockW = 80.0
	bottom := dst.Height() - 2
	maxH := core.Max((dst.Height()-2)/2, 1)

	for cx := 0; cx < dst.Width(); cx++ {
		worldX := float64(cx)*vp.canvasW/float64(vp.cols) - g.engine.Background()
		block := int(worldX / blockW)
		h := 1 + skylineHeight(block)%maxH
		for dy := 0; dy < h; dy++ {
			y := bottom - dy
			if y < 1 {
				break
			}
			ch := SkylineChar
			if dy%2 == 1 && cx%3 == 1 {
				ch = WindowChar
			}
			dst.SetColored(cx, y, ch, core.ColorBlue)
		}
	}
}

// skylineHeight is a cheap integer hash so building heights repeat with the scroll.
func skylineHeight(block int) int {
	h := uint32(block)*2654435761 + 0x9e3779b9
	h ^= h >> 15
	return int(h % 97)
}

func (g *Game) renderHUD(dst *core.Screen, s SessionState) {
	text := fmt.Sprintf(" Round: %d/%d | Distance: %dm ", s.CurrentRound, s.Rules.MaxRounds, s.Meters())
	dst.DrawTextColored(0, 0, text, core.ColorBrightWhite)

	barW := core.Clamp(dst.Width()-len(text)-8, 0, 30)
	if barW < 4 {
		return
	}
	bar := progressBar(s.Progress(), barW)
	x := dst.Width() - barW - 7
	dst.DrawTextColored(x, 0, bar, core.ColorBrightMagenta)
	dst.DrawTextColored(x+barW+1, 0, fmt.Sprintf("%3d%%", int(s.Progress()*100)), core.ColorBrightMagenta)
}

// progressBar renders ratio as a fixed-width bar.
func progressBar(ratio float64, width int) string {
	filled := int(core.ClampF(ratio, 0, 1) * float64(width))
	return strings.Repeat(string(ProgressFull), filled) + strings.Repeat(string(ProgressGap), width-filled)
}

// drawPanel draws a centered box with the given lines and returns its bounds.
func drawPanel(dst *core.Screen, lines []string, c core.Color) core.Rect {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	box := core.NewRect(core.Max(x, 0), core.Max(y, 0), w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	for i, l := range lines {
		lx := box.X + (w-len([]rune(l)))/2
		dst.DrawTextColored(lx, box.Y+1+i, l, c)
	}
	return box
}

func (g *Game) renderSelect(dst *core.Screen) {
	lines := []string{"ELIGE TU PERSONAJE", ""}

	var row strings.Builder
	for i, id := range g.cfg.Characters {
		glyph, ok := g.sprites.Resolve(CharacterSprite(id))
		r := '?'
		if ok {
			r = glyph.Rune
		}
		if i == g.cursor {
			row.WriteString("[" + string(r) + "]")
		} else {
			row.WriteString(" " + string(r) + " ")
		}
	}
	lines = append(lines, row.String(), "", "←/→ choose  ENTER select  Q quit")

	box := drawPanel(dst, lines, core.ColorBrightCyan)

	// Recolor each character with its own sprite color.
	if len(g.cfg.Characters) > 0 {
		rowY := box.Y + 3
		rowX := box.X + (box.W-len([]rune(lines[2])))/2
		for i, id := range g.cfg.Characters {
			if glyph, ok := g.sprites.Resolve(CharacterSprite(id)); ok {
				dst.SetColored(rowX+i*3+1, rowY, glyph.Rune, glyph.Color)
			}
		}
	}
}

func (g *Game) renderTutorial(dst *core.Screen) {
	drawPanel(dst, []string{
		"CÓMO JUGAR",
		"",
		"SPACE / ↑ jump, press again in the air to double jump",
		fmt.Sprintf("%d rounds: each collision ends a round", g.cfg.Session.MaxRounds),
		fmt.Sprintf("Run %d meters in total to escape", g.cfg.Session.VictoryDistance),
		"",
		"ENTER start  ESC back",
	}, core.ColorBrightYellow)
}

func (g *Game) renderRoundSummary(dst *core.Screen, s SessionState) {
	meters := 0
	if n := len(s.History); n > 0 {
		meters = s.History[n-1]
	}

	var gallery strings.Builder
	for _, ref := range g.engine.Jumped() {
		if glyph, ok := g.sprites.Resolve(ref); ok {
			gallery.WriteRune(glyph.Rune)
		}
	}
	jumped := gallery.String()
	if jumped == "" {
		jumped = "-"
	}

	next := "ENTER: VOLVER A ESCAPAR"
	if !s.CanContinue() {
		next = "ENTER: VER DISTANCIA TOTAL"
	}

	drawPanel(dst, []string{
		fmt.Sprintf("DISTANCIA RECORRIDA: %dm", meters),
		"",
		"Saltaste: " + jumped,
		progressBar(s.Progress(), 24),
		"",
		next,
	}, core.ColorBrightWhite)
}

func (g *Game) renderGameOver(dst *core.Screen, s SessionState) {
	if s.Outcome() == OutcomeVictory {
		drawPanel(dst, []string{
			"¡LLEGAS A UNA PANADERÍA!",
			fmt.Sprintf("RECORRES %d METROS EN TOTAL", s.TotalScore),
			"",
			"Entras y te...",
			"1) ENTIERRAS EN UN BUÑUELO",
			"2) ZAMBULLES EN UN CAFÉ",
			"3) FUSIONAS CON UN TAMAL",
		}, core.ColorBrightMagenta)
		return
	}

	drawPanel(dst, []string{
		"FRACASASTE",
		"",
		s.Breakdown() + " METROS",
		"",
		"ENTER / R: jugar de nuevo",
	}, core.ColorBrightRed)
}

func (g *Game) renderVictory(dst *core.Screen, s SessionState) {
	drawPanel(dst, []string{
		"MMM . . .",
		"",
		"Sana y salva, te quedas por siempre en Bogotá.",
		"(" + branchTitle(s.Branch) + ")",
		"",
		"ENTER / R: jugar de nuevo",
	}, core.ColorBrightMagenta)
}

func branchTitle(b VictoryBranch) string {
	switch b {
	case BranchBunuelo:
		return "buñuelo"
	case BranchCafe:
		return "café"
	case BranchTamal:
		return "tamal"
	}
	return string(b)
}
