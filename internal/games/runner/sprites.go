package runner

import (
	"fmt"

	"github.com/vovakirdan/clayrun/internal/core"
)

// SpriteRef is an opaque sprite handle. The engine only carries it around;
// resolving it to something drawable is the renderer's business.
type SpriteRef string

// NoSprite is the empty handle. It never resolves.
const NoSprite SpriteRef = ""

// CharacterSprite returns the handle of a playable character.
func CharacterSprite(id int) SpriteRef {
	return SpriteRef(fmt.Sprintf("clay-%02d", id))
}

// ObstacleSprite returns the handle of an obstacle id.
func ObstacleSprite(id int) SpriteRef {
	return SpriteRef(fmt.Sprintf("clay-%02d", id))
}

// Glyph is how a sprite is drawn in a terminal cell.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// SpriteSet resolves sprite handles to glyphs.
type SpriteSet map[SpriteRef]Glyph

// Resolve returns the glyph for ref. Unknown or empty handles report false.
func (s SpriteSet) Resolve(ref SpriteRef) (Glyph, bool) {
	if ref == NoSprite || s == nil {
		return Glyph{}, false
	}
	g, ok := s[ref]
	return g, ok
}

var (
	characterRunes  = []rune{'@', '&', '%', '$', '#', '§', '¤', 'Ø'}
	characterColors = []core.Color{
		core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorBrightYellow, core.ColorBrightGreen,
		core.ColorOrange, core.ColorBrightRed, core.ColorBrightBlue, core.ColorBrightWhite,
	}
	obstacleRunes  = []rune{'▓', '▒', '█', '▚', '▞'}
	obstacleColors = []core.Color{
		core.ColorRed, core.ColorYellow, core.ColorGreen, core.ColorBlue, core.ColorCyan, core.ColorMagenta, core.ColorOrange,
	}
)

// DefaultSpriteSet builds terminal glyphs for every character and obstacle id.
func DefaultSpriteSet(characters, obstacles []int) SpriteSet {
	set := make(SpriteSet, len(characters)+len(obstacles))
	for i, id := range characters {
		set[CharacterSprite(id)] = Glyph{
			Rune:  characterRunes[i%len(characterRunes)],
			Color: characterColors[i%len(characterColors)],
		}
	}
	for i, id := range obstacles {
		ref := ObstacleSprite(id)
		if _, taken := set[ref]; taken {
			continue
		}
		set[ref] = Glyph{
			Rune:  obstacleRunes[i%len(obstacleRunes)],
			Color: obstacleColors[i%len(obstacleColors)],
		}
	}
	return set
}
