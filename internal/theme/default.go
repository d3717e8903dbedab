package theme

import (
	"image/color"

	"keyfall/internal/game"
)

type DefaultTheme struct{}

const (
	noteSym   = "⬤"
	keySym    = "█"
	strikeSym = "─"
)

var (
	whiteNote = color.RGBA{0, 118, 236, 255}
	blackNote = color.RGBA{106, 0, 236, 255}
	whiteKey  = color.RGBA{220, 220, 220, 255}
	blackKey  = color.RGBA{90, 90, 90, 255}
	heldKey   = color.RGBA{0, 118, 236, 255}
)

func (t *DefaultTheme) NoteGlyph(kt game.KeyType) string {
	return noteSym
}

func (t *DefaultTheme) NoteColor(kt game.KeyType) color.RGBA {
	if kt == game.Black {
		return blackNote
	}
	return whiteNote
}

func (t *DefaultTheme) KeyGlyph(kt game.KeyType) string {
	return keySym
}

func (t *DefaultTheme) KeyColor(kt game.KeyType, held bool) color.RGBA {
	if held {
		return heldKey
	}
	if kt == game.Black {
		return blackKey
	}
	return whiteKey
}

func (t *DefaultTheme) StrikeGlyph() string {
	return strikeSym
}
