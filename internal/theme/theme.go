package theme

import (
	"image/color"

	"keyfall/internal/game"
)

type Theme interface {
	NoteGlyph(t game.KeyType) string
	NoteColor(t game.KeyType) color.RGBA
	KeyGlyph(t game.KeyType) string
	KeyColor(t game.KeyType, held bool) color.RGBA
	StrikeGlyph() string
}
