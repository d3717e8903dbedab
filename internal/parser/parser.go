package parser

import "keyfall/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
