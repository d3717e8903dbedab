package render

import (
	"image/color"
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (rows, columns int)
	Clear()
	Fill(row, column int, message string)
	FillColor(row, column int, c color.RGBA, message string)
	RenderLoop(delay time.Duration, render func(startTime time.Time, duration time.Duration) bool)
}
