package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the session status line (top-left) and an optional FPS counter (top-right).
type Debug struct {
	ShowFPS     bool
	frameCount  uint32
	lastFpsText string
}

// New returns a Debug overlay with the FPS counter hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// Draw renders status and any enabled counters. Call last in the draw loop.
// extra lines are drawn under the status in gray.
func (d *Debug) Draw(status string, extra ...string) {
	d.frameCount++
	y := int32(padding)
	rl.DrawText(status, padding, y, fontSize, rl.RayWhite)
	for _, line := range extra {
		y += lineHeight
		rl.DrawText(line, padding, y, fontSize, rl.Gray)
	}

	if !d.ShowFPS {
		return
	}
	if d.lastFpsText == "" || d.frameCount%updateInterval == 0 {
		d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	w := rl.MeasureText(d.lastFpsText, fontSize)
	rl.DrawText(d.lastFpsText, int32(rl.GetScreenWidth())-w-padding, padding, fontSize, rl.Green)
}
