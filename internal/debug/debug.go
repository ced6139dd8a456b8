package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only rebuild the text every N frames to reduce allocations.
	updateInterval = 30
)

var (
	hudBg    = rl.NewColor(0, 0, 0, 140)
	hudText  = rl.Green
	hudWarn  = rl.Orange
	hudWidth = int32(320)
)

// Stats is what the overlay reports about the running demo.
type Stats struct {
	LampU     float32
	Paused    bool
	Camera    string
	FreeInput bool
	EnvSource string
	Captures  uint64
	// LastError is shown in orange when set.
	LastError string
}

// HUD is the debug overlay in the top-left corner.
type HUD struct {
	ShowMemAlloc bool
	frameCount   uint32
	lines        []string
	memStats     runtime.MemStats
	font         rl.Font
}

func New() *HUD {
	return &HUD{}
}

// SetFont sets the overlay font. Zero texture ID = raylib default.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
}

func (h *HUD) drawText(text string, x, y int32, color rl.Color) {
	if h.font.Texture.ID != 0 {
		rl.DrawTextEx(h.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, color)
		return
	}
	rl.DrawText(text, x, y, fontSize, color)
}

func (h *HUD) text(s Stats) []string {
	lines := []string{
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("lamp u: %.3f%s", s.LampU, pausedSuffix(s.Paused)),
		fmt.Sprintf("camera: %s (free input %t)", s.Camera, s.FreeInput),
		fmt.Sprintf("envmap: %s, %d captures", s.EnvSource, s.Captures),
	}
	if h.ShowMemAlloc {
		runtime.ReadMemStats(&h.memStats)
		lines = append(lines, fmt.Sprintf("Mem: %.2f MiB", float64(h.memStats.Alloc)/(1024*1024)))
	}
	return lines
}

func pausedSuffix(paused bool) string {
	if paused {
		return " (paused)"
	}
	return ""
}

// Draw renders the overlay. Text is only recomputed every updateInterval frames.
func (h *HUD) Draw(s Stats) {
	h.frameCount++
	if h.lines == nil || h.frameCount%updateInterval == 0 {
		h.lines = h.text(s)
	}
	n := int32(len(h.lines))
	if s.LastError != "" {
		n++
	}
	rl.DrawRectangle(padding/2, padding/2, hudWidth, n*lineHeight+padding, hudBg)

	y := int32(padding)
	for _, line := range h.lines {
		h.drawText(line, padding, y, hudText)
		y += lineHeight
	}
	if s.LastError != "" {
		msg := s.LastError
		if len(msg) > 60 {
			msg = msg[:57] + "..."
		}
		h.drawText(msg, padding, y, hudWarn)
	}
}
