package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mirror-scene/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLen       = 120
)

var (
	barColor  = rl.NewColor(40, 40, 40, 255)
	lineColor = rl.NewColor(80, 80, 80, 255)
	historyBg = rl.NewColor(24, 24, 24, 230)
)

const (
	toggleKey   = rl.KeyGrave
	closeKey    = rl.KeyEscape
	historySize = 32
)

// Console is the input bar at the bottom of the screen, toggled with ~.
// Submitted lines go to OnSubmit; the log tail is drawn above the bar.
type Console struct {
	log      *logger.Logger
	inputBuf string
	open     bool
	history  []string
	recall   int
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of the default font

	OnSubmit func(line string)
}

// New returns a closed console showing lines from log.
func New(log *logger.Logger, onSubmit func(line string)) *Console {
	return &Console{log: log, OnSubmit: onSubmit}
}

// IsOpen returns true when the console is visible and capturing the keyboard.
func (c *Console) IsOpen() bool {
	return c.open
}

// SetFont sets the font used to draw the console. Zero texture ID = raylib default.
func (c *Console) SetFont(font rl.Font) {
	c.font = font
}

func (c *Console) drawText(text string, x, y int32, color rl.Color) {
	if c.font.Texture.ID != 0 {
		rl.DrawTextEx(c.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, color)
		return
	}
	rl.DrawText(text, x, y, fontSize, color)
}

// Update handles the toggle key and, when open, typing, history and submit. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(toggleKey) {
		c.open = !c.open
		// Drain the ~ that opened the console.
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(closeKey) {
		c.open = false
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		c.inputBuf += rl.GetClipboardText()
	} else {
		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
			c.inputBuf += string(rune(ch))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyUp) && c.recall > 0 {
		c.recall--
		c.inputBuf = c.history[c.recall]
	}
	if rl.IsKeyPressed(rl.KeyDown) && c.recall < len(c.history) {
		c.recall++
		c.inputBuf = ""
		if c.recall < len(c.history) {
			c.inputBuf = c.history[c.recall]
		}
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.history = append(c.history, line)
		if len(c.history) > historySize {
			c.history = c.history[len(c.history)-historySize:]
		}
		c.recall = len(c.history)
		if c.OnSubmit != nil {
			c.OnSubmit(line)
		}
	}
}

// Draw draws the bar and the recent log lines when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := rl.GetScreenWidth()
	barY := rl.GetScreenHeight() - BarHeight

	historyH := maxLinesOnScreen * lineHeight
	historyY := barY - historyH
	if historyY < 0 {
		historyH = barY
		historyY = 0
	}
	if historyH > 0 {
		rl.DrawRectangle(0, int32(historyY), int32(screenW), int32(historyH), historyBg)
	}
	lines := c.log.Tail(maxLinesOnScreen)
	for i, line := range lines {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		c.drawText(line, padding, int32(historyY+i*lineHeight+padding), rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), BarHeight, barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	c.drawText(prompt+c.inputBuf+"|", padding, int32(barY+padding), rl.White)
}
