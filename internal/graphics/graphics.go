package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the window opened by Run.
type Window struct {
	Width, Height int32
	Title         string
	FPS           int32
}

// App is driven by Run. Setup runs once the GL context exists; Update runs
// before BeginDrawing so it may render offscreen; Draw runs inside it.
type App interface {
	Setup() error
	Update(dt float32)
	Draw()
	Close()
}

// Run opens the window and drives app until the window is closed.
// ESC does not quit; the console uses it.
func Run(w Window, app App) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("graphics: window did not open")
	}

	rl.SetExitKey(rl.KeyNull)
	if w.FPS > 0 {
		rl.SetTargetFPS(w.FPS)
	}

	if err := app.Setup(); err != nil {
		return err
	}
	defer app.Close()

	for !rl.WindowShouldClose() {
		app.Update(rl.GetFrameTime())

		rl.BeginDrawing()
		app.Draw()
		rl.EndDrawing()
	}
	return nil
}

// Aspect returns the render width over height of the window, or 1 while minimized.
func Aspect() float32 {
	w, h := rl.GetRenderWidth(), rl.GetRenderHeight()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}
