package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"mirror-scene/internal/camera"
)

var modeKeys = map[int32]camera.Mode{
	rl.KeyOne:   camera.BirdsEye,
	rl.KeyTwo:   camera.Follow,
	rl.KeyThree: camera.Trackball,
	rl.KeyFour:  camera.Free,
}

func pressed(key int32) bool {
	return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key)
}

func axis(neg, pos int32) float32 {
	var v float32
	if rl.IsKeyDown(neg) {
		v--
	}
	if rl.IsKeyDown(pos) {
		v++
	}
	return v
}

func stepAxis(neg, pos int32) float32 {
	var v float32
	if pressed(neg) {
		v--
	}
	if pressed(pos) {
		v++
	}
	return v
}

// handleInput applies the keyboard and mouse bindings for one frame.
func (a *App) handleInput(dt float32) {
	if rl.IsKeyPressed(rl.KeyL) {
		a.log.Logf("curve visible: %t", a.ctl.ToggleCurve())
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.log.Logf("lamp paused: %t", a.ctl.TogglePause())
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.log.Logf("free camera input: %t", a.ctl.ToggleFreeInput())
	}
	for key, mode := range modeKeys {
		if rl.IsKeyPressed(key) {
			a.ctl.Rig.Mode = mode
		}
	}

	// Arrow keys drive the robot.
	a.robot.Drive(axis(rl.KeyDown, rl.KeyUp), axis(rl.KeyRight, rl.KeyLeft), dt)

	rig := a.ctl.Rig
	delta := rl.GetMouseDelta()
	if rig.Mode == camera.Trackball {
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			rig.Trackball.Rotate(delta.X, delta.Y)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			rig.Trackball.Zoom(wheel)
		}
		return
	}
	if !a.ctl.FreeInput {
		return
	}
	free := rig.Free
	free.Move(stepAxis(rl.KeyS, rl.KeyW), stepAxis(rl.KeyA, rl.KeyD), stepAxis(rl.KeyC, rl.KeySpace))
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && (delta.X != 0 || delta.Y != 0) {
		free.Look(delta.X, delta.Y)
	}
}
