// Package control owns the user-adjustable state of the demo and the console
// commands and key actions that change it.
package control

import (
	"github.com/go-gl/mathgl/mgl32"

	"mirror-scene/internal/bezier"
	"mirror-scene/internal/camera"
	"mirror-scene/internal/commands"
	"mirror-scene/internal/config"
	"mirror-scene/internal/lamp"
	"mirror-scene/internal/logger"
)

// Controls ties the live scene state to the preferences it was built from.
// Prefs is the source of truth for settings without a live object of their
// own (samples, env source, shading, HUD); the rest is copied back by Snapshot.
type Controls struct {
	Path       *bezier.Path
	Lamp       *lamp.Lamp
	Rig        *camera.Rig
	Prefs      *config.Prefs
	Log        *logger.Logger
	ConfigPath string

	// FreeInput routes WASD/mouse-look to the free camera.
	FreeInput bool

	// SetEnvSource switches the mirror between live capture and the static
	// cubemap. Nil accepts every switch.
	SetEnvSource func(dynamic bool) error

	// SetUseMaterial switches untextured meshes between material color and
	// normal shading. May be nil.
	SetUseMaterial func(on bool)

	reg *commands.Registry
}

// New builds the scene state described by p. A path file that fails to load
// is logged and replaced by the default loop.
func New(p *config.Prefs, log *logger.Logger, configPath string) *Controls {
	c := &Controls{
		Path:       bezier.NewDefault(),
		Lamp:       lamp.New(p.Lamp.Speed),
		Rig:        camera.NewRig(),
		Prefs:      p,
		Log:        log,
		ConfigPath: configPath,
		FreeInput:  true,
	}
	c.Lamp.Paused = p.Lamp.Paused
	c.Lamp.Color = mgl32.Vec3(p.Lamp.Color)
	c.Path.SetVisible(p.Path.Show)
	if p.Path.File != "" {
		if err := c.loadPath(p.Path.File); err != nil {
			log.Logf("path: %v; using default loop", err)
			p.Path.File = ""
		}
	}
	if m, err := camera.ParseMode(p.Camera.Mode); err == nil {
		c.Rig.Mode = m
	}
	c.Rig.Birds.HalfSize = p.Camera.BirdsHalfSize
	c.Rig.Birds.Height = p.Camera.BirdsHeight
	c.reg = c.registry()
	return c
}

func (c *Controls) loadPath(file string) error {
	segs, err := bezier.LoadSegments(file)
	if err != nil {
		return err
	}
	c.Path.SetSegments(segs)
	return nil
}

// Registry returns the console commands bound to c.
func (c *Controls) Registry() *commands.Registry { return c.reg }

// Submit handles one console line: it is echoed to the log, and run if it is a
// "cmd ..." line. Command errors are logged, not returned.
func (c *Controls) Submit(line string) {
	c.Log.Log(line)
	args, ok := commands.Parse(line)
	if !ok {
		return
	}
	if err := c.reg.Execute(args); err != nil {
		c.Log.Log(err.Error())
	}
}

// ToggleCurve shows or hides the path overlay and returns the new visibility.
func (c *Controls) ToggleCurve() bool {
	c.Path.SetVisible(!c.Path.Visible())
	return c.Path.Visible()
}

// TogglePause pauses or resumes the lamp and returns true if it is now paused.
func (c *Controls) TogglePause() bool {
	return c.Lamp.TogglePause()
}

// ToggleFreeInput flips FreeInput and returns the new value.
func (c *Controls) ToggleFreeInput() bool {
	c.FreeInput = !c.FreeInput
	return c.FreeInput
}

// Samples returns the requested samples per segment for the overlay.
func (c *Controls) Samples() int { return c.Prefs.Path.Samples }

// Dynamic reports whether the mirror shows the live capture.
func (c *Controls) Dynamic() bool { return c.Prefs.EnvMap.Dynamic }

// HUD reports whether the debug overlay is drawn.
func (c *Controls) HUD() bool { return c.Prefs.Window.HUD }

// Snapshot returns Prefs updated with the live state of the lamp, path and cameras.
func (c *Controls) Snapshot() config.Prefs {
	p := *c.Prefs
	p.Lamp.Speed = c.Lamp.Speed
	p.Lamp.Paused = c.Lamp.Paused
	p.Lamp.Color = [3]float32(c.Lamp.Color)
	p.Path.Show = c.Path.Visible()
	p.Camera.Mode = c.Rig.Mode.String()
	p.Camera.BirdsHalfSize = c.Rig.Birds.HalfSize
	p.Camera.BirdsHeight = c.Rig.Birds.Height
	return p
}
