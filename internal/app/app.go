// Package app wires the mirror scene together and runs one frame at a time
// under graphics.Run.
package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"mirror-scene/internal/actor"
	"mirror-scene/internal/config"
	"mirror-scene/internal/control"
	"mirror-scene/internal/cubegl"
	"mirror-scene/internal/debug"
	"mirror-scene/internal/envmap"
	"mirror-scene/internal/fonts"
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/layout"
	"mirror-scene/internal/logger"
	"mirror-scene/internal/materials"
	"mirror-scene/internal/render"
	"mirror-scene/internal/scene"
	"mirror-scene/internal/terminal"
)

var _ graphics.App = (*App)(nil)

// App owns every per-run resource.
type App struct {
	prefs  *config.Prefs
	log    *logger.Logger
	ctl    *control.Controls
	layout layout.Layout
	robot  *actor.Actor

	mats    *materials.Library
	painter *render.Painter
	scene   *scene.Scene
	backend *cubegl.Backend
	probe   *envmap.Probe
	dynamic rl.Texture2D

	static       rl.Texture2D
	staticLevels int32

	lines   graphics.Lines
	console *terminal.Console
	hud     *debug.HUD

	font    rl.Font
	lastErr string
}

// New prepares the app from prefs. GPU resources are created in Setup.
func New(prefs *config.Prefs, log *logger.Logger, configPath string) *App {
	a := &App{
		prefs:  prefs,
		log:    log,
		ctl:    control.New(prefs, log, configPath),
		layout: layout.Default(),
		hud:    debug.New(),
	}
	a.robot = actor.New(a.layout.RobotStart)
	a.ctl.SetEnvSource = a.setEnvSource
	a.console = terminal.New(log, a.ctl.Submit)
	return a
}

// Setup implements graphics.App.
func (a *App) Setup() error {
	if err := cubegl.Init(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.mats = materials.New()
	a.mats.UseMaterial = a.prefs.Render.UseMaterial
	a.ctl.SetUseMaterial = func(on bool) { a.mats.UseMaterial = on }
	if !a.mats.Valid() {
		a.log.Log("materials: shader compile failed; meshes use raylib defaults")
	}
	a.painter = render.NewPainter(a.mats)
	a.painter.Fresnel = a.prefs.EnvMap.Fresnel
	a.painter.Roughness = a.prefs.EnvMap.Roughness

	if err := a.buildScene(); err != nil {
		return err
	}

	e := a.prefs.EnvMap
	backend, err := cubegl.New(e.Size, e.Clear)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.backend = backend
	a.dynamic = render.CubeTexture(backend.Texture(), backend.Size(), backend.Levels())
	probe, err := envmap.New(backend, envmap.Options{Size: e.Size, Near: e.Near, Far: e.Far, Exclude: e.Exclude})
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.probe = probe

	if err := a.setEnvSource(e.Dynamic); err != nil {
		a.log.Logf("envmap: %v; using dynamic capture", err)
		a.prefs.EnvMap.Dynamic = true
		_ = a.setEnvSource(true)
	}
	a.loadFont()
	a.log.Logf("ready: %d objects, envmap %d px, %d mip levels; press ~ for the console", len(a.scene.Names()), e.Size, backend.Levels())
	return nil
}

func (a *App) buildScene() error {
	a.scene = scene.New(a.painter)
	ground := a.layout.Ground
	c := ground.Center()
	a.painter.LoadGround(scene.Ground, ground, a.prefs.Asset(a.prefs.Assets.GroundTexture))

	objects := []struct {
		name       string
		asset      string
		transform  mgl32.Mat4
		reflective bool
	}{
		{scene.Ground, "", mgl32.Translate3D(c.X(), c.Y(), c.Z()), false},
		{scene.Car, a.prefs.Assets.Car, a.layout.Car, false},
		{scene.Robot, a.prefs.Assets.Robot, a.robot.Model(), false},
		{scene.Mirror, a.prefs.Assets.Mirror, a.layout.Mirror, true},
	}
	for _, o := range objects {
		if o.asset != "" {
			if err := a.painter.LoadModel(o.name, a.prefs.Asset(o.asset)); err != nil {
				a.log.Logf("%v; using a placeholder", err)
				a.painter.LoadPlaceholder(o.name, 0.5)
			}
		}
		if _, err := a.scene.Add(o.name, o.transform, o.reflective); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	return nil
}

func (a *App) loadFont() {
	if a.prefs.Assets.Font == "" {
		return
	}
	path, err := fonts.Find(a.prefs.Asset("fonts"), a.prefs.Assets.Font)
	if err != nil {
		a.log.Log(err.Error())
		return
	}
	a.font = rl.LoadFont(path)
	if a.font.Texture.ID == 0 {
		a.log.Logf("fonts: could not load %s", path)
		return
	}
	a.console.SetFont(a.font)
	a.hud.SetFont(a.font)
}

// setEnvSource points the mirror at the live capture or the static cubemap,
// loading the static faces on first use.
func (a *App) setEnvSource(dynamic bool) error {
	if dynamic {
		a.painter.SetEnvironment(a.dynamic, a.backend.Levels())
		return nil
	}
	if !rl.IsTextureValid(a.static) {
		var paths [envmap.FaceCount]string
		for i, f := range a.prefs.EnvMap.Static {
			paths[i] = a.prefs.Asset(f)
		}
		tex, levels, err := render.LoadCubemap(paths)
		if err != nil {
			return err
		}
		a.static, a.staticLevels = tex, levels
	}
	a.painter.SetEnvironment(a.static, a.staticLevels)
	return nil
}

// Update implements graphics.App. The environment capture runs here, before
// the main pass begins drawing to the window.
func (a *App) Update(dt float32) {
	a.console.Update()
	if !a.console.IsOpen() {
		a.handleInput(dt)
	}

	a.ctl.Lamp.Step(a.ctl.Path, dt)
	if a.ctl.Path.Stale(a.ctl.Samples()) {
		a.ctl.Path.Rebuild(a.ctl.Samples())
	}
	a.painter.LightPos = a.ctl.Lamp.Position(a.ctl.Path)
	a.painter.LightColor = a.ctl.Lamp.Color
	_ = a.scene.SetTransform(scene.Robot, a.robot.Model())

	if a.ctl.Dynamic() {
		if err := a.probe.Capture(a.scene, a.layout.ProbePosition()); err != nil {
			a.report(err)
		}
	}
}

func (a *App) report(err error) {
	msg := err.Error()
	if msg != a.lastErr {
		a.log.Log(msg)
		a.lastErr = msg
	}
}

// Draw implements graphics.App.
func (a *App) Draw() {
	rl.ClearBackground(graphics.ColorA(a.prefs.EnvMap.Clear))

	proj := a.ctl.Rig.Projection(graphics.Aspect())
	view := a.ctl.Rig.View(a.robot.Model())
	if err := a.scene.Draw(proj, view); err != nil {
		a.report(err)
	}
	a.ctl.Path.Draw(a.lines, proj, view, mgl32.Vec3(a.prefs.Path.Color))

	if a.ctl.HUD() {
		source := "static"
		if a.ctl.Dynamic() {
			source = "dynamic"
		}
		a.hud.Draw(debug.Stats{
			LampU:     a.ctl.Lamp.U,
			Paused:    a.ctl.Lamp.Paused,
			Camera:    a.ctl.Rig.Mode.String(),
			FreeInput: a.ctl.FreeInput,
			EnvSource: source,
			Captures:  a.probe.Frames(),
			LastError: a.lastErr,
		})
	}
	a.console.Draw()
}

// Close implements graphics.App.
func (a *App) Close() {
	if rl.IsTextureValid(a.static) {
		rl.UnloadTexture(a.static)
	}
	if a.font.Texture.ID != 0 {
		rl.UnloadFont(a.font)
	}
	if a.backend != nil {
		a.backend.Destroy()
	}
	if a.painter != nil {
		a.painter.Unload()
	}
	if a.mats != nil {
		a.mats.Unload()
	}
}
