package control

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirror-scene/internal/bezier"
	"mirror-scene/internal/camera"
	"mirror-scene/internal/commands"
	"mirror-scene/internal/config"
	"mirror-scene/internal/logger"
)

func newControls(t *testing.T) (*Controls, *config.Prefs) {
	t.Helper()
	p := config.Default()
	c := New(&p, logger.New(""), filepath.Join(t.TempDir(), "config", "mirror.yaml"))
	return c, &p
}

func run(t *testing.T, c *Controls, line string) error {
	t.Helper()
	args, ok := commands.Parse(line)
	require.True(t, ok, line)
	return c.Registry().Execute(args)
}

func lastLog(c *Controls) string {
	lines := c.Log.Tail(1)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func TestNewFromPrefs(t *testing.T) {
	p := config.Default()
	p.Lamp.Speed = 0.5
	p.Lamp.Paused = true
	p.Lamp.Color = [3]float32{1, 0, 0}
	p.Path.Show = false
	p.Camera.Mode = "trackball"
	p.Camera.BirdsHeight = 7

	c := New(&p, logger.New(""), "")
	assert.Equal(t, float32(0.5), c.Lamp.Speed)
	assert.True(t, c.Lamp.Paused)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Lamp.Color)
	assert.False(t, c.Path.Visible())
	assert.Equal(t, camera.Trackball, c.Rig.Mode)
	assert.Equal(t, float32(7), c.Rig.Birds.Height)
	assert.Equal(t, 3, c.Path.SegmentCount())
}

func TestNewBadPathFileFallsBack(t *testing.T) {
	p := config.Default()
	p.Path.File = filepath.Join(t.TempDir(), "missing.yaml")
	c := New(&p, logger.New(""), "")
	assert.Equal(t, bezier.DefaultClosedLoop(), c.Path.Segments())
	assert.Empty(t, p.Path.File)
	assert.Contains(t, lastLog(c), "using default loop")
}

func TestCurve(t *testing.T) {
	c, _ := newControls(t)
	require.NoError(t, run(t, c, "cmd curve --hide"))
	assert.False(t, c.Path.Visible())
	require.NoError(t, run(t, c, "cmd curve --show"))
	assert.True(t, c.Path.Visible())

	assert.ErrorIs(t, run(t, c, "cmd curve"), errUsage)
	assert.ErrorIs(t, run(t, c, "cmd curve --show --hide"), errUsage)

	assert.False(t, c.ToggleCurve())
	assert.True(t, c.ToggleCurve())
}

func TestLamp(t *testing.T) {
	c, _ := newControls(t)
	c.Lamp.U = 2

	require.NoError(t, run(t, c, "cmd lamp --speed 0.5 --pause"))
	assert.Equal(t, float32(0.5), c.Lamp.Speed)
	assert.True(t, c.Lamp.Paused)
	assert.Equal(t, float32(2), c.Lamp.U)

	// Leaving out --speed keeps the current speed.
	require.NoError(t, run(t, c, "cmd lamp --resume --reset"))
	assert.Equal(t, float32(0.5), c.Lamp.Speed)
	assert.False(t, c.Lamp.Paused)
	assert.Zero(t, c.Lamp.U)

	require.NoError(t, run(t, c, "cmd lamp --speed 0"))
	assert.Zero(t, c.Lamp.Speed)

	assert.ErrorIs(t, run(t, c, "cmd lamp --pause --resume"), errUsage)
	assert.ErrorIs(t, run(t, c, "cmd lamp --speed NaN"), config.ErrInvalid)
	assert.Error(t, run(t, c, "cmd lamp --speed fast"))

	assert.True(t, c.TogglePause())
	assert.False(t, c.TogglePause())
}

func TestCam(t *testing.T) {
	c, _ := newControls(t)
	for _, m := range []camera.Mode{camera.Follow, camera.Trackball, camera.Free, camera.BirdsEye} {
		require.NoError(t, run(t, c, "cmd cam "+m.String()))
		assert.Equal(t, m, c.Rig.Mode)
	}
	assert.Error(t, run(t, c, "cmd cam orbit"))
	assert.ErrorIs(t, run(t, c, "cmd cam"), errUsage)
}

func TestEnvMap(t *testing.T) {
	c, p := newControls(t)
	var calls []bool
	c.SetEnvSource = func(dynamic bool) error {
		calls = append(calls, dynamic)
		if !dynamic && len(calls) == 1 {
			return errors.New("no static faces")
		}
		return nil
	}

	err := run(t, c, "cmd envmap static")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no static faces")
	assert.True(t, p.EnvMap.Dynamic)

	require.NoError(t, run(t, c, "cmd envmap static"))
	assert.False(t, c.Dynamic())
	require.NoError(t, run(t, c, "cmd envmap dynamic"))
	assert.True(t, c.Dynamic())
	assert.Equal(t, []bool{false, false, true}, calls)

	assert.ErrorIs(t, run(t, c, "cmd envmap cached"), errUsage)
}

func TestSamples(t *testing.T) {
	c, _ := newControls(t)
	require.NoError(t, run(t, c, "cmd samples 16"))
	assert.Equal(t, 16, c.Samples())
	assert.True(t, c.Path.Stale(c.Samples()))

	assert.ErrorIs(t, run(t, c, "cmd samples 0"), config.ErrInvalid)
	assert.ErrorIs(t, run(t, c, "cmd samples lots"), config.ErrInvalid)
	assert.ErrorIs(t, run(t, c, "cmd samples"), errUsage)
	assert.Equal(t, 16, c.Samples())
}

func TestPath(t *testing.T) {
	c, p := newControls(t)
	segs := []bezier.CubicBezier{{
		P0: mgl32.Vec3{0, 0, 0},
		P1: mgl32.Vec3{1, 0, 0},
		P2: mgl32.Vec3{1, 1, 0},
		P3: mgl32.Vec3{0, 0, 0},
	}}
	data, err := bezier.MarshalSegments(segs)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "loop.yaml")
	require.NoError(t, os.WriteFile(file, data, 0644))

	require.NoError(t, run(t, c, "cmd path load "+file))
	assert.Equal(t, segs, c.Path.Segments())
	assert.Equal(t, file, p.Path.File)
	assert.Contains(t, lastLog(c), "path: 1 segments")

	require.NoError(t, run(t, c, "cmd path default"))
	assert.Equal(t, bezier.DefaultClosedLoop(), c.Path.Segments())
	assert.Empty(t, p.Path.File)

	assert.Error(t, run(t, c, "cmd path load "+file+".missing"))
	assert.ErrorIs(t, run(t, c, "cmd path"), errUsage)
}

func TestLight(t *testing.T) {
	c, _ := newControls(t)
	require.NoError(t, run(t, c, "cmd light 1 0.5 0.25"))
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0.25}, c.Lamp.Color)

	assert.ErrorIs(t, run(t, c, "cmd light 1 -1 0"), config.ErrInvalid)
	assert.ErrorIs(t, run(t, c, "cmd light 1 1"), errUsage)
}

func TestHUD(t *testing.T) {
	c, _ := newControls(t)
	require.NoError(t, run(t, c, "cmd hud --hide"))
	assert.False(t, c.HUD())
	require.NoError(t, run(t, c, "cmd hud --show"))
	assert.True(t, c.HUD())
}

func TestMaterial(t *testing.T) {
	c, p := newControls(t)
	var calls []bool
	c.SetUseMaterial = func(on bool) { calls = append(calls, on) }

	require.NoError(t, run(t, c, "cmd material --off"))
	assert.False(t, p.Render.UseMaterial)
	require.NoError(t, run(t, c, "cmd material --on"))
	assert.True(t, p.Render.UseMaterial)
	assert.Equal(t, []bool{false, true}, calls)

	assert.ErrorIs(t, run(t, c, "cmd material"), errUsage)
	assert.ErrorIs(t, run(t, c, "cmd material --on --off"), errUsage)
	assert.Len(t, calls, 2)
}

func TestMaterialWithoutSetter(t *testing.T) {
	c, p := newControls(t)
	require.NoError(t, run(t, c, "cmd material --off"))
	assert.False(t, p.Render.UseMaterial)
	assert.False(t, c.Snapshot().Render.UseMaterial)
}

func TestSave(t *testing.T) {
	c, p := newControls(t)
	require.NoError(t, run(t, c, "cmd lamp --speed 0.25 --pause"))
	require.NoError(t, run(t, c, "cmd cam follow"))
	require.NoError(t, run(t, c, "cmd curve --hide"))
	require.NoError(t, run(t, c, "cmd material --off"))
	require.NoError(t, run(t, c, "cmd save"))

	got, err := config.Load(c.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), got.Lamp.Speed)
	assert.True(t, got.Lamp.Paused)
	assert.Equal(t, "follow", got.Camera.Mode)
	assert.False(t, got.Path.Show)
	assert.False(t, got.Render.UseMaterial)
	assert.Equal(t, *p, got)
}

func TestSubmit(t *testing.T) {
	c, _ := newControls(t)
	c.Submit("hello there")
	assert.True(t, strings.HasSuffix(lastLog(c), "] hello there"))

	c.Submit("cmd cam follow")
	assert.Equal(t, camera.Follow, c.Rig.Mode)

	c.Submit("cmd bogus")
	assert.Contains(t, lastLog(c), "unknown command: bogus")

	c.Submit("cmd help")
	help := strings.Join(c.Log.Tail(len(c.Registry().Names())), "\n")
	assert.Contains(t, help, "cmd samples N")
	assert.Contains(t, help, "cmd path default|load FILE")
}

func TestToggleFreeInput(t *testing.T) {
	c, _ := newControls(t)
	assert.True(t, c.FreeInput)
	assert.False(t, c.ToggleFreeInput())
}
