package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "mirror.yaml")
	p := Default()
	p.Lamp.Speed = 0.4
	p.Lamp.Color = [3]float32{1, 0.5, 0.25}
	p.EnvMap.Dynamic = false
	p.Camera.Mode = "trackball"
	p.Render.UseMaterial = false
	require.NoError(t, Save(path, p))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.yaml")
	require.NoError(t, os.WriteFile(path, []byte("envmap:\n  size: 128\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(128), p.EnvMap.Size)
	assert.Equal(t, Default().EnvMap.Fresnel, p.EnvMap.Fresnel)
	assert.Equal(t, Default().Window, p.Window)
	assert.True(t, p.Render.UseMaterial)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"bad yaml", "window: [", false},
		{"bad size", "envmap:\n  size: 0\n", true},
		{"bad camera", "camera:\n  mode: orbit\n", true},
		{"empty exclude", "envmap:\n  exclude: \"\"\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mirror.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))
			p, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalid))
			assert.Equal(t, Default(), p)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Prefs)
	}{
		{"window", func(p *Prefs) { p.Window.Width = 0 }},
		{"fps", func(p *Prefs) { p.Window.FPS = -1 }},
		{"speed", func(p *Prefs) { p.Lamp.Speed = math32.NaN() }},
		{"samples", func(p *Prefs) { p.Path.Samples = 0 }},
		{"size", func(p *Prefs) { p.EnvMap.Size = 8192 }},
		{"near", func(p *Prefs) { p.EnvMap.Near = 0 }},
		{"far", func(p *Prefs) { p.EnvMap.Far = p.EnvMap.Near }},
		{"fresnel", func(p *Prefs) { p.EnvMap.Fresnel = 1.5 }},
		{"roughness", func(p *Prefs) { p.EnvMap.Roughness = -0.1 }},
		{"birds", func(p *Prefs) { p.Camera.BirdsHeight = 0 }},
		{"static", func(p *Prefs) { p.EnvMap.Static[3] = "" }},
		{"exclude", func(p *Prefs) { p.EnvMap.Exclude = "" }},
		{"exclude static", func(p *Prefs) { p.EnvMap.Dynamic = false; p.EnvMap.Exclude = "" }},
		{"camera", func(p *Prefs) { p.Camera.Mode = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalid)
		})
	}
}

func TestAsset(t *testing.T) {
	p := Default()
	p.Assets.Root = "assets"
	assert.Equal(t, filepath.Join("assets", "car.obj"), p.Asset(p.Assets.Car))
}
