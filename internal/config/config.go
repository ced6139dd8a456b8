package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"mirror-scene/internal/camera"
)

// DefaultPath is the preferences file, relative to the process working directory.
const DefaultPath = "config/mirror.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid preferences")

// Prefs holds everything the demo reads at startup. Persisted across runs by the save command.
type Prefs struct {
	Window WindowPrefs `yaml:"window"`
	Lamp   LampPrefs   `yaml:"lamp"`
	Path   PathPrefs   `yaml:"path"`
	EnvMap EnvMapPrefs `yaml:"envmap"`
	Render RenderPrefs `yaml:"render"`
	Camera CameraPrefs `yaml:"camera"`
	Assets AssetPrefs  `yaml:"assets"`
}

type WindowPrefs struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int32  `yaml:"fps"`
	HUD    bool   `yaml:"hud"`
}

type LampPrefs struct {
	Speed  float32    `yaml:"speed"`
	Paused bool       `yaml:"paused"`
	Color  [3]float32 `yaml:"color,flow"`
}

type PathPrefs struct {
	Show    bool       `yaml:"show"`
	Samples int        `yaml:"samples"`
	File    string     `yaml:"file,omitempty"`
	Color   [3]float32 `yaml:"color,flow"`
}

// EnvMapPrefs configures the mirror. Static lists the six cube faces in
// +X, -X, +Y, -Y, +Z, -Z order, relative to Assets.Root.
type EnvMapPrefs struct {
	Dynamic   bool       `yaml:"dynamic"`
	Size      int32      `yaml:"size"`
	Near      float32    `yaml:"near"`
	Far       float32    `yaml:"far"`
	Fresnel   float32    `yaml:"fresnel"`
	Roughness float32    `yaml:"roughness"`
	Exclude   string     `yaml:"exclude"`
	Clear     [4]float32 `yaml:"clear,flow"`
	Static    [6]string  `yaml:"static,flow"`
}

// RenderPrefs controls shading of the lit meshes. Meshes without a texture
// use their material color when UseMaterial is set, and show their normals otherwise.
type RenderPrefs struct {
	UseMaterial bool `yaml:"use_material"`
}

type CameraPrefs struct {
	Mode          string  `yaml:"mode"`
	BirdsHalfSize float32 `yaml:"birds_half_size"`
	BirdsHeight   float32 `yaml:"birds_height"`
}

type AssetPrefs struct {
	Root          string `yaml:"root"`
	Robot         string `yaml:"robot"`
	Car           string `yaml:"car"`
	Mirror        string `yaml:"mirror"`
	GroundTexture string `yaml:"ground_texture"`
	// Font is a file path or a name searched for under Root/fonts. Empty uses raylib's font.
	Font          string `yaml:"font,omitempty"`
}

// Default returns the stock scene: dynamic mirror, curve shown, bird's-eye camera.
func Default() Prefs {
	return Prefs{
		Window: WindowPrefs{Width: 1024, Height: 1024, Title: "Mirror Scene", FPS: 60, HUD: true},
		Lamp:   LampPrefs{Speed: 0.15, Color: [3]float32{1, 1, 1}},
		Path:   PathPrefs{Show: true, Samples: 64, Color: [3]float32{0.9, 0.2, 0.1}},
		EnvMap: EnvMapPrefs{
			Dynamic:   true,
			Size:      512,
			Near:      0.05,
			Far:       100,
			Fresnel:   0.65,
			Roughness: 0.05,
			Exclude:   "mirror",
			Clear:     [4]float32{0.2, 0.2, 0.2, 1},
			Static: [6]string{
				"envmap/posx.png", "envmap/negx.png",
				"envmap/posy.png", "envmap/negy.png",
				"envmap/posz.png", "envmap/negz.png",
			},
		},
		Render: RenderPrefs{UseMaterial: true},
		Camera: CameraPrefs{Mode: camera.BirdsEye.String(), BirdsHalfSize: 2, BirdsHeight: 5},
		Assets: AssetPrefs{
			Root:          "resources",
			Robot:         "wall-e/wall-e_scaled.obj",
			Car:           "car.obj",
			Mirror:        "mirror/convex_mirror.obj",
			GroundTexture: "tileMetal.png",
		},
	}
}

// Asset joins name onto the asset root.
func (p Prefs) Asset(name string) string {
	return filepath.Join(p.Assets.Root, name)
}

// Load reads preferences from path. A missing file yields Default() and no error.
// Keys absent from the file keep their default values.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// Save writes p to path, creating the parent directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports the first out-of-range field.
func (p Prefs) Validate() error {
	switch {
	case p.Window.Width <= 0 || p.Window.Height <= 0:
		return invalid("window size %dx%d", p.Window.Width, p.Window.Height)
	case p.Window.FPS < 0:
		return invalid("window fps %d", p.Window.FPS)
	case !finite(p.Lamp.Speed):
		return invalid("lamp speed %v", p.Lamp.Speed)
	case p.Path.Samples < 1:
		return invalid("path samples %d", p.Path.Samples)
	case p.EnvMap.Size <= 0 || p.EnvMap.Size > 4096:
		return invalid("envmap size %d", p.EnvMap.Size)
	case !(p.EnvMap.Near > 0) || !(p.EnvMap.Far > p.EnvMap.Near) || !finite(p.EnvMap.Far):
		return invalid("envmap near/far %v/%v", p.EnvMap.Near, p.EnvMap.Far)
	case !unit(p.EnvMap.Fresnel):
		return invalid("envmap fresnel %v", p.EnvMap.Fresnel)
	case !unit(p.EnvMap.Roughness):
		return invalid("envmap roughness %v", p.EnvMap.Roughness)
	case p.EnvMap.Exclude == "":
		// The probe exists in static mode too and "envmap dynamic" switches to it.
		return invalid("envmap exclude is empty")
	case !(p.Camera.BirdsHalfSize > 0) || !(p.Camera.BirdsHeight > 0):
		return invalid("camera birds half size/height %v/%v", p.Camera.BirdsHalfSize, p.Camera.BirdsHeight)
	}
	for i, f := range p.EnvMap.Static {
		if f == "" {
			return invalid("envmap static face %d is empty", i)
		}
	}
	if _, err := camera.ParseMode(p.Camera.Mode); err != nil {
		return fmt.Errorf("config: %w: %v", ErrInvalid, err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func unit(v float32) bool {
	return v >= 0 && v <= 1
}
