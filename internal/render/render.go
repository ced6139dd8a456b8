// Package render draws scene objects with raylib models and the shaders from
// the materials package.
package render

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"mirror-scene/internal/envmap"
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/materials"
	"mirror-scene/internal/scene"
	"mirror-scene/internal/tile"
)

var _ scene.Painter = (*Painter)(nil)

// Painter implements scene.Painter. Must be used on the thread that owns the GL context.
type Painter struct {
	mats     *materials.Library
	models   map[string]*rl.Model
	textured map[string]bool
	textures []rl.Texture2D

	LightPos   mgl32.Vec3
	LightColor mgl32.Vec3
	Fresnel    float32
	Roughness  float32

	env       rl.Texture2D
	envLevels int32
}

func NewPainter(mats *materials.Library) *Painter {
	return &Painter{
		mats:       mats,
		models:     make(map[string]*rl.Model),
		textured:   make(map[string]bool),
		LightColor: mgl32.Vec3{1, 1, 1},
		Fresnel:    materials.DefaultFresnel,
		Roughness:  materials.DefaultRoughness,
	}
}

// LoadModel loads an OBJ (or any format raylib reads) as the mesh for the named object.
func (p *Painter) LoadModel(name, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("render: %s: %w", name, err)
	}
	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) {
		return fmt.Errorf("render: %s: could not load %s", name, path)
	}
	p.setModel(name, m)
	return nil
}

// LoadPlaceholder gives the named object a small cube so the scene still runs without its asset.
func (p *Painter) LoadPlaceholder(name string, size float32) {
	p.setModel(name, rl.LoadModelFromMesh(rl.GenMeshCube(size, size, size)))
}

// LoadGround builds a flat mesh covering t. The mesh is centered on the
// origin, so the object transform should translate it to t.Center().
// A missing texture falls back to the material's diffuse color.
func (p *Painter) LoadGround(name string, t *tile.Tile, texture string) {
	w, d := t.Size()
	m := rl.LoadModelFromMesh(rl.GenMeshPlane(w, d, 1, 1))
	mats := m.GetMaterials()
	if len(mats) > 0 {
		albedo := mats[0].GetMap(rl.MapAlbedo)
		albedo.Color = graphics.Color(t.Material.Kd)
		if _, err := os.Stat(texture); err == nil {
			if tex := rl.LoadTexture(texture); rl.IsTextureValid(tex) {
				rl.GenTextureMipmaps(&tex)
				rl.SetTextureFilter(tex, rl.FilterTrilinear)
				rl.SetMaterialTexture(&mats[0], rl.MapAlbedo, tex)
				albedo.Color = rl.White
				p.textures = append(p.textures, tex)
			}
		}
	}
	p.setModel(name, m)
}

func (p *Painter) setModel(name string, m rl.Model) {
	if old, ok := p.models[name]; ok {
		rl.UnloadModel(*old)
	}
	p.models[name] = &m
	p.textured[name] = materials.Textured(&m)
}

// SetEnvironment selects the cube texture the reflective objects show.
// levels is its mip level count.
func (p *Painter) SetEnvironment(cube rl.Texture2D, levels int32) {
	p.env = cube
	p.envLevels = levels
}

// Begin implements scene.Painter.
func (p *Painter) Begin(pass envmap.Pass) {
	graphics.Begin3D(pass.Projection, pass.View)
	p.mats.SetLight(p.LightPos, p.LightColor, pass.Eye)
	maxLod := float32(0)
	if p.envLevels > 1 {
		maxLod = float32(p.envLevels - 1)
	}
	p.mats.SetMirror(pass.Eye, p.Fresnel, p.Roughness, maxLod)
}

// Draw implements scene.Painter. Objects without a loaded model are skipped.
func (p *Painter) Draw(o *scene.Object) {
	m, ok := p.models[o.Name]
	if !ok {
		return
	}
	if !o.Reflective {
		p.mats.ApplyLit(m)
		p.mats.SetTextured(p.textured[o.Name])
		graphics.DrawModel(m, o.Transform)
		return
	}
	if !rl.IsTextureValid(p.env) {
		return
	}
	p.mats.ApplyEnv(m, p.env)
	// The mirror mesh is open; its inside must show too.
	rl.DisableBackfaceCulling()
	graphics.DrawModel(m, o.Transform)
	rl.EnableBackfaceCulling()
}

// End implements scene.Painter.
func (p *Painter) End() {
	graphics.End3D()
}

// Unload frees every model and texture the painter loaded. The environment
// texture belongs to the caller.
func (p *Painter) Unload() {
	for name, m := range p.models {
		rl.UnloadModel(*m)
		delete(p.models, name)
		delete(p.textured, name)
	}
	for _, t := range p.textures {
		rl.UnloadTexture(t)
	}
	p.textures = nil
}
