// Package materials owns the two shaders of the scene: a point-lamp lit
// shader for ordinary meshes and the reflective environment shader for the
// mirror. Shaders load lazily so they are created after the GL context exists.
package materials

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Default mirror parameters.
const (
	DefaultFresnel   = 0.65
	DefaultRoughness = 0.05
)

// defaultAmbient keeps unlit sides of meshes from going black.
var defaultAmbient = [4]float32{0.12, 0.12, 0.14, 1}

type litLocs struct {
	lightPos, lightColor, viewPos, useMaterial, hasTexture, ambient int32
}

type envLocs struct {
	cameraPos, fresnel, roughness, maxLod int32
}

// Library holds the compiled shaders and their uniform locations.
type Library struct {
	lit    rl.Shader
	env    rl.Shader
	litLoc litLocs
	envLoc envLocs
	loaded bool

	// UseMaterial shades untextured meshes with their material color. When
	// false they show their normals instead. Textured meshes always use the texture.
	UseMaterial bool
}

// New returns an empty library. Shaders are compiled on first use.
func New() *Library {
	return &Library{UseMaterial: true}
}

func (l *Library) ensure() {
	if l.loaded {
		return
	}
	l.loaded = true

	l.lit = rl.LoadShaderFromMemory(litVS, litFS)
	if rl.IsShaderValid(l.lit) {
		l.litLoc = litLocs{
			lightPos:    rl.GetShaderLocation(l.lit, "lightPos"),
			lightColor:  rl.GetShaderLocation(l.lit, "lightColor"),
			viewPos:     rl.GetShaderLocation(l.lit, "viewPos"),
			useMaterial: rl.GetShaderLocation(l.lit, "useMaterial"),
			hasTexture:  rl.GetShaderLocation(l.lit, "hasTexture"),
			ambient:     rl.GetShaderLocation(l.lit, "ambient"),
		}
	}

	l.env = rl.LoadShaderFromMemory(litVS, envFS)
	if rl.IsShaderValid(l.env) {
		l.envLoc = envLocs{
			cameraPos: rl.GetShaderLocation(l.env, "cameraPos"),
			fresnel:   rl.GetShaderLocation(l.env, "fresnelStrength"),
			roughness: rl.GetShaderLocation(l.env, "roughness"),
			maxLod:    rl.GetShaderLocation(l.env, "maxLod"),
		}
		// DrawMesh binds MapCubemap as a cube texture to this location.
		l.env.UpdateLocation(rl.ShaderLocMapCubemap, rl.GetShaderLocation(l.env, "environmentMap"))
	}
}

// Valid reports whether both shaders compiled.
func (l *Library) Valid() bool {
	l.ensure()
	return rl.IsShaderValid(l.lit) && rl.IsShaderValid(l.env)
}

// ApplyLit switches every material of model to the lit shader.
func (l *Library) ApplyLit(model *rl.Model) {
	l.ensure()
	if !rl.IsShaderValid(l.lit) {
		return
	}
	mats := model.GetMaterials()
	for i := range mats {
		mats[i].Shader = l.lit
	}
}

// ApplyEnv switches every material of model to the environment shader and binds cube as its cubemap.
func (l *Library) ApplyEnv(model *rl.Model, cube rl.Texture2D) {
	l.ensure()
	if !rl.IsShaderValid(l.env) {
		return
	}
	mats := model.GetMaterials()
	for i := range mats {
		mats[i].Shader = l.env
		rl.SetMaterialTexture(&mats[i], rl.MapCubemap, cube)
	}
}

// SetLight updates the lamp uniforms of the lit shader for the coming pass.
func (l *Library) SetLight(lightPos, lightColor, viewPos mgl32.Vec3) {
	l.ensure()
	if !rl.IsShaderValid(l.lit) {
		return
	}
	// Local arrays so cgo never sees Go-managed Vec3 storage.
	pos := [3]float32{lightPos[0], lightPos[1], lightPos[2]}
	col := [3]float32{lightColor[0], lightColor[1], lightColor[2]}
	eye := [3]float32{viewPos[0], viewPos[1], viewPos[2]}
	amb := defaultAmbient
	use := float32(0)
	if l.UseMaterial {
		use = 1
	}
	setVec3(l.lit, l.litLoc.lightPos, pos)
	setVec3(l.lit, l.litLoc.lightColor, col)
	setVec3(l.lit, l.litLoc.viewPos, eye)
	if l.litLoc.ambient >= 0 {
		rl.SetShaderValueV(l.lit, l.litLoc.ambient, amb[:], rl.ShaderUniformVec4, 1)
	}
	setFloat(l.lit, l.litLoc.useMaterial, use)
}

// SetTextured tells the lit shader whether the next model samples its albedo texture.
func (l *Library) SetTextured(textured bool) {
	l.ensure()
	if !rl.IsShaderValid(l.lit) {
		return
	}
	v := float32(0)
	if textured {
		v = 1
	}
	setFloat(l.lit, l.litLoc.hasTexture, v)
}

// Textured reports whether any material of model has an albedo texture other
// than raylib's default white one.
func Textured(model *rl.Model) bool {
	def := rl.GetTextureIdDefault()
	for _, m := range model.GetMaterials() {
		if id := m.GetMap(rl.MapAlbedo).Texture.ID; id != 0 && id != def {
			return true
		}
	}
	return false
}

// SetMirror updates the environment shader for the coming pass. maxLod is the
// index of the smallest mip level of the bound cubemap.
func (l *Library) SetMirror(cameraPos mgl32.Vec3, fresnel, roughness, maxLod float32) {
	l.ensure()
	if !rl.IsShaderValid(l.env) {
		return
	}
	setVec3(l.env, l.envLoc.cameraPos, [3]float32{cameraPos[0], cameraPos[1], cameraPos[2]})
	setFloat(l.env, l.envLoc.fresnel, fresnel)
	setFloat(l.env, l.envLoc.roughness, roughness)
	setFloat(l.env, l.envLoc.maxLod, maxLod)
}

func setVec3(s rl.Shader, loc int32, v [3]float32) {
	if loc >= 0 {
		rl.SetShaderValueV(s, loc, v[:], rl.ShaderUniformVec3, 1)
	}
}

func setFloat(s rl.Shader, loc int32, v float32) {
	if loc >= 0 {
		rl.SetShaderValue(s, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

// Unload frees both shaders.
func (l *Library) Unload() {
	if !l.loaded {
		return
	}
	if rl.IsShaderValid(l.lit) {
		rl.UnloadShader(l.lit)
	}
	if rl.IsShaderValid(l.env) {
		rl.UnloadShader(l.env)
	}
	l.loaded = false
}
