// Package cubegl implements envmap.Backend on raw OpenGL: one cube texture with a
// full mip chain, one framebuffer and one depth renderbuffer, all sized once.
package cubegl

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"

	"mirror-scene/internal/envmap"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the GL entry points. It must run after the window's context is current.
func Init() error {
	initOnce.Do(func() {
		initErr = gl.Init()
	})
	return initErr
}

var _ envmap.Backend = (*Backend)(nil)

// Backend owns the capture resources. Not safe for use off the render thread.
type Backend struct {
	tex    uint32
	fbo    uint32
	depth  uint32
	size   int32
	levels int32
	clear  [4]float32
}

// New allocates a size×size RGBA8 cube texture and its render target.
// clear is the color every face is cleared to before the scene is drawn.
func New(size int32, clear [4]float32) (*Backend, error) {
	if err := Init(); err != nil {
		return nil, fmt.Errorf("cubegl: init: %w", err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("cubegl: invalid size %d", size)
	}
	b := &Backend{size: size, levels: envmap.MipLevels(size), clear: clear}

	var prevFBO, prevCube int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.TEXTURE_BINDING_CUBE_MAP, &prevCube)

	gl.GenTextures(1, &b.tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, b.tex)
	for _, f := range envmap.Faces {
		gl.TexImage2D(faceTarget(f), 0, gl.RGBA8, size, size, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	setCubeParams()
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)

	gl.GenFramebuffers(1, &b.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)

	gl.GenRenderbuffers(1, &b.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, size, size)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depth)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, faceTarget(envmap.PositiveX), b.tex, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(prevCube))

	if status != gl.FRAMEBUFFER_COMPLETE {
		b.Destroy()
		return nil, fmt.Errorf("cubegl: framebuffer incomplete: 0x%x", status)
	}
	return b, nil
}

func faceTarget(f envmap.Face) uint32 {
	return gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(f)
}

// setCubeParams sets trilinear filtering and edge clamping on the bound cube texture.
func setCubeParams() {
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
}

// BuildMipChain switches an existing cube texture to trilinear filtering and
// generates its mipmaps. Used for the static environment map.
func BuildMipChain(tex uint32) error {
	if err := Init(); err != nil {
		return fmt.Errorf("cubegl: init: %w", err)
	}
	var prev int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_CUBE_MAP, &prev)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	setCubeParams()
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(prev))
	return nil
}

// Texture returns the GL name of the cube texture.
func (b *Backend) Texture() uint32 { return b.tex }

// Size returns the edge length of each face in pixels.
func (b *Backend) Size() int32 { return b.size }

// Levels returns the number of mip levels of the cube texture.
func (b *Backend) Levels() int32 { return b.levels }

// CurrentTarget implements envmap.Backend.
func (b *Backend) CurrentTarget() envmap.Target {
	var fbo int32
	var vp, sc [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &fbo)
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &sc[0])
	return envmap.Target{
		Framebuffer: uint32(fbo),
		Viewport:    envmap.Viewport{X: vp[0], Y: vp[1], W: vp[2], H: vp[3]},
		Scissor:     envmap.Viewport{X: sc[0], Y: sc[1], W: sc[2], H: sc[3]},
	}
}

// BindCapture implements envmap.Backend. size is expected to equal Size().
func (b *Backend) BindCapture(size int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.Viewport(0, 0, size, size)
	gl.Scissor(0, 0, size, size)
}

// AttachFace implements envmap.Backend.
func (b *Backend) AttachFace(f envmap.Face) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, faceTarget(f), b.tex, 0)
}

// ClearFace implements envmap.Backend.
func (b *Backend) ClearFace() {
	gl.ClearColor(b.clear[0], b.clear[1], b.clear[2], b.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// GenerateMipmaps implements envmap.Backend.
func (b *Backend) GenerateMipmaps() {
	var prev int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_CUBE_MAP, &prev)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, b.tex)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(prev))
}

// Restore implements envmap.Backend.
func (b *Backend) Restore(t envmap.Target) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.Framebuffer)
	gl.Viewport(t.Viewport.X, t.Viewport.Y, t.Viewport.W, t.Viewport.H)
	gl.Scissor(t.Scissor.X, t.Scissor.Y, t.Scissor.W, t.Scissor.H)
}

// Destroy releases the GL objects. The backend must not be used afterwards.
func (b *Backend) Destroy() {
	if b.fbo != 0 {
		gl.DeleteFramebuffers(1, &b.fbo)
		b.fbo = 0
	}
	if b.depth != 0 {
		gl.DeleteRenderbuffers(1, &b.depth)
		b.depth = 0
	}
	if b.tex != 0 {
		gl.DeleteTextures(1, &b.tex)
		b.tex = 0
	}
}
