package envmap

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Reference capture values.
const (
	DefaultSize = 512
	DefaultNear = 0.05
	DefaultFar  = 100
)

// ErrInvalidOptions is returned by New for an unusable capture configuration.
var ErrInvalidOptions = errors.New("envmap: invalid options")

// Viewport is a pixel rectangle, as passed to glViewport and glScissor.
type Viewport struct {
	X, Y, W, H int32
}

// Target is the render-target state that a capture saves and restores.
type Target struct {
	Framebuffer uint32
	Viewport    Viewport
	Scissor     Viewport
}

// Backend owns the cube texture and its offscreen render target.
// All calls happen on the render thread; failures surface through the
// graphics context's own error channel.
type Backend interface {
	// CurrentTarget reports the currently bound render target and viewport.
	CurrentTarget() Target
	// BindCapture binds the offscreen target and narrows viewport and scissor to size×size.
	BindCapture(size int32)
	// AttachFace makes face f of the cube texture the color output.
	AttachFace(f Face)
	// ClearFace clears color and depth of the attached face.
	ClearFace()
	// GenerateMipmaps rebuilds the full mip chain of the cube texture.
	GenerateMipmaps()
	// Restore rebinds a target saved by CurrentTarget.
	Restore(t Target)
}

// Pass describes one render of the scene.
type Pass struct {
	Face       Face
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Eye        mgl32.Vec3
	// Exclude names an object that must not be drawn in this pass.
	Exclude string
}

// SceneRenderer draws the scene for a pass.
type SceneRenderer interface {
	RenderPass(p Pass) error
}

// Options configures a Probe. Size is fixed for the life of the probe.
type Options struct {
	Size int32
	Near float32
	Far  float32
	// Exclude is the name of the reflective object carrying the probe.
	Exclude string
}

// DefaultOptions returns the reference capture configuration.
func DefaultOptions() Options {
	return Options{Size: DefaultSize, Near: DefaultNear, Far: DefaultFar}
}

// Validate reports whether the options can be used for a capture.
func (o Options) Validate() error {
	switch {
	case o.Size <= 0:
		return fmt.Errorf("%w: size %d", ErrInvalidOptions, o.Size)
	case o.Near <= 0:
		return fmt.Errorf("%w: near %v", ErrInvalidOptions, o.Near)
	case o.Far <= o.Near:
		return fmt.Errorf("%w: far %v not beyond near %v", ErrInvalidOptions, o.Far, o.Near)
	}
	return nil
}

// Probe re-renders the surroundings of a point into a cube texture.
type Probe struct {
	opts    Options
	proj    mgl32.Mat4
	backend Backend
	frames  uint64
}

// New returns a probe that renders through backend.
func New(backend Backend, opts Options) (*Probe, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Probe{
		opts:    opts,
		proj:    Projection(opts.Near, opts.Far),
		backend: backend,
	}, nil
}

// Options returns the probe configuration.
func (p *Probe) Options() Options {
	return p.opts
}

// Frames returns how many captures completed all six faces.
func (p *Probe) Frames() uint64 {
	return p.frames
}

// Capture renders the scene from position into all six faces, in Faces order,
// then regenerates mipmaps. The object named by Options.Exclude is left out of
// every face. The render target bound on entry is restored on return, also when
// a face fails; in that case the remaining faces and the mip rebuild are skipped.
func (p *Probe) Capture(scene SceneRenderer, position mgl32.Vec3) error {
	saved := p.backend.CurrentTarget()
	p.backend.BindCapture(p.opts.Size)
	defer p.backend.Restore(saved)

	for _, f := range Faces {
		p.backend.AttachFace(f)
		p.backend.ClearFace()
		pass := Pass{
			Face:       f,
			Projection: p.proj,
			View:       FaceView(position, f),
			Eye:        position,
			Exclude:    p.opts.Exclude,
		}
		if err := scene.RenderPass(pass); err != nil {
			return fmt.Errorf("envmap: face %s: %w", f, err)
		}
	}
	p.backend.GenerateMipmaps()
	p.frames++
	return nil
}
