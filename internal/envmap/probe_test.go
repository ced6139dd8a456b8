package envmap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend tracks bound state the way a GL context would.
type fakeBackend struct {
	current  Target
	attached Face
	capture  bool
	events   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		current: Target{
			Framebuffer: 7,
			Viewport:    Viewport{0, 0, 1024, 768},
			Scissor:     Viewport{10, 20, 300, 200},
		},
		attached: -1,
	}
}

func (b *fakeBackend) CurrentTarget() Target { return b.current }

func (b *fakeBackend) BindCapture(size int32) {
	b.capture = true
	b.current = Target{Framebuffer: 99, Viewport: Viewport{0, 0, size, size}, Scissor: Viewport{0, 0, size, size}}
	b.events = append(b.events, fmt.Sprintf("bind %d", size))
}

func (b *fakeBackend) AttachFace(f Face) {
	b.attached = f
	b.events = append(b.events, "attach "+f.String())
}

func (b *fakeBackend) ClearFace() {
	b.events = append(b.events, "clear "+b.attached.String())
}

func (b *fakeBackend) GenerateMipmaps() {
	b.events = append(b.events, "mipmaps")
}

func (b *fakeBackend) Restore(t Target) {
	b.capture = false
	b.attached = -1
	b.current = t
	b.events = append(b.events, "restore")
}

// fakeScene writes object names into whichever face the backend has attached.
type fakeScene struct {
	backend *fakeBackend
	objects []string
	written map[Face][]string
	passes  []Pass
	failOn  Face
	err     error
	panicOn Face
}

func newFakeScene(b *fakeBackend) *fakeScene {
	return &fakeScene{
		backend: b,
		objects: []string{"tile", "car", "robot", "mirror"},
		written: make(map[Face][]string),
		failOn:  -1,
		panicOn: -1,
	}
}

func (s *fakeScene) RenderPass(p Pass) error {
	if p.Face == s.panicOn {
		panic("draw exploded")
	}
	if p.Face == s.failOn {
		return s.err
	}
	s.passes = append(s.passes, p)
	f := s.backend.attached
	for _, name := range s.objects {
		if name == p.Exclude {
			continue
		}
		s.written[f] = append(s.written[f], name)
	}
	return nil
}

func newProbe(t *testing.T, b Backend) *Probe {
	t.Helper()
	opts := DefaultOptions()
	opts.Size = 128
	opts.Exclude = "mirror"
	p, err := New(b, opts)
	require.NoError(t, err)
	return p
}

func TestCaptureOrderAndRestore(t *testing.T) {
	b := newFakeBackend()
	before := b.CurrentTarget()
	scene := newFakeScene(b)
	p := newProbe(t, b)

	require.NoError(t, p.Capture(scene, mgl32.Vec3{1, 0.5, 2}))

	assert.Equal(t, []string{
		"bind 128",
		"attach +X", "clear +X",
		"attach -X", "clear -X",
		"attach +Y", "clear +Y",
		"attach -Y", "clear -Y",
		"attach +Z", "clear +Z",
		"attach -Z", "clear -Z",
		"mipmaps",
		"restore",
	}, b.events)
	assert.Equal(t, before, b.CurrentTarget())
	assert.False(t, b.capture)
	assert.Equal(t, uint64(1), p.Frames())
}

func TestCaptureWritesEachFaceOnce(t *testing.T) {
	b := newFakeBackend()
	scene := newFakeScene(b)
	p := newProbe(t, b)

	require.NoError(t, p.Capture(scene, mgl32.Vec3{}))

	require.Len(t, scene.passes, FaceCount)
	for i, pass := range scene.passes {
		assert.Equal(t, Faces[i], pass.Face)
	}
	require.Len(t, scene.written, FaceCount)
	for _, f := range Faces {
		assert.Equal(t, []string{"tile", "car", "robot"}, scene.written[f], "face %s", f)
	}
}

func TestCaptureExcludesReflectiveObject(t *testing.T) {
	b := newFakeBackend()
	scene := newFakeScene(b)
	p := newProbe(t, b)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Capture(scene, mgl32.Vec3{float32(i), 1, 0}))
	}
	for _, pass := range scene.passes {
		assert.Equal(t, "mirror", pass.Exclude)
	}
	for f, names := range scene.written {
		assert.NotContains(t, names, "mirror", "face %s", f)
	}
}

func TestCapturePassMatrices(t *testing.T) {
	b := newFakeBackend()
	scene := newFakeScene(b)
	p := newProbe(t, b)
	pos := mgl32.Vec3{0.3, 1.1, -0.4}

	require.NoError(t, p.Capture(scene, pos))

	proj := Projection(DefaultNear, DefaultFar)
	for _, pass := range scene.passes {
		assert.Equal(t, pos, pass.Eye)
		assert.Equal(t, proj, pass.Projection)
		assert.Equal(t, FaceView(pos, pass.Face), pass.View)
	}
}

func TestCaptureFailureRestores(t *testing.T) {
	b := newFakeBackend()
	before := b.CurrentTarget()
	scene := newFakeScene(b)
	scene.failOn = PositiveY
	scene.err = errors.New("mesh lost")
	p := newProbe(t, b)

	err := p.Capture(scene, mgl32.Vec3{})
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.err)
	assert.Contains(t, err.Error(), "+Y")

	assert.Equal(t, before, b.CurrentTarget())
	assert.Equal(t, "restore", b.events[len(b.events)-1])
	assert.NotContains(t, b.events, "mipmaps")
	assert.NotContains(t, b.events, "attach -Y")
	assert.Len(t, scene.passes, 2)
	assert.Zero(t, p.Frames())
}

func TestCapturePanicRestores(t *testing.T) {
	b := newFakeBackend()
	before := b.CurrentTarget()
	scene := newFakeScene(b)
	scene.panicOn = NegativeZ
	p := newProbe(t, b)

	assert.Panics(t, func() { _ = p.Capture(scene, mgl32.Vec3{}) })
	assert.Equal(t, before, b.CurrentTarget())
	assert.NotContains(t, b.events, "mipmaps")
}

func TestNewValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero size", Options{Size: 0, Near: 0.05, Far: 100}},
		{"negative size", Options{Size: -4, Near: 0.05, Far: 100}},
		{"zero near", Options{Size: 64, Near: 0, Far: 100}},
		{"far before near", Options{Size: 64, Near: 1, Far: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newFakeBackend(), tt.opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}

	p, err := New(newFakeBackend(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), p.Options())
}
