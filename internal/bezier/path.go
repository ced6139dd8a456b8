package bezier

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSamplesPerSegment is the line-strip resolution used when none is configured.
const DefaultSamplesPerSegment = 64

// LineDrawer submits a connected line strip with the given matrices and a flat color.
type LineDrawer interface {
	DrawLineStrip(points []mgl32.Vec3, proj, view mgl32.Mat4, color mgl32.Vec3)
}

// Path is an ordered, logically closed sequence of cubic segments.
// The global parameter u maps into [0, SegmentCount()): its integer part picks
// the segment and its fractional part is the local t. The path also keeps a
// dense sample buffer for drawing, rebuilt on demand with Rebuild.
type Path struct {
	segments []CubicBezier
	samples  []mgl32.Vec3
	// samplesPer is the resolution samples was built with; -1 when samples is stale.
	samplesPer int
	hidden     bool
}

// New returns a visible path with the given segments. The sample buffer is empty until Rebuild.
func New(segs []CubicBezier) *Path {
	p := &Path{}
	p.SetSegments(segs)
	return p
}

// NewDefault returns a visible path holding DefaultClosedLoop with its samples built.
func NewDefault() *Path {
	p := New(DefaultClosedLoop())
	p.Rebuild(DefaultSamplesPerSegment)
	return p
}

// DefaultClosedLoop builds the three-segment loop the lamp travels by default.
// Segments 1 and 2 continue from their predecessor (see Continue). The last
// segment's end is set to the first segment's start so the loop closes in
// position; the tangent rule is not re-applied at that final join.
func DefaultClosedLoop() []CubicBezier {
	first := CubicBezier{
		P0: mgl32.Vec3{-2.0, 1.2, -2.0},
		P1: mgl32.Vec3{-1.0, 2.0, -0.5},
		P2: mgl32.Vec3{0.0, 2.2, 0.5},
		P3: mgl32.Vec3{1.0, 1.3, 1.2},
	}
	second := Continue(first, mgl32.Vec3{1.5, 1.8, -0.8}, mgl32.Vec3{0.0, 1.4, -1.5})
	third := Continue(second, mgl32.Vec3{-1.8, 2.1, -0.6}, first.P0)
	return []CubicBezier{first, second, third}
}

// SetSegments replaces all segments with a copy of segs. Any length is accepted,
// including zero. The sample buffer is marked stale; call Rebuild before drawing.
func (p *Path) SetSegments(segs []CubicBezier) {
	p.segments = append([]CubicBezier(nil), segs...)
	p.samplesPer = -1
}

// Segments returns a copy of the current segments.
func (p *Path) Segments() []CubicBezier {
	return append([]CubicBezier(nil), p.segments...)
}

// SegmentCount returns the number of segments.
func (p *Path) SegmentCount() int {
	return len(p.segments)
}

// Wrap folds u into [0, n) by repeated addition or subtraction of n.
// When the magnitude of u is so large that stepping by n no longer changes it
// in float32, the remainder is taken directly. Non-finite u maps to 0.
func Wrap(u float32, n int) float32 {
	if n <= 0 || math32.IsNaN(u) || math32.IsInf(u, 0) {
		return 0
	}
	w := float32(n)
	for u >= w {
		next := u - w
		if next == u {
			return positiveMod(u, w)
		}
		u = next
	}
	for u < 0 {
		next := u + w
		if next == u {
			return positiveMod(u, w)
		}
		u = next
	}
	return u
}

func positiveMod(u, w float32) float32 {
	m := math32.Mod(u, w)
	if m < 0 {
		m += w
	}
	if m >= w {
		m = 0
	}
	return m
}

// Locate returns the segment index and local t for global parameter u.
// ok is false when the path has no segments.
func (p *Path) Locate(u float32) (seg int, t float32, ok bool) {
	n := len(p.segments)
	if n == 0 {
		return 0, 0, false
	}
	w := Wrap(u, n)
	f := math32.Floor(w)
	return int(f) % n, w - f, true
}

// EvalGlobal returns the point at global parameter u; u may have any sign or magnitude.
// An empty path evaluates to the origin.
func (p *Path) EvalGlobal(u float32) mgl32.Vec3 {
	seg, t, ok := p.Locate(u)
	if !ok {
		return mgl32.Vec3{}
	}
	return p.segments[seg].Eval(t)
}

// Rebuild resamples every segment at samplesPerSegment+1 evenly spaced t values,
// both endpoints included, and concatenates them in segment order. Segment
// boundaries therefore appear twice. samplesPerSegment below 1 is treated as 1.
func (p *Path) Rebuild(samplesPerSegment int) {
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}
	p.samples = p.samples[:0]
	for _, seg := range p.segments {
		for i := 0; i <= samplesPerSegment; i++ {
			t := float32(i) / float32(samplesPerSegment)
			p.samples = append(p.samples, seg.Eval(t))
		}
	}
	p.samplesPer = samplesPerSegment
}

// Samples returns the current sample buffer. The slice is owned by the path.
func (p *Path) Samples() []mgl32.Vec3 {
	return p.samples
}

// Stale reports whether the sample buffer was not built for the current segments,
// or was built at a different resolution than samplesPerSegment.
func (p *Path) Stale(samplesPerSegment int) bool {
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}
	return p.samplesPer != samplesPerSegment
}

// SetVisible shows or hides the curve overlay. Evaluation is unaffected.
func (p *Path) SetVisible(v bool) {
	p.hidden = !v
}

// Visible reports whether Draw will submit anything.
func (p *Path) Visible() bool {
	return !p.hidden
}

// Draw submits the sample buffer to d as one line strip. It does nothing when
// the path is hidden or has no samples.
func (p *Path) Draw(d LineDrawer, proj, view mgl32.Mat4, color mgl32.Vec3) {
	if p.hidden || len(p.samples) == 0 {
		return
	}
	d.DrawLineStrip(p.samples, proj, view, color)
}
