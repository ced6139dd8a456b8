package lamp

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpeed is how many path segments the lamp covers per second.
const DefaultSpeed = 0.15

// Evaluator maps a global path parameter to a world position (e.g. *bezier.Path).
// The parameter is periodic in SegmentCount.
type Evaluator interface {
	EvalGlobal(u float32) mgl32.Vec3
	SegmentCount() int
}

// Lamp is the animated point light. U is its global path parameter. Step keeps
// it within one period of the path; Advance alone lets it grow.
type Lamp struct {
	Speed  float32
	Paused bool
	U      float32
	Color  mgl32.Vec3
}

// New returns a white lamp at the start of its path.
func New(speed float32) *Lamp {
	return &Lamp{Speed: speed, Color: mgl32.Vec3{1, 1, 1}}
}

// Advance moves the lamp dt seconds along the path unless it is paused.
func (l *Lamp) Advance(dt float32) {
	if l.Paused || dt <= 0 {
		return
	}
	l.U += l.Speed * dt
}

// Step advances the lamp by dt and then removes whole periods of path from U,
// so U stays in [0, SegmentCount) and float32 steps never stall. The point
// Position returns is the same as without the fold.
func (l *Lamp) Step(path Evaluator, dt float32) {
	l.Advance(dt)
	n := float32(path.SegmentCount())
	if n <= 0 || (l.U >= 0 && l.U < n) || math32.IsNaN(l.U) || math32.IsInf(l.U, 0) {
		return
	}
	l.U = math32.Mod(l.U, n)
	if l.U < 0 {
		l.U += n
	}
	if l.U >= n {
		l.U = 0
	}
}

// Position evaluates path at the lamp's current parameter.
func (l *Lamp) Position(path Evaluator) mgl32.Vec3 {
	return path.EvalGlobal(l.U)
}

// TogglePause flips Paused and returns the new value.
func (l *Lamp) TogglePause() bool {
	l.Paused = !l.Paused
	return l.Paused
}

// Reset puts the lamp back at the start of the path.
func (l *Lamp) Reset() {
	l.U = 0
}
