package bezier

import "github.com/go-gl/mathgl/mgl32"

// CubicBezier is a single cubic segment defined by four control points.
// P0 and P3 are the endpoints; P1 and P2 shape the curve between them.
// Nothing is enforced on the points, so joins between segments may be sharp.
type CubicBezier struct {
	P0, P1, P2, P3 mgl32.Vec3
}

// Eval returns the point at local parameter t, using the cubic Bernstein basis.
// t is expected in [0, 1] but is not clamped.
func (c CubicBezier) Eval(t float32) mgl32.Vec3 {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return c.P0.Mul(b0).Add(c.P1.Mul(b1)).Add(c.P2.Mul(b2)).Add(c.P3.Mul(b3))
}

// Tangent returns the first derivative of the curve at t (not normalized).
func (c CubicBezier) Tangent(t float32) mgl32.Vec3 {
	u := 1 - t
	return c.P0.Mul(-3 * u * u).
		Add(c.P1.Mul(3*u*u - 6*u*t)).
		Add(c.P2.Mul(6*u*t - 3*t*t)).
		Add(c.P3.Mul(3 * t * t))
}

// ReflectThrough returns p mirrored through pivot: pivot + (pivot - p).
// Used to pick the first inner control point of a segment that continues
// from a previous one, so the tangent direction carries across the join.
func ReflectThrough(p, pivot mgl32.Vec3) mgl32.Vec3 {
	return pivot.Add(pivot.Sub(p))
}

// Continue returns a segment that starts where prev ends, with P1 reflected
// through the shared endpoint. p2 and p3 are taken as given.
func Continue(prev CubicBezier, p2, p3 mgl32.Vec3) CubicBezier {
	return CubicBezier{
		P0: prev.P3,
		P1: ReflectThrough(prev.P2, prev.P3),
		P2: p2,
		P3: p3,
	}
}
