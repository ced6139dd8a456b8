package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// near compares componentwise with an absolute tolerance.
func near(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}

func TestParseMode(t *testing.T) {
	for m := BirdsEye; m < modeCount; m++ {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode(" Trackball ")
	require.NoError(t, err)
	assert.Equal(t, Trackball, got)

	_, err = ParseMode("orbit")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestNextCycles(t *testing.T) {
	m := BirdsEye
	seen := map[Mode]bool{}
	for i := 0; i < int(modeCount); i++ {
		seen[m] = true
		m = m.Next()
	}
	assert.Equal(t, BirdsEye, m)
	assert.Len(t, seen, int(modeCount))
}

func TestBirdsEye(t *testing.T) {
	c := DefaultBirdsEye()
	v := c.View()
	assert.True(t, near(Eye(v), mgl32.Vec3{0, 5, 0}, 1e-4))

	// World -Z is screen up.
	p := project(c.Projection(2).Mul4(v), mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 1, p.Y(), 1e-5)

	p = project(c.Projection(2).Mul4(v), mgl32.Vec3{2, 0, 0})
	assert.InDelta(t, 1, p.X(), 1e-5)
}

func TestFollowTracksTarget(t *testing.T) {
	c := DefaultFollow()
	target := mgl32.Translate3D(1, 0, 2).Mul4(mgl32.HomogRotate3DY(math32.Pi))
	v := c.View(target)

	assert.True(t, near(Eye(v), mgl32.Vec3{1, 0.8, 0}, 1e-4), "%v", Eye(v))
	center := v.Mul4x1(mgl32.Vec4{1, 0, 2, 1}).Vec3()
	assert.InDelta(t, 0, center.X(), 1e-5)
	assert.InDelta(t, 0, center.Y(), 1e-5)
	assert.Less(t, center.Z(), float32(0))
}

func TestTrackball(t *testing.T) {
	c := NewTrackball()
	assert.InDelta(t, 3, c.Position().Sub(c.Center).Len(), 1e-5)
	assert.True(t, near(Eye(c.View()), c.Position(), 1e-4))

	c.Zoom(2)
	assert.InDelta(t, 2.5, c.Distance, 1e-6)
	c.Zoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)

	c.Rotate(0, 1e6)
	assert.Less(t, c.RotX, float32(math32.Pi/2))
	before := c.RotY
	c.Rotate(10, 0)
	assert.InDelta(t, before+10*c.RotateSpeed, c.RotY, 1e-6)
}

func TestFreeCamMove(t *testing.T) {
	c := NewFreeCam()
	start := c.Pos
	c.Move(1, 0, 0)
	assert.InDelta(t, c.MoveStep, c.Pos.Sub(start).Len(), 1e-5)
	c.Move(-1, 0, 0)
	assert.True(t, near(c.Pos, start, 1e-5))

	c.Move(0, 1, 0)
	assert.InDelta(t, 0, c.Pos.Sub(start).Dot(c.Fwd), 1e-5)
}

func TestFreeCamLookKeepsBasis(t *testing.T) {
	c := NewFreeCam()
	c.Look(120, -40)
	assert.InDelta(t, 1, c.Fwd.Len(), 1e-5)
	assert.InDelta(t, 1, c.Up.Len(), 1e-5)
	assert.InDelta(t, 0, c.Fwd.Dot(c.Up), 1e-5)
	assert.Greater(t, c.Up.Y(), float32(0))

	// Looking straight up leaves the camera as it was.
	c = NewFreeCam()
	c.Fwd = mgl32.Vec3{0, 1, 0.0000001}.Normalize()
	c.Up = mgl32.Vec3{0, 0, -1}
	prev := *c
	c.Look(0, 0)
	assert.Equal(t, prev.Fwd, c.Fwd)
}

func TestRigProjection(t *testing.T) {
	r := NewRig()
	assert.Equal(t, r.Birds.Projection(1.5), r.Projection(1.5))
	for _, m := range []Mode{Follow, Trackball, Free} {
		r.Mode = m
		assert.Equal(t, Perspective(1.5), r.Projection(1.5), m.String())
	}
	assert.Equal(t, Perspective(1), Perspective(0))
	assert.Equal(t, Perspective(1), Perspective(math32.NaN()))
}

func TestRigView(t *testing.T) {
	r := NewRig()
	target := mgl32.Translate3D(0, 0, 3)
	assert.Equal(t, r.Birds.View(), r.View(target))
	r.Mode = Follow
	assert.Equal(t, r.Follow.View(target), r.View(target))
	r.Mode = Trackball
	assert.Equal(t, r.Trackball.View(), r.View(target))
	r.Mode = Free
	assert.Equal(t, r.Free.View(), r.View(target))
}
