package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// BirdsEyeCam looks straight down at Center from Height with an orthographic lens.
type BirdsEyeCam struct {
	Center   mgl32.Vec3
	Height   float32
	HalfSize float32
}

func DefaultBirdsEye() BirdsEyeCam {
	return BirdsEyeCam{Height: 5, HalfSize: 2}
}

func (c BirdsEyeCam) View() mgl32.Mat4 {
	eye := mgl32.Vec3{c.Center.X(), c.Height, c.Center.Z()}
	return mgl32.LookAtV(eye, c.Center, mgl32.Vec3{0, 0, -1})
}

// Projection shows HalfSize world units either side horizontally; the vertical
// extent follows the aspect ratio.
func (c BirdsEyeCam) Projection(aspect float32) mgl32.Mat4 {
	sx := c.HalfSize
	sy := c.HalfSize / sanitize(aspect)
	return mgl32.Ortho(-sx, sx, -sy, sy, Near, Far)
}

// FollowCam sits at Offset in the tracked object's space and looks at its origin.
type FollowCam struct {
	Offset mgl32.Vec3
}

func DefaultFollow() FollowCam {
	return FollowCam{Offset: mgl32.Vec3{0, 0.8, 2}}
}

func (c FollowCam) View(target mgl32.Mat4) mgl32.Mat4 {
	obj := target.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	eye := target.Mul4x1(c.Offset.Vec4(1)).Vec3()
	return mgl32.LookAtV(eye, obj, worldUp)
}

// TrackballCam orbits Center. Rotate takes mouse deltas in pixels, Zoom takes
// scroll wheel steps.
type TrackballCam struct {
	Center      mgl32.Vec3
	Distance    float32
	RotX, RotY  float32
	RotateSpeed float32
	ZoomSpeed   float32
	MinDistance float32
}

func NewTrackball() *TrackballCam {
	return &TrackballCam{
		Distance:    3,
		RotX:        0.2,
		RotY:        0.8,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.25,
		MinDistance: 0.2,
	}
}

func (c *TrackballCam) Rotate(dx, dy float32) {
	c.RotY += dx * c.RotateSpeed
	c.RotX += dy * c.RotateSpeed
	limit := float32(math32.Pi/2 - 0.01)
	c.RotX = mgl32.Clamp(c.RotX, -limit, limit)
}

func (c *TrackballCam) Zoom(steps float32) {
	c.Distance -= steps * c.ZoomSpeed
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
}

// Position is the eye in world space.
func (c *TrackballCam) Position() mgl32.Vec3 {
	cx, sx := math32.Cos(c.RotX), math32.Sin(c.RotX)
	cy, sy := math32.Cos(c.RotY), math32.Sin(c.RotY)
	dir := mgl32.Vec3{-sy * cx, sx, cy * cx}
	return c.Center.Add(dir.Mul(c.Distance))
}

func (c *TrackballCam) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, worldUp)
}

// FreeCam is a fly camera: Move steps along its own axes and Look applies a
// yaw about world up followed by a pitch about the camera's right axis.
type FreeCam struct {
	Pos, Fwd, Up mgl32.Vec3
	MoveStep     float32
	LookSpeed    float32
}

func NewFreeCam() *FreeCam {
	return &FreeCam{
		Pos:       mgl32.Vec3{-1.5, 1, -1.5},
		Fwd:       mgl32.Vec3{0.6, -0.2, 0.7}.Normalize(),
		Up:        worldUp,
		MoveStep:  0.08,
		LookSpeed: 0.0015,
	}
}

func (c *FreeCam) Right() mgl32.Vec3 {
	return c.Fwd.Cross(c.Up).Normalize()
}

// Move steps forward/right/up by whole MoveStep units; each argument is -1, 0 or 1.
func (c *FreeCam) Move(forward, right, up float32) {
	d := c.Fwd.Mul(forward).Add(c.Right().Mul(right)).Add(c.Up.Mul(up))
	c.Pos = c.Pos.Add(d.Mul(c.MoveStep))
}

// Look turns the camera by a mouse delta in pixels.
func (c *FreeCam) Look(dx, dy float32) {
	yaw := mgl32.HomogRotate3DY(-dx * c.LookSpeed)
	pitch := mgl32.HomogRotate3D(-dy*c.LookSpeed, c.Right())
	dir := pitch.Mul4(yaw).Mul4x1(c.Fwd.Vec4(0)).Vec3().Normalize()
	up := dir.Cross(worldUp).Cross(dir)
	if up.Len() < 1e-6 {
		return
	}
	c.Fwd = dir
	c.Up = up.Normalize()
}

func (c *FreeCam) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Fwd), c.Up)
}
