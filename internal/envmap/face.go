package envmap

import (
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"
)

// Face is one side of a cube texture. The values follow the GL face order,
// so Face(i) is the i-th face offset from +X.
type Face int

const (
	PositiveX Face = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

// NoFace marks a pass that renders a regular view rather than a cube face.
const NoFace Face = -1

// FaceCount is the number of faces on a cube texture.
const FaceCount = 6

// Faces lists every face in capture order.
var Faces = [FaceCount]Face{PositiveX, NegativeX, PositiveY, NegativeY, PositiveZ, NegativeZ}

var faceNames = [FaceCount]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// faceBasis holds the look direction and up vector for each face, using the
// GL cube map convention (t axis points down on the side faces).
var faceBasis = [FaceCount]struct{ dir, up mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return "face?"
	}
	return faceNames[f]
}

// Direction returns the unit vector the face looks along.
func (f Face) Direction() mgl32.Vec3 {
	return faceBasis[f].dir
}

// Up returns the up vector paired with the face direction.
func (f Face) Up() mgl32.Vec3 {
	return faceBasis[f].up
}

// FieldOfView is the vertical field of view of every face, in radians.
// Six 90° square frustums along the axes tile the sphere without gaps or overlap.
var FieldOfView = mgl32.DegToRad(90)

// FaceView returns the view matrix looking from position along face f.
func FaceView(position mgl32.Vec3, f Face) mgl32.Mat4 {
	return mgl32.LookAtV(position, position.Add(f.Direction()), f.Up())
}

// Projection returns the square 90° perspective projection shared by all faces.
func Projection(near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(FieldOfView, 1, near, far)
}

// MipLevels returns the length of the full mip chain for a square texture of the given size.
func MipLevels(size int32) int32 {
	if size <= 0 {
		return 0
	}
	return int32(bits.Len32(uint32(size)))
}
