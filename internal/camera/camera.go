// Package camera provides the view and projection matrices for each camera mode.
package camera

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects which camera drives the main view.
type Mode int

const (
	BirdsEye Mode = iota
	Follow
	Trackball
	Free
	modeCount
)

var modeNames = [modeCount]string{"birds", "follow", "trackball", "free"}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles through the modes in declaration order.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode accepts the names printed by String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("camera: unknown mode %q (want one of %s)", s, strings.Join(modeNames[:], ", "))
}

// Perspective parameters shared by every mode except BirdsEye.
const (
	FieldOfView = 60 // degrees
	Near        = 0.01
	Far         = 100
)

// Perspective returns the projection used by Follow, Trackball and Free.
func Perspective(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), sanitize(aspect), Near, Far)
}

func sanitize(aspect float32) float32 {
	if aspect <= 0 || math32.IsNaN(aspect) || math32.IsInf(aspect, 0) {
		return 1
	}
	return aspect
}

// Rig holds the state of every camera so switching modes keeps each one where it was.
type Rig struct {
	Mode      Mode
	Birds     BirdsEyeCam
	Follow    FollowCam
	Trackball *TrackballCam
	Free      *FreeCam
}

// NewRig returns a rig in BirdsEye mode with default parameters for all cameras.
func NewRig() *Rig {
	return &Rig{
		Mode:      BirdsEye,
		Birds:     DefaultBirdsEye(),
		Follow:    DefaultFollow(),
		Trackball: NewTrackball(),
		Free:      NewFreeCam(),
	}
}

// View returns the view matrix of the active mode. target is the model matrix
// of the object the Follow camera tracks.
func (r *Rig) View(target mgl32.Mat4) mgl32.Mat4 {
	switch r.Mode {
	case Follow:
		return r.Follow.View(target)
	case Trackball:
		return r.Trackball.View()
	case Free:
		return r.Free.View()
	default:
		return r.Birds.View()
	}
}

// Projection returns the projection matrix of the active mode.
func (r *Rig) Projection(aspect float32) mgl32.Mat4 {
	if r.Mode == BirdsEye {
		return r.Birds.Projection(aspect)
	}
	return Perspective(aspect)
}

// Eye recovers the world-space camera position from a view matrix.
func Eye(view mgl32.Mat4) mgl32.Vec3 {
	return view.Inv().Col(3).Vec3()
}
