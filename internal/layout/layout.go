// Package layout places the static objects of the mirror scene.
package layout

import (
	"github.com/go-gl/mathgl/mgl32"

	"mirror-scene/internal/tile"
)

// Placement constants for the default scene.
var (
	GroundStart  = mgl32.Vec3{-5, 0, -5}
	GroundEnd    = mgl32.Vec3{5, 0, 5}
	MirrorOffset = mgl32.Vec3{0.2, 0.1, -0.1}
)

const (
	MirrorYaw   = 110 // degrees about +Y
	MirrorScale = 0.85
)

// Layout holds world transforms for everything that does not move.
type Layout struct {
	Ground     *tile.Tile
	Car        mgl32.Mat4
	Mirror     mgl32.Mat4
	RobotStart mgl32.Vec3
}

// Default builds the scene: a 10×10 ground tile, the car at the middle of its
// far edge and the mirror next to the car. The robot starts at the tile center.
func Default() Layout {
	ground := tile.New(GroundStart, GroundEnd)
	carPos := ground.PositionInTile(0.5, 1)
	return Layout{
		Ground:     ground,
		Car:        mgl32.Translate3D(carPos.X(), carPos.Y(), carPos.Z()),
		Mirror:     MirrorModel(carPos.Add(MirrorOffset)),
		RobotStart: ground.Center(),
	}
}

// MirrorModel returns translate(pos) * rotateY(MirrorYaw) * scale(MirrorScale).
func MirrorModel(pos mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(MirrorYaw))).
		Mul4(mgl32.Scale3D(MirrorScale, MirrorScale, MirrorScale))
}

// ProbePosition is the world-space origin of the mirror model, where the
// environment is captured from.
func (l Layout) ProbePosition() mgl32.Vec3 {
	return l.Mirror.Col(3).Vec3()
}
