package actor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default drive rates.
const (
	DefaultMoveSpeed = 1.5 // units per second
	DefaultTurnSpeed = 2.0 // radians per second
)

// Actor is a model that moves on the ground plane. Yaw 0 faces -Z.
type Actor struct {
	Position  mgl32.Vec3
	Yaw       float32
	Scale     float32
	MoveSpeed float32
	TurnSpeed float32
}

// New returns an actor at pos with default speeds and unit scale.
func New(pos mgl32.Vec3) *Actor {
	return &Actor{
		Position:  pos,
		Scale:     1,
		MoveSpeed: DefaultMoveSpeed,
		TurnSpeed: DefaultTurnSpeed,
	}
}

// Forward returns the unit direction the actor faces.
func (a *Actor) Forward() mgl32.Vec3 {
	return mgl32.Vec3{-math32.Sin(a.Yaw), 0, -math32.Cos(a.Yaw)}
}

// Drive turns the actor by turn and moves it along its new heading by forward,
// both in [-1, 1] and scaled by dt seconds.
func (a *Actor) Drive(forward, turn, dt float32) {
	if dt <= 0 {
		return
	}
	a.Yaw += clamp(turn) * a.TurnSpeed * dt
	a.Position = a.Position.Add(a.Forward().Mul(clamp(forward) * a.MoveSpeed * dt))
}

// Model returns translate * rotateY(yaw) * scale.
func (a *Actor) Model() mgl32.Mat4 {
	return mgl32.Translate3D(a.Position.X(), a.Position.Y(), a.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(a.Yaw)).
		Mul4(mgl32.Scale3D(a.Scale, a.Scale, a.Scale))
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
