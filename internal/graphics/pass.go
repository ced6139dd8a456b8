package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"mirror-scene/internal/bezier"
)

// placeholder is only used to enter raylib's 3D mode; the matrices are replaced right after.
var placeholder = rl.Camera3D{
	Position:   rl.NewVector3(0, 0, 1),
	Target:     rl.NewVector3(0, 0, 0),
	Up:         rl.NewVector3(0, 1, 0),
	Fovy:       60,
	Projection: rl.CameraPerspective,
}

// Begin3D enters raylib 3D mode with the given projection and view instead of
// a raylib camera. Pair with End3D.
func Begin3D(proj, view mgl32.Mat4) {
	rl.BeginMode3D(placeholder)
	rl.SetMatrixProjection(Matrix(proj))
	rl.SetMatrixModelview(Matrix(view))
}

// End3D flushes batched geometry and leaves 3D mode.
func End3D() {
	rl.EndMode3D()
}

// With3D runs draw between Begin3D and End3D.
func With3D(proj, view mgl32.Mat4, draw func()) {
	Begin3D(proj, view)
	draw()
	End3D()
}

var _ bezier.LineDrawer = Lines{}

// Lines draws polylines with raylib's immediate line batch.
type Lines struct{}

// DrawLineStrip implements bezier.LineDrawer.
func (Lines) DrawLineStrip(points []mgl32.Vec3, proj, view mgl32.Mat4, color mgl32.Vec3) {
	if len(points) < 2 {
		return
	}
	c := Color(color)
	With3D(proj, view, func() {
		prev := Vector3(points[0])
		for _, p := range points[1:] {
			next := Vector3(p)
			rl.DrawLine3D(prev, next, c)
			prev = next
		}
	})
}

// DrawModel draws model with the world transform m. The model's own Transform is overwritten.
func DrawModel(model *rl.Model, m mgl32.Mat4) {
	model.Transform = Matrix(m)
	rl.DrawModel(*model, rl.NewVector3(0, 0, 0), 1, rl.White)
}
