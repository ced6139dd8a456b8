package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix converts a column-major mgl32 matrix to raylib's layout. Both store
// column 0 first, so element i maps to field Mi.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func Vector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// Color converts a linear 0..1 RGB triple to an opaque raylib color.
func Color(c mgl32.Vec3) rl.Color {
	return rl.NewColor(channel(c[0]), channel(c[1]), channel(c[2]), 255)
}

// ColorA is Color with an explicit alpha in 0..1.
func ColorA(c [4]float32) rl.Color {
	return rl.NewColor(channel(c[0]), channel(c[1]), channel(c[2]), channel(c[3]))
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
