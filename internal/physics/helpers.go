package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// normalEpsilon is the squared length below which a normal is unusable.
const normalEpsilon = 1e-12

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func getAxisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Min(float64(a.X), float64(b.X))),
		Y: float32(math.Min(float64(a.Y), float64(b.Y))),
		Z: float32(math.Min(float64(a.Z), float64(b.Z))),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Max(float64(a.X), float64(b.X))),
		Y: float32(math.Max(float64(a.Y), float64(b.Y))),
		Z: float32(math.Max(float64(a.Z), float64(b.Z))),
	}
}

// lengthSqr avoids the square root when only comparisons are needed
func lengthSqr(v rl.Vector3) float32 {
	return rl.Vector3DotProduct(v, v)
}

// IsFinite reports whether every component is a real number.
func IsFinite(v rl.Vector3) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
