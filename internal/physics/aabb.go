package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: abs(size.X) / 2, Y: abs(size.Y) / 2, Z: abs(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// emptyAABB is inverted so that the first Extend sets both corners.
func emptyAABB() AABB {
	return AABB{
		Min: rl.Vector3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32},
		Max: rl.Vector3{X: -math.MaxFloat32, Y: -math.MaxFloat32, Z: -math.MaxFloat32},
	}
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Extend grows the box to include p.
func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{Min: vector3Min(a.Min, p), Max: vector3Max(a.Max, p)}
}

func (a AABB) Union(b AABB) AABB {
	return AABB{Min: vector3Min(a.Min, b.Min), Max: vector3Max(a.Max, b.Max)}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// intersectRay runs the slab test against a normalized direction.
// It returns the entry and exit distances along the ray; tmin may be negative
// when the origin is inside the box.
func (a AABB) intersectRay(origin, direction rl.Vector3, maxDistance float32) (tmin, tmax float32, ok bool) {
	tmin = -math.MaxFloat32
	tmax = math.MaxFloat32

	for axis := 0; axis < 3; axis++ {
		o := getAxisValue(origin, axis)
		d := getAxisValue(direction, axis)
		lo := getAxisValue(a.Min, axis)
		hi := getAxisValue(a.Max, axis)

		if d == 0 {
			// Parallel to this slab: must already be between the planes
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, 0, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return 0, 0, false
	}
	return tmin, tmax, true
}
