package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// triangleEpsilon rejects rays nearly parallel to a triangle's plane.
const triangleEpsilon = 1e-7

// Box is a solid axis-aligned block.
type Box struct {
	AABB
}

// NewBox creates a box surface from a center point and full size dimensions.
func NewBox(center, size rl.Vector3) *Box {
	return &Box{AABB: NewAABBFromCenter(center, size)}
}

func (b *Box) Bounds() AABB {
	return b.AABB
}

// Raycast hits the first face the ray enters. A ray starting inside the box
// reports the face it leaves through.
func (b *Box) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	if lengthSqr(direction) == 0 {
		return RaycastHit{}, false
	}

	tmin, tmax, ok := b.intersectRay(origin, direction, maxDistance)
	if !ok {
		return RaycastHit{}, false
	}

	t := tmin
	if b.Contains(origin) {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return RaycastHit{Point: point, Normal: b.faceNormal(point), Distance: t}, true
}

// faceNormal picks the outward normal of the face closest to point
func (b *Box) faceNormal(point rl.Vector3) rl.Vector3 {
	normal := rl.Vector3{X: -1}
	best := abs(point.X - b.Min.X)

	candidates := []struct {
		dist   float32
		normal rl.Vector3
	}{
		{abs(point.X - b.Max.X), rl.Vector3{X: 1}},
		{abs(point.Y - b.Min.Y), rl.Vector3{Y: -1}},
		{abs(point.Y - b.Max.Y), rl.Vector3{Y: 1}},
		{abs(point.Z - b.Min.Z), rl.Vector3{Z: -1}},
		{abs(point.Z - b.Max.Z), rl.Vector3{Z: 1}},
	}
	for _, c := range candidates {
		if c.dist < best {
			best = c.dist
			normal = c.normal
		}
	}
	return normal
}

// raycastTriangle is the Möller-Trumbore test. Triangles are double-sided.
func raycastTriangle(origin, direction rl.Vector3, tri *Triangle, maxDistance float32) (float32, bool) {
	edge1 := rl.Vector3Subtract(tri.V1, tri.V0)
	edge2 := rl.Vector3Subtract(tri.V2, tri.V0)

	p := rl.Vector3CrossProduct(direction, edge2)
	det := rl.Vector3DotProduct(edge1, p)
	if abs(det) < triangleEpsilon {
		return 0, false
	}
	invDet := 1 / det

	s := rl.Vector3Subtract(origin, tri.V0)
	u := rl.Vector3DotProduct(s, p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := rl.Vector3CrossProduct(s, edge1)
	v := rl.Vector3DotProduct(direction, q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := rl.Vector3DotProduct(edge2, q) * invDet
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}
