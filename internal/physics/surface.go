package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// RaycastHit is the first point where a ray meets a surface.
type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3 // world space, zero when the surface has no usable normal there
	Distance float32
}

// Surface is static collidable geometry. Implementations must be safe to query
// repeatedly from the same frame and never mutate themselves during a query.
type Surface interface {
	// Raycast returns the closest hit along direction within maxDistance.
	Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool)
}

// Compound is a set of surfaces queried together; the nearest hit wins.
type Compound []Surface

// Raycast checks every member surface and returns the closest hit
func (c Compound) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, s := range c {
		if s == nil {
			continue
		}
		if hitInfo, ok := s.Raycast(origin, direction, maxDistance); ok {
			if hitInfo.Distance <= closestHit.Distance {
				closestHit = hitInfo
				hit = true
			}
		}
	}

	return closestHit, hit
}

// Bounds returns the union of the member bounds that expose one.
func (c Compound) Bounds() (AABB, bool) {
	var out AABB
	found := false
	for _, s := range c {
		b, ok := s.(interface{ Bounds() AABB })
		if !ok {
			continue
		}
		if !found {
			out = b.Bounds()
			found = true
			continue
		}
		out = out.Union(b.Bounds())
	}
	return out, found
}
