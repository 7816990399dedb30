package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Restitution scales the reflected velocity after a structure hit.
	Restitution float32 = 0.6
	// SkinWidth keeps a resolved sphere just off the surface so it does not re-enter.
	SkinWidth float32 = 0.001
)

// Contact is the outcome of one swept collision step.
type Contact struct {
	Position rl.Vector3
	Velocity rl.Vector3
	Normal   rl.Vector3 // oriented against the motion; zero when Collided is false
	Collided bool
}

// ResolveCollision sweeps a sphere centre from prev along displacement and
// bounces it off the first surface hit. With no surface, no motion, or a hit
// without a usable normal, the sphere advances by the full displacement.
func ResolveCollision(prev, displacement, velocity rl.Vector3, surface Surface, radius float32) Contact {
	free := Contact{Position: rl.Vector3Add(prev, displacement), Velocity: velocity}

	dist := rl.Vector3Length(displacement)
	if surface == nil || dist <= 0 {
		return free
	}

	direction := rl.Vector3Scale(displacement, 1/dist)
	hit, ok := surface.Raycast(prev, direction, dist)
	if !ok {
		return free
	}

	if lengthSqr(hit.Normal) < normalEpsilon {
		return free
	}
	normal := rl.Vector3Normalize(hit.Normal)
	// Always push back against the incoming motion, whichever side was hit
	if rl.Vector3DotProduct(normal, direction) > 0 {
		normal = rl.Vector3Negate(normal)
	}

	reflected := rl.Vector3Reflect(velocity, normal)

	return Contact{
		Position: rl.Vector3Add(hit.Point, rl.Vector3Scale(normal, radius+SkinWidth)),
		Velocity: rl.Vector3Scale(reflected, Restitution),
		Normal:   normal,
		Collided: true,
	}
}
