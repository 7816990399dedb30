package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Ground plane response. The floor is z = 0 and a resting sphere sits at z = radius.
const (
	BounceSpeed          float32 = 20  // |vz| above this bounces, below it settles
	BounceRestitution    float32 = 0.5 // vertical energy kept on a bounce
	BounceFriction       float32 = 0.8 // horizontal scale on a bounce
	RollingFriction      float32 = 0.9 // horizontal scale while settled
	RestSpeedSqThreshold float32 = 10  // speed^2 below this retires the ball
)

// GroundContact is the outcome of the ground model for one frame.
type GroundContact struct {
	Position     rl.Vector3
	Velocity     rl.Vector3
	Touching     bool
	Bounced      bool
	ShouldRemove bool
}

// ApplyGroundContact clamps a sphere to the floor and applies bounce or rolling
// losses. ShouldRemove is only ever set on a frame with floor contact.
func ApplyGroundContact(position, velocity rl.Vector3, radius float32) GroundContact {
	out := GroundContact{Position: position, Velocity: velocity}
	if position.Z > radius {
		return out
	}

	out.Touching = true
	out.Position.Z = radius

	if abs(velocity.Z) > BounceSpeed {
		out.Bounced = true
		out.Velocity.Z = -velocity.Z * BounceRestitution
		out.Velocity.X = velocity.X * BounceFriction
		out.Velocity.Y = velocity.Y * BounceFriction
	} else {
		out.Velocity.Z = 0
		out.Velocity.X = velocity.X * RollingFriction
		out.Velocity.Y = velocity.Y * RollingFriction
	}

	if lengthSqr(out.Velocity) < RestSpeedSqThreshold {
		out.ShouldRemove = true
	}
	return out
}
