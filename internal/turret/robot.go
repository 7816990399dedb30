package turret

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DriveInput holds one frame of driver commands, each in [-1, 1].
// Forward is +x on the field and Strafe is +y, whatever the robot's heading.
type DriveInput struct {
	Forward float32
	Strafe  float32
	Rotate  float32 // positive turns counter-clockwise
}

// Robot is the chassis pose on the field. Lengths are inches.
type Robot struct {
	Position      rl.Vector2
	Yaw           float32 // radians, counter-clockwise from +x
	Width         float32
	Depth         float32
	Speed         float32 // in/s
	RotationSpeed float32 // rad/s
	ChassisHeight float32
}

// DefaultRobot returns a 26 in square chassis at the origin.
func DefaultRobot() Robot {
	return Robot{
		Width:         26,
		Depth:         26,
		Speed:         120,
		RotationSpeed: 2.5,
		ChassisHeight: 6,
	}
}

// Drive moves the robot field-oriented: translation ignores the heading and
// diagonal input is normalized so it is no faster than a single axis.
func (r *Robot) Drive(in DriveInput, dt float32) {
	if in.Rotate != 0 {
		r.Yaw = wrapRadians(r.Yaw + clampUnit(in.Rotate)*r.RotationSpeed*dt)
	}

	move := rl.Vector2{X: clampUnit(in.Forward), Y: clampUnit(in.Strafe)}
	if rl.Vector2LengthSqr(move) == 0 {
		return
	}
	if rl.Vector2Length(move) > 1 {
		move = rl.Vector2Normalize(move)
	}
	r.Position = rl.Vector2Add(r.Position, rl.Vector2Scale(move, r.Speed*dt))
}

// Reset returns the robot to the origin facing +x.
func (r *Robot) Reset() {
	r.Position = rl.Vector2{}
	r.Yaw = 0
}

// ToWorld rotates a robot-frame offset (forward, left, up) by the heading and
// adds it to the chassis top.
func (r *Robot) ToWorld(offset rl.Vector3) rl.Vector3 {
	sin, cos := math.Sincos(float64(r.Yaw))
	s, c := float32(sin), float32(cos)
	return rl.Vector3{
		X: r.Position.X + offset.X*c - offset.Y*s,
		Y: r.Position.Y + offset.X*s + offset.Y*c,
		Z: r.ChassisHeight + offset.Z,
	}
}

func clampUnit(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func wrapRadians(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
