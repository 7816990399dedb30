package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. The world is Z-up.
type OrbitCamera struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32 // degrees around +Z, 0 looks along +X
	Pitch     float32 // degrees above the floor plane
	LookSpeed float32
	ZoomSpeed float32

	MinDistance float32
	MaxDistance float32
}

func NewOrbitCamera(target rl.Vector3) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    320,
		Yaw:         -135.0,
		Pitch:       30.0,
		LookSpeed:   0.25,
		ZoomSpeed:   0.1,
		MinDistance: 40,
		MaxDistance: 1200,
	}
}

// Update orbits while the right mouse button is held and zooms with the wheel.
func (c *OrbitCamera) Update() {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		c.Orbit(-delta.X*c.LookSpeed, delta.Y*c.LookSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Zoom(wheel)
	}
}

// Orbit turns the camera by yaw and pitch degrees.
func (c *OrbitCamera) Orbit(yaw, pitch float32) {
	c.Yaw += yaw
	c.Pitch += pitch

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < 5 {
		c.Pitch = 5
	}
}

// Zoom scales the distance by ZoomSpeed per wheel notch.
func (c *OrbitCamera) Zoom(notches float32) {
	c.Distance *= 1 - notches*c.ZoomSpeed
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Position is the eye point on the orbit sphere.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)

	return rl.Vector3{
		X: c.Target.X + float32(d*math.Cos(pitchRad)*math.Cos(yawRad)),
		Y: c.Target.Y + float32(d*math.Cos(pitchRad)*math.Sin(yawRad)),
		Z: c.Target.Z + float32(d*math.Sin(pitchRad)),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 0, Z: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
