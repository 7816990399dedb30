package turret

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pitch limits in degrees. 0 points straight up, 90 is level.
const (
	MinPitch float32 = -45
	MaxPitch float32 = 90
)

// ErrNoMuzzle is returned when the turret cannot produce a launch state.
var ErrNoMuzzle = errors.New("no muzzle state")

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Turret is the launcher mounted on the chassis.
type Turret struct {
	Yaw           float32    // degrees, robot frame, [-180, 180]
	Pitch         float32    // degrees, [MinPitch, MaxPitch]
	Offset        rl.Vector3 // pivot in the robot frame: forward, left, up
	RotationSpeed float32    // rad/s for manual slewing
	BarrelLength  float32
}

// Muzzle is the launch point and velocity of the next ball, world space.
type Muzzle struct {
	Position rl.Vector3
	Velocity rl.Vector3
}

// Controller ties the chassis and turret together and produces muzzle states.
type Controller struct {
	Robot  Robot
	Turret Turret

	rand RandSource
}

// NewController creates a controller. A nil source uses the global generator.
func NewController(robot Robot, turret Turret, src RandSource) *Controller {
	if src == nil {
		src = globalSource{}
	}
	return &Controller{Robot: robot, Turret: turret, rand: src}
}

// DefaultTurret is a centred turret slewing at 2 rad/s.
func DefaultTurret() Turret {
	return Turret{RotationSpeed: 2.0, BarrelLength: 8}
}

// SetAim stores solved angles: yaw wraps to [-180, 180], pitch is clamped.
// Non-finite values are ignored.
func (c *Controller) SetAim(yaw, pitch float32) {
	if !math.IsNaN(float64(yaw)) && !math.IsInf(float64(yaw), 0) {
		c.Turret.Yaw = wrapDegrees(yaw)
	}
	if !math.IsNaN(float64(pitch)) && !math.IsInf(float64(pitch), 0) {
		c.Turret.Pitch = clamp(pitch, MinPitch, MaxPitch)
	}
}

// Slew turns the turret manually. Inputs are in [-1, 1].
func (c *Controller) Slew(yawInput, pitchInput, dt float32) {
	step := c.Turret.RotationSpeed * dt * 180 / math.Pi
	c.SetAim(c.Turret.Yaw+clampUnit(yawInput)*step, c.Turret.Pitch+clampUnit(pitchInput)*step)
}

// TurretPosition is the turret pivot in world space.
func (c *Controller) TurretPosition() rl.Vector3 {
	return c.Robot.ToWorld(c.Turret.Offset)
}

// Direction is the unit barrel direction in world space.
func (c *Controller) Direction() rl.Vector3 {
	heading := float64(c.Robot.Yaw) + float64(c.Turret.Yaw)*math.Pi/180
	elevation := (90 - float64(c.Turret.Pitch)) * math.Pi / 180

	ch := math.Cos(elevation)
	return rl.Vector3{
		X: float32(ch * math.Cos(heading)),
		Y: float32(ch * math.Sin(heading)),
		Z: float32(math.Sin(elevation)),
	}
}

// MuzzlePosition is the barrel tip in world space.
func (c *Controller) MuzzlePosition() rl.Vector3 {
	return rl.Vector3Add(c.TurretPosition(), rl.Vector3Scale(c.Direction(), c.Turret.BarrelLength))
}

// MuzzleState returns the launch state for a shot at exitVelocity in/s.
// shootingError is a percentage: each velocity axis is scaled independently
// by 1 + u with u uniform in [-shootingError/100, shootingError/100], so the
// spread is box-shaped rather than a cone.
func (c *Controller) MuzzleState(exitVelocity, shootingError float32) (Muzzle, error) {
	if !(exitVelocity > 0) || math.IsInf(float64(exitVelocity), 0) {
		return Muzzle{}, fmt.Errorf("exit velocity %v: %w", exitVelocity, ErrNoMuzzle)
	}
	if !(shootingError >= 0) {
		return Muzzle{}, fmt.Errorf("shooting error %v: %w", shootingError, ErrNoMuzzle)
	}

	velocity := rl.Vector3Scale(c.Direction(), exitVelocity)
	if shootingError > 0 {
		spread := float64(shootingError) / 100
		velocity.X *= c.perturb(spread)
		velocity.Y *= c.perturb(spread)
		velocity.Z *= c.perturb(spread)
	}

	return Muzzle{Position: c.MuzzlePosition(), Velocity: velocity}, nil
}

func (c *Controller) perturb(spread float64) float32 {
	return float32(1 + (2*c.rand.Float64()-1)*spread)
}

// Reset puts the robot back at the origin and centres the turret.
func (c *Controller) Reset() {
	c.Robot.Reset()
	c.Turret.Yaw = 0
	c.Turret.Pitch = 0
}

func wrapDegrees(a float32) float32 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
