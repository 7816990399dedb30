package aim

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/physics"
)

const (
	// FallbackElevation is used when the target is out of reach.
	FallbackElevation = 45.0

	// The high arc is preferred unless it leaves this window.
	maxHighArc = 89.0
	minHighArc = -45.0

	// discriminantEpsilon absorbs rounding at the edge of the reachable range,
	// relative to B^2.
	discriminantEpsilon = 1e-6

	// minRange is the horizontal distance below which no yaw or arc is defined.
	minRange = 1e-3
)

// Input is one frame's view of the turret and its target. Lengths are inches.
type Input struct {
	Turret       rl.Vector3 // turret pivot; yaw is measured from here
	Muzzle       rl.Vector3 // launch point; range and height are measured from here
	Target       rl.Vector3
	RobotYaw     float32 // radians, counter-clockwise from +x
	ExitVelocity float32 // in/s
	Pitch        float32 // current turret pitch in degrees, used by ModeVelocity
}

// Solution is the solver output. Angles are degrees; the turret's pitch is 0
// when pointing straight up and Elevation is measured from horizontal.
type Solution struct {
	Yaw       float32
	Pitch     float32
	Elevation float32

	HighArc     float32 // larger root, valid unless Fallback
	LowArc      float32 // smaller root, valid unless Fallback
	UsedHighArc bool
	Fallback    bool // target unreachable, FallbackElevation used

	ExitVelocity float32 // in/s; solved in ModeVelocity, echoed otherwise
	MinSpeed     float32 // slowest exit velocity that reaches the target at any elevation
	TimeOfFlight float32 // drag-free seconds to cover the horizontal range

	Range  float32 // horizontal distance from muzzle to target
	Height float32 // target height above the muzzle
}

// LocalYaw returns the robot-relative heading from turret to target in
// radians, wrapped to [-pi, pi].
func LocalYaw(turret, target rl.Vector3, robotYaw float32) float32 {
	targetYaw := math.Atan2(float64(target.Y-turret.Y), float64(target.X-turret.X))
	return float32(wrapAngle(targetYaw - float64(robotYaw)))
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// SolveElevation inverts the drag-free range equation for launch speed v0.
// With u = tan(theta) it solves A*u^2 + B*u + C = 0 where
// A = g*x^2/(2*v0^2), B = -x and C = h + A.
// ok is false when the discriminant is negative.
func SolveElevation(x, h, v0 float64) (low, high float64, ok bool) {
	g := float64(physics.Gravity)
	a := g * x * x / (2 * v0 * v0)
	b := -x
	c := h + a

	disc := b*b - 4*a*c
	if disc < 0 && disc > -discriminantEpsilon*b*b {
		disc = 0
	}
	if disc < 0 {
		return 0, 0, false
	}

	sq := math.Sqrt(disc)
	u1 := (-b - sq) / (2 * a)
	u2 := (-b + sq) / (2 * a)
	return degrees(math.Atan(u1)), degrees(math.Atan(u2)), true
}

// MinimumSpeed is the lowest launch speed that reaches a point x away and h up.
func MinimumSpeed(x, h float64) float64 {
	g := float64(physics.Gravity)
	return math.Sqrt(g * (h + math.Sqrt(h*h+x*x)))
}

// SpeedForElevation returns the launch speed that reaches (x, h) at a fixed
// elevation in degrees. ok is false when no speed can, including any
// elevation at or past vertical, which would fire away from the target.
func SpeedForElevation(x, h, elevation float64) (float64, bool) {
	if elevation >= 90 {
		return 0, false
	}
	theta := radians(elevation)
	cos := math.Cos(theta)
	if cos < 1e-9 {
		return 0, false
	}
	rise := x*math.Tan(theta) - h
	if rise <= 0 {
		return 0, false
	}
	g := float64(physics.Gravity)
	return math.Sqrt(g * x * x / (2 * cos * cos * rise)), true
}

// Solve computes the aim for mode. It returns false, and a zero Solution,
// when the mode is off or the inputs do not define a shot: a non-finite
// position, a target straight above the muzzle, or no exit velocity in
// ModePitch. The result depends only on in, so repeated calls agree.
func Solve(mode Mode, in Input) (Solution, bool) {
	if mode == ModeOff {
		return Solution{}, false
	}
	if !physics.IsFinite(in.Turret) || !physics.IsFinite(in.Muzzle) || !physics.IsFinite(in.Target) {
		return Solution{}, false
	}

	dx := float64(in.Target.X - in.Muzzle.X)
	dy := float64(in.Target.Y - in.Muzzle.Y)
	x := math.Hypot(dx, dy)
	h := float64(in.Target.Z - in.Muzzle.Z)
	if x < minRange {
		return Solution{}, false
	}

	sol := Solution{
		Yaw:          float32(degrees(float64(LocalYaw(in.Turret, in.Target, in.RobotYaw)))),
		ExitVelocity: in.ExitVelocity,
		MinSpeed:     float32(MinimumSpeed(x, h)),
		Range:        float32(x),
		Height:       float32(h),
	}

	switch mode {
	case ModePitch:
		v0 := float64(in.ExitVelocity)
		if !(v0 > 0) || math.IsInf(v0, 0) {
			return Solution{}, false
		}
		elevation := FallbackElevation
		low, high, ok := SolveElevation(x, h, v0)
		if ok {
			sol.LowArc = float32(low)
			sol.HighArc = float32(high)
			elevation = high
			sol.UsedHighArc = true
			if high > maxHighArc || high < minHighArc {
				elevation = low
				sol.UsedHighArc = false
			}
		} else {
			sol.Fallback = true
		}
		sol.Elevation = float32(elevation)
		sol.Pitch = float32(90 - elevation)

	case ModeVelocity:
		elevation := 90 - float64(in.Pitch)
		sol.Elevation = float32(elevation)
		sol.Pitch = in.Pitch
		if v, ok := SpeedForElevation(x, h, elevation); ok {
			sol.ExitVelocity = float32(v)
		} else {
			sol.Fallback = true
		}

	default:
		return Solution{}, false
	}

	horizontal := float64(sol.ExitVelocity) * math.Cos(radians(float64(sol.Elevation)))
	if horizontal > 1e-9 {
		sol.TimeOfFlight = float32(x / horizontal)
	}
	return sol, true
}

// Aimable is the turret side of auto-aim.
type Aimable interface {
	SetAim(yawDeg, pitchDeg float32)
}

// Apply solves for mode and writes the angles to t. Nothing is written when
// Solve reports no shot or t is nil, so manual control stays authoritative.
func Apply(mode Mode, in Input, t Aimable) (Solution, bool) {
	if t == nil {
		return Solution{}, false
	}
	sol, ok := Solve(mode, in)
	if !ok {
		return sol, false
	}
	t.SetAim(sol.Yaw, sol.Pitch)
	return sol, true
}

func degrees(r float64) float64 { return r * 180 / math.Pi }
func radians(d float64) float64 { return d * math.Pi / 180 }
