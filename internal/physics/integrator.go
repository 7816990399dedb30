package physics

import (
	"fmt"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Gravity is standard gravity in inches per second squared.
const Gravity float32 = 386.09

// MetersPerInch converts the simulation's length unit to SI.
const MetersPerInch = 0.0254

// Mode selects how a projectile is integrated.
type Mode int

const (
	ModeNone     Mode = iota // gravity only
	ModeDrag                 // quadratic drag with the configured reference area
	ModeDragCalc             // quadratic drag with the area derived from the ball radius
)

var modeNames = map[Mode]string{
	ModeNone:     "none",
	ModeDrag:     "drag",
	ModeDragCalc: "drag_calc",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// HasDrag reports whether drag is integrated in this mode.
func (m Mode) HasDrag() bool {
	return m == ModeDrag || m == ModeDragCalc
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("unknown physics mode %q", s)
}

// DragConfig holds the aerodynamic parameters in SI units.
type DragConfig struct {
	Mode            Mode
	DragCoefficient float32 // dimensionless Cd
	AirDensity      float32 // kg/m^3
	ReferenceArea   float32 // m^2
	Mass            float32 // kg
}

// DefaultDragConfig models a 5.91 in foam ball in sea-level air.
func DefaultDragConfig() DragConfig {
	return DragConfig{
		Mode:            ModeNone,
		DragCoefficient: 0.47,
		AirDensity:      1.225,
		ReferenceArea:   CrossSectionArea(5.91 / 2),
		Mass:            0.215,
	}
}

// CrossSectionArea returns the frontal area in m^2 of a sphere whose radius is in inches.
func CrossSectionArea(radiusInches float32) float32 {
	r := float64(radiusInches) * MetersPerInch
	return float32(math.Pi * r * r)
}

// ForRadius returns a copy whose reference area matches a sphere of the given radius.
func (d DragConfig) ForRadius(radiusInches float32) DragConfig {
	d.ReferenceArea = CrossSectionArea(radiusInches)
	return d
}

// Deceleration returns the drag deceleration magnitude in in/s^2 for a speed in in/s.
// F = 1/2 * rho * v^2 * Cd * A is evaluated in SI and converted back.
func (d DragConfig) Deceleration(speed float32) float32 {
	if d.Mass <= 0 || speed <= 0 {
		return 0
	}
	v := float64(speed) * MetersPerInch
	force := 0.5 * float64(d.AirDensity) * v * v * float64(d.DragCoefficient) * float64(d.ReferenceArea)
	accel := force / float64(d.Mass)
	return float32(accel / MetersPerInch)
}

// Integrate advances a velocity by dt and returns the new velocity and the
// frame displacement. Position is left to the collision step.
func Integrate(velocity rl.Vector3, dt float32, drag DragConfig, mode Mode) (rl.Vector3, rl.Vector3) {
	if mode.HasDrag() {
		speed := rl.Vector3Length(velocity)
		if speed > 0 {
			dv := drag.Deceleration(speed) * dt
			// Drag can stop a ball but never reverse it
			if dv > speed {
				dv = speed
			}
			velocity = rl.Vector3Subtract(velocity, rl.Vector3Scale(velocity, dv/speed))
		}
	}

	velocity.Z -= Gravity * dt

	return velocity, rl.Vector3Scale(velocity, dt)
}
