package projectile

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/physics"
)

// MaxAge is how long a projectile lives regardless of its physical state.
const MaxAge float32 = 10

// ID identifies a projectile for its whole life. IDs are never reused by a Manager.
type ID uint64

// Projectile is pure simulation data; visuals are kept elsewhere.
type Projectile struct {
	ID       ID
	Position rl.Vector3 // inches
	Velocity rl.Vector3 // inches per second
	Radius   float32    // fixed at spawn
	Age      float32    // seconds since spawn
	Mode     physics.Mode
}

// Speed returns |velocity| in inches per second.
func (p Projectile) Speed() float32 {
	return rl.Vector3Length(p.Velocity)
}

// RetireReason says why a projectile left the live set.
type RetireReason int

const (
	RetireAge     RetireReason = iota // reached MaxAge
	RetireGround                      // came to rest on the floor
	RetireCleared                     // removed by Clear
)

func (r RetireReason) String() string {
	switch r {
	case RetireAge:
		return "age"
	case RetireGround:
		return "ground"
	case RetireCleared:
		return "cleared"
	default:
		return fmt.Sprintf("RetireReason(%d)", int(r))
	}
}

// Retirement is published once per retired projectile, holding its final state.
type Retirement struct {
	Projectile Projectile
	Reason     RetireReason
}
