package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/sim"
	"turretsim/internal/turret"
)

// KeyState reports whether a key is held, like rl.IsKeyDown.
type KeyState func(key int32) bool

// ReadInput maps the keyboard to one frame of commands.
//
//	W/S       drive +x / -x
//	A/D       drive +y / -y
//	Q/E       rotate the chassis
//	←/→       turret yaw
//	↑/↓       raise / lower the barrel
func ReadInput(down KeyState) sim.Input {
	axis := func(pos, neg int32) float32 {
		var v float32
		if down(pos) {
			v++
		}
		if down(neg) {
			v--
		}
		return v
	}

	return sim.Input{
		Drive: turret.DriveInput{
			Forward: axis(rl.KeyW, rl.KeyS),
			Strafe:  axis(rl.KeyA, rl.KeyD),
			Rotate:  axis(rl.KeyQ, rl.KeyE),
		},
		TurretYaw: axis(rl.KeyLeft, rl.KeyRight),
		// Pitch is measured from vertical, so raising the barrel lowers it
		TurretPitch: axis(rl.KeyDown, rl.KeyUp),
	}
}
