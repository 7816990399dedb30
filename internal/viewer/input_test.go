package viewer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"turretsim/internal/sim"
	"turretsim/internal/turret"
)

func keys(held ...int32) KeyState {
	set := make(map[int32]bool, len(held))
	for _, k := range held {
		set[k] = true
	}
	return func(k int32) bool { return set[k] }
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		held []int32
		want sim.Input
	}{
		{"idle", nil, sim.Input{}},
		{"forward", []int32{rl.KeyW}, sim.Input{Drive: turret.DriveInput{Forward: 1}}},
		{"opposing keys cancel", []int32{rl.KeyW, rl.KeyS}, sim.Input{}},
		{"strafe right", []int32{rl.KeyD}, sim.Input{Drive: turret.DriveInput{Strafe: -1}}},
		{"diagonal", []int32{rl.KeyS, rl.KeyA}, sim.Input{Drive: turret.DriveInput{Forward: -1, Strafe: 1}}},
		{"rotate", []int32{rl.KeyE}, sim.Input{Drive: turret.DriveInput{Rotate: -1}}},
		{"turret left", []int32{rl.KeyLeft}, sim.Input{TurretYaw: 1}},
		{"barrel up", []int32{rl.KeyUp}, sim.Input{TurretPitch: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadInput(keys(tt.held...)))
		})
	}
}
