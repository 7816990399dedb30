package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	a := NewGameObject("Ball_1", "projectile")
	b := NewGameObject("Wall")

	assert.NotEqual(t, a.UID, b.UID)
	assert.True(t, a.Active)
	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, a.Transform.Scale)

	assert.True(t, a.HasTag("projectile"))
	assert.False(t, a.HasTag("field"))
	assert.False(t, b.HasTag("projectile"), "untagged objects match nothing")
}
