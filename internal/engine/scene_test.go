package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneVisualLifecycle(t *testing.T) {
	scene := NewScene("field")
	var r Renderer = scene

	shape := Shape{Kind: ShapeSphere, Radius: 2.955, Color: rl.Yellow}
	h := r.AddVisual("Ball_7", shape, rl.Vector3{Z: 10}, "projectile")

	obj := scene.FindByUID(h)
	require.NotNil(t, obj)
	assert.Equal(t, "Ball_7", obj.Name)
	assert.Equal(t, shape, obj.Shape)
	assert.Equal(t, rl.Vector3{Z: 10}, obj.Transform.Position)
	assert.True(t, obj.HasTag("projectile"))

	r.MoveVisual(h, rl.Vector3{X: 1, Z: 4})
	assert.Equal(t, rl.Vector3{X: 1, Z: 4}, obj.Transform.Position)

	r.RemoveVisual(h)
	assert.Empty(t, scene.GameObjects)
	assert.Nil(t, scene.FindByUID(h))

	// Stale handles are ignored
	r.MoveVisual(h, rl.Vector3{})
	r.RemoveVisual(h)
	assert.Empty(t, scene.GameObjects)
}

func TestSceneRemoveKeepsOrder(t *testing.T) {
	scene := NewScene("field")
	base := scene.AddVisual("HubBase", Shape{Kind: ShapeBox}, rl.Vector3{}, "field")
	ball := scene.AddVisual("Ball_1", Shape{Kind: ShapeSphere}, rl.Vector3{}, "projectile")
	wall := scene.AddVisual("Wall", Shape{Kind: ShapeBox}, rl.Vector3{}, "field")

	scene.RemoveVisual(ball)

	require.Len(t, scene.GameObjects, 2)
	assert.Equal(t, base, scene.GameObjects[0].UID)
	assert.Equal(t, wall, scene.GameObjects[1].UID)
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("field")
	scene.AddVisual("HubBase", Shape{Kind: ShapeBox}, rl.Vector3{}, "field")
	scene.AddVisual("Ball_1", Shape{Kind: ShapeSphere}, rl.Vector3{}, "projectile")
	scene.AddVisual("Ball_2", Shape{Kind: ShapeSphere}, rl.Vector3{}, "projectile")
	scene.AddVisual("Marker", Shape{Kind: ShapeSphere}, rl.Vector3{})

	assert.Len(t, scene.FindByTag("projectile"), 2)
	assert.Len(t, scene.FindByTag("field"), 1)
	assert.Empty(t, scene.FindByTag("robot"))
}
