package field

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turretsim/internal/engine"
	"turretsim/internal/physics"
)

func TestTargetIsFunnelMouth(t *testing.T) {
	f := New(DefaultConfig())
	assert.Equal(t, rl.Vector3{X: 60, Z: 74}, f.Target())
}

func TestGeometry(t *testing.T) {
	f := New(DefaultConfig())

	blocks := f.Blocks()
	require.Len(t, blocks, 2)
	base, wall := blocks[0], blocks[1]
	assert.Equal(t, rl.Vector3{X: 60, Z: 23.5}, base.Center())
	assert.Equal(t, rl.Vector3{X: 47, Y: 47, Z: 47}, base.Size())
	assert.InDelta(t, -122.6, wall.Center().X, 1e-3)
	assert.Equal(t, rl.Vector3{X: 1, Y: 200, Z: 47}, wall.Size())

	assert.Equal(t, 12, f.Funnel().TriangleCount(), "open hexagonal funnel")

	compound, ok := f.Surface().(physics.Compound)
	require.True(t, ok)
	require.Len(t, compound, 3)
	assert.Same(t, base, compound[0])
	assert.Same(t, f.Funnel(), compound[1])
	assert.Same(t, wall, compound[2])
}

func TestBallCannotEnterBase(t *testing.T) {
	f := New(DefaultConfig())

	// Straight down the funnel the solid base top stops the ball
	hit, ok := f.Surface().Raycast(rl.Vector3{X: 60, Z: 60}, rl.Vector3{Z: -1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 47, hit.Point.Z, 1e-4)
	assert.Equal(t, rl.Vector3{Z: 1}, hit.Normal)
}

func TestSurfaceRaycasts(t *testing.T) {
	f := New(DefaultConfig())
	s := f.Surface()

	tests := []struct {
		name       string
		origin     rl.Vector3
		direction  rl.Vector3
		maxDist    float32
		wantHit    bool
		wantPoint  rl.Vector3
		wantNormal rl.Vector3 // up to sign
	}{
		{
			name: "hub near face", origin: rl.Vector3{Z: 20}, direction: rl.Vector3{X: 1}, maxDist: 100,
			wantHit: true, wantPoint: rl.Vector3{X: 36.5, Z: 20}, wantNormal: rl.Vector3{X: 1},
		},
		{
			name: "wall", origin: rl.Vector3{Z: 20}, direction: rl.Vector3{X: -1}, maxDist: 200,
			wantHit: true, wantPoint: rl.Vector3{X: -122.1, Z: 20}, wantNormal: rl.Vector3{X: 1},
		},
		{
			name: "funnel inner side", origin: rl.Vector3{X: 60, Z: 60}, direction: rl.Vector3{Y: 1}, maxDist: 50,
			wantHit: true, wantPoint: rl.Vector3{X: 60, Y: 18.0566, Z: 60}, wantNormal: rl.Vector3{Y: 1},
		},
		{
			name: "down through open funnel onto base", origin: rl.Vector3{X: 65, Y: -4, Z: 100}, direction: rl.Vector3{Z: -1}, maxDist: 100,
			wantHit: true, wantPoint: rl.Vector3{X: 65, Y: -4, Z: 47}, wantNormal: rl.Vector3{Z: 1},
		},
		{
			name: "over the funnel", origin: rl.Vector3{Z: 80}, direction: rl.Vector3{X: 1}, maxDist: 200,
		},
		{
			name: "short of the hub", origin: rl.Vector3{Z: 20}, direction: rl.Vector3{X: 1}, maxDist: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := s.Raycast(tt.origin, tt.direction, tt.maxDist)
			require.Equal(t, tt.wantHit, ok)
			if !tt.wantHit {
				return
			}
			assert.InDelta(t, tt.wantPoint.X, hit.Point.X, 1e-3)
			assert.InDelta(t, tt.wantPoint.Y, hit.Point.Y, 1e-3)
			assert.InDelta(t, tt.wantPoint.Z, hit.Point.Z, 1e-3)

			dot := rl.Vector3DotProduct(hit.Normal, tt.wantNormal)
			assert.InDelta(t, 1, dot*dot, 1e-4)
		})
	}
}

func TestInFunnel(t *testing.T) {
	f := New(DefaultConfig())

	assert.True(t, f.InFunnel(rl.Vector3{X: 60}))
	assert.True(t, f.InFunnel(rl.Vector3{X: 79}), "towards a vertex the hexagon reaches 20.85")
	assert.True(t, f.InFunnel(rl.Vector3{X: 60, Y: 18}))
	assert.False(t, f.InFunnel(rl.Vector3{X: 60, Y: 19}), "towards an edge it reaches only the apothem")
	assert.False(t, f.InFunnel(rl.Vector3{X: 30}))
}

func TestHorizontalDistance(t *testing.T) {
	f := New(DefaultConfig())
	assert.InDelta(t, 100, f.HorizontalDistance(rl.Vector3{X: 0, Y: 80, Z: 999}), 1e-4)
}

func TestSurfaceBounds(t *testing.T) {
	f := New(DefaultConfig())
	compound, ok := f.Surface().(physics.Compound)
	require.True(t, ok)

	b, ok := compound.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -123.1, b.Min.X, 1e-3)
	assert.InDelta(t, 83.5, b.Max.X, 1e-3)
	assert.InDelta(t, -100, b.Min.Y, 1e-3)
	assert.InDelta(t, 74, b.Max.Z, 1e-3)
}

func TestAddVisuals(t *testing.T) {
	f := New(DefaultConfig())
	scene := engine.NewScene("field")

	handles := f.AddVisuals(scene)
	require.Len(t, handles, 3)
	assert.Len(t, scene.FindByTag(Tag), 3)

	base := scene.FindByUID(handles[0])
	require.NotNil(t, base)
	assert.Equal(t, engine.ShapeBox, base.Shape.Kind)
	assert.Equal(t, f.Blocks()[0].Size(), base.Shape.Size)

	funnel := scene.FindByUID(handles[1])
	require.NotNil(t, funnel)
	assert.Equal(t, "HubFunnel", funnel.Name)
	assert.Equal(t, engine.ShapeTriangles, funnel.Shape.Kind)
	assert.Len(t, funnel.Shape.Triangles, 12)

	wall := scene.FindByUID(handles[2])
	require.NotNil(t, wall)
	assert.InDelta(t, -122.6, wall.Transform.Position.X, 1e-3)
}
