package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad splits a planar quadrilateral into two triangles
func quad(a, b, c, d rl.Vector3) []Triangle {
	return []Triangle{NewTriangle(a, b, c), NewTriangle(a, c, d)}
}

func floorQuad(z, half float32) []Triangle {
	return quad(
		rl.Vector3{X: -half, Y: -half, Z: z},
		rl.Vector3{X: half, Y: -half, Z: z},
		rl.Vector3{X: half, Y: half, Z: z},
		rl.Vector3{X: -half, Y: half, Z: z},
	)
}

func TestNewTriangleNormal(t *testing.T) {
	tri := NewTriangle(rl.Vector3{}, rl.Vector3{X: 1}, rl.Vector3{Y: 1})
	assert.InDelta(t, 1, tri.Normal.Z, 1e-6)

	degenerate := NewTriangle(rl.Vector3{}, rl.Vector3{X: 1}, rl.Vector3{X: 2})
	assert.Equal(t, rl.Vector3{}, degenerate.Normal)
}

func TestTriangleMeshRaycastHit(t *testing.T) {
	mesh := NewTriangleMesh("floor", floorQuad(5, 10))

	hit, ok := mesh.Raycast(rl.Vector3{X: 1, Y: 2, Z: 10}, rl.Vector3{Z: -1}, 20)

	require.True(t, ok)
	assert.InDelta(t, 5, hit.Distance, 1e-5)
	assert.InDelta(t, 5, hit.Point.Z, 1e-5)
	assert.InDelta(t, 1, hit.Point.X, 1e-5)
	assert.InDelta(t, 1, abs(hit.Normal.Z), 1e-6)
}

func TestTriangleMeshRaycastRespectsRange(t *testing.T) {
	mesh := NewTriangleMesh("floor", floorQuad(5, 10))

	_, ok := mesh.Raycast(rl.Vector3{Z: 10}, rl.Vector3{Z: -1}, 3)
	assert.False(t, ok, "plane is beyond maxDistance")

	_, ok = mesh.Raycast(rl.Vector3{Z: 10}, rl.Vector3{Z: 1}, 100)
	assert.False(t, ok, "plane is behind the ray")

	_, ok = mesh.Raycast(rl.Vector3{Z: 10}, rl.Vector3{X: 1}, 100)
	assert.False(t, ok, "ray parallel to plane")

	_, ok = mesh.Raycast(rl.Vector3{X: 30, Z: 10}, rl.Vector3{Z: -1}, 100)
	assert.False(t, ok, "ray outside the quad")
}

func TestTriangleMeshEmpty(t *testing.T) {
	mesh := NewTriangleMesh("empty", nil)

	_, ok := mesh.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	assert.False(t, ok)
	assert.Equal(t, 0, mesh.TriangleCount())
	assert.Equal(t, AABB{}, mesh.Bounds())
}

func TestTriangleMeshBVHMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// A stepped terrain of small tiles so the BVH has real depth
	var tris []Triangle
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			x := float32(i*4 - 24)
			y := float32(j*4 - 24)
			z := float32(rng.Intn(6))
			tris = append(tris, quad(
				rl.Vector3{X: x, Y: y, Z: z},
				rl.Vector3{X: x + 4, Y: y, Z: z},
				rl.Vector3{X: x + 4, Y: y + 4, Z: z},
				rl.Vector3{X: x, Y: y + 4, Z: z},
			)...)
		}
	}
	mesh := NewTriangleMesh("terrain", tris)
	require.Equal(t, len(tris), mesh.TriangleCount())

	for n := 0; n < 200; n++ {
		origin := rl.Vector3{
			X: rng.Float32()*60 - 30,
			Y: rng.Float32()*60 - 30,
			Z: 10 + rng.Float32()*10,
		}
		dir := rl.Vector3Normalize(rl.Vector3{
			X: rng.Float32()*2 - 1,
			Y: rng.Float32()*2 - 1,
			Z: -0.2 - rng.Float32(),
		})

		want := float32(100)
		wantHit := false
		for i := range tris {
			if d, ok := raycastTriangle(origin, dir, &tris[i], want); ok {
				want = d
				wantHit = true
			}
		}

		hit, ok := mesh.Raycast(origin, dir, 100)
		require.Equal(t, wantHit, ok, "ray %d", n)
		if ok {
			assert.InDelta(t, want, hit.Distance, 1e-4, "ray %d", n)
		}
	}
}

func TestCompoundReturnsNearest(t *testing.T) {
	near := NewTriangleMesh("near", floorQuad(8, 10))
	far := NewBox(rl.Vector3{Z: 0}, rl.Vector3{X: 20, Y: 20, Z: 2})
	c := Compound{far, nil, near}

	hit, ok := c.Raycast(rl.Vector3{Z: 20}, rl.Vector3{Z: -1}, 50)

	require.True(t, ok)
	assert.InDelta(t, 12, hit.Distance, 1e-5)

	bounds, ok := c.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -1, bounds.Min.Z, 1e-6)
	assert.InDelta(t, 8, bounds.Max.Z, 1e-6)
}

func TestBoxRaycastFromInside(t *testing.T) {
	box := NewBox(rl.Vector3{}, rl.Vector3{X: 4, Y: 4, Z: 4})

	hit, ok := box.Raycast(rl.Vector3{}, rl.Vector3{Y: 1}, 10)

	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, 1e-6)
	assert.Equal(t, rl.Vector3{Y: 1}, hit.Normal)
}

func TestBoxRaycastFromOutside(t *testing.T) {
	box := NewBox(rl.Vector3{X: 10, Z: 5}, rl.Vector3{X: 2, Y: 2, Z: 10})

	hit, ok := box.Raycast(rl.Vector3{Z: 5}, rl.Vector3{X: 2}, 20)
	require.True(t, ok)
	assert.InDelta(t, 9, hit.Distance, 1e-6)
	assert.Equal(t, rl.Vector3{X: -1}, hit.Normal)

	_, ok = box.Raycast(rl.Vector3{Z: 5}, rl.Vector3{X: -1}, 20)
	assert.False(t, ok, "box behind the ray")

	_, ok = box.Raycast(rl.Vector3{Z: 5}, rl.Vector3{X: 1}, 8)
	assert.False(t, ok, "box beyond maxDistance")

	assert.Equal(t, rl.Vector3{X: 10, Z: 5}, box.Center())
	assert.Equal(t, rl.Vector3{X: 2, Y: 2, Z: 10}, box.Size())
}

func TestAABBHelpers(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{X: 1}, rl.Vector3{X: 2, Y: 2, Z: 2})
	b := NewAABBFromCenter(rl.Vector3{X: 4}, rl.Vector3{X: 2, Y: 2, Z: 2})

	assert.True(t, a.Contains(rl.Vector3{X: 1.5}))
	assert.True(t, a.Contains(rl.Vector3{X: 2, Y: 1, Z: -1}), "faces are inside")
	assert.False(t, a.Contains(b.Center()))

	u := a.Union(b)
	assert.Equal(t, rl.Vector3{X: 0, Y: -1, Z: -1}, u.Min)
	assert.Equal(t, rl.Vector3{X: 5, Y: 1, Z: 1}, u.Max)
	assert.Equal(t, rl.Vector3{X: 2.5}, u.Center())
}
