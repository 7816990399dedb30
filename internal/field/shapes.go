package field

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/physics"
)

// hexPrismTriangles returns the six side walls of an open hexagonal prism
// with a vertex on the +x axis. There are no caps.
func hexPrismTriangles(axis rl.Vector2, radius, zMin, zMax float32) []physics.Triangle {
	var ring [6]rl.Vector2
	for i := range ring {
		a := float64(i) * math.Pi / 3
		ring[i] = rl.Vector2{
			X: axis.X + radius*float32(math.Cos(a)),
			Y: axis.Y + radius*float32(math.Sin(a)),
		}
	}

	tris := make([]physics.Triangle, 0, 12)
	for i := range ring {
		p, q := ring[i], ring[(i+1)%len(ring)]
		b0 := rl.Vector3{X: p.X, Y: p.Y, Z: zMin}
		b1 := rl.Vector3{X: q.X, Y: q.Y, Z: zMin}
		t0 := rl.Vector3{X: p.X, Y: p.Y, Z: zMax}
		t1 := rl.Vector3{X: q.X, Y: q.Y, Z: zMax}
		tris = append(tris,
			physics.NewTriangle(b0, b1, t1),
			physics.NewTriangle(b0, t1, t0),
		)
	}
	return tris
}
