package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/engine"
	"turretsim/internal/turret"
)

var (
	floorColor   = rl.NewColor(40, 40, 52, 255)
	gridColor    = rl.NewColor(60, 60, 78, 255)
	chassisColor = rl.NewColor(70, 110, 200, 255)
	turretColor  = rl.NewColor(200, 200, 208, 255)
	targetColor  = rl.NewColor(108, 99, 255, 255)
)

// drawFloor draws the z = 0 plane with a grid every spacing inches.
func drawFloor(halfSize, spacing float32) {
	a := rl.Vector3{X: -halfSize, Y: -halfSize}
	b := rl.Vector3{X: halfSize, Y: -halfSize}
	c := rl.Vector3{X: halfSize, Y: halfSize}
	d := rl.Vector3{X: -halfSize, Y: halfSize}
	rl.DrawTriangle3D(a, b, c, floorColor)
	rl.DrawTriangle3D(a, c, d, floorColor)

	for v := -halfSize; v <= halfSize; v += spacing {
		rl.DrawLine3D(rl.Vector3{X: v, Y: -halfSize, Z: 0.05}, rl.Vector3{X: v, Y: halfSize, Z: 0.05}, gridColor)
		rl.DrawLine3D(rl.Vector3{X: -halfSize, Y: v, Z: 0.05}, rl.Vector3{X: halfSize, Y: v, Z: 0.05}, gridColor)
	}
}

// drawScene draws every active GameObject by its shape.
func drawScene(objects []*engine.GameObject) {
	for _, g := range objects {
		if !g.Active {
			continue
		}
		pos := g.Transform.Position
		scale := g.Transform.Scale
		shape := g.Shape

		switch shape.Kind {
		case engine.ShapeSphere:
			rl.DrawSphere(pos, shape.Radius*scale.X, shape.Color)
		case engine.ShapeBox:
			size := rl.Vector3Multiply(shape.Size, scale)
			rl.DrawCube(pos, size.X, size.Y, size.Z, shape.Color)
			rl.DrawCubeWires(pos, size.X, size.Y, size.Z, rl.Black)
		case engine.ShapeTriangles:
			for _, t := range shape.Triangles {
				v0 := rl.Vector3Add(rl.Vector3Multiply(t[0], scale), pos)
				v1 := rl.Vector3Add(rl.Vector3Multiply(t[1], scale), pos)
				v2 := rl.Vector3Add(rl.Vector3Multiply(t[2], scale), pos)
				// Both windings so open meshes show from inside too
				rl.DrawTriangle3D(v0, v1, v2, shape.Color)
				rl.DrawTriangle3D(v0, v2, v1, shape.Color)
			}
		}
	}
}

// drawRobot draws the chassis footprint, the turret pivot and the barrel.
func drawRobot(c *turret.Controller) {
	r := c.Robot
	hx, hy := r.Depth/2, r.Width/2

	top := [4]rl.Vector3{
		r.ToWorld(rl.Vector3{X: hx, Y: hy}),
		r.ToWorld(rl.Vector3{X: -hx, Y: hy}),
		r.ToWorld(rl.Vector3{X: -hx, Y: -hy}),
		r.ToWorld(rl.Vector3{X: hx, Y: -hy}),
	}
	var bottom [4]rl.Vector3
	for i, p := range top {
		bottom[i] = rl.Vector3{X: p.X, Y: p.Y}
	}

	rl.DrawTriangle3D(top[0], top[1], top[2], chassisColor)
	rl.DrawTriangle3D(top[0], top[2], top[3], chassisColor)
	for i := range top {
		j := (i + 1) % len(top)
		rl.DrawLine3D(top[i], top[j], rl.White)
		rl.DrawLine3D(bottom[i], bottom[j], rl.White)
		rl.DrawLine3D(top[i], bottom[i], rl.White)
	}

	// Heading marker on the front edge
	front := r.ToWorld(rl.Vector3{X: hx, Z: 0.1})
	rl.DrawSphere(front, 1.5, rl.Red)

	pivot := c.TurretPosition()
	rl.DrawSphere(pivot, 3, turretColor)
	rl.DrawCylinderEx(pivot, c.MuzzlePosition(), 1.2, 1.2, 8, turretColor)
}

func drawTarget(p rl.Vector3) {
	rl.DrawSphereWires(p, 2, 8, 8, targetColor)
}
