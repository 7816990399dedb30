package field

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/engine"
	"turretsim/internal/physics"
)

// Config describes the target structure. Lengths are inches, z is up.
type Config struct {
	HubCenter     rl.Vector2 // centre of the hub footprint
	BaseSize      float32    // side of the solid base cube
	FunnelRadius  float32    // hexagon circumradius
	FunnelHeight  float32
	WallDistance  float32 // from the hub's near face to the wall's near face
	WallThickness float32
	WallWidth     float32
	WallHeight    float32
}

// DefaultConfig is the 2026 hub: a 47 in cube topped by a 41.7 in hexagonal
// funnel, with the alliance wall 158.6 in behind the near face.
func DefaultConfig() Config {
	return Config{
		HubCenter:     rl.Vector2{X: 60},
		BaseSize:      47,
		FunnelRadius:  41.7 / 2,
		FunnelHeight:  27,
		WallDistance:  158.6,
		WallThickness: 1,
		WallWidth:     200,
		WallHeight:    47,
	}
}

// Tag marks every field structure visual.
const Tag = "field"

var (
	baseColor   = rl.NewColor(68, 68, 68, 255)
	funnelColor = rl.NewColor(255, 215, 0, 255)
	wallColor   = rl.NewColor(102, 102, 102, 255)
)

// Field is the immutable collision geometry plus the scoring target.
type Field struct {
	cfg Config

	base   *physics.Box
	funnel *physics.TriangleMesh
	wall   *physics.Box

	surface physics.Compound
}

// New builds the field geometry. The base and wall are solid boxes; the
// funnel is an open triangle mesh.
func New(cfg Config) *Field {
	f := &Field{cfg: cfg}

	f.base = physics.NewBox(f.baseCenter(), rl.Vector3{X: cfg.BaseSize, Y: cfg.BaseSize, Z: cfg.BaseSize})
	f.funnel = physics.NewTriangleMesh("HubFunnel", hexPrismTriangles(f.funnelAxis(), cfg.FunnelRadius, cfg.BaseSize, cfg.BaseSize+cfg.FunnelHeight))
	f.wall = physics.NewBox(f.wallCenter(), rl.Vector3{X: cfg.WallThickness, Y: cfg.WallWidth, Z: cfg.WallHeight})

	f.surface = physics.Compound{f.base, f.funnel, f.wall}
	return f
}

// Config returns the configuration the field was built from.
func (f *Field) Config() Config {
	return f.cfg
}

// Surface is the geometry projectiles collide with.
func (f *Field) Surface() physics.Surface {
	return f.surface
}

// Blocks returns the solid hub base and wall.
func (f *Field) Blocks() []*physics.Box {
	return []*physics.Box{f.base, f.wall}
}

// Funnel returns the open funnel mesh.
func (f *Field) Funnel() *physics.TriangleMesh {
	return f.funnel
}

// Target is the centre of the funnel mouth.
func (f *Field) Target() rl.Vector3 {
	return rl.Vector3{X: f.cfg.HubCenter.X, Y: f.cfg.HubCenter.Y, Z: f.cfg.BaseSize + f.cfg.FunnelHeight}
}

// HorizontalDistance is the floor distance from p to the hub centre.
func (f *Field) HorizontalDistance(p rl.Vector3) float32 {
	dx := float64(p.X - f.cfg.HubCenter.X)
	dy := float64(p.Y - f.cfg.HubCenter.Y)
	return float32(math.Hypot(dx, dy))
}

// InFunnel reports whether p lies inside the hexagonal funnel footprint,
// ignoring height.
func (f *Field) InFunnel(p rl.Vector3) bool {
	dx := p.X - f.cfg.HubCenter.X
	dy := p.Y - f.cfg.HubCenter.Y
	apothem := f.cfg.FunnelRadius * float32(math.Cos(math.Pi/6))

	// Edge normals sit between the vertices, at 30 + 60k degrees
	for k := 0; k < 6; k++ {
		a := math.Pi/6 + float64(k)*math.Pi/3
		if dx*float32(math.Cos(a))+dy*float32(math.Sin(a)) > apothem {
			return false
		}
	}
	return true
}

// AddVisuals publishes the structure to r, drawn from the collision
// geometry itself, and returns the handles.
func (f *Field) AddVisuals(r engine.Renderer) []engine.Handle {
	return []engine.Handle{
		r.AddVisual("HubBase", boxShape(f.base, baseColor), f.base.Center(), Tag),
		r.AddVisual("HubFunnel", engine.Shape{
			Kind:      engine.ShapeTriangles,
			Triangles: meshTriangles(f.funnel),
			Color:     funnelColor,
		}, rl.Vector3{}, Tag),
		r.AddVisual("Wall", boxShape(f.wall, wallColor), f.wall.Center(), Tag),
	}
}

func boxShape(b *physics.Box, color rl.Color) engine.Shape {
	return engine.Shape{Kind: engine.ShapeBox, Size: b.Size(), Color: color}
}

func (f *Field) baseCenter() rl.Vector3 {
	return rl.Vector3{X: f.cfg.HubCenter.X, Y: f.cfg.HubCenter.Y, Z: f.cfg.BaseSize / 2}
}

func (f *Field) funnelAxis() rl.Vector2 {
	return f.cfg.HubCenter
}

// wallCenter puts the wall's hub-facing side WallDistance from the hub's near face.
func (f *Field) wallCenter() rl.Vector3 {
	nearFace := f.cfg.HubCenter.X - f.cfg.BaseSize/2
	wallFace := nearFace - f.cfg.WallDistance
	return rl.Vector3{
		X: wallFace - f.cfg.WallThickness/2,
		Y: f.cfg.HubCenter.Y,
		Z: f.cfg.WallHeight / 2,
	}
}

func meshTriangles(m *physics.TriangleMesh) [][3]rl.Vector3 {
	tris := m.Triangles()
	out := make([][3]rl.Vector3, len(tris))
	for i, t := range tris {
		out[i] = [3]rl.Vector3{t.V0, t.V1, t.V2}
	}
	return out
}
