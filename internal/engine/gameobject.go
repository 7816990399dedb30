package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Handle identifies a GameObject for its whole life in a scene.
type Handle uint64

var nextUID atomic.Uint64

// ShapeKind selects how a visual is drawn.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapeTriangles
)

// Shape describes the geometry of a visual. Size holds full extents for boxes
// and Radius is used for spheres.
type Shape struct {
	Kind      ShapeKind
	Radius    float32
	Size      rl.Vector3
	Triangles [][3]rl.Vector3
	Color     rl.Color
}

// Transform places a shape. Scale multiplies the shape's own extents.
type Transform struct {
	Position rl.Vector3
	Scale    rl.Vector3
}

type GameObject struct {
	UID       Handle
	Name      string
	Tags      []string
	Transform Transform
	Shape     Shape
	Active    bool
}

func NewGameObject(name string, tags ...string) *GameObject {
	return &GameObject{
		UID:    Handle(nextUID.Add(1)),
		Name:   name,
		Tags:   tags,
		Active: true,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
	}
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
