package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Renderer is the presentation surface the simulation publishes visuals to.
// Implementations never feed state back into the simulation.
type Renderer interface {
	AddVisual(name string, shape Shape, position rl.Vector3, tags ...string) Handle
	MoveVisual(h Handle, position rl.Vector3)
	RemoveVisual(h Handle)
}

type Scene struct {
	Name        string
	GameObjects []*GameObject
	byUID       map[Handle]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		byUID:       make(map[Handle]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	s.GameObjects = append(s.GameObjects, g)
	s.byUID[g.UID] = g
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.byUID, g.UID)
			return
		}
	}
}

// FindByUID is a map lookup, unlike the tag search.
func (s *Scene) FindByUID(uid Handle) *GameObject {
	return s.byUID[uid]
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// AddVisual implements Renderer
func (s *Scene) AddVisual(name string, shape Shape, position rl.Vector3, tags ...string) Handle {
	g := NewGameObject(name, tags...)
	g.Shape = shape
	g.Transform.Position = position
	s.AddGameObject(g)
	return g.UID
}

// MoveVisual implements Renderer
func (s *Scene) MoveVisual(h Handle, position rl.Vector3) {
	if g := s.FindByUID(h); g != nil {
		g.Transform.Position = position
	}
}

// RemoveVisual implements Renderer
func (s *Scene) RemoveVisual(h Handle) {
	if g := s.FindByUID(h); g != nil {
		s.RemoveGameObject(g)
	}
}
