package projectile

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/engine"
)

// BallColor is the default projectile colour.
var BallColor = rl.NewColor(255, 204, 0, 255)

// Tag marks every projectile visual.
const Tag = "projectile"

// Visuals mirrors a Manager's live set into a Renderer. It only listens to the
// manager's events and never writes simulation state.
type Visuals struct {
	renderer engine.Renderer
	handles  map[ID]engine.Handle
	Color    rl.Color

	manager  *Manager
	spawnID  engine.ListenerID
	retireID engine.ListenerID
}

// NewVisuals subscribes to m and creates a visual for every projectile
// spawned from now on.
func NewVisuals(m *Manager, r engine.Renderer) *Visuals {
	v := &Visuals{
		renderer: r,
		handles:  make(map[ID]engine.Handle),
		Color:    BallColor,
		manager:  m,
	}
	v.spawnID = m.OnSpawn.AddListener(v.add)
	v.retireID = m.OnRetire.AddListener(v.remove)
	return v
}

func (v *Visuals) add(p Projectile) {
	shape := engine.Shape{Kind: engine.ShapeSphere, Radius: p.Radius, Color: v.Color}
	v.handles[p.ID] = v.renderer.AddVisual(fmt.Sprintf("Ball_%d", p.ID), shape, p.Position, Tag)
}

func (v *Visuals) remove(r Retirement) {
	h, ok := v.handles[r.Projectile.ID]
	if !ok {
		return
	}
	v.renderer.RemoveVisual(h)
	delete(v.handles, r.Projectile.ID)
}

// Sync moves every visual to its projectile's current position.
func (v *Visuals) Sync() {
	for _, p := range v.manager.live {
		if h, ok := v.handles[p.ID]; ok {
			v.renderer.MoveVisual(h, p.Position)
		}
	}
}

// Handle returns the visual handle for a live projectile.
func (v *Visuals) Handle(id ID) (engine.Handle, bool) {
	h, ok := v.handles[id]
	return h, ok
}

// Len returns the number of visuals currently held.
func (v *Visuals) Len() int {
	return len(v.handles)
}

// Close unsubscribes from the manager and releases every visual.
func (v *Visuals) Close() {
	v.manager.OnSpawn.RemoveListener(v.spawnID)
	v.manager.OnRetire.RemoveListener(v.retireID)
	for id, h := range v.handles {
		v.renderer.RemoveVisual(h)
		delete(v.handles, id)
	}
}
