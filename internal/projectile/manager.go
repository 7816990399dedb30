package projectile

import (
	"context"
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"turretsim/internal/engine"
	"turretsim/internal/physics"
)

var (
	// ErrInvalidDiameter rejects spawns whose diameter is not a positive number.
	ErrInvalidDiameter = errors.New("projectile diameter must be positive")
	// ErrInvalidState rejects spawns with a non-finite position or velocity.
	ErrInvalidState = errors.New("projectile state must be finite")
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for spawn and retirement records.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithMeterProvider records metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(m *Manager) {
		m.meterProvider = mp
	}
}

// WithSurface sets the static geometry projectiles collide with.
func WithSurface(s physics.Surface) Option {
	return func(m *Manager) {
		m.surface = s
	}
}

// WithDrag sets the initial drag configuration.
func WithDrag(d physics.DragConfig) Option {
	return func(m *Manager) {
		m.drag = d
	}
}

// Manager owns the live projectile set and runs the per-frame pipeline.
// It is not safe for concurrent use.
type Manager struct {
	live    []Projectile
	nextID  ID
	surface physics.Surface
	drag    physics.DragConfig

	OnSpawn  engine.EventWithArg[Projectile]
	OnRetire engine.EventWithArg[Retirement]

	logger        zerolog.Logger
	meterProvider metric.MeterProvider
	spawned       metric.Int64Counter
	retired       metric.Int64Counter
	liveCount     metric.Int64UpDownCounter

	pending []Retirement
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		drag:   physics.DefaultDragConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	meter := meter(m.meterProvider)

	var err error

	m.spawned, err = meter.Int64Counter(
		"projectiles.spawned",
		metric.WithDescription("Total projectiles spawned"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating spawned counter: %w", err)
	}

	m.retired, err = meter.Int64Counter(
		"projectiles.retired",
		metric.WithDescription("Total projectiles retired, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating retired counter: %w", err)
	}

	m.liveCount, err = meter.Int64UpDownCounter(
		"projectiles.live",
		metric.WithDescription("Projectiles currently simulated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating live counter: %w", err)
	}

	return m, nil
}

// Spawn creates a projectile using the manager's drag mode.
func (m *Manager) Spawn(position, velocity rl.Vector3, diameter float32) (ID, error) {
	return m.SpawnWithMode(position, velocity, diameter, m.drag.Mode)
}

// SpawnWithMode creates a projectile integrated with mode instead of the
// manager's drag mode.
func (m *Manager) SpawnWithMode(position, velocity rl.Vector3, diameter float32, mode physics.Mode) (ID, error) {
	if !(diameter > 0) || math.IsInf(float64(diameter), 1) {
		return 0, fmt.Errorf("spawn with diameter %v: %w", diameter, ErrInvalidDiameter)
	}
	if !physics.IsFinite(position) || !physics.IsFinite(velocity) {
		return 0, fmt.Errorf("spawn at %v with velocity %v: %w", position, velocity, ErrInvalidState)
	}

	m.nextID++
	p := Projectile{
		ID:       m.nextID,
		Position: position,
		Velocity: velocity,
		Radius:   diameter / 2,
		Mode:     mode,
	}
	m.live = append(m.live, p)

	ctx := context.Background()
	m.spawned.Add(ctx, 1)
	m.liveCount.Add(ctx, 1)

	m.logger.Debug().
		Uint64("id", uint64(p.ID)).
		Str("mode", mode.String()).
		Float32("speed", p.Speed()).
		Msg("projectile spawned")

	m.OnSpawn.Invoke(p)
	return p.ID, nil
}

// Update advances every live projectile by dt seconds. Retirements are
// published after the pass so listeners never see the set mid-iteration.
func (m *Manager) Update(dt float32) {
	if !(dt > 0) || math.IsInf(float64(dt), 1) {
		return
	}

	// Reverse order so swap-and-pop only moves already-updated projectiles.
	for i := len(m.live) - 1; i >= 0; i-- {
		p := &m.live[i]

		p.Age += dt
		if p.Age >= MaxAge {
			m.removeAt(i, RetireAge)
			continue
		}

		drag := m.drag
		if p.Mode == physics.ModeDragCalc {
			drag = drag.ForRadius(p.Radius)
		}

		velocity, displacement := physics.Integrate(p.Velocity, dt, drag, p.Mode)
		contact := physics.ResolveCollision(p.Position, displacement, velocity, m.surface, p.Radius)
		ground := physics.ApplyGroundContact(contact.Position, contact.Velocity, p.Radius)

		p.Position = ground.Position
		p.Velocity = ground.Velocity

		if ground.ShouldRemove {
			m.removeAt(i, RetireGround)
		}
	}

	m.flush()
}

// Clear retires every live projectile.
func (m *Manager) Clear() {
	for i := len(m.live) - 1; i >= 0; i-- {
		m.removeAt(i, RetireCleared)
	}
	m.flush()
}

func (m *Manager) removeAt(i int, reason RetireReason) {
	m.pending = append(m.pending, Retirement{Projectile: m.live[i], Reason: reason})

	last := len(m.live) - 1
	m.live[i] = m.live[last]
	m.live = m.live[:last]
}

func (m *Manager) flush() {
	if len(m.pending) == 0 {
		return
	}

	pending := m.pending
	m.pending = nil

	ctx := context.Background()
	for _, r := range pending {
		m.retired.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", r.Reason.String())))
		m.liveCount.Add(ctx, -1)

		m.logger.Debug().
			Uint64("id", uint64(r.Projectile.ID)).
			Str("reason", r.Reason.String()).
			Float32("age", r.Projectile.Age).
			Msg("projectile retired")

		m.OnRetire.Invoke(r)
	}
}

// Len returns the number of live projectiles.
func (m *Manager) Len() int {
	return len(m.live)
}

// Projectiles returns a copy of the live set.
func (m *Manager) Projectiles() []Projectile {
	out := make([]Projectile, len(m.live))
	copy(out, m.live)
	return out
}

// Get returns the live projectile with the given ID.
func (m *Manager) Get(id ID) (Projectile, bool) {
	for _, p := range m.live {
		if p.ID == id {
			return p, true
		}
	}
	return Projectile{}, false
}

// Drag returns the current drag configuration.
func (m *Manager) Drag() physics.DragConfig {
	return m.drag
}

// SetDrag replaces the drag configuration. Live projectiles keep their mode
// but use the new coefficients from the next Update.
func (m *Manager) SetDrag(d physics.DragConfig) {
	m.drag = d
}

// Surface returns the collision geometry, nil when none is set.
func (m *Manager) Surface() physics.Surface {
	return m.surface
}

// SetSurface replaces the collision geometry. nil disables structure collisions.
func (m *Manager) SetSurface(s physics.Surface) {
	m.surface = s
}
