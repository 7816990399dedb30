package sim

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"turretsim/internal/aim"
	"turretsim/internal/config"
	"turretsim/internal/engine"
	"turretsim/internal/field"
	"turretsim/internal/projectile"
	"turretsim/internal/turret"
)

// Input is one frame of operator commands.
type Input struct {
	Drive turret.DriveInput
	// Manual turret slew in [-1, 1]; auto-aim overwrites whatever it controls.
	TurretYaw   float32
	TurretPitch float32
}

// Score is published once per projectile that drops into the funnel.
type Score struct {
	ID       projectile.ID
	Position rl.Vector3 // where the target plane was crossed
	Time     float64    // simulation seconds
}

// Status is a snapshot for display.
type Status struct {
	Distance float32 // floor distance from turret to hub centre
	Solution aim.Solution
	Solved   bool
	Live     int
	Scored   int
	Time     float64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger shared with the projectile manager.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulation) {
		s.logger = l
	}
}

// WithMeterProvider records metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Simulation) {
		s.meterProvider = mp
	}
}

// WithRandSource sets the shooting-error source.
func WithRandSource(src turret.RandSource) Option {
	return func(s *Simulation) {
		s.rand = src
	}
}

// WithField replaces the default field.
func WithField(f *field.Field) Option {
	return func(s *Simulation) {
		s.Field = f
	}
}

// WithRenderer publishes the field and projectiles to r.
func WithRenderer(r engine.Renderer) Option {
	return func(s *Simulation) {
		s.renderer = r
	}
}

// Simulation runs one robot shooting at one field.
type Simulation struct {
	Controller  *turret.Controller
	Field       *field.Field
	Projectiles *projectile.Manager

	AimMode     aim.Mode
	Fuel        config.FuelSettings
	FixedStep   float32
	MaxSubSteps int

	OnScore engine.EventWithArg[Score]

	logger        zerolog.Logger
	meterProvider metric.MeterProvider
	rand          turret.RandSource
	scoredCounter metric.Int64Counter

	renderer engine.Renderer
	visuals  *projectile.Visuals

	initialFuel config.FuelSettings

	accumulator float32
	time        float64
	solution    aim.Solution
	solved      bool
	scored      map[projectile.ID]bool
	scoredTotal int
	prev        map[projectile.ID]rl.Vector3
}

// New builds a simulation from validated settings.
func New(settings config.Settings, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		AimMode:     settings.AimMode(),
		Fuel:        settings.Fuel,
		initialFuel: settings.Fuel,
		FixedStep:   settings.Sim.FixedStep,
		MaxSubSteps: settings.Sim.MaxSubSteps,
		logger:      zerolog.Nop(),
		scored:      make(map[projectile.ID]bool),
		prev:        make(map[projectile.ID]rl.Vector3),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.Field == nil {
		s.Field = field.New(field.DefaultConfig())
	}
	s.Controller = turret.NewController(settings.RobotConfig(), settings.TurretConfig(), s.rand)

	var err error
	s.Projectiles, err = projectile.NewManager(
		projectile.WithLogger(s.logger),
		projectile.WithMeterProvider(s.meterProvider),
		projectile.WithSurface(s.Field.Surface()),
		projectile.WithDrag(settings.DragConfig()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating projectile manager: %w", err)
	}
	s.Projectiles.OnRetire.AddListener(func(r projectile.Retirement) {
		delete(s.scored, r.Projectile.ID)
	})

	s.scoredCounter, err = meter(s.meterProvider).Int64Counter(
		"shots.scored",
		metric.WithDescription("Projectiles that dropped into the funnel"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scored counter: %w", err)
	}

	if s.renderer != nil {
		s.Field.AddVisuals(s.renderer)
		s.visuals = projectile.NewVisuals(s.Projectiles, s.renderer)
	}

	return s, nil
}

// Step advances by a frame delta, split into FixedStep ticks. At most
// MaxSubSteps run; time beyond that is dropped. It returns the tick count.
func (s *Simulation) Step(dt float32, in Input) int {
	if !(dt > 0) || !(s.FixedStep > 0) {
		return 0
	}

	s.accumulator += dt
	steps := 0
	for s.accumulator >= s.FixedStep && steps < s.MaxSubSteps {
		s.Tick(s.FixedStep, in)
		s.accumulator -= s.FixedStep
		steps++
	}
	if s.accumulator >= s.FixedStep {
		s.logger.Debug().Float32("dropped", s.accumulator).Msg("frame too long, dropping time")
		s.accumulator = 0
	}
	return steps
}

// Tick runs exactly one frame of dt seconds: drive, manual slew, auto-aim,
// projectile update, then scoring.
func (s *Simulation) Tick(dt float32, in Input) {
	if !(dt > 0) {
		return
	}

	s.Controller.Robot.Drive(in.Drive, dt)
	s.Controller.Slew(in.TurretYaw, in.TurretPitch, dt)
	s.autoAim()

	target := s.Field.Target()
	clear(s.prev)
	for _, p := range s.Projectiles.Projectiles() {
		s.prev[p.ID] = p.Position
	}

	s.Projectiles.Update(dt)
	s.time += float64(dt)

	for _, p := range s.Projectiles.Projectiles() {
		prev, ok := s.prev[p.ID]
		if !ok || s.scored[p.ID] {
			continue
		}
		if prev.Z < target.Z || p.Position.Z >= target.Z {
			continue
		}
		// Interpolate to where the target plane was crossed
		t := (prev.Z - target.Z) / (prev.Z - p.Position.Z)
		crossing := rl.Vector3Lerp(prev, p.Position, t)
		if !s.Field.InFunnel(crossing) {
			continue
		}
		s.score(p.ID, crossing)
	}

	s.syncVisuals()
}

func (s *Simulation) autoAim() {
	c := s.Controller
	in := aim.Input{
		Turret:       c.TurretPosition(),
		Muzzle:       c.MuzzlePosition(),
		Target:       s.Field.Target(),
		RobotYaw:     c.Robot.Yaw,
		ExitVelocity: s.Fuel.ExitVelocity,
		Pitch:        c.Turret.Pitch,
	}

	sol, ok := aim.Apply(s.AimMode, in, c)
	s.solution, s.solved = sol, ok
	if !ok {
		return
	}
	if s.AimMode == aim.ModeVelocity && !sol.Fallback {
		s.Fuel.ExitVelocity = sol.ExitVelocity
	}
}

func (s *Simulation) score(id projectile.ID, at rl.Vector3) {
	s.scored[id] = true
	s.scoredTotal++
	s.scoredCounter.Add(context.Background(), 1)

	s.logger.Info().
		Uint64("id", uint64(id)).
		Float64("t", s.time).
		Int("total", s.scoredTotal).
		Msg("shot scored")

	s.OnScore.Invoke(Score{ID: id, Position: at, Time: s.time})
}

// Fire launches one ball from the current muzzle state.
func (s *Simulation) Fire() (projectile.ID, error) {
	muzzle, err := s.Controller.MuzzleState(s.Fuel.ExitVelocity, s.Fuel.ShootingError)
	if err != nil {
		return 0, fmt.Errorf("fire: %w", err)
	}
	id, err := s.Projectiles.Spawn(muzzle.Position, muzzle.Velocity, s.Fuel.BallDiameter)
	if err != nil {
		return 0, fmt.Errorf("fire: %w", err)
	}

	s.logger.Info().
		Uint64("id", uint64(id)).
		Float32("yaw", s.Controller.Turret.Yaw).
		Float32("pitch", s.Controller.Turret.Pitch).
		Float32("exitVelocity", s.Fuel.ExitVelocity).
		Msg("fire")

	return id, nil
}

// Reset clears every projectile, returns the robot to the origin and restores
// the configured fuel, including any exit velocity velocity-mode aiming wrote.
// The clock, the score count and the last firing solution start over. Aim and
// drag modes are kept.
func (s *Simulation) Reset() {
	s.Projectiles.Clear()
	s.Controller.Reset()
	clear(s.scored)
	clear(s.prev)
	s.Fuel = s.initialFuel
	s.accumulator = 0
	s.time = 0
	s.scoredTotal = 0
	s.solution, s.solved = aim.Solution{}, false
}

// Status reports the current aim and counters.
func (s *Simulation) Status() Status {
	return Status{
		Distance: s.Field.HorizontalDistance(s.Controller.TurretPosition()),
		Solution: s.solution,
		Solved:   s.solved,
		Live:     s.Projectiles.Len(),
		Scored:   s.scoredTotal,
		Time:     s.time,
	}
}

// Close releases every visual published by the simulation.
func (s *Simulation) Close() {
	if s.renderer == nil {
		return
	}
	s.visuals.Close()
}

func (s *Simulation) syncVisuals() {
	if s.renderer == nil {
		return
	}
	s.visuals.Sync()
}
