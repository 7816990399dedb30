package viewer

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"turretsim/internal/engine"
	"turretsim/internal/field"
	"turretsim/internal/projectile"
	"turretsim/internal/sim"
	"turretsim/internal/units"
)

const shootCooldown = 0.15

// Viewer owns the window and draws a Simulation that publishes to Scene.
type Viewer struct {
	Sim    *sim.Simulation
	Scene  *engine.Scene
	Camera *OrbitCamera
	Units  units.System

	DebugMode bool

	logger       zerolog.Logger
	lastShotTime float64

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(s *sim.Simulation, scene *engine.Scene, u units.System, logger zerolog.Logger) *Viewer {
	target := s.Field.Target()
	target.Z /= 2
	return &Viewer{
		Sim:    s,
		Scene:  scene,
		Camera: NewOrbitCamera(target),
		Units:  u,
		logger: logger,
	}
}

func (v *Viewer) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(1280, 720, "Turret Simulator")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	initRayguiStyle()

	v.logger.Info().Str("scene", v.Scene.Name).Msg("viewer started")
	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()
	}
	v.logger.Info().Int("scored", v.Sim.Status().Scored).Msg("viewer closed")
}

func (v *Viewer) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	v.Camera.Update()

	if rl.IsKeyPressed(rl.KeyF1) {
		v.DebugMode = !v.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.Sim.Reset()
	}
	if rl.IsKeyDown(rl.KeySpace) && rl.GetTime()-v.lastShotTime >= shootCooldown {
		v.fire()
	}

	v.Sim.Step(deltaTime, ReadInput(rl.IsKeyDown))

	v.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (v *Viewer) fire() {
	v.lastShotTime = rl.GetTime()
	if _, err := v.Sim.Fire(); err != nil {
		v.logger.Warn().Err(err).Msg("shot rejected")
	}
}

func (v *Viewer) Draw() {
	camera := v.Camera.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	drawFloor(240, 24)
	drawScene(v.Scene.GameObjects)
	drawRobot(v.Sim.Controller)
	drawTarget(v.Sim.Field.Target())
	rl.EndMode3D()
	v.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	v.DrawUI()
	rl.EndDrawing()
}

func (v *Viewer) DrawUI() {
	rl.DrawText("WASD drive, Q/E rotate, arrows aim, Space fire, R reset", 10, 10, 20, rl.LightGray)
	rl.DrawText("Right mouse to orbit, wheel to zoom, F1 debug", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if v.DebugMode {
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", v.updateMs), 10, 90, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", v.drawMs), 10, 110, 16, rl.Green)
		balls := len(v.Scene.FindByTag(projectile.Tag))
		structure := len(v.Scene.FindByTag(field.Tag))
		rl.DrawText(fmt.Sprintf("Balls: %d  Field: %d", balls, structure), 10, 130, 16, rl.Lime)
	}

	v.drawPanel()
}
