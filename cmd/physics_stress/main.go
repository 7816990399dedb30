// Stress test for the projectile update loop against the full field surface
package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/pflag"

	"turretsim/internal/field"
	"turretsim/internal/logging"
	"turretsim/internal/physics"
	"turretsim/internal/projectile"
)

var errNoFrames = errors.New("frames must be at least 1")

func checkFrames(frames int) error {
	if frames < 1 {
		return fmt.Errorf("%w, got %d", errNoFrames, frames)
	}
	return nil
}

func main() {
	frames := pflag.Int("frames", 240, "frames timed per count")
	dragMode := pflag.String("drag", "none", "drag mode: none, drag, drag_calc")
	logLevel := pflag.String("log-level", "warn", "log level")
	pflag.Parse()

	logger := logging.New(*logLevel, os.Stderr)
	if err := checkFrames(*frames); err != nil {
		logger.Fatal().Err(err).Msg("bad frame count")
	}

	mode, err := physics.ParseMode(*dragMode)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad drag mode")
	}

	f := field.New(field.DefaultConfig())
	fmt.Printf("Surface: %d blocks + %d funnel triangles | drag %s | %d frames\n\n",
		len(f.Blocks()), f.Funnel().TriangleCount(), mode, *frames)

	// Test various object counts
	testCounts := []int{10, 100, 500, 1000, 2000, 5000}

	for _, count := range testCounts {
		if err := testUpdate(f, mode, count, *frames); err != nil {
			logger.Fatal().Err(err).Int("count", count).Msg("stress run failed")
		}
	}
}

func testUpdate(f *field.Field, mode physics.Mode, count, frames int) error {
	if err := checkFrames(frames); err != nil {
		return err
	}
	drag := physics.DefaultDragConfig()
	drag.Mode = mode

	m, err := projectile.NewManager(projectile.WithSurface(f.Surface()), projectile.WithDrag(drag))
	if err != nil {
		return err
	}

	retired := 0
	m.OnRetire.AddListener(func(projectile.Retirement) { retired++ })

	// Consistent results
	rng := rand.New(rand.NewPCG(42, uint64(count)))

	// Launch from a ring around the hub so every ball sees the structure
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		radius := 100 + rng.Float64()*150
		pos := rl.Vector3{
			X: 60 + float32(radius*math.Cos(angle)),
			Y: float32(radius * math.Sin(angle)),
			Z: 20 + rng.Float32()*20,
		}
		toHub := rl.Vector3Normalize(rl.Vector3{X: 60 - pos.X, Y: -pos.Y})
		speed := 200 + rng.Float32()*300
		elevation := 0.3 + rng.Float64()*0.9
		vel := rl.Vector3{
			X: toHub.X * speed * float32(math.Cos(elevation)),
			Y: toHub.Y * speed * float32(math.Cos(elevation)),
			Z: speed * float32(math.Sin(elevation)),
		}
		if _, err := m.Spawn(pos, vel, 5.91); err != nil {
			return err
		}
	}

	const dt = float32(1.0 / 120)

	// Warm up
	m.Update(dt)

	start := time.Now()
	for i := 0; i < frames; i++ {
		m.Update(dt)
	}
	elapsed := time.Since(start)
	perFrame := elapsed / time.Duration(frames)

	fmt.Printf("%5d balls: %10v/frame | %5d live | %5d retired\n",
		count, perFrame.Round(time.Microsecond), m.Len(), retired)
	return nil
}
