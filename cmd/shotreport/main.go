// Headless single shot: aims from a robot pose, fires once and prints the
// trajectory until the ball retires.
package main

import (
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"turretsim/internal/config"
	"turretsim/internal/logging"
	"turretsim/internal/report"
	"turretsim/internal/sim"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "shotreport: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("shotreport", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	x := fs.Float32("x", 0, "robot x position (in)")
	y := fs.Float32("y", 0, "robot y position (in)")
	yaw := fs.Float32("yaw", 0, "robot heading (deg)")
	exitVelocity := fs.Float32("exit-velocity", 0, "exit velocity (in/s), 0 keeps the configured value")
	dragMode := fs.String("drag", "", "drag mode: none, drag, drag_calc")
	dt := fs.Float32("dt", 0, "tick length (s), 0 keeps the configured value")
	every := fs.Int("every", 12, "print every nth tick")
	plotPath := fs.String("plot", "", "write a side-view plot to this file (.png, .svg, .pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	configDir, _ := fs.GetString("config-dir")
	if err := config.Load(configDir); err != nil {
		return err
	}
	if err := config.BindFlags(fs); err != nil {
		return err
	}
	if *exitVelocity != 0 {
		viper.Set("fuel.exitVelocity", *exitVelocity)
	}
	if *dragMode != "" {
		viper.Set("drag.mode", *dragMode)
	}
	if *dt != 0 {
		viper.Set("sim.fixedStep", *dt)
	}

	settings, err := config.Get()
	if err != nil {
		return err
	}
	logger := logging.New(settings.LogLevel, os.Stderr)

	s, err := sim.New(settings, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	s.Controller.Robot.Position = rl.Vector2{X: *x, Y: *y}
	s.Controller.Robot.Yaw = *yaw * rl.Deg2rad

	logger.Info().
		Float32("x", *x).
		Float32("y", *y).
		Str("aim", s.AimMode.String()).
		Str("drag", s.Projectiles.Drag().Mode.String()).
		Msg("tracing shot")

	shot, err := report.Trace(s, report.Options{AimTicks: 60, Every: *every})
	if err != nil && !errors.Is(err, report.ErrNoRetirement) {
		return err
	}
	if err != nil {
		logger.Warn().Err(err).Msg("trace cut short")
	}

	u := settings.UnitSystem()
	if err := report.WriteTable(os.Stdout, shot, u); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if *plotPath != "" {
		if err := report.SavePlot(shot, u, *plotPath); err != nil {
			return err
		}
		logger.Info().Str("path", *plotPath).Msg("plot written")
	}
	return nil
}
