package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"turretsim/internal/config"
	"turretsim/internal/engine"
	"turretsim/internal/logging"
	"turretsim/internal/sim"
	"turretsim/internal/viewer"
)

func main() {
	fs := pflag.NewFlagSet("turretsim", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	configDir, _ := fs.GetString("config-dir")
	if err := config.Load(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "turretsim: %v\n", err)
		os.Exit(1)
	}
	if err := config.BindFlags(fs); err != nil {
		fmt.Fprintf(os.Stderr, "turretsim: %v\n", err)
		os.Exit(1)
	}
	settings, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "turretsim: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(settings.LogLevel, os.Stderr)
	if f := config.UsedFile(); f != "" {
		logger.Info().Str("file", f).Msg("loaded config")
	}

	scene := engine.NewScene("field")
	s, err := sim.New(settings, sim.WithLogger(logger), sim.WithRenderer(scene))
	if err != nil {
		logger.Fatal().Err(err).Msg("creating simulation")
	}
	defer s.Close()

	viewer.New(s, scene, settings.UnitSystem(), logger).Run()
}
