// orrerysim runs the orrery timeline without a window and prints what happens.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/app"
	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "timeline", "run":
		cmdTimeline(args)
	case "tour":
		cmdTour(args)
	case "destinations", "ls":
		cmdDestinations(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`orrerysim - headless orrery timeline runner

Usage:
  orrerysim <command> [options]

Commands:
  timeline [-seconds N] [-fps F] [-goto ID]   Run the intro and print every state change
  tour [-fps F]                               Run the cinematic tour to completion
  destinations                                List destinations and their framings
  config                                      Print the effective configuration as YAML

Common options:
  -config <file>   Config file (defaults only when omitted)
  -gltf            Load real models from the asset root instead of stubs
  -debug           Interleave debug logs with the transcript

Examples:
  orrerysim timeline -seconds 20
  orrerysim timeline -goto earth -seconds 6
  orrerysim tour -config orrery.yaml`)
}

type common struct {
	config *string
	gltf   *bool
	debug  *bool
}

func commonFlags(fs *flag.FlagSet) common {
	return common{
		config: fs.String("config", "", "Config file"),
		gltf:   fs.Bool("gltf", false, "Load glTF models from the asset root"),
		debug:  fs.Bool("debug", false, "Debug logging"),
	}
}

func (c common) load() *config.Config {
	cfg := config.Default()
	if *c.config != "" {
		var err error
		cfg, err = config.LoadFile(*c.config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	level := "warn"
	if *c.debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func (c common) loader(cfg *config.Config) assets.Loader {
	if *c.gltf {
		return assets.NewGLTFLoader(cfg.Assets.Root)
	}
	return sim.InstantLoader{}
}

func run(cfg *config.Config, loader assets.Loader, opts sim.Options) {
	defer logger.Sync()

	o := app.New(cfg, loader, logger.Named("orrery"))
	defer o.Close()

	obs, err := sim.Run(o, opts)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := sim.Print(os.Stdout, obs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdTimeline(args []string) {
	fs := flag.NewFlagSet("timeline", flag.ExitOnError)
	c := commonFlags(fs)
	seconds := fs.Float64("seconds", 18, "Simulated seconds")
	fps := fs.Int("fps", 60, "Simulated frame rate")
	target := fs.String("goto", "", "Destination to fly to at t=0")
	fs.Parse(args)

	cfg := c.load()
	run(cfg, c.loader(cfg), sim.Options{
		Duration: time.Duration(*seconds * float64(time.Second)),
		FPS:      *fps,
		Navigate: *target,
	})
}

func cmdTour(args []string) {
	fs := flag.NewFlagSet("tour", flag.ExitOnError)
	c := commonFlags(fs)
	fps := fs.Int("fps", 60, "Simulated frame rate")
	fs.Parse(args)

	cfg := c.load()
	run(cfg, c.loader(cfg), sim.Options{
		Duration: sim.TourLength(cfg.Tour) + time.Second,
		FPS:      *fps,
		Tour:     true,
	})
}

func cmdDestinations(args []string) {
	fs := flag.NewFlagSet("destinations", flag.ExitOnError)
	c := commonFlags(fs)
	fs.Parse(args)

	cfg := c.load()
	sun := cfg.Scene.SunPosition

	fmt.Printf("%-10s %-11s %-10s %-24s %-8s %s\n", "ID", "NAME", "KIND", "ANCHOR", "FLIGHT", "MODEL")
	for _, d := range cfg.Destinations {
		a := d.Anchor(sun)
		fmt.Printf("%-10s %-11s %-10s %-24s %-8s %s\n",
			d.ID,
			d.Name,
			d.Kind,
			fmt.Sprintf("(%.0f, %.0f, %.0f)", a.X, a.Y, a.Z),
			d.Framing().Duration,
			d.AssetPath,
		)
	}

	fmt.Println()
	fmt.Printf("Tour: %d stops, %s including the return flight\n", len(cfg.Tour.Stops), sim.TourLength(cfg.Tour))
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := commonFlags(fs)
	fs.Parse(args)

	cfg := c.load()
	if err := cfg.Encode(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
