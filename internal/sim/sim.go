// Package sim drives an orrery without a window and records what happens,
// frame by frame, as a readable transcript.
package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Faultbox/orrery/internal/app"
	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/tour"
	"github.com/Faultbox/orrery/pkg/math"
)

// Options controls a headless run.
type Options struct {
	Duration time.Duration
	FPS      int
	Tour     bool   // Start the tour at t=0
	Navigate string // Destination to fly to at t=0
}

// Observation is one state change seen at the end of a frame.
type Observation struct {
	At   time.Duration
	What string
}

func (o Observation) String() string {
	return fmt.Sprintf("%9.3fs  %s", o.At.Seconds(), o.What)
}

// InstantLoader resolves every model immediately with a single plain material.
type InstantLoader struct{}

// Load implements assets.Loader.
func (InstantLoader) Load(_ context.Context, path string, progress assets.ProgressFunc) (*assets.Model, error) {
	progress(1, 1)
	return &assets.Model{Path: path, Meshes: 1, Materials: []assets.Material{{Name: "surface"}}}, nil
}

type snapshot struct {
	dived    bool
	flying   bool
	entities int
	tour     tour.State
	caption  string
	panel    string
}

// Run advances o at a fixed frame rate and reports every change. Model loads
// finish on their own goroutines, so the frame they land in is not fixed.
func Run(o *app.Orrery, opts Options) ([]Observation, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	step := time.Second / time.Duration(opts.FPS)

	var out []Observation
	note := func(format string, args ...any) {
		out = append(out, Observation{At: o.Elapsed(), What: fmt.Sprintf(format, args...)})
	}

	if opts.Navigate != "" {
		if err := o.Navigate(opts.Navigate, app.SourceUser); err != nil {
			return nil, err
		}
		note("navigate %s", opts.Navigate)
	}
	if opts.Tour {
		if err := o.StartTour(); err != nil {
			return nil, err
		}
		note("tour started with %d stops", len(o.Config().Tour.Stops))
		note("caption %q", o.Caption())
	}

	prev := observe(o)
	for o.Elapsed() < opts.Duration {
		o.Frame(step)
		cur := observe(o)

		if cur.dived && !prev.dived {
			note("backdrop spawned, %d models requested", o.Assets().Pending())
		}
		for _, e := range o.Scene().Entities()[prev.entities:cur.entities] {
			note("%s placed (%s) at %s", e.ID, e.Kind, vec(e.Position))
		}
		if cur.flying != prev.flying {
			if cur.flying {
				note("flight started")
			} else {
				note("flight landed at %s looking at %s", vec(o.Rig().Position), vec(o.Rig().LookAt))
			}
		}
		if cur.tour != prev.tour {
			note("tour %s -> %s", prev.tour, cur.tour)
		}
		if cur.caption != prev.caption && cur.caption != "" {
			note("caption %q", cur.caption)
		}
		if cur.panel != prev.panel {
			if cur.panel == "" {
				note("panel hidden")
			} else {
				note("panel %s", cur.panel)
			}
		}
		prev = cur
	}
	return out, nil
}

func observe(o *app.Orrery) snapshot {
	s := snapshot{
		dived:    o.Dived(),
		flying:   o.Flying(),
		entities: len(o.Scene().Entities()),
		tour:     o.TourState(),
		caption:  o.Caption(),
	}
	if p := o.Panel(); p != nil {
		s.panel = p.Name
	}
	return s
}

func vec(v math.Vec3) string {
	return fmt.Sprintf("(%.0f, %.0f, %.0f)", v.X, v.Y, v.Z)
}

// TourLength is how long a full tour takes including the return flight.
func TourLength(tc config.TourConfig) time.Duration {
	var total time.Duration
	for _, s := range tc.Stops {
		total += s.DurationHint + tc.Pause
	}
	return total + tc.ReturnDelay + tc.ReturnDuration
}

// Print writes one observation per line.
func Print(w io.Writer, obs []Observation) error {
	for _, ob := range obs {
		if _, err := fmt.Fprintln(w, ob); err != nil {
			return err
		}
	}
	return nil
}
