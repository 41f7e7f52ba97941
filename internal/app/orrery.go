// Package app wires the timeline, fades, camera flights, tour and scene into
// one frame-driven application state.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/fade"
	"github.com/Faultbox/orrery/internal/scene"
	"github.com/Faultbox/orrery/internal/timeline"
	"github.com/Faultbox/orrery/internal/tour"
)

// ErrUnknownDestination is returned when navigating to an id not in the table.
var ErrUnknownDestination = errors.New("unknown destination")

// Source tells who asked for a navigation.
type Source int

const (
	SourceUser Source = iota
	SourceTour
)

func (s Source) String() string {
	if s == SourceTour {
		return "tour"
	}
	return "user"
}

// Orrery is the whole application state. Every method must be called from the
// goroutine that runs Frame.
type Orrery struct {
	cfg *config.Config
	log *zap.Logger

	clock     timeline.Clock
	scheduler *timeline.Scheduler
	deferred  *timeline.Deferred
	fades     *fade.Controller
	rig       *camera.Rig
	flights   *camera.FlightController
	tour      *tour.Sequencer
	scene     *scene.Scene
	assets    *assets.Manager

	dived      bool
	steered    bool // A navigation or framing was requested
	lastSource Source

	panel       *Panel
	panelTask   *timeline.Task
	caption     string
	captionTask *timeline.Task
}

// New builds the intro scene and arms the startup timeline. Models are loaded
// through loader once the backdrop spawns.
func New(cfg *config.Config, loader assets.Loader, log *zap.Logger) *Orrery {
	if log == nil {
		log = zap.NewNop()
	}

	o := &Orrery{
		cfg:       cfg,
		log:       log,
		scheduler: timeline.NewScheduler(log.Named("timeline")),
		deferred:  timeline.NewDeferred(log.Named("deferred")),
		fades:     fade.NewController(),
		assets:    assets.NewManager(loader, log.Named("assets")),
	}

	burst := cfg.Scene.Burst
	o.rig = camera.NewRig(burst.Position, burst.LookAt)
	o.rig.FOV = cfg.Graphics.FOV * math32.Pi / 180
	o.rig.Near = cfg.Graphics.Near
	o.rig.Far = cfg.Graphics.Far
	o.flights = camera.NewFlightController(o.rig)

	o.scene = scene.New(cfg.Scene, o.fades, log.Named("scene"))

	o.tour = tour.New(o.deferred, tourSteps(cfg.Tour), tourOptions(cfg.Tour), o.tourNavigate, log.Named("tour"))
	o.tour.Finish = o.tourReturn
	o.tour.OnTransition = o.tourTransition

	o.scheduler.At("backdrop", cfg.Scene.BackdropAt, func() error {
		o.DiveIn()
		return nil
	})

	log.Info("orrery ready",
		zap.Int("destinations", len(cfg.Destinations)),
		zap.Int("tour_stops", len(cfg.Tour.Stops)),
		zap.Duration("backdrop_at", cfg.Scene.BackdropAt),
	)
	return o
}

func tourSteps(tc config.TourConfig) []tour.Step {
	steps := make([]tour.Step, len(tc.Stops))
	for i, s := range tc.Stops {
		steps[i] = tour.Step{Destination: s.Destination, DurationHint: s.DurationHint}
	}
	return steps
}

func tourOptions(tc config.TourConfig) tour.Options {
	return tour.Options{Pause: tc.Pause, ReturnDelay: tc.ReturnDelay}
}

// Frame advances the simulation by dt: particles, then due timeline effects
// and asset arrivals, then fades and animation, then the camera flight. The
// caller renders afterwards.
func (o *Orrery) Frame(dt time.Duration) {
	o.clock.Advance(dt)
	now := o.clock.Elapsed()
	t := timeline.Seconds(now)

	// 1. Particles
	o.scene.Step(timeline.Seconds(o.clock.Delta()), t)

	// 2. Timeline
	o.scheduler.Tick(now)
	o.deferred.Run(now)
	o.drainAssets(now)

	// 3. Fades and per-frame motion
	o.fades.Update(now)
	o.scene.Animate(t)

	// 4. Camera
	o.flights.Advance(now)
}

// DiveIn spawns the backdrop, requests every model and arms the automatic
// approach flight. Only the first call does anything.
func (o *Orrery) DiveIn() bool {
	if o.dived {
		return false
	}
	o.dived = true
	now := o.clock.Elapsed()

	o.scene.SpawnBackdrop(now)
	for _, d := range o.cfg.Destinations {
		if d.AssetPath == "" {
			continue
		}
		o.assets.Request(d.ID, d.AssetPath)
	}

	approach := o.cfg.Scene.Approach
	o.scheduler.At("auto-flight", now+o.cfg.Scene.AutoFlightDelay, func() error {
		if o.steered {
			o.log.Debug("auto flight skipped, camera already steered")
			return nil
		}
		o.flights.Start(approach.Position, approach.LookAt, approach.Duration, o.clock.Elapsed())
		return nil
	})

	o.log.Info("dive in", zap.Duration("at", now), zap.Int("loads", o.assets.Pending()))
	return true
}

func (o *Orrery) drainAssets(now time.Duration) {
	for _, res := range o.assets.Poll() {
		if res.Failed() {
			o.log.Error("model failed to load",
				zap.String("id", res.Name),
				zap.String("path", res.Path),
				zap.Error(res.Err),
			)
			continue
		}
		d, ok := o.cfg.Destination(res.Name)
		if !ok {
			o.log.Warn("model loaded for unknown destination", zap.String("id", res.Name))
			continue
		}
		o.scene.AddModel(d, res.Model, now)
	}
}

// Navigate flies to a destination with its tuned framing. The anchor follows
// the live entity when it has loaded. The info panel appears once the flight
// lands plus the panel delay; a pending reveal from an earlier navigation is
// cancelled.
func (o *Orrery) Navigate(id string, source Source) error {
	d, ok := o.cfg.Destination(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDestination, id)
	}
	if source == SourceUser {
		o.DiveIn()
	}

	now := o.clock.Elapsed()
	anchor := d.Anchor(o.cfg.Scene.SunPosition)
	if e := o.scene.Entity(id); e != nil {
		anchor = e.Position
	}

	flight := o.flights.FlyTo(d.Framing(), anchor, d.Scale, 0, now)
	o.steered = true
	o.lastSource = source

	o.hidePanel()
	panel := &Panel{ID: d.ID, Name: d.Name, Info: d.Info, Anchor: anchor}
	o.panelTask = o.deferred.After(now, flight.Duration+o.cfg.UI.PanelDelay, "panel-"+id, func() {
		o.panel = panel
		o.panelTask = nil
	})

	o.log.Debug("navigate",
		zap.String("id", id),
		zap.Stringer("source", source),
		zap.Duration("duration", flight.Duration),
	)
	return nil
}

// Overview flies to the wide framing of the whole system.
func (o *Orrery) Overview() {
	o.flyFraming("overview", o.cfg.Scene.Overview)
}

// SolarSystem flies to the framing the tour returns to.
func (o *Orrery) SolarSystem() {
	o.flyFraming("solar-system", o.cfg.Scene.SolarSystem)
}

// Center flies back to the burst framing.
func (o *Orrery) Center() {
	o.flyFraming("center", o.cfg.Scene.Burst)
}

func (o *Orrery) flyFraming(name string, f config.Framing) {
	o.hidePanel()
	o.steered = true
	o.flights.Start(f.Position, f.LookAt, f.Duration, o.clock.Elapsed())
	o.log.Debug("framing", zap.String("name", name))
}

func (o *Orrery) hidePanel() {
	o.panelTask.Cancel()
	o.panelTask = nil
	o.panel = nil
}

// StartTour dives in if needed and starts the cinematic tour. A tour already
// in progress is left alone and tour.ErrAlreadyRunning is returned.
func (o *Orrery) StartTour() error {
	o.DiveIn()
	return o.tour.Start(o.clock.Elapsed())
}

// StopTour abandons a running tour.
func (o *Orrery) StopTour() {
	o.tour.Stop()
}

func (o *Orrery) tourNavigate(step tour.Step, i int) error {
	name := step.Destination
	if d, ok := o.cfg.Destination(step.Destination); ok {
		name = d.Name
	}
	o.setCaption(fmt.Sprintf("Touring %s (%d/%d)", name, i+1, len(o.tour.Steps())))
	return o.Navigate(step.Destination, SourceTour)
}

func (o *Orrery) tourReturn() {
	f := o.cfg.Scene.SolarSystem
	o.hidePanel()
	o.flights.Start(f.Position, f.LookAt, o.cfg.Tour.ReturnDuration, o.clock.Elapsed())
}

func (o *Orrery) tourTransition(from, to tour.State) {
	if from.Running && !to.Running {
		o.setCaption("Tour complete")
	}
}

func (o *Orrery) setCaption(text string) {
	o.captionTask.Cancel()
	o.caption = text
	o.captionTask = o.deferred.After(o.clock.Elapsed(), o.cfg.UI.CaptionTTL, "caption", func() {
		o.caption = ""
		o.captionTask = nil
	})
}

// ApplyTuning adopts the destination table, UI timing and tour route from a
// reloaded config. Scene and graphics settings only apply at startup. The
// route is kept while a tour is running.
func (o *Orrery) ApplyTuning(next *config.Config) {
	o.cfg.Destinations = next.Destinations
	o.cfg.UI = next.UI

	if err := o.tour.SetSteps(tourSteps(next.Tour), tourOptions(next.Tour)); err != nil {
		o.log.Warn("tour route not reloaded", zap.Error(err))
	} else {
		o.cfg.Tour = next.Tour
	}
	o.log.Info("tuning applied", zap.Int("destinations", len(next.Destinations)))
}

// Close stops outstanding model loads.
func (o *Orrery) Close() {
	o.assets.Close()
}

// Elapsed returns the simulation time.
func (o *Orrery) Elapsed() time.Duration {
	return o.clock.Elapsed()
}

// Rig returns the camera rig.
func (o *Orrery) Rig() *camera.Rig {
	return o.rig
}

// Flying reports whether a camera flight is in progress.
func (o *Orrery) Flying() bool {
	return o.flights.Flying()
}

// Scene returns the drawable scene.
func (o *Orrery) Scene() *scene.Scene {
	return o.scene
}

// Assets returns the model load manager.
func (o *Orrery) Assets() *assets.Manager {
	return o.assets
}

// EventFired reports whether a named timeline event has fired.
func (o *Orrery) EventFired(name string) bool {
	return o.scheduler.Fired(name)
}

// Dived reports whether the backdrop has spawned.
func (o *Orrery) Dived() bool {
	return o.dived
}

// TourState returns the tour state machine's state.
func (o *Orrery) TourState() tour.State {
	return o.tour.State()
}

// LastSource reports who asked for the most recent navigation.
func (o *Orrery) LastSource() Source {
	return o.lastSource
}

// Config returns the live config.
func (o *Orrery) Config() *config.Config {
	return o.cfg
}
