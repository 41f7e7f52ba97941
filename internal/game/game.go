// Package game runs the interactive viewer: window, input, the orrery frame
// and the renderer.
package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/app"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/debug"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/timeline"
	"github.com/Faultbox/orrery/internal/tour"
)

// maxFrameStep caps one frame's clock step, e.g. after the window was dragged.
const maxFrameStep = 250 * time.Millisecond

// Game is the viewer instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	orrery  *app.Orrery
	updates <-chan *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *debug.ScreenshotCapture

	running bool
	title   string
}

// New opens the window and renderer for orrery.
func New(cfg *config.Config, orrery *app.Orrery, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:    cfg,
		log:    log,
		orrery: orrery,
		input:  input.New(),
		shots:  debug.NewScreenshotCapture("screenshots", "orrery"),
		title:  orrery.Status(),
	}

	var err error
	g.window, err = window.New(g.title, cfg.Graphics, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just made.
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(width, height, log.Named("renderer"))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	log.Info("viewer initialized", zap.Int("width", width), zap.Int("height", height))
	return g, nil
}

// Watch makes the loop apply configs arriving on updates.
func (g *Game) Watch(updates <-chan *config.Config) {
	g.updates = updates
}

// Run drives frames until the window closes.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	var budget time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		budget = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}

	g.log.Info("starting viewer loop")

	for g.running {
		start := time.Now()
		dt := min(start.Sub(lastTime), maxFrameStep)
		lastTime = start

		// 1. Input
		for _, cmd := range g.input.Update() {
			g.handle(cmd)
		}
		if !g.running {
			break
		}

		// 2. Reloaded tuning
		g.pollUpdates()

		// 3. Simulation
		g.orrery.Frame(dt)

		// 4. Render
		g.render()
		g.window.SwapBuffers()

		if status := g.orrery.Status(); status != g.title {
			g.title = status
			g.window.SetTitle(status)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Duration("elapsed", g.orrery.Elapsed()),
				zap.Strings("labels", g.visibleLabels()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if budget > 0 {
			if spare := budget - time.Since(start); spare > 0 {
				time.Sleep(spare)
			}
		}
	}

	return nil
}

func (g *Game) pollUpdates() {
	if g.updates == nil {
		return
	}
	select {
	case next, ok := <-g.updates:
		if !ok {
			g.updates = nil
			return
		}
		g.orrery.ApplyTuning(next)
	default:
	}
}

func (g *Game) handle(cmd input.Command) {
	o := g.orrery
	switch cmd.Action {
	case input.ActionQuit:
		g.running = false

	case input.ActionEscape:
		if o.TourState().Running {
			o.StopTour()
			return
		}
		g.running = false

	case input.ActionResize:
		width, height := g.window.GetSize()
		g.renderer.Resize(width, height)

	case input.ActionDestination:
		dests := o.Config().Destinations
		if cmd.Index >= len(dests) {
			return
		}
		if err := o.Navigate(dests[cmd.Index].ID, app.SourceUser); err != nil {
			g.log.Warn("navigation failed", zap.Error(err))
		}

	case input.ActionTour:
		if err := o.StartTour(); err != nil && !errors.Is(err, tour.ErrAlreadyRunning) {
			g.log.Warn("tour not started", zap.Error(err))
		}

	case input.ActionOverview:
		o.Overview()
	case input.ActionSolarSystem:
		o.SolarSystem()
	case input.ActionCenter:
		o.Center()
	case input.ActionDiveIn:
		o.DiveIn()

	case input.ActionScreenshot:
		width, height := g.renderer.Size()
		path, err := g.shots.CaptureFromPixels(g.renderer.ReadPixels(), width, height)
		if err != nil {
			g.log.Error("screenshot failed", zap.Error(err))
			return
		}
		g.log.Info("screenshot saved", zap.String("path", path))

	case input.ActionOrbit:
		// Flights own the camera until they land.
		if !o.Flying() {
			o.Rig().Orbit(cmd.DX, cmd.DY)
		}
	case input.ActionDolly:
		if !o.Flying() {
			o.Rig().Dolly(cmd.DX)
		}

	case input.ActionPick:
		// Mouse coordinates are in window points; the viewport may be HiDPI.
		width, height := g.renderer.Size()
		ww, wh := g.window.GetWindowSize()
		x, y := cmd.X, cmd.Y
		if ww > 0 && wh > 0 {
			x *= float32(width) / float32(ww)
			y *= float32(height) / float32(wh)
		}
		if id, ok := o.PickAt(x, y, width, height); ok {
			if err := o.Navigate(id, app.SourceUser); err != nil {
				g.log.Warn("navigation failed", zap.Error(err))
			}
		}
	}
}

// visibleLabels names the markers currently on screen.
func (g *Game) visibleLabels() []string {
	width, height := g.renderer.Size()
	var names []string
	for _, l := range g.orrery.Labels(width, height) {
		if l.Visible {
			names = append(names, l.Text)
		}
	}
	return names
}

func (g *Game) render() {
	width, height := g.renderer.Size()
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	rig := g.orrery.Rig()
	g.renderer.Draw(renderer.Frame{
		ViewProj: rig.ViewProjection(aspect),
		FOV:      rig.FOV,
		Time:     timeline.Seconds(g.orrery.Elapsed()),
		Scene:    g.orrery.Scene(),
	})
}

// Close releases the renderer and window.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
