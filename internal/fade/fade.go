// Package fade ramps opacity and intensity channels from zero to a goal
// over a fixed window.
package fade

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/internal/engine/ease"
)

// Target is one animatable channel: a material's opacity, a light's
// intensity, a glow sphere's opacity. It is owned by the entity it animates.
type Target struct {
	Name     string
	Start    time.Duration
	Duration time.Duration
	Goal     float32
	Curve    ease.Func

	current float32
	done    bool
}

// Value returns the current channel value. A nil target reads as zero so
// callers holding a reference to an entity that never loaded need no guard.
func (t *Target) Value() float32 {
	if t == nil {
		return 0
	}
	return t.current
}

// Done reports whether the window has elapsed and the value is pinned.
func (t *Target) Done() bool {
	return t != nil && t.done
}

// Progress returns linear progress through the window.
func (t *Target) Progress(now time.Duration) float32 {
	if t == nil {
		return 0
	}
	return ease.Progress(float32((now - t.Start).Seconds()), float32(t.Duration.Seconds()))
}

// update recomputes the value for now. Pinned targets are left untouched.
func (t *Target) update(now time.Duration) {
	if t.done {
		return
	}
	p := t.Progress(now)
	if p >= 1 {
		t.current = t.Goal
		t.done = true
		return
	}
	curve := t.Curve
	if curve == nil {
		curve = ease.InQuad
	}
	t.current = curve(p) * t.Goal
}

// Controller updates every live target once per frame.
type Controller struct {
	targets []*Target
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// Add registers a channel that starts fading at start.
func (c *Controller) Add(name string, start, duration time.Duration, goal float32) *Target {
	t := &Target{
		Name:     name,
		Start:    start,
		Duration: duration,
		Goal:     goal,
		Curve:    ease.InQuad,
	}
	c.targets = append(c.targets, t)
	t.update(start)
	return t
}

// Update recomputes every channel for now.
func (c *Controller) Update(now time.Duration) {
	for _, t := range c.targets {
		t.update(now)
	}
}

// Len returns the number of registered channels.
func (c *Controller) Len() int {
	return len(c.targets)
}

// Active returns how many channels are still ramping.
func (c *Controller) Active() int {
	n := 0
	for _, t := range c.targets {
		if !t.done {
			n++
		}
	}
	return n
}

// Ceiling composes a decorative pulse with a fade envelope: the pulse can
// never push the channel above what the fade stage allows.
func Ceiling(pulse, envelope, oscillation float32) float32 {
	return math32.Min(pulse, envelope) + oscillation
}
