package camera

import (
	"time"

	"github.com/Faultbox/orrery/internal/engine/ease"
	"github.com/Faultbox/orrery/pkg/math"
)

// Flight is one in-flight camera transition.
type Flight struct {
	StartPos     math.Vec3
	TargetPos    math.Vec3
	StartLookAt  math.Vec3
	TargetLookAt math.Vec3
	Start        time.Duration
	Duration     time.Duration
	Curve        ease.Func
}

// Progress returns the linear progress of the flight at now.
func (f *Flight) Progress(now time.Duration) float32 {
	return ease.Progress(float32((now - f.Start).Seconds()), float32(f.Duration.Seconds()))
}

// At returns the eased camera position and look-at at now. The endpoints are
// exact.
func (f *Flight) At(now time.Duration) (pos, lookAt math.Vec3) {
	p := f.Progress(now)
	if p >= 1 {
		return f.TargetPos, f.TargetLookAt
	}
	curve := f.Curve
	if curve == nil {
		curve = ease.InOutFlight
	}
	e := curve(p)
	return math.Lerp(f.StartPos, f.TargetPos, e), math.Lerp(f.StartLookAt, f.TargetLookAt, e)
}

// FlightController owns the single authoritative flight over a rig.
type FlightController struct {
	rig    *Rig
	flight *Flight
}

// NewFlightController creates a controller driving rig.
func NewFlightController(rig *Rig) *FlightController {
	return &FlightController{rig: rig}
}

// Rig returns the controlled rig.
func (c *FlightController) Rig() *Rig {
	return c.rig
}

// Start begins a flight from the rig's current state, superseding any flight
// in progress. A superseded flight is first evaluated at now so the new one
// starts from the interpolated state and the camera never snaps.
func (c *FlightController) Start(targetPos, targetLookAt math.Vec3, duration, now time.Duration) *Flight {
	if c.flight != nil {
		c.rig.Position, c.rig.LookAt = c.flight.At(now)
	}
	c.flight = &Flight{
		StartPos:     c.rig.Position,
		TargetPos:    targetPos,
		StartLookAt:  c.rig.LookAt,
		TargetLookAt: targetLookAt,
		Start:        now,
		Duration:     duration,
		Curve:        ease.InOutFlight,
	}
	return c.flight
}

// Advance applies the active flight at now. It returns whether a flight is
// still in progress afterwards. Once a flight completes the rig sits exactly
// on its targets and further calls do nothing.
func (c *FlightController) Advance(now time.Duration) bool {
	if c.flight == nil {
		return false
	}
	c.rig.Position, c.rig.LookAt = c.flight.At(now)
	if c.flight.Progress(now) >= 1 {
		c.flight = nil
		return false
	}
	return true
}

// Active returns the flight in progress, or nil.
func (c *FlightController) Active() *Flight {
	return c.flight
}

// Flying reports whether a flight is in progress.
func (c *FlightController) Flying() bool {
	return c.flight != nil
}
