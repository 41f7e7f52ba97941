package camera

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/pkg/math"
)

// Preset turns an object anchor and nominal scale into a framing.
type Preset struct {
	MinDistance     float32       `yaml:"min_distance"`
	Multiplier      float32       `yaml:"multiplier"`
	SideFactor      float32       `yaml:"side_factor"`
	ElevationFactor float32       `yaml:"elevation_factor"`
	DistanceFactor  float32       `yaml:"distance_factor"`
	Duration        time.Duration `yaml:"duration"`
}

// Offset returns the framing distance for an object of the given scale.
func (p Preset) Offset(scale float32) float32 {
	return math32.Max(p.MinDistance, scale*p.Multiplier)
}

// Resolve returns the camera position and look-at that frame an object
// anchored at anchor.
func (p Preset) Resolve(anchor math.Vec3, scale float32) (pos, lookAt math.Vec3) {
	offset := p.Offset(scale)
	factors := math.Vec3{X: p.SideFactor, Y: p.ElevationFactor, Z: p.DistanceFactor}
	return anchor.Add(factors.Scale(offset)), anchor
}

// IsZero reports whether the preset was left unset.
func (p Preset) IsZero() bool {
	return p == Preset{}
}

// ZoomToObject is the wide establishing framing.
var ZoomToObject = Preset{
	MinDistance:     200,
	Multiplier:      100,
	SideFactor:      1.5,
	ElevationFactor: 1.0,
	DistanceFactor:  3.0,
	Duration:        3000 * time.Millisecond,
}

// UltraCloseUp is the tight inspection framing.
var UltraCloseUp = Preset{
	MinDistance:     15,
	Multiplier:      8,
	SideFactor:      1.0,
	ElevationFactor: 0.3,
	DistanceFactor:  0.8,
	Duration:        2500 * time.Millisecond,
}

// Named returns a built-in preset by name.
func Named(name string) (Preset, bool) {
	switch name {
	case "zoom", "zoom_to_object":
		return ZoomToObject, true
	case "closeup", "ultra_close_up":
		return UltraCloseUp, true
	}
	return Preset{}, false
}

// FlyTo resolves a preset against an anchor and starts the flight. A zero
// duration falls back to the preset's own.
func (c *FlightController) FlyTo(p Preset, anchor math.Vec3, scale float32, duration, now time.Duration) *Flight {
	if duration <= 0 {
		duration = p.Duration
	}
	pos, lookAt := p.Resolve(anchor, scale)
	return c.Start(pos, lookAt, duration, now)
}
