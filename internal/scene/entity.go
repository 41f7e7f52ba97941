package scene

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/fade"
	"github.com/Faultbox/orrery/pkg/math"
)

// Kind tells the animator how an entity moves.
type Kind int

const (
	KindPlanet Kind = iota
	KindSun
	KindBlackHole
	KindGlow
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindBlackHole:
		return "blackhole"
	case KindGlow:
		return "glow"
	case KindLight:
		return "light"
	default:
		return "planet"
	}
}

func kindOf(d config.Destination) Kind {
	switch d.Kind {
	case config.KindSun:
		return KindSun
	case config.KindBlackHole:
		return KindBlackHole
	default:
		return KindPlanet
	}
}

// Textured sun surfaces stay slightly see-through.
const sunTexturedOpacity = 0.9

// Entity is a loaded model, or one of the sun's companions (glow, light).
type Entity struct {
	ID        string
	Name      string
	Kind      Kind
	Anchor    math.Vec3 // Rest position
	Position  math.Vec3
	Rotation  math.Vec3
	Scale     float32
	BaseScale float32 // Size before pulsing, glow only
	Color     RGB
	Spin      float32
	Model     *assets.Model

	// One channel per material; lights and glows have one.
	Channels []*fade.Target

	follow *Entity
	goal   float32
}

func newModelEntity(d config.Destination, anchor math.Vec3, model *assets.Model, fades *fade.Controller, now, window time.Duration) *Entity {
	e := &Entity{
		ID:       d.ID,
		Name:     d.Name,
		Kind:     kindOf(d),
		Anchor:   anchor,
		Position: anchor,
		Scale:    d.Size * 2,
		Color:    Hex(d.Color),
		Spin:     d.Spin,
		Model:    model,
	}

	goal := d.Opacity
	if goal == 0 {
		goal = 1
	}

	var mats []assets.Material
	if model != nil {
		mats = model.Materials
	}
	if len(mats) == 0 {
		mats = []assets.Material{{Name: "body"}}
	}
	for _, m := range mats {
		g := goal
		if e.Kind == KindSun && m.Textured {
			g = sunTexturedOpacity
		}
		e.Channels = append(e.Channels, fades.Add(fmt.Sprintf("%s/%s", d.ID, m.Name), now, window, g))
	}
	return e
}

// Opacity returns the mean of the material channels.
func (e *Entity) Opacity() float32 {
	if e == nil || len(e.Channels) == 0 {
		return 0
	}
	var sum float32
	for _, c := range e.Channels {
		sum += c.Value()
	}
	return sum / float32(len(e.Channels))
}

// Intensity is the light's brightness, or the glow's displayed opacity.
func (e *Entity) Intensity(t float32) float32 {
	if e == nil || len(e.Channels) == 0 {
		return 0
	}
	env := e.Channels[0].Value()
	if e.Kind == KindGlow {
		return math32.Max(0, fade.Ceiling(e.goal, env, math32.Sin(t*3)*0.03))
	}
	return env
}

// Faded reports whether every channel has reached its goal.
func (e *Entity) Faded() bool {
	if e == nil {
		return false
	}
	for _, c := range e.Channels {
		if !c.Done() {
			return false
		}
	}
	return true
}

// Animate applies the per-frame motion for elapsed time t (seconds).
func (e *Entity) Animate(t float32) {
	switch e.Kind {
	case KindPlanet:
		e.Rotation.Y += e.Spin
	case KindSun:
		e.Rotation.Y += e.Spin
		e.Rotation.Z += 0.003
		e.Position.Y = e.Anchor.Y + math32.Sin(t*0.5)*10
	case KindBlackHole:
		e.Rotation.Y += e.Spin
		e.Rotation.X += 0.002
		e.Position.Y = e.Anchor.Y + math32.Sin(t*0.3)*30
	case KindGlow:
		if e.follow != nil {
			e.Position = e.follow.Position
		}
		e.Scale = e.BaseScale * (1 + math32.Sin(t*2)*0.1)
	case KindLight:
		if e.follow != nil {
			e.Position = e.follow.Position
		}
	}
}
