package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/pkg/math"
)

// markerHeight is how far above its entity a marker floats.
const markerHeight = 80

// Marker is the coordinate beacon floating above a loaded entity.
type Marker struct {
	Entity *Entity
	Text   string
	Color  RGB
}

func newMarker(e *Entity) *Marker {
	return &Marker{
		Entity: e,
		Text:   fmt.Sprintf("%s\n(%d, %d, %d)", e.Name, round(e.Anchor.X), round(e.Anchor.Y), round(e.Anchor.Z)),
		Color:  e.Color,
	}
}

func round(x float32) int {
	return int(math32.Floor(x + 0.5))
}

// Position is the marker's world position; it tracks its entity.
func (m *Marker) Position() math.Vec3 {
	return m.Entity.Position.Add(math.Vec3{Y: markerHeight})
}

// Pulse returns the marker's scale at time t.
func Pulse(t float32) float32 {
	return 1 + math32.Sin(t*2)*0.2
}

// Label is a marker projected to the screen.
type Label struct {
	ID      string
	Text    string
	Color   RGB
	X, Y    float32
	Visible bool
}

// Project places the marker's label on a width x height screen. The label is
// visible only in front of the camera and within maxDistance of eye.
func (m *Marker) Project(viewProj math.Mat4, eye math.Vec3, width, height int, maxDistance float32) Label {
	pos := m.Position()
	l := Label{ID: m.Entity.ID, Text: m.Text, Color: m.Color}

	x, y, depth, ok := math.Project(viewProj, pos, width, height)
	if !ok {
		return l
	}
	l.X, l.Y = x, y
	l.Visible = depth < 1 && eye.Distance(pos) < maxDistance
	return l
}
