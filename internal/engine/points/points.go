// Package points packs scene objects into interleaved point-sprite vertices.
//
// Each vertex is position (3), colour (3), size (1) and alpha (1). Sizes of
// world-space sprites are diameters in world units; screen-space sprites are
// in pixels.
package points

import (
	"github.com/Faultbox/orrery/internal/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

// Stride is the number of floats per vertex.
const Stride = 8

// MarkerSize is the unpulsed marker diameter in pixels.
const MarkerSize = 10

var (
	explosionColor = scene.RGB{1, 0.85, 0.6}
	galaxyColor    = scene.RGB{0.75, 0.8, 1}
)

// Batch is a growable vertex buffer that is reused between frames.
type Batch struct {
	Data []float32
}

// Reset empties the batch, keeping its storage.
func (b *Batch) Reset() {
	b.Data = b.Data[:0]
}

// Len returns the number of vertices.
func (b *Batch) Len() int {
	return len(b.Data) / Stride
}

// Add appends one vertex.
func (b *Batch) Add(p math.Vec3, c scene.RGB, size, alpha float32) {
	b.Data = append(b.Data, p.X, p.Y, p.Z, c[0], c[1], c[2], size, alpha)
}

// Explosion packs the burst with the explosion's own size and opacity.
func Explosion(b *Batch, e *scene.Explosion) {
	if e == nil {
		return
	}
	for _, p := range e.Positions {
		b.Add(p, explosionColor, e.PointSize, e.Opacity)
	}
}

// Stars packs the star shell in its local frame; the caller applies the
// shell rotation.
func Stars(b *Batch, s *scene.Starfield) {
	if s == nil {
		return
	}
	for _, st := range s.Stars {
		b.Add(st.Position, st.Color, st.Size, 1)
	}
}

// Galaxy packs the backdrop cloud at full alpha; its fade is a uniform.
func Galaxy(b *Batch, g *scene.Galaxy) {
	if g == nil {
		return
	}
	for _, p := range g.Points {
		b.Add(p, galaxyColor, g.PointSize, 1)
	}
}

// Nebula packs one soft world-space sprite per patch.
func Nebula(b *Batch, n *scene.Nebula) {
	if n == nil {
		return
	}
	for _, p := range n.Patches {
		b.Add(p.Position, p.Color, p.Radius*2, 1)
	}
}

// Entities packs every visible entity as a world-space sprite at time t.
// Lights have no body and are skipped, as is anything fully transparent.
func Entities(b *Batch, entities []*scene.Entity, t float32) {
	for _, e := range entities {
		var alpha float32
		switch e.Kind {
		case scene.KindLight:
			continue
		case scene.KindGlow:
			alpha = e.Intensity(t)
		default:
			alpha = e.Opacity()
		}
		if alpha <= 0 {
			continue
		}
		b.Add(e.Position, e.Color, e.Scale, alpha)
	}
}

// Markers packs the pulsing coordinate beacons as screen-space sprites.
func Markers(b *Batch, markers []*scene.Marker, t float32) {
	size := MarkerSize * scene.Pulse(t)
	for _, m := range markers {
		b.Add(m.Position(), m.Color, size, 1)
	}
}
