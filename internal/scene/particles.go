package scene

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/internal/fade"
	"github.com/Faultbox/orrery/pkg/math"
)

// RGB is a linear colour.
type RGB [3]float32

// Hex converts a 0xRRGGBB colour.
func Hex(c uint32) RGB {
	return RGB{
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

// randomDirection returns a uniformly distributed unit vector.
func randomDirection(rng *rand.Rand) math.Vec3 {
	theta := rng.Float32() * 2 * math32.Pi
	phi := math32.Acos(2*rng.Float32() - 1)
	return math.Vec3{
		X: math32.Sin(phi) * math32.Cos(theta),
		Y: math32.Sin(phi) * math32.Sin(theta),
		Z: math32.Cos(phi),
	}
}

// Explosion is the intro burst: every particle starts at the origin and flies
// outward at its own speed.
type Explosion struct {
	Positions  []math.Vec3
	Velocities []math.Vec3
	Speed      float32
	Opacity    float32
	PointSize  float32
}

// NewExplosion creates count particles with speeds in [0.5, 1.5).
func NewExplosion(rng *rand.Rand, count int, speed float32) *Explosion {
	e := &Explosion{
		Positions:  make([]math.Vec3, count),
		Velocities: make([]math.Vec3, count),
		Speed:      speed,
		Opacity:    0.8,
		PointSize:  4,
	}
	for i := range e.Velocities {
		e.Velocities[i] = randomDirection(rng).Scale(0.5 + rng.Float32())
	}
	return e
}

// Step moves every particle by its velocity for dt seconds.
func (e *Explosion) Step(dt float32) {
	k := e.Speed * dt
	for i, v := range e.Velocities {
		e.Positions[i] = e.Positions[i].Add(v.Scale(k))
	}
}

// Star is one background star.
type Star struct {
	Position math.Vec3
	Color    RGB
	Size     float32
}

// Starfield is a shell of stars that slowly turns and twinkles.
type Starfield struct {
	Stars    []Star
	Rotation math.Vec3
	Time     float32 // Twinkle phase, seconds
}

const (
	starInner = 3000
	starDepth = 5000
)

// NewStarfield scatters count stars on a shell between 3000 and 8000 units.
func NewStarfield(rng *rand.Rand, count int) *Starfield {
	s := &Starfield{Stars: make([]Star, count)}
	for i := range s.Stars {
		radius := starInner + rng.Float32()*starDepth
		pos := randomDirection(rng).Scale(radius)

		var c RGB
		switch class := rng.Float32(); {
		case class < 0.6: // White and blue, most common
			c = RGB{0.8 + rng.Float32()*0.2, 0.8 + rng.Float32()*0.2, 1}
		case class < 0.8: // Yellow and orange
			c = RGB{1, 0.7 + rng.Float32()*0.3, 0.3 + rng.Float32()*0.3}
		default: // Red
			c = RGB{1, 0.3 + rng.Float32()*0.2, 0.1 + rng.Float32()*0.2}
		}

		base := math32.Max(0.3, 2-(pos.Length()-starInner)/starDepth)
		s.Stars[i] = Star{
			Position: pos,
			Color:    c,
			Size:     base * (0.5 + rng.Float32()*1.5),
		}
	}
	return s
}

// Step turns the shell a little and advances the twinkle phase to t.
func (s *Starfield) Step(t float32) {
	s.Rotation.Y += 0.0001
	s.Rotation.X += 0.00005
	s.Time = t
}

// Twinkle returns the brightness factor at phase t for a fragment at
// screen position (x, y).
func Twinkle(t, x, y float32) float32 {
	return 0.8 + 0.2*math32.Sin(t*3+x*0.01+y*0.01)
}

// Galaxy is the backdrop point cloud spawned at dive-in.
type Galaxy struct {
	Points    []math.Vec3
	PointSize float32
	Opacity   *fade.Target
}

// NewGalaxy scatters count points uniformly in a cube of the given edge.
func NewGalaxy(rng *rand.Rand, count int, extent float32) *Galaxy {
	g := &Galaxy{Points: make([]math.Vec3, count), PointSize: 2.5}
	for i := range g.Points {
		g.Points[i] = math.Vec3{
			X: (rng.Float32() - 0.5) * extent,
			Y: (rng.Float32() - 0.5) * extent,
			Z: (rng.Float32() - 0.5) * extent,
		}
	}
	return g
}

// Patch is one nebula cloud.
type Patch struct {
	Position math.Vec3
	Rotation math.Vec3
	Radius   float32
	Color    RGB
}

// Nebula is a handful of soft coloured clouds near the sun.
type Nebula struct {
	Patches []Patch
	Opacity *fade.Target
}

const nebulaSpread = 1500

// NewNebula creates 3 to 5 patches within ±750 units of the origin.
func NewNebula(rng *rand.Rand) *Nebula {
	n := &Nebula{Patches: make([]Patch, 3+rng.IntN(3))}
	for i := range n.Patches {
		n.Patches[i] = Patch{
			Position: math.Vec3{
				X: (rng.Float32() - 0.5) * nebulaSpread,
				Y: (rng.Float32() - 0.5) * nebulaSpread,
				Z: (rng.Float32() - 0.5) * nebulaSpread,
			},
			Rotation: math.Vec3{
				X: rng.Float32() * math32.Pi,
				Y: rng.Float32() * math32.Pi,
				Z: rng.Float32() * math32.Pi,
			},
			Radius: 100,
			Color:  RGB{rng.Float32(), rng.Float32() * 0.6, rng.Float32()},
		}
	}
	return n
}
