package scene

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/fade"
	"github.com/Faultbox/orrery/pkg/math"
)

func smallScene(t *testing.T) (*Scene, *fade.Controller, *config.Config) {
	cfg := config.Default()
	cfg.Scene.ExplosionCount = 200
	cfg.Scene.StarCount = 300
	cfg.Scene.GalaxyCount = 100
	fades := fade.NewController()
	return New(cfg.Scene, fades, zaptest.NewLogger(t)), fades, cfg
}

func destination(t *testing.T, cfg *config.Config, id string) config.Destination {
	d, ok := cfg.Destination(id)
	require.True(t, ok, id)
	return d
}

func TestExplosionSpeeds(t *testing.T) {
	e := NewExplosion(rand.New(rand.NewPCG(1, 2)), 500, 50)
	require.Len(t, e.Positions, 500)

	for _, v := range e.Velocities {
		speed := v.Length()
		assert.GreaterOrEqual(t, speed, float32(0.499))
		assert.Less(t, speed, float32(1.501))
	}

	e.Step(0.5)
	for i, p := range e.Positions {
		assert.InDelta(t, e.Velocities[i].Length()*25, p.Length(), 1e-3)
	}
}

func TestStarfieldShell(t *testing.T) {
	s := NewStarfield(rand.New(rand.NewPCG(3, 4)), 1000)
	for _, star := range s.Stars {
		r := star.Position.Length()
		assert.GreaterOrEqual(t, r, float32(2999))
		assert.LessOrEqual(t, r, float32(8001))
		assert.Greater(t, star.Size, float32(0))
		assert.Equal(t, float32(1), math32.Max(star.Color[0], star.Color[2]), "every class saturates red or blue")
	}

	s.Step(2)
	assert.Equal(t, float32(2), s.Time)
	assert.InDelta(t, 0.0001, s.Rotation.Y, 1e-9)
}

func TestTwinkleRange(t *testing.T) {
	for _, tt := range []float32{0, 0.3, 1.7, 10} {
		v := Twinkle(tt, 120, 340)
		assert.GreaterOrEqual(t, v, float32(0.6))
		assert.LessOrEqual(t, v, float32(1.0))
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, _, _ := smallScene(t)
	b, _, _ := smallScene(t)
	assert.Equal(t, a.Stars.Stars, b.Stars.Stars)
	assert.Equal(t, a.Explosion.Velocities, b.Explosion.Velocities)
}

func TestSpawnBackdrop(t *testing.T) {
	s, fades, cfg := smallScene(t)
	now := 5 * time.Second

	require.True(t, s.SpawnBackdrop(now))
	assert.False(t, s.SpawnBackdrop(now+time.Second), "backdrop spawns once")
	assert.Equal(t, 2, fades.Len())

	half := cfg.Scene.GalaxyExtent / 2
	for _, p := range s.Galaxy.Points {
		assert.LessOrEqual(t, math32.Abs(p.X), half)
		assert.LessOrEqual(t, math32.Abs(p.Y), half)
		assert.LessOrEqual(t, math32.Abs(p.Z), half)
	}

	n := len(s.Nebula.Patches)
	assert.True(t, n >= 3 && n <= 5, "got %d nebula patches", n)
	for _, p := range s.Nebula.Patches {
		assert.LessOrEqual(t, math32.Abs(p.Position.X), float32(750))
	}

	fades.Update(now + cfg.Scene.FadeDuration)
	assert.Equal(t, cfg.Scene.GalaxyOpacity, s.Galaxy.Opacity.Value())
	assert.Equal(t, cfg.Scene.NebulaOpacity, s.Nebula.Opacity.Value())
}

func TestAddSunBringsCompanions(t *testing.T) {
	s, fades, cfg := smallScene(t)
	model := &assets.Model{Materials: []assets.Material{
		{Name: "surface", Textured: true},
		{Name: "core"},
	}}
	now := 6 * time.Second

	sun := s.AddModel(destination(t, cfg, "sun"), model, now)
	require.NotNil(t, sun)
	require.Len(t, sun.Channels, 2)
	assert.Equal(t, float32(0.9), sun.Channels[0].Goal)
	assert.Equal(t, float32(1.0), sun.Channels[1].Goal)

	glow := s.Entity("sun-glow")
	light := s.Entity("sun-light")
	require.NotNil(t, glow)
	require.NotNil(t, light)
	assert.Equal(t, cfg.Scene.GlowOpacity, glow.Channels[0].Goal)
	assert.Equal(t, cfg.Scene.SunLightIntensity, light.Channels[0].Goal)
	assert.Equal(t, 4, fades.Len())
	assert.Len(t, s.Markers(), 1, "companions carry no marker")

	again := s.AddModel(destination(t, cfg, "sun"), model, now)
	assert.Same(t, sun, again)
	assert.Equal(t, 4, fades.Len())
}

func TestModelWithoutMaterialsGetsOneChannel(t *testing.T) {
	s, _, cfg := smallScene(t)
	pluto := s.AddModel(destination(t, cfg, "pluto"), &assets.Model{}, 0)
	require.Len(t, pluto.Channels, 1)
	assert.Equal(t, float32(0.9), pluto.Channels[0].Goal)
}

func TestMissingEntityIsHarmless(t *testing.T) {
	s, _, _ := smallScene(t)
	e := s.Entity("mars")
	assert.Nil(t, e)
	assert.Zero(t, e.Opacity())
	assert.Zero(t, e.Intensity(1))
	assert.False(t, e.Faded())
}

func TestAnimate(t *testing.T) {
	s, _, cfg := smallScene(t)
	sun := s.AddModel(destination(t, cfg, "sun"), nil, 0)
	venus := s.AddModel(destination(t, cfg, "venus"), nil, 0)
	earth := s.AddModel(destination(t, cfg, "earth"), nil, 0)
	bh := s.AddModel(destination(t, cfg, "blackhole"), nil, 0)

	const tm = float32(1.2)
	s.Animate(tm)

	assert.InDelta(t, math32.Sin(tm*0.5)*10, sun.Position.Y, 1e-5)
	assert.InDelta(t, 0.008, sun.Rotation.Y, 1e-7)
	assert.InDelta(t, 300+math32.Sin(tm*0.3)*30, bh.Position.Y, 1e-4)
	assert.Zero(t, venus.Rotation.Y, "venus does not spin")
	assert.InDelta(t, 0.003, earth.Rotation.Y, 1e-7)

	glow := s.Entity("sun-glow")
	assert.Equal(t, sun.Position, glow.Position)
	assert.InDelta(t, cfg.Scene.GlowRadius*(1+math32.Sin(tm*2)*0.1), glow.Scale, 1e-4)
	assert.Equal(t, sun.Position, s.Entity("sun-light").Position)
}

func TestGlowNeverExceedsFadeStage(t *testing.T) {
	s, fades, cfg := smallScene(t)
	s.AddModel(destination(t, cfg, "sun"), nil, 0)
	glow := s.Entity("sun-glow")

	// Early in the fade the oscillation rides on a small envelope.
	fades.Update(500 * time.Millisecond)
	env := glow.Channels[0].Value()
	for _, tm := range []float32{0.1, 0.5, 0.9} {
		assert.LessOrEqual(t, glow.Intensity(tm), env+0.03+1e-6)
	}

	fades.Update(cfg.Scene.FadeDuration)
	const tm = float32(2)
	assert.InDelta(t, cfg.Scene.GlowOpacity+math32.Sin(tm*3)*0.03, glow.Intensity(tm), 1e-6)
}

func TestMarkerLabels(t *testing.T) {
	s, _, cfg := smallScene(t)
	mercury := s.AddModel(destination(t, cfg, "mercury"), nil, 0)

	m := s.Markers()[0]
	assert.Equal(t, "Mercury\n(1500, 0, -200)", m.Text)
	assert.Equal(t, mercury.Position.Add(math.V3(0, 80, 0)), m.Position())

	aim := func(eye math.Vec3) math.Mat4 {
		view := math.LookAt(eye, m.Position(), math.V3(0, 1, 0))
		return math.Perspective(math32.Pi/4, 1, 0.1, 20000).Mul(view)
	}

	near := math.V3(1500, 80, 800)
	l := s.Labels(aim(near), near, 800, 800, 5000)[0]
	assert.True(t, l.Visible)
	assert.InDelta(t, 400, l.X, 0.5)
	assert.InDelta(t, 400, l.Y, 0.5)

	far := math.V3(1500, 80, 9000)
	assert.False(t, s.Labels(aim(far), far, 800, 800, 5000)[0].Visible, "beyond label range")

	// Looking away puts the marker behind the camera.
	behind := math.LookAt(near, math.V3(1500, 80, 2000), math.V3(0, 1, 0))
	vp := math.Perspective(math32.Pi/4, 1, 0.1, 20000).Mul(behind)
	assert.False(t, m.Project(vp, near, 800, 800, 5000).Visible)
}

func TestPulseAndHex(t *testing.T) {
	assert.Equal(t, float32(1), Pulse(0))
	assert.InDelta(t, 1.2, Pulse(math32.Pi/4), 1e-6)
	assert.Equal(t, RGB{1, 170.0 / 255, 0}, Hex(0xffaa00))
}
