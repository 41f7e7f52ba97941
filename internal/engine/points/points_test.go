package points

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/fade"
	"github.com/Faultbox/orrery/internal/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

func newScene(t *testing.T) (*scene.Scene, *fade.Controller, *config.Config) {
	cfg := config.Default()
	cfg.Scene.ExplosionCount = 50
	cfg.Scene.StarCount = 40
	cfg.Scene.GalaxyCount = 30
	fades := fade.NewController()
	return scene.New(cfg.Scene, fades, zaptest.NewLogger(t)), fades, cfg
}

func TestBatchAddAndReset(t *testing.T) {
	var b Batch
	b.Add(math.V3(1, 2, 3), scene.RGB{0.1, 0.2, 0.3}, 4, 0.5)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, []float32{1, 2, 3, 0.1, 0.2, 0.3, 4, 0.5}, b.Data)

	b.Reset()
	assert.Zero(t, b.Len())
	assert.GreaterOrEqual(t, cap(b.Data), Stride)
}

func TestBackdropClouds(t *testing.T) {
	s, _, cfg := newScene(t)
	var b Batch

	Explosion(&b, s.Explosion)
	assert.Equal(t, cfg.Scene.ExplosionCount, b.Len())

	b.Reset()
	Stars(&b, s.Stars)
	assert.Equal(t, cfg.Scene.StarCount, b.Len())

	b.Reset()
	Galaxy(&b, s.Galaxy)
	Nebula(&b, s.Nebula)
	assert.Zero(t, b.Len(), "no backdrop before dive-in")

	require.True(t, s.SpawnBackdrop(0))
	Galaxy(&b, s.Galaxy)
	assert.Equal(t, cfg.Scene.GalaxyCount, b.Len())

	b.Reset()
	Nebula(&b, s.Nebula)
	require.Equal(t, len(s.Nebula.Patches), b.Len())
	assert.Equal(t, s.Nebula.Patches[0].Radius*2, b.Data[6])
}

func TestEntitiesSkipLightsAndInvisible(t *testing.T) {
	s, fades, cfg := newScene(t)
	sun, ok := cfg.Destination("sun")
	require.True(t, ok)
	s.AddModel(sun, nil, 0)

	var b Batch
	fades.Update(0)
	Entities(&b, s.Entities(), 0)
	assert.Zero(t, b.Len(), "nothing is visible before the fade starts")

	fades.Update(cfg.Scene.FadeDuration + time.Second)
	Entities(&b, s.Entities(), 0)
	require.Equal(t, 2, b.Len(), "sun and glow, no light")

	body := s.Entity("sun")
	assert.Equal(t, body.Scale, b.Data[6])
	assert.InDelta(t, 1, b.Data[7], 1e-6)
	assert.InDelta(t, cfg.Scene.GlowOpacity, b.Data[Stride+7], 0.031)
}

func TestMarkersPulse(t *testing.T) {
	s, _, cfg := newScene(t)
	earth, ok := cfg.Destination("earth")
	require.True(t, ok)
	s.AddModel(earth, nil, 0)

	var b Batch
	Markers(&b, s.Markers(), 0)
	require.Equal(t, 1, b.Len())

	pos := s.Markers()[0].Position()
	assert.Equal(t, []float32{pos.X, pos.Y, pos.Z}, b.Data[:3])
	assert.InDelta(t, MarkerSize, b.Data[6], 1e-6)
}
