package sim

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/orrery/internal/app"
	"github.com/Faultbox/orrery/internal/config"
)

const ms = time.Millisecond

func newOrrery(t *testing.T, cfg *config.Config) *app.Orrery {
	cfg.Scene.ExplosionCount = 20
	cfg.Scene.StarCount = 20
	cfg.Scene.GalaxyCount = 20
	o := app.New(cfg, InstantLoader{}, zaptest.NewLogger(t))
	t.Cleanup(o.Close)
	return o
}

func find(obs []Observation, prefix string) (Observation, bool) {
	for _, ob := range obs {
		if strings.HasPrefix(ob.What, prefix) {
			return ob, true
		}
	}
	return Observation{}, false
}

func TestRunIntroTimeline(t *testing.T) {
	cfg := config.Default()
	o := newOrrery(t, cfg)

	obs, err := Run(o, Options{Duration: 18 * time.Second, FPS: 50})
	require.NoError(t, err)

	ob, ok := find(obs, "backdrop spawned")
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, ob.At)

	ob, ok = find(obs, "flight started")
	require.True(t, ok)
	assert.Equal(t, 9*time.Second, ob.At)

	approach := cfg.Scene.Approach
	ob, ok = find(obs, "flight landed at "+vec(approach.Position)+" looking at "+vec(approach.LookAt))
	require.True(t, ok, "approach flight should land: %v", obs)
	assert.Equal(t, 17*time.Second, ob.At)
}

func TestRunTour(t *testing.T) {
	cfg := config.Default()
	cfg.Tour = config.TourConfig{
		Stops: []config.TourStop{
			{Destination: "sun", DurationHint: 1000 * ms},
			{Destination: "mercury", DurationHint: 1000 * ms},
		},
		Pause:          500 * ms,
		ReturnDelay:    2 * time.Second,
		ReturnDuration: 4 * time.Second,
	}
	require.Equal(t, 9*time.Second, TourLength(cfg.Tour))

	o := newOrrery(t, cfg)
	obs, err := Run(o, Options{Duration: TourLength(cfg.Tour), FPS: 50, Tour: true})
	require.NoError(t, err)

	assert.Equal(t, `caption "Touring Sun (1/2)"`, obs[1].What)

	ob, ok := find(obs, "tour Running(0) -> Running(1)")
	require.True(t, ok)
	assert.Equal(t, 1500*ms, ob.At)

	ob, ok = find(obs, "tour Running(1) -> Idle")
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, ob.At)

	_, ok = find(obs, `caption "Tour complete"`)
	assert.True(t, ok)

	last := obs[len(obs)-1]
	home := cfg.Scene.SolarSystem
	assert.Equal(t, "flight landed at "+vec(home.Position)+" looking at "+vec(home.LookAt), last.What)
	assert.Equal(t, 9*time.Second, last.At)
}

func TestRunUnknownDestination(t *testing.T) {
	o := newOrrery(t, config.Default())
	_, err := Run(o, Options{Duration: time.Second, Navigate: "vulcan"})
	assert.ErrorIs(t, err, app.ErrUnknownDestination)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, []Observation{{At: 1500 * ms, What: "tour Idle -> Running(0)"}}))
	assert.Equal(t, "    1.500s  tour Idle -> Running(0)\n", buf.String())
}
