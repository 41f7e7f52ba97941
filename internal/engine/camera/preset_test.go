package camera

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/orrery/pkg/math"
)

func TestPresetResolve(t *testing.T) {
	tests := []struct {
		name   string
		preset Preset
		anchor math.Vec3
		scale  float32
		want   math.Vec3
	}{
		{
			name:   "sun close-up uses scale",
			preset: UltraCloseUp,
			anchor: math.V3(0, 0, -200),
			scale:  20,
			want:   math.V3(160, 48, -72),
		},
		{
			name:   "close-up minimum distance",
			preset: UltraCloseUp,
			anchor: math.V3(0, 0, 0),
			scale:  1,
			want:   math.V3(15, 4.5, 12),
		},
		{
			name:   "black hole establishing shot",
			preset: ZoomToObject,
			anchor: math.V3(1000, 300, 800),
			scale:  15,
			want:   math.V3(3250, 1800, 5300),
		},
		{
			name: "mercury custom framing",
			preset: Preset{
				MinDistance: 15, Multiplier: 10,
				SideFactor: 1.5, ElevationFactor: 1, DistanceFactor: 3,
			},
			anchor: math.V3(1500, 0, -200),
			scale:  2,
			want:   math.V3(1530, 20, -140),
		},
		{
			name: "venus tight framing",
			preset: Preset{
				MinDistance: 6, Multiplier: 4,
				SideFactor: 0.8, ElevationFactor: 0.5, DistanceFactor: 1.5,
			},
			anchor: math.V3(0, 0, 0),
			scale:  1,
			want:   math.V3(4.8, 3, 9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, look := tt.preset.Resolve(tt.anchor, tt.scale)
			assert.InDelta(t, 0, pos.Distance(tt.want), 1e-3, "got %v want %v", pos, tt.want)
			assert.Equal(t, tt.anchor, look)
		})
	}
}

func TestFlyToUsesPresetDuration(t *testing.T) {
	fc := NewFlightController(burstRig())

	f := fc.FlyTo(UltraCloseUp, math.V3(0, 0, -200), 20, 0, time.Second)
	assert.Equal(t, UltraCloseUp.Duration, f.Duration)

	f = fc.FlyTo(ZoomToObject, math.V3(1000, 300, 800), 15, 3500*time.Millisecond, time.Second)
	assert.Equal(t, 3500*time.Millisecond, f.Duration)
	assert.Equal(t, math.V3(1000, 300, 800), f.TargetLookAt)
}

func TestNamedPresets(t *testing.T) {
	p, ok := Named("closeup")
	assert.True(t, ok)
	assert.Equal(t, UltraCloseUp, p)

	p, ok = Named("zoom_to_object")
	assert.True(t, ok)
	assert.Equal(t, ZoomToObject, p)

	_, ok = Named("dolly-zoom")
	assert.False(t, ok)
	assert.True(t, Preset{}.IsZero())
}
