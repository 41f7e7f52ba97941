package ease

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurvesHitEndpoints(t *testing.T) {
	curves := map[string]Func{
		"linear":     Linear,
		"in-quad":    InQuad,
		"in-out-fly": InOutFlight,
	}

	for name, fn := range curves {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, float32(0), fn(0))
			assert.Equal(t, float32(1), fn(1))
		})
	}
}

func TestCurvesAreMonotone(t *testing.T) {
	for name, fn := range map[string]Func{"in-quad": InQuad, "in-out-fly": InOutFlight} {
		t.Run(name, func(t *testing.T) {
			prev := fn(0)
			for i := 1; i <= 1000; i++ {
				cur := fn(float32(i) / 1000)
				assert.GreaterOrEqual(t, cur, prev, "step %d", i)
				prev = cur
			}
		})
	}
}

func TestInOutFlightMidpoint(t *testing.T) {
	assert.Equal(t, float32(0.5), InOutFlight(0.5))
	assert.Equal(t, float32(0.125), InOutFlight(0.25))
	assert.InDelta(t, 0.9921875, InOutFlight(0.875), 1e-6)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name              string
		elapsed, duration float32
		want              float32
	}{
		{"before start", -1, 3, 0},
		{"start", 0, 3, 0},
		{"halfway", 1.5, 3, 0.5},
		{"end", 3, 3, 1},
		{"past end", 10, 3, 1},
		{"zero duration", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(tt.elapsed, tt.duration))
		})
	}
}
