// Package ease provides the easing curves used by fades and camera flights.
//
// Every curve maps linear progress in [0, 1] onto [0, 1], is monotone, and
// returns exactly 0 and 1 at the endpoints.
package ease

import "github.com/chewxy/math32"

// Func remaps linear progress.
type Func func(p float32) float32

// Linear leaves progress unchanged.
func Linear(p float32) float32 {
	return p
}

// InQuad is the quadratic ease-in used by fade envelopes: p².
func InQuad(p float32) float32 {
	return p * p
}

// InOutFlight is the camera flight curve.
//
//	p < 0.5:  2p²
//	p >= 0.5: 1 - (-2p + 2)³ / 2
//
// The halves are quadratic and cubic respectively; both meet at 0.5.
func InOutFlight(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math32.Pow(-2*p+2, 3)/2
}

// Progress returns clamped linear progress of elapsed over duration.
// A non-positive duration is always complete.
func Progress(elapsed, duration float32) float32 {
	if duration <= 0 {
		return 1
	}
	p := elapsed / duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
