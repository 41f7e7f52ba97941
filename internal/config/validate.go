package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/orrery/internal/engine/camera"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports every problem found in the config at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, invalid("window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, invalid("field of view %v degrees", c.Graphics.FOV))
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		errs = append(errs, invalid("clip planes near=%v far=%v", c.Graphics.Near, c.Graphics.Far))
	}

	s := c.Scene
	if s.BackdropAt < 0 || s.FadeDuration < 0 || s.AutoFlightDelay < 0 {
		errs = append(errs, invalid("scene timings must not be negative"))
	}
	if s.ExplosionCount < 0 || s.GalaxyCount < 0 || s.StarCount < 0 {
		errs = append(errs, invalid("particle counts must not be negative"))
	}

	if c.Tour.Pause < 0 || c.Tour.ReturnDelay < 0 || c.Tour.ReturnDuration < 0 {
		errs = append(errs, invalid("tour timings must not be negative"))
	}

	seen := make(map[string]bool, len(c.Destinations))
	for i, d := range c.Destinations {
		if d.ID == "" {
			errs = append(errs, invalid("destination %d has no id", i))
			continue
		}
		if seen[d.ID] {
			errs = append(errs, invalid("duplicate destination %q", d.ID))
		}
		seen[d.ID] = true

		switch d.Kind {
		case KindSun, KindBlackHole:
		case KindPlanet:
			if d.Distance <= 0 {
				errs = append(errs, invalid("planet %q needs a positive orbit distance", d.ID))
			}
		default:
			errs = append(errs, invalid("destination %q has unknown kind %q", d.ID, d.Kind))
		}
		if d.Scale <= 0 {
			errs = append(errs, invalid("destination %q needs a positive scale", d.ID))
		}
		if d.Preset != "" {
			if _, ok := camera.Named(d.Preset); !ok {
				errs = append(errs, invalid("destination %q has unknown preset %q", d.ID, d.Preset))
			}
		}
		if d.Opacity < 0 || d.Opacity > 1 {
			errs = append(errs, invalid("destination %q opacity %v outside [0, 1]", d.ID, d.Opacity))
		}
		if d.Camera.MinDistance < 0 || d.Camera.Multiplier < 0 || d.Camera.Duration < 0 {
			errs = append(errs, invalid("destination %q has a negative camera setting", d.ID))
		}
	}

	for i, stop := range c.Tour.Stops {
		if !seen[stop.Destination] {
			errs = append(errs, invalid("tour stop %d references unknown destination %q", i, stop.Destination))
		}
		if stop.DurationHint < 0 {
			errs = append(errs, invalid("tour stop %d has a negative duration hint", i))
		}
	}

	return errors.Join(errs...)
}
