// Package scene holds everything the viewer draws: the intro burst, the star
// shell, the dive-in backdrop and the loaded models with their fade channels
// and per-frame motion.
package scene

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/fade"
	"github.com/Faultbox/orrery/pkg/math"
)

// Scene owns every drawable object. It is mutated only from the frame loop.
type Scene struct {
	cfg   config.SceneConfig
	rng   *rand.Rand
	fades *fade.Controller
	log   *zap.Logger

	Explosion *Explosion
	Stars     *Starfield
	Galaxy    *Galaxy // nil until the backdrop spawns
	Nebula    *Nebula

	entities []*Entity
	byID     map[string]*Entity
	markers  []*Marker
}

// New builds the burst and the star shell. Fade channels are registered
// with fades.
func New(cfg config.SceneConfig, fades *fade.Controller, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	s := &Scene{
		cfg:   cfg,
		rng:   rng,
		fades: fades,
		log:   log,
		byID:  make(map[string]*Entity),
	}
	s.Explosion = NewExplosion(rng, cfg.ExplosionCount, cfg.ExplosionSpeed)
	s.Stars = NewStarfield(rng, cfg.StarCount)
	return s
}

// SpawnBackdrop creates the galaxy and nebula, fading in from now. It
// returns false if the backdrop already exists.
func (s *Scene) SpawnBackdrop(now time.Duration) bool {
	if s.Galaxy != nil {
		return false
	}
	s.Galaxy = NewGalaxy(s.rng, s.cfg.GalaxyCount, s.cfg.GalaxyExtent)
	s.Galaxy.Opacity = s.fades.Add("galaxy", now, s.cfg.FadeDuration, s.cfg.GalaxyOpacity)

	s.Nebula = NewNebula(s.rng)
	s.Nebula.Opacity = s.fades.Add("nebula", now, s.cfg.FadeDuration, s.cfg.NebulaOpacity)

	s.log.Info("backdrop spawned",
		zap.Int("galaxy_points", len(s.Galaxy.Points)),
		zap.Int("nebula_patches", len(s.Nebula.Patches)),
	)
	return true
}

// AddModel places a loaded model and starts its fade channels at now. The sun
// brings its glow and light with it. Adding an id twice returns the existing
// entity.
func (s *Scene) AddModel(d config.Destination, model *assets.Model, now time.Duration) *Entity {
	if e, ok := s.byID[d.ID]; ok {
		return e
	}

	e := newModelEntity(d, d.Anchor(s.cfg.SunPosition), model, s.fades, now, s.cfg.FadeDuration)
	s.add(e)
	s.markers = append(s.markers, newMarker(e))

	if e.Kind == KindSun {
		glow := &Entity{
			ID:        d.ID + "-glow",
			Name:      d.Name + " glow",
			Kind:      KindGlow,
			Anchor:    e.Anchor,
			Position:  e.Position,
			Scale:     s.cfg.GlowRadius,
			BaseScale: s.cfg.GlowRadius,
			Color:     e.Color,
			follow:    e,
			goal:      s.cfg.GlowOpacity,
		}
		glow.Channels = []*fade.Target{s.fades.Add(glow.ID, now, s.cfg.FadeDuration, s.cfg.GlowOpacity)}
		s.add(glow)

		light := &Entity{
			ID:       d.ID + "-light",
			Name:     d.Name + " light",
			Kind:     KindLight,
			Anchor:   e.Anchor,
			Position: e.Position,
			Color:    Hex(0xffaa44),
			follow:   e,
			goal:     s.cfg.SunLightIntensity,
		}
		light.Channels = []*fade.Target{s.fades.Add(light.ID, now, s.cfg.FadeDuration, s.cfg.SunLightIntensity)}
		s.add(light)
	}

	s.log.Info("model placed",
		zap.String("id", e.ID),
		zap.Stringer("kind", e.Kind),
		zap.Int("channels", len(e.Channels)),
	)
	return e
}

func (s *Scene) add(e *Entity) {
	s.entities = append(s.entities, e)
	s.byID[e.ID] = e
}

// Entity returns the entity with the given id, or nil when it never loaded.
func (s *Scene) Entity(id string) *Entity {
	return s.byID[id]
}

// Entities returns every entity in arrival order.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

// Markers returns the coordinate markers.
func (s *Scene) Markers() []*Marker {
	return s.markers
}

// Step advances the particles by dt seconds; t is the elapsed time.
func (s *Scene) Step(dt, t float32) {
	s.Explosion.Step(dt)
	s.Stars.Step(t)
}

// Animate applies per-frame motion to every entity. Companions are added after
// the sun, so they follow its position for this frame.
func (s *Scene) Animate(t float32) {
	for _, e := range s.entities {
		e.Animate(t)
	}
}

// Labels projects every marker for the given camera.
func (s *Scene) Labels(viewProj math.Mat4, eye math.Vec3, width, height int, maxDistance float32) []Label {
	labels := make([]Label, 0, len(s.markers))
	for _, m := range s.markers {
		labels = append(labels, m.Project(viewProj, eye, width, height, maxDistance))
	}
	return labels
}
