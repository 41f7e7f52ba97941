// Package config handles orrery configuration loading and management.
package config

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/pkg/math"
)

// Config holds all orrery settings.
type Config struct {
	Graphics     GraphicsConfig `yaml:"graphics"`
	Scene        SceneConfig    `yaml:"scene"`
	Tour         TourConfig     `yaml:"tour"`
	UI           UIConfig       `yaml:"ui"`
	Assets       AssetsConfig   `yaml:"assets"`
	Session      SessionConfig  `yaml:"session"`
	Logging      LoggingConfig  `yaml:"logging"`
	Destinations []Destination  `yaml:"destinations"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // Degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// Framing is a fixed camera shot.
type Framing struct {
	Position math.Vec3     `yaml:"position"`
	LookAt   math.Vec3     `yaml:"look_at"`
	Duration time.Duration `yaml:"duration"`
}

// SceneConfig holds the intro timeline and backdrop settings.
type SceneConfig struct {
	Seed uint64 `yaml:"seed"`

	BackdropAt      time.Duration `yaml:"backdrop_at"`       // Galaxy spawn and model loads
	FadeDuration    time.Duration `yaml:"fade_duration"`     // Fade-in window for every channel
	AutoFlightDelay time.Duration `yaml:"auto_flight_delay"` // After the backdrop, before the approach shot

	SunPosition math.Vec3 `yaml:"sun_position"`
	Burst       Framing   `yaml:"burst"`
	Approach    Framing   `yaml:"approach"`
	Overview    Framing   `yaml:"overview"`
	SolarSystem Framing   `yaml:"solar_system"`

	ExplosionCount int     `yaml:"explosion_count"`
	ExplosionSpeed float32 `yaml:"explosion_speed"`
	GalaxyCount    int     `yaml:"galaxy_count"`
	GalaxyExtent   float32 `yaml:"galaxy_extent"`
	GalaxyOpacity  float32 `yaml:"galaxy_opacity"`
	StarCount      int     `yaml:"star_count"`
	NebulaOpacity  float32 `yaml:"nebula_opacity"`

	GlowRadius        float32 `yaml:"glow_radius"`
	GlowOpacity       float32 `yaml:"glow_opacity"`
	SunLightIntensity float32 `yaml:"sun_light_intensity"`
}

// TourStop is one stop of the cinematic tour.
type TourStop struct {
	Destination  string        `yaml:"destination"`
	DurationHint time.Duration `yaml:"duration_hint"`
}

// TourConfig holds the cinematic tour script.
type TourConfig struct {
	Stops          []TourStop    `yaml:"stops"`
	Pause          time.Duration `yaml:"pause"`
	ReturnDelay    time.Duration `yaml:"return_delay"`
	ReturnDuration time.Duration `yaml:"return_duration"`
}

// UIConfig holds overlay timing.
type UIConfig struct {
	PanelDelay time.Duration `yaml:"panel_delay"` // After arrival, before the info panel shows
	CaptionTTL time.Duration `yaml:"caption_ttl"`
	LabelRange float32       `yaml:"label_range"`
}

// AssetsConfig holds model locations.
type AssetsConfig struct {
	Root string `yaml:"root"`
}

// SessionConfig holds launch behavior.
type SessionConfig struct {
	AutoTour bool `yaml:"auto_tour"`
	Watch    bool `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Destination kinds.
const (
	KindSun       = "sun"
	KindBlackHole = "blackhole"
	KindPlanet    = "planet"
)

// Destination is one row of the tuning table: where an object sits, how it
// looks, and how the camera frames it.
type Destination struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	Distance  float32       `yaml:"distance"` // Orbit radius around the sun (planets)
	Angle     float32       `yaml:"angle"`    // Orbit angle in radians (planets)
	Position  math.Vec3     `yaml:"position"` // Fixed anchor (sun, black hole)
	Size      float32       `yaml:"size"`
	Scale     float32       `yaml:"scale"` // Nominal framing scale
	Spin      float32       `yaml:"spin"`  // Self-rotation per frame, radians
	Color     uint32        `yaml:"color"`
	Opacity   float32       `yaml:"opacity"` // Fade goal for the model's materials
	AssetPath string        `yaml:"asset_path"`
	Info      string        `yaml:"info"`
	Preset    string        `yaml:"preset"` // Built-in framing used when Camera is unset
	Camera    camera.Preset `yaml:"camera"`
}

// Anchor returns where the destination sits given the sun's position.
func (d Destination) Anchor(sun math.Vec3) math.Vec3 {
	if d.Kind == KindPlanet {
		return math.OnOrbit(sun, d.Distance, d.Angle)
	}
	return d.Position
}

// Framing returns the camera preset for the destination: the tuned Camera
// block, else the named built-in, else ZoomToObject.
func (d Destination) Framing() camera.Preset {
	if !d.Camera.IsZero() {
		return d.Camera
	}
	if p, ok := camera.Named(d.Preset); ok {
		return p
	}
	return camera.ZoomToObject
}

// Destination returns the destination with the given id.
func (c *Config) Destination(id string) (Destination, bool) {
	for _, d := range c.Destinations {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// planetFraming is the common planet shot; only the distances change.
func planetFraming(minDistance, multiplier float32, duration time.Duration) camera.Preset {
	return camera.Preset{
		MinDistance:     minDistance,
		Multiplier:      multiplier,
		SideFactor:      1.5,
		ElevationFactor: 1.0,
		DistanceFactor:  3.0,
		Duration:        duration,
	}
}

// DefaultDestinations returns the built-in tuning table.
func DefaultDestinations() []Destination {
	ms := time.Millisecond
	pi := math32.Pi

	sun := camera.UltraCloseUp
	sun.Duration = 3000 * ms
	blackHole := camera.ZoomToObject
	blackHole.Duration = 3500 * ms

	return []Destination{
		{
			ID: "sun", Name: "Sun", Kind: KindSun,
			Position: math.V3(0, 0, -200), Size: 2, Scale: 20, Spin: 0.008,
			Color: 0xffaa00, Opacity: 1.0, AssetPath: "sun/scene.gltf",
			Info:   "G-type main-sequence star holding 99.86% of the system's mass.",
			Camera: sun,
		},
		{
			ID: "blackhole", Name: "Black Hole", Kind: KindBlackHole,
			Position: math.V3(1000, 300, 800), Size: 2, Scale: 15, Spin: 0.005,
			Color: 0x800080, Opacity: 0.8, AssetPath: "blackholegltf/scene.gltf",
			Info:   "A region where gravity is strong enough that nothing escapes.",
			Camera: blackHole,
		},
		{
			ID: "mercury", Name: "Mercury", Kind: KindPlanet,
			Distance: 1500, Angle: 0, Size: 2.0, Scale: 2.0, Spin: 0.003,
			Color: 0x8c7853, Opacity: 1.0, AssetPath: "mercury/scene.gltf",
			Info:   "Smallest planet and closest to the Sun; a year lasts 88 days.",
			Camera: camera.Preset{MinDistance: 15, Multiplier: 10, SideFactor: 1.5, ElevationFactor: 1.0, DistanceFactor: 3.0, Duration: 2500 * ms},
		},
		{
			ID: "venus", Name: "Venus", Kind: KindPlanet,
			Distance: 2500, Angle: pi / 4, Size: 1.0, Scale: 1.0, Spin: 0,
			Color: 0xffc649, Opacity: 1.0, AssetPath: "venus/scene.gltf",
			Info:   "Hottest planet, wrapped in a runaway greenhouse atmosphere.",
			Camera: camera.Preset{MinDistance: 6, Multiplier: 4, SideFactor: 0.8, ElevationFactor: 0.5, DistanceFactor: 1.5, Duration: 3000 * ms},
		},
		{
			ID: "earth", Name: "Earth", Kind: KindPlanet,
			Distance: 3500, Angle: pi / 2, Size: 0.5, Scale: 0.5, Spin: 0.003,
			Color: 0x6b93d6, Opacity: 1.0, AssetPath: "earth/scene.gltf",
			Info:   "The only world known to host life; 71% of its surface is ocean.",
			Camera: planetFraming(80, 60, 3000*ms),
		},
		{
			ID: "mars", Name: "Mars", Kind: KindPlanet,
			Distance: 4500, Angle: 3 * pi / 4, Size: 2.0, Scale: 2.0, Spin: 0.003,
			Color: 0xcd5c5c, Opacity: 1.0, AssetPath: "mars_the_red_planet_free/scene.gltf",
			Info:   "The red planet, home of Olympus Mons.",
			Camera: planetFraming(8, 4, 3000*ms),
		},
		{
			ID: "jupiter", Name: "Jupiter", Kind: KindPlanet,
			Distance: 6000, Angle: pi, Size: 2.0, Scale: 2.0, Spin: 0.003,
			Color: 0xd8ca9d, Opacity: 1.0, AssetPath: "jupiter/scene.gltf",
			Info:   "Gas giant more than twice as massive as all other planets combined.",
			Camera: planetFraming(200, 100, 4000*ms),
		},
		{
			ID: "neptune", Name: "Neptune", Kind: KindPlanet,
			Distance: 8000, Angle: 7 * pi / 4, Size: 2.5, Scale: 2.5, Spin: 0.003,
			Color: 0x4b70dd, Opacity: 1.0, AssetPath: "neptune/scene.gltf",
			Info:   "Ice giant with the fastest winds in the Solar System.",
			Camera: planetFraming(150, 120, 3500*ms),
		},
		{
			ID: "pluto", Name: "Pluto", Kind: KindPlanet,
			Distance: 10000, Angle: 2 * pi / 3, Size: 2.0, Scale: 2.0, Spin: 0.003,
			Color: 0xbc8f8f, Opacity: 0.9, AssetPath: "pluto/scene.gltf",
			Info:   "Dwarf planet in the Kuiper belt with a heart-shaped nitrogen glacier.",
			Camera: planetFraming(200, 150, 3000*ms),
		},
	}
}

// DefaultTourStops returns the tour route from the Sun outward.
func DefaultTourStops() []TourStop {
	ids := []string{"sun", "mercury", "venus", "earth", "mars", "jupiter", "neptune", "pluto"}
	stops := make([]TourStop, len(ids))
	for i, id := range ids {
		stops[i] = TourStop{Destination: id, DurationHint: 4000 * time.Millisecond}
	}
	return stops
}

// Default returns a Config with sensible default values.
func Default() *Config {
	sun := math.V3(0, 0, -200)
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        50,
			Near:       0.1,
			Far:        20000,
		},
		Scene: SceneConfig{
			Seed:            1,
			BackdropAt:      5 * time.Second,
			FadeDuration:    3 * time.Second,
			AutoFlightDelay: 4 * time.Second,
			SunPosition:     sun,
			Burst:           Framing{Position: math.V3(0, 0, 200), LookAt: sun, Duration: 2 * time.Second},
			Approach:        Framing{Position: math.V3(0, 0, -100), LookAt: sun, Duration: 8 * time.Second},
			Overview:        Framing{Position: math.V3(3000, 2500, 1500), LookAt: sun, Duration: 2 * time.Second},
			SolarSystem:     Framing{Position: math.V3(3000, 2000, 1000), LookAt: sun, Duration: 2 * time.Second},
			ExplosionCount:  20000,
			ExplosionSpeed:  50,
			GalaxyCount:     8000,
			GalaxyExtent:    6000,
			GalaxyOpacity:   0.6,
			StarCount:       15000,
			NebulaOpacity:   0.4,

			GlowRadius:        35,
			GlowOpacity:       0.3,
			SunLightIntensity: 1.5,
		},
		Tour: TourConfig{
			Stops:          DefaultTourStops(),
			Pause:          1500 * time.Millisecond,
			ReturnDelay:    2 * time.Second,
			ReturnDuration: 4 * time.Second,
		},
		UI: UIConfig{
			PanelDelay: 500 * time.Millisecond,
			CaptionTTL: 3 * time.Second,
			LabelRange: 5000,
		},
		Assets: AssetsConfig{
			Root: "assets",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Destinations: DefaultDestinations(),
	}
}
