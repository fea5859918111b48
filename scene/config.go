package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/cubefall/physics"
)

// Config holds every tunable of the scene. Zero-valued YAML fields keep the
// defaults from DefaultConfig.
type Config struct {
	// Seed for the random source; 0 picks one at startup.
	Seed     uint64         `yaml:"seed"`
	Window   WindowConfig   `yaml:"window"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Despawn  DespawnConfig  `yaml:"despawn"`
	Platform PlatformConfig `yaml:"platform"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Label    LabelConfig    `yaml:"label"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type SpawnConfig struct {
	// Interval between cubes in seconds.
	Interval float64 `yaml:"interval"`
	Height   float64 `yaml:"height"`
	// Radius bounds the horizontal offset from the origin.
	Radius      float64 `yaml:"radius"`
	Size        float64 `yaml:"size"`
	Restitution float64 `yaml:"restitution"`
	// MaxSpin bounds the initial angular velocity in rad/s.
	MaxSpin float64 `yaml:"max_spin"`
}

type DespawnConfig struct {
	Threshold float64 `yaml:"threshold"`
}

type PlatformConfig struct {
	Radius      float64 `yaml:"radius"`
	Thickness   float64 `yaml:"thickness"`
	Y           float64 `yaml:"y"`
	Restitution float64 `yaml:"restitution"`
}

type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
	Timestep   float64 `yaml:"timestep"`
}

type CameraConfig struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	ViewHeight float64 `yaml:"view_height"`
}

type LightConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Intensity float64 `yaml:"intensity"`
	Range     float64 `yaml:"range"`
	Ambient   float64 `yaml:"ambient"`
}

type LabelConfig struct {
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Size   float64 `yaml:"size"`
}

// DefaultConfig returns the stock scene.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "cubefall",
			Width:  1280,
			Height: 720,
		},
		Spawn: SpawnConfig{
			Interval:    0.1,
			Height:      20,
			Radius:      4,
			Size:        0.6,
			Restitution: 0.6,
		},
		Despawn: DespawnConfig{
			Threshold: -20,
		},
		Platform: PlatformConfig{
			Radius:      10,
			Thickness:   0.1,
			Y:           -2,
			Restitution: 0.4,
		},
		Physics: PhysicsConfig{
			Gravity:    physics.DefaultGravity,
			Iterations: 10,
			Timestep:   physics.DefaultTimestep,
		},
		Camera: CameraConfig{
			X:          -5.5,
			Y:          5.5,
			ViewHeight: 46,
		},
		Light: LightConfig{
			X:         4,
			Y:         8,
			Intensity: 1,
			Range:     30,
			Ambient:   0.35,
		},
		Label: LabelConfig{
			Left:   12,
			Bottom: 12,
			Size:   20,
		},
	}
}

// ParseConfig decodes YAML on top of the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every setting that would make the scene misbehave.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("spawn.interval", c.Spawn.Interval)
	positive("spawn.size", c.Spawn.Size)
	positive("platform.radius", c.Platform.Radius)
	positive("platform.thickness", c.Platform.Thickness)
	positive("physics.timestep", c.Physics.Timestep)
	positive("camera.view_height", c.Camera.ViewHeight)

	if c.Spawn.Radius < 0 {
		errs = append(errs, fmt.Errorf("spawn.radius must not be negative, got %v", c.Spawn.Radius))
	}
	if c.Spawn.MaxSpin < 0 {
		errs = append(errs, fmt.Errorf("spawn.max_spin must not be negative, got %v", c.Spawn.MaxSpin))
	}
	if c.Spawn.Height <= c.Despawn.Threshold {
		errs = append(errs, fmt.Errorf("spawn.height %v must be above despawn.threshold %v", c.Spawn.Height, c.Despawn.Threshold))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// ApplyTunables copies the settings that can change while the scene runs.
// Platform, physics and window settings only take effect at startup.
func (c *Config) ApplyTunables(next Config) {
	c.Spawn = next.Spawn
	c.Despawn = next.Despawn
	c.Light = next.Light
	c.Label = next.Label
}

// PhysicsSettings converts the physics section for the solver.
func (c Config) PhysicsSettings() physics.Settings {
	settings := physics.DefaultSettings()
	settings.Gravity = c.Physics.Gravity
	settings.Iterations = c.Physics.Iterations
	settings.Timestep = c.Physics.Timestep
	return settings
}
