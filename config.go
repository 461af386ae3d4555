package grasp

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the arbitration thresholds and diagnostics switches of a
// System. Lengths are in scene units. RayLength bounds how far along its
// ray a pointer method is tested.
type Config struct {
	CaptureDistance float64 `yaml:"capture_distance" env:"GRASP_CAPTURE_DISTANCE"`
	PinchReach      float64 `yaml:"pinch_reach" env:"GRASP_PINCH_REACH"`
	GrabSeparation  float64 `yaml:"grab_separation" env:"GRASP_GRAB_SEPARATION"`
	PinchStartScale float64 `yaml:"pinch_start_scale" env:"GRASP_PINCH_START_SCALE"`
	ScrollStep      float64 `yaml:"scroll_step" env:"GRASP_SCROLL_STEP"`
	RayLength       float64 `yaml:"ray_length" env:"GRASP_RAY_LENGTH"`

	Debug    bool   `yaml:"debug" env:"GRASP_DEBUG"`
	LogLevel string `yaml:"log_level" env:"GRASP_LOG_LEVEL"`
}

// ErrInvalidConfig is returned by Validate for unusable thresholds.
var ErrInvalidConfig = errors.New("grasp: invalid config")

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		CaptureDistance: DefaultCaptureDistance,
		PinchReach:      DefaultPinchReach,
		GrabSeparation:  GrabSeparation,
		PinchStartScale: DefaultPinchStartScale,
		ScrollStep:      DefaultScrollStep,
		RayLength:       DefaultRayLength,
		LogLevel:        "info",
	}
}

// LoadConfig reads a YAML file over DefaultConfig and then applies GRASP_*
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative distances and a pinch start scale below 1.
func (c Config) Validate() error {
	switch {
	case c.CaptureDistance < 0:
		return fmt.Errorf("%w: capture_distance %v < 0", ErrInvalidConfig, c.CaptureDistance)
	case c.PinchReach < 0:
		return fmt.Errorf("%w: pinch_reach %v < 0", ErrInvalidConfig, c.PinchReach)
	case c.GrabSeparation < 0:
		return fmt.Errorf("%w: grab_separation %v < 0", ErrInvalidConfig, c.GrabSeparation)
	case c.RayLength < 0:
		return fmt.Errorf("%w: ray_length %v < 0", ErrInvalidConfig, c.RayLength)
	case c.PinchStartScale < 1:
		return fmt.Errorf("%w: pinch_start_scale %v < 1", ErrInvalidConfig, c.PinchStartScale)
	}
	return nil
}
