// Package config loads runtime settings from an optional YAML file and
// KNOT_-prefixed environment variables. Environment wins over the file
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/knot-runner/motion"
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/traversal"
	"github.com/lixenwraith/knot-runner/vmath"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "KNOT_"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	// Level is a level file path; empty selects the bundled default
	Level string `yaml:"level" env:"LEVEL"`
	// Seed drives the dice; 0 seeds from the clock
	Seed uint64 `yaml:"seed" env:"SEED"`

	Traversal TraversalConfig `yaml:"traversal" envPrefix:"TRAVERSAL_"`
	Audio     AudioConfig     `yaml:"audio" envPrefix:"AUDIO_"`
	Metrics   MetricsConfig   `yaml:"metrics" envPrefix:"METRICS_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
}

type TraversalConfig struct {
	MoveSpeed    float64 `yaml:"move_speed" env:"MOVE_SPEED"`
	MovementLerp float64 `yaml:"movement_lerp" env:"MOVEMENT_LERP"`
	RotationLerp float64 `yaml:"rotation_lerp" env:"ROTATION_LERP"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	MasterVolume float64 `yaml:"master_volume" env:"MASTER_VOLUME"`
	SampleRate   int     `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

type MetricsConfig struct {
	// Addr is the listen address for /metrics during play; empty disables the server
	Addr string `yaml:"addr" env:"ADDR"`
}

type LogConfig struct {
	Debug bool   `yaml:"debug" env:"DEBUG"`
	Dir   string `yaml:"dir" env:"DIR"`
}

func Default() *Config {
	return &Config{
		Traversal: TraversalConfig{
			MoveSpeed:    parameter.TraversalMoveSpeed,
			MovementLerp: parameter.TraversalMovementLerp,
			RotationLerp: parameter.TraversalRotationLerp,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: parameter.AudioMasterVolume,
			SampleRate:   parameter.AudioSampleRate,
		},
		Log: LogConfig{
			Dir: "logs",
		},
	}
}

// Load applies defaults, then the YAML file at path (if non-empty), then the environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidConfig, path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: parse env: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Traversal.MoveSpeed <= 0:
		return fmt.Errorf("%w: traversal.move_speed must be positive, got %g", ErrInvalidConfig, c.Traversal.MoveSpeed)
	case c.Traversal.MovementLerp <= 0:
		return fmt.Errorf("%w: traversal.movement_lerp must be positive, got %g", ErrInvalidConfig, c.Traversal.MovementLerp)
	case c.Traversal.RotationLerp <= 0:
		return fmt.Errorf("%w: traversal.rotation_lerp must be positive, got %g", ErrInvalidConfig, c.Traversal.RotationLerp)
	case c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1:
		return fmt.Errorf("%w: audio.master_volume must be in [0,1], got %g", ErrInvalidConfig, c.Audio.MasterVolume)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: audio.sample_rate must be positive, got %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	return nil
}

// TraversalEngine returns the engine tuning
func (c *Config) TraversalEngine() traversal.Config {
	return traversal.Config{MoveSpeed: c.Traversal.MoveSpeed}
}

// Motion returns the interpolation driver tuning
func (c *Config) Motion() motion.Config {
	return motion.Config{
		MovementLerp: c.Traversal.MovementLerp,
		RotationLerp: c.Traversal.RotationLerp,
		Up:           vmath.V3FUp,
	}
}
