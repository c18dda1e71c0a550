// Package config loads start-up settings from BLOCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/ob6160/Bloch/decoherence"
)

type Config struct {
	WindowWidth  int    `env:"WINDOW_WIDTH" envDefault:"1200"`
	WindowHeight int    `env:"WINDOW_HEIGHT" envDefault:"800"`
	ShaderDir    string `env:"SHADER_DIR" envDefault:"./shaders"`
	TargetFPS    int    `env:"FPS" envDefault:"60"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	FOV            float32 `env:"FOV" envDefault:"75"`
	CameraDistance float32 `env:"CAMERA_DISTANCE" envDefault:"5"`
	SphereSegments int     `env:"SPHERE_SEGMENTS" envDefault:"32"`
	ParticleCount  int     `env:"PARTICLES" envDefault:"1500"`

	Kappa            float64 `env:"KAPPA" envDefault:"0.1"`
	Gamma            float64 `env:"GAMMA" envDefault:"0.05"`
	InitialCoherence float64 `env:"INITIAL_COHERENCE" envDefault:"0.5"`
	MaxCoherence     float64 `env:"MAX_COHERENCE" envDefault:"0.5"`
	PrecessionRate   float64 `env:"PRECESSION_RATE" envDefault:"0.5"`
	Noise            string  `env:"NOISE" envDefault:"uniform"`
	Seed             int64   `env:"SEED" envDefault:"0"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "BLOCH_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}
	if c.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.TargetFPS))
	}
	if c.SphereSegments < 4 {
		errs = append(errs, fmt.Errorf("sphere segments must be at least 4, got %d", c.SphereSegments))
	}
	if c.ParticleCount < 0 {
		errs = append(errs, fmt.Errorf("particle count must not be negative, got %d", c.ParticleCount))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %v", c.FOV))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	model, err := c.Model()
	if err != nil {
		errs = append(errs, err)
	} else if err := model.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) Model() (decoherence.Model, error) {
	noise, err := decoherence.ParseDistribution(c.Noise)
	if err != nil {
		return decoherence.Model{}, err
	}
	return decoherence.Model{
		MaxCoherence:   c.MaxCoherence,
		PrecessionRate: c.PrecessionRate,
		Noise:          noise,
	}, nil
}

func (c Config) Parameters() decoherence.Parameters {
	return decoherence.Parameters{
		Kappa:            c.Kappa,
		Gamma:            c.Gamma,
		InitialCoherence: c.InitialCoherence,
	}
}

func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

func (c Config) ShaderPath(name string) string {
	return filepath.Join(c.ShaderDir, name)
}
