package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ob6160/Bloch/decoherence"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.WindowWidth)
	assert.Equal(t, 800, cfg.WindowHeight)
	assert.Equal(t, float32(75), cfg.FOV)
	assert.Equal(t, decoherence.Parameters{Kappa: 0.1, Gamma: 0.05, InitialCoherence: 0.5}, cfg.Parameters())

	model, err := cfg.Model()
	require.NoError(t, err)
	assert.Equal(t, decoherence.DefaultModel(), model)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BLOCH_KAPPA", "0.3")
	t.Setenv("BLOCH_NOISE", "gaussian")
	t.Setenv("BLOCH_SEED", "42")
	t.Setenv("BLOCH_LOG_LEVEL", "debug")
	t.Setenv("BLOCH_SHADER_DIR", "/opt/bloch/shaders")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Kappa)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "/opt/bloch/shaders/sphere.frag", cfg.ShaderPath("sphere.frag"))

	model, err := cfg.Model()
	require.NoError(t, err)
	assert.Equal(t, decoherence.Gaussian, model.Noise)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unparsable float", "BLOCH_GAMMA", "fast"},
		{"zero ceiling", "BLOCH_MAX_COHERENCE", "0"},
		{"unknown noise", "BLOCH_NOISE", "pink"},
		{"bad level", "BLOCH_LOG_LEVEL", "chatty"},
		{"tiny sphere", "BLOCH_SPHERE_SEGMENTS", "2"},
		{"no frames", "BLOCH_FPS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
