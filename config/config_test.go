package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/knot-runner/parameter"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knot-runner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, parameter.TraversalMoveSpeed, cfg.Traversal.MoveSpeed)
	assert.Equal(t, parameter.AudioSampleRate, cfg.Audio.SampleRate)
	assert.True(t, cfg.Audio.Enabled)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
level: levels/spiral.yaml
seed: 7
traversal:
  move_speed: 4.5
audio:
  enabled: false
metrics:
  addr: ":9102"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "levels/spiral.yaml", cfg.Level)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 4.5, cfg.Traversal.MoveSpeed)
	assert.Equal(t, parameter.TraversalMovementLerp, cfg.Traversal.MovementLerp, "unset keys keep defaults")
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, ":9102", cfg.Metrics.Addr)
	assert.Equal(t, 4.5, cfg.TraversalEngine().MoveSpeed)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "traversal:\n  move_speed: 4.5\n")
	t.Setenv("KNOT_TRAVERSAL_MOVE_SPEED", "12")
	t.Setenv("KNOT_AUDIO_MASTER_VOLUME", "0.25")
	t.Setenv("KNOT_LOG_DEBUG", "true")
	t.Setenv("KNOT_SEED", "99")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Traversal.MoveSpeed)
	assert.Equal(t, 0.25, cfg.Audio.MasterVolume)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, cfg.Traversal.RotationLerp, cfg.Motion().RotationLerp)
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown key", body: "traversal:\n  speed: 3\n"},
		{name: "zero speed", body: "traversal:\n  move_speed: 0\n"},
		{name: "negative lerp", body: "traversal:\n  rotation_lerp: -1\n"},
		{name: "loud", body: "audio:\n  master_volume: 1.5\n"},
		{name: "env not a number", env: map[string]string{"KNOT_TRAVERSAL_MOVE_SPEED": "fast"}},
		{name: "env bad sample rate", env: map[string]string{"KNOT_AUDIO_SAMPLE_RATE": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.body != "" {
				path = writeFile(t, tt.body)
			}
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
