package scene_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/cubefall/scene"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := scene.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.1, cfg.Spawn.Interval)
	assert.Equal(t, 20.0, cfg.Spawn.Height)
	assert.Equal(t, 4.0, cfg.Spawn.Radius)
	assert.Equal(t, 0.6, cfg.Spawn.Size)
	assert.Equal(t, 0.6, cfg.Spawn.Restitution)
	assert.Equal(t, -20.0, cfg.Despawn.Threshold)
	assert.Equal(t, 10.0, cfg.Platform.Radius)
	assert.Equal(t, 0.4, cfg.Platform.Restitution)
	assert.Equal(t, -2.0, cfg.Platform.Y)
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := scene.ParseConfig([]byte(`
seed: 42
spawn:
  interval: 0.5
  max_spin: 2
`))
	require.NoError(t, err)

	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 0.5, cfg.Spawn.Interval)
	assert.Equal(t, 2.0, cfg.Spawn.MaxSpin)
	assert.Equal(t, 20.0, cfg.Spawn.Height)
	assert.Equal(t, scene.DefaultConfig().Platform, cfg.Platform)
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	_, err := scene.ParseConfig([]byte(`
spawn:
  interval: -1
  height: -30
camera:
  view_height: 0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawn.interval")
	assert.Contains(t, err.Error(), "camera.view_height")
	assert.Contains(t, err.Error(), "despawn.threshold")
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	_, err := scene.ParseConfig([]byte("spawn: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubefall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("despawn:\n  threshold: -50\n"), 0o644))

	cfg, err := scene.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, -50.0, cfg.Despawn.Threshold)

	_, err = scene.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyTunablesLeavesStartupSettings(t *testing.T) {
	cfg := scene.DefaultConfig()
	next := scene.DefaultConfig()
	next.Spawn.Interval = 2
	next.Despawn.Threshold = -5
	next.Platform.Radius = 1
	next.Physics.Gravity = -1

	cfg.ApplyTunables(next)

	assert.Equal(t, 2.0, cfg.Spawn.Interval)
	assert.Equal(t, -5.0, cfg.Despawn.Threshold)
	assert.Equal(t, 10.0, cfg.Platform.Radius)
	assert.Equal(t, scene.DefaultConfig().Physics.Gravity, cfg.Physics.Gravity)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := scene.LoadConfig(filepath.Join("..", "config", "cubefall.yaml"))
	require.NoError(t, err)

	want := scene.DefaultConfig()
	assert.Equal(t, want.Spawn, cfg.Spawn)
	assert.Equal(t, want.Despawn, cfg.Despawn)
	assert.Equal(t, want.Platform, cfg.Platform)
	assert.Equal(t, want.Window, cfg.Window)
	assert.InDelta(t, want.Physics.Timestep, cfg.Physics.Timestep, 1e-12)
}
