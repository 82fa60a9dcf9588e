package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathAndMissingFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30.0, cfg.Scheduler.ChefLookahead)
	assert.Equal(t, 0.8, cfg.Conflicts.BottleneckThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "small_restaurant", cfg.Kitchen.Preset)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheduler:
  chef_lookahead_minutes: 45
log:
  level: debug
kitchen:
  preset: home
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45.0, cfg.Scheduler.ChefLookahead)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their defaults")
	assert.Equal(t, 0.8, cfg.Conflicts.BottleneckThreshold)
	assert.Equal(t, "home", cfg.Kitchen.Preset)
}

func TestParse_Clamps(t *testing.T) {
	cfg, err := Parse([]byte(`
scheduler:
  chef_lookahead_minutes: -5
conflicts:
  bottleneck_threshold: 3
log:
  level: loud
  format: xml
`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Scheduler.ChefLookahead)
	assert.Equal(t, 0.8, cfg.Conflicts.BottleneckThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"syntax":         "scheduler: [",
		"unknown key":    "scheduler:\n  tick_ms: 5\n",
		"unknown preset": "kitchen:\n  preset: castle\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.Error(t, err)
		})
	}
}
