package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 9, cfg.GetInt(ConfigSearchPlies))
	assert.True(t, cfg.GetBool(ConfigTranspositionTable))
	assert.False(t, cfg.GetBool(ConfigCacheTruncatedResults))
	assert.Equal(t, 1000, cfg.GetInt(ConfigSimRounds))
	assert.Equal(t, uint64(0), cfg.GetUint64(ConfigSimSeed))
}

func TestLoadFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := DefaultConfig()
	err := cfg.Load([]string{"--search-plies", "4", "--cache-truncated-results", "extra"})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.GetInt(ConfigSearchPlies))
	assert.True(t, cfg.GetBool(ConfigCacheTruncatedResults))
	assert.True(t, cfg.GetBool(ConfigTranspositionTable))
	assert.Equal(t, []string{"extra"}, cfg.Args())
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TICTACTOE_SIM_ROUNDS", "77")
	cfg := DefaultConfig()
	require.NoError(t, cfg.Load(nil))
	assert.Equal(t, 77, cfg.GetInt(ConfigSimRounds))
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	err := os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("transposition-table: false\nsim-seed: 42\n"), 0o644)
	require.NoError(t, err)
	cfg := DefaultConfig()
	require.NoError(t, cfg.Load(nil))
	assert.False(t, cfg.GetBool(ConfigTranspositionTable))
	assert.Equal(t, uint64(42), cfg.GetUint64(ConfigSimSeed))
}

func TestLoadBadFlag(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Load([]string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestSanitizedSettings(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.SanitizedSettings()
	assert.Contains(t, s, ConfigSearchPlies)
}
