package x_log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig covers the missing-file, valid and malformed cases.
func TestLoadConfig(t *testing.T) {
	t.Run("FileNotFound", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		assert.Equal(t, defaultConfig, *cfg)
	})

	t.Run("ValidConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xlog.json")
		data := `{
			"level": "debug",
			"style": "light",
			"to_file": true,
			"log_file": "logs/test.log",
			"max_size": 20
		}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "light", cfg.Style)
		assert.True(t, cfg.ToFile)
		assert.True(t, cfg.ToConsole)
		assert.Equal(t, "logs/test.log", cfg.LogFile)
		assert.Equal(t, 20, cfg.MaxSize)

		// unset values come from the defaults
		assert.Equal(t, defaultConfig.MaxBackups, cfg.MaxBackups)
		assert.Equal(t, defaultConfig.Format, cfg.Format)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{level"), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("EnvPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "env.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"level":"error"}`), 0o644))
		t.Setenv("XLOG_CONFIG", path)

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Level)
	})
}

func TestDefaultConfigIsCopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	assert.Equal(t, "info", defaultConfig.Level)
}
