package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nholstein/passphrase"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PASSPHRASE_SIM_CONFIG", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	policy, err := cfg.OverflowPolicy()
	require.NoError(t, err)
	assert.Equal(t, passphrase.OverflowReject, policy)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	err := os.WriteFile(path, []byte(`
log_level: debug
log_format: json
label: from file
protect: false
overflow: truncate
`), 0o600)
	require.NoError(t, err)

	t.Setenv("PASSPHRASE_SIM_CONFIG", "")
	t.Setenv("PASSPHRASE_SIM_LABEL", "from env")
	t.Setenv("PASSPHRASE_SIM_PROTECT", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "from env", cfg.Label)
	assert.True(t, cfg.Protect)

	policy, err := cfg.OverflowPolicy()
	require.NoError(t, err)
	assert.Equal(t, passphrase.OverflowTruncate, policy)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("PASSPHRASE_SIM_CONFIG", "")

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"log level", map[string]string{"PASSPHRASE_SIM_LOG_LEVEL": "chatty"}},
		{"log format", map[string]string{"PASSPHRASE_SIM_LOG_FORMAT": "xml"}},
		{"overflow", map[string]string{"PASSPHRASE_SIM_OVERFLOW": "wrap"}},
		{"missing secret", map[string]string{"PASSPHRASE_SIM_STORE_PATH": "settings.cbor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig()
	cfg.LogFormat = "json"

	logger := cfg.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"key":"value"`)
}
