package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goHederad/internal/core/tx"
)

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()

	mainConfigContent := `
[tokens]
max_per_account = 5
max_custom_fee_depth = 3

[entities]
limit_token_associations = true

[ledger]
transfers_max_len = 4
shard = 1
realm = 2

[state]
backend = "pebble"
path = "/tmp/hederad/state"
compression = "none"
`
	mainConfigPath := filepath.Join(tempDir, "hederad.toml")
	require.NoError(t, os.WriteFile(mainConfigPath, []byte(mainConfigContent), 0644))

	config, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, mainConfigPath, config.GetConfigPath())
	assert.Equal(t, uint32(5), config.Tokens.MaxPerAccount)
	assert.Equal(t, 3, config.Tokens.MaxCustomFeeDepth)
	assert.True(t, config.Entities.LimitTokenAssociations)
	assert.Equal(t, "pebble", config.State.Backend)
	assert.Equal(t, "/tmp/hederad/state", config.State.Path)
	assert.Equal(t, "none", config.State.Compression)

	// Keys missing from the file keep their defaults
	assert.True(t, config.AutoCreation.Enabled)
	assert.Equal(t, 10, config.Ledger.TokenTransfersMaxLen)
	assert.Equal(t, 4096, config.State.CacheSize)
	assert.Equal(t, "info", config.Log.Level)
}

func TestDefaultConfigMatchesEngineDefaults(t *testing.T) {
	config, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, tx.DefaultEngineConfig(), config.EngineConfig())
	assert.Equal(t, "memory", config.State.Backend)
	assert.False(t, config.Metrics.Enabled)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HEDERAD_LAZY_CREATION_ENABLED", "false")
	t.Setenv("HEDERAD_LEDGER_NFT_TRANSFERS_MAX_LEN", "7")
	t.Setenv("HEDERAD_LOG_LEVEL", "debug")

	config, err := DefaultConfig()
	require.NoError(t, err)

	engine := config.EngineConfig()
	assert.False(t, engine.LazyCreationEnabled)
	assert.True(t, engine.AutoCreationEnabled)
	assert.Equal(t, 7, engine.MaxNftTransfers)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		config, err := DefaultConfig()
		require.NoError(t, err)
		return config
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "zero transfer ceiling",
			mutate: func(c *Config) { c.Ledger.TransfersMaxLen = 0 },
			errMsg: "ledger.transfers_max_len must be at least 1",
		},
		{
			name:   "negative fee depth",
			mutate: func(c *Config) { c.Tokens.MaxCustomFeeDepth = -1 },
			errMsg: "max_custom_fee_depth",
		},
		{
			name:   "negative realm",
			mutate: func(c *Config) { c.Ledger.Realm = -1 },
			errMsg: "shard and realm",
		},
		{
			name:   "unknown backend",
			mutate: func(c *Config) { c.State.Backend = "leveldb" },
			errMsg: "invalid state backend",
		},
		{
			name:   "pebble without path",
			mutate: func(c *Config) { c.State.Backend = "pebble" },
			errMsg: "state path is required",
		},
		{
			name:   "unknown compression",
			mutate: func(c *Config) { c.State.Compression = "zstd" },
			errMsg: "invalid state compression",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Log.Level = "loud" },
			errMsg: "invalid log level",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Log.Format = "xml" },
			errMsg: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := ValidateConfig(config)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
