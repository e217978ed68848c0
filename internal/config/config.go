package config

import (
	"path/filepath"

	"github.com/LeJamon/goHederad/internal/core/tx"
)

// Config represents the complete hederad configuration
type Config struct {
	AutoCreation AutoCreationConfig `toml:"auto_creation" mapstructure:"auto_creation"`
	LazyCreation LazyCreationConfig `toml:"lazy_creation" mapstructure:"lazy_creation"`
	Tokens       TokensConfig       `toml:"tokens" mapstructure:"tokens"`
	Entities     EntitiesConfig     `toml:"entities" mapstructure:"entities"`
	Accounts     AccountsConfig     `toml:"accounts" mapstructure:"accounts"`
	Ledger       LedgerConfig       `toml:"ledger" mapstructure:"ledger"`

	State   StateConfig   `toml:"state" mapstructure:"state"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
	Metrics MetricsConfig `toml:"metrics" mapstructure:"metrics"`

	configPath string `toml:"-" mapstructure:"-"`
}

// AutoCreationConfig represents the [auto_creation] section
type AutoCreationConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled"`
}

// LazyCreationConfig represents the [lazy_creation] section
type LazyCreationConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled"`
}

// TokensConfig represents the [tokens] section
type TokensConfig struct {
	AutoCreationsEnabled bool   `toml:"auto_creations_enabled" mapstructure:"auto_creations_enabled"`
	MaxPerAccount        uint32 `toml:"max_per_account" mapstructure:"max_per_account"`
	MaxCustomFeeDepth    int    `toml:"max_custom_fee_depth" mapstructure:"max_custom_fee_depth"`
}

// EntitiesConfig represents the [entities] section
type EntitiesConfig struct {
	UnlimitedAutoAssociationsEnabled bool `toml:"unlimited_auto_associations_enabled" mapstructure:"unlimited_auto_associations_enabled"`
	LimitTokenAssociations           bool `toml:"limit_token_associations" mapstructure:"limit_token_associations"`
}

// AccountsConfig represents the [accounts] section
type AccountsConfig struct {
	MaxNumber int64 `toml:"max_number" mapstructure:"max_number"`
}

// LedgerConfig represents the [ledger] section
// Size ceilings for a single transfer and the shard/realm of new entities
type LedgerConfig struct {
	TransfersMaxLen          int   `toml:"transfers_max_len" mapstructure:"transfers_max_len"`
	TokenTransfersMaxLen     int   `toml:"token_transfers_max_len" mapstructure:"token_transfers_max_len"`
	NftTransfersMaxLen       int   `toml:"nft_transfers_max_len" mapstructure:"nft_transfers_max_len"`
	XferBalanceChangesMaxLen int   `toml:"xfer_balance_changes_max_len" mapstructure:"xfer_balance_changes_max_len"`
	Shard                    int64 `toml:"shard" mapstructure:"shard"`
	Realm                    int64 `toml:"realm" mapstructure:"realm"`
}

// DefaultConfigPath returns the config file looked up when none is given
func DefaultConfigPath() string {
	return "hederad.toml"
}

// ConfigPathFromDir returns the config file path inside configDir
func ConfigPathFromDir(configDir string) string {
	return filepath.Join(configDir, DefaultConfigPath())
}

// GetConfigPath returns the path the configuration was loaded from, or ""
// when only defaults and environment were used
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// EngineConfig converts the configuration into the engine's runtime limits
// and feature flags.
func (c *Config) EngineConfig() tx.EngineConfig {
	return tx.EngineConfig{
		Shard:                            c.Ledger.Shard,
		Realm:                            c.Ledger.Realm,
		AutoCreationEnabled:              c.AutoCreation.Enabled,
		LazyCreationEnabled:              c.LazyCreation.Enabled,
		TokenAutoCreationsEnabled:        c.Tokens.AutoCreationsEnabled,
		MaxNumberOfAccounts:              c.Accounts.MaxNumber,
		UnlimitedAutoAssociationsEnabled: c.Entities.UnlimitedAutoAssociationsEnabled,
		LimitTokenAssociations:           c.Entities.LimitTokenAssociations,
		MaxTokensPerAccount:              c.Tokens.MaxPerAccount,
		MaxCustomFeeDepth:                c.Tokens.MaxCustomFeeDepth,
		MaxHbarTransfers:                 c.Ledger.TransfersMaxLen,
		MaxTokenTransfers:                c.Ledger.TokenTransfersMaxLen,
		MaxNftTransfers:                  c.Ledger.NftTransfersMaxLen,
		MaxXferBalanceChanges:            c.Ledger.XferBalanceChangesMaxLen,
	}
}
