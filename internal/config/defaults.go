package config

import "github.com/spf13/viper"

// setDefaults sets the values used for keys missing from file and environment
func setDefaults(v *viper.Viper) {
	v.SetDefault("auto_creation.enabled", true)
	v.SetDefault("lazy_creation.enabled", true)

	v.SetDefault("tokens.auto_creations_enabled", true)
	v.SetDefault("tokens.max_per_account", 1000)
	v.SetDefault("tokens.max_custom_fee_depth", 2)

	v.SetDefault("entities.unlimited_auto_associations_enabled", true)
	v.SetDefault("entities.limit_token_associations", false)

	v.SetDefault("accounts.max_number", 20_000_000)

	v.SetDefault("ledger.transfers_max_len", 10)
	v.SetDefault("ledger.token_transfers_max_len", 10)
	v.SetDefault("ledger.nft_transfers_max_len", 10)
	v.SetDefault("ledger.xfer_balance_changes_max_len", 20)
	v.SetDefault("ledger.shard", 0)
	v.SetDefault("ledger.realm", 0)

	v.SetDefault("state.backend", "memory")
	v.SetDefault("state.path", "")
	v.SetDefault("state.cache_size", 4096)
	v.SetDefault("state.compression", "lz4")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.enabled", false)
}
