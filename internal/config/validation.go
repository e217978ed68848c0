package config

import "fmt"

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := validateLimits(config); err != nil {
		return fmt.Errorf("limits validation failed: %w", err)
	}

	if err := config.State.Validate(); err != nil {
		return fmt.Errorf("state validation failed: %w", err)
	}

	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}
	return nil
}

// validateLimits checks the transfer ceilings and entity numbering
func validateLimits(config *Config) error {
	ledger := config.Ledger
	positive := []struct {
		name  string
		value int
	}{
		{"ledger.transfers_max_len", ledger.TransfersMaxLen},
		{"ledger.token_transfers_max_len", ledger.TokenTransfersMaxLen},
		{"ledger.nft_transfers_max_len", ledger.NftTransfersMaxLen},
		{"ledger.xfer_balance_changes_max_len", ledger.XferBalanceChangesMaxLen},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", p.name, p.value)
		}
	}

	if config.Tokens.MaxCustomFeeDepth < 0 {
		return fmt.Errorf("tokens.max_custom_fee_depth must be non-negative, got %d", config.Tokens.MaxCustomFeeDepth)
	}
	if config.Accounts.MaxNumber < 0 {
		return fmt.Errorf("accounts.max_number must be non-negative, got %d", config.Accounts.MaxNumber)
	}
	if ledger.Shard < 0 || ledger.Realm < 0 {
		return fmt.Errorf("shard and realm must be non-negative, got %d.%d", ledger.Shard, ledger.Realm)
	}
	return nil
}
