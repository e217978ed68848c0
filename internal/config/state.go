package config

import "fmt"

// StateConfig represents the [state] section
// Configures the ledger state backend the engine applies transfers to
type StateConfig struct {
	Backend     string `toml:"backend" mapstructure:"backend"`
	Path        string `toml:"path" mapstructure:"path"`
	CacheSize   int    `toml:"cache_size" mapstructure:"cache_size"`
	Compression string `toml:"compression" mapstructure:"compression"`
}

// Validate performs validation on the state configuration
func (s *StateConfig) Validate() error {
	switch s.Backend {
	case "memory":
	case "pebble":
		if s.Path == "" {
			return fmt.Errorf("state path is required for the pebble backend")
		}
	default:
		return fmt.Errorf("invalid state backend: %s (valid options: memory, pebble)", s.Backend)
	}

	if s.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got %d", s.CacheSize)
	}

	switch s.Compression {
	case "none", "lz4":
	default:
		return fmt.Errorf("invalid state compression: %s (valid options: none, lz4)", s.Compression)
	}
	return nil
}
