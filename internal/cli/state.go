package cli

import (
	"fmt"

	"github.com/LeJamon/goHederad/internal/config"
	"github.com/LeJamon/goHederad/internal/core/tx"
	"github.com/LeJamon/goHederad/internal/storage/statedb"
)

// openState opens the configured backend. Pebble state is read through an
// LRU cache.
func openState(c config.StateConfig) (tx.LedgerView, func() error, error) {
	switch c.Backend {
	case "memory":
		return statedb.NewMemoryView(), func() error { return nil }, nil
	case "pebble":
		db, err := statedb.OpenPebbleView(statedb.PebbleOptions{
			Path:        c.Path,
			Compression: c.Compression,
		})
		if err != nil {
			return nil, nil, err
		}
		cached, err := statedb.NewCachedView(db, c.CacheSize)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return cached, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", c.Backend)
	}
}
