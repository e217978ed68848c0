// Package statedb provides the durable views that transaction savepoints are
// layered on: an in-memory map, a Pebble-backed store and an LRU read cache.
//
// All views follow the same convention as the transaction sandbox: Read of a
// missing key returns (nil, nil).
package statedb

import (
	"errors"

	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
)

var (
	ErrClosed = errors.New("state database is closed")
)

// View is the read/write surface shared by every backend.
type View interface {
	Read(k keylet.Keylet) ([]byte, error)
	Exists(k keylet.Keylet) (bool, error)
	Insert(k keylet.Keylet, data []byte) error
	Update(k keylet.Keylet, data []byte) error
	Erase(k keylet.Keylet) error
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

func copyBytes(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
