package statedb

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// statePrefix namespaces state entries inside the Pebble keyspace.
const statePrefix byte = 's'

// PebbleOptions configures a PebbleView.
type PebbleOptions struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory backs the database with an in-memory filesystem (tests, dry runs).
	InMemory bool

	// Compression names the value compressor ("none" or "lz4").
	Compression string
}

// PebbleView stores state entries in a Pebble database.
type PebbleView struct {
	db         *pebble.DB
	compressor Compressor
}

// OpenPebbleView opens (creating if necessary) a Pebble-backed view.
func OpenPebbleView(opts PebbleOptions) (*PebbleView, error) {
	compressor, err := NewCompressor(opts.Compression)
	if err != nil {
		return nil, err
	}

	pebbleOpts := &pebble.Options{}
	path := opts.Path
	if opts.InMemory {
		pebbleOpts.FS = vfs.NewMem()
		path = ""
	} else if path == "" {
		return nil, errors.New("pebble state path cannot be empty")
	}

	db, err := pebble.Open(path, pebbleOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble state at %q: %w", path, err)
	}
	return &PebbleView{db: db, compressor: compressor}, nil
}

func dbKey(key [32]byte) []byte {
	out := make([]byte, 0, 33)
	out = append(out, statePrefix)
	return append(out, key[:]...)
}

func (p *PebbleView) Read(k keylet.Keylet) ([]byte, error) {
	if p.db == nil {
		return nil, ErrClosed
	}
	val, closer, err := p.db.Get(dbKey(k.Key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s entry: %w", k.Type, err)
	}
	defer closer.Close()
	return p.compressor.Decompress(val)
}

func (p *PebbleView) Exists(k keylet.Keylet) (bool, error) {
	data, err := p.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

func (p *PebbleView) Insert(k keylet.Keylet, data []byte) error {
	if p.db == nil {
		return ErrClosed
	}
	stored, err := p.compressor.Compress(data)
	if err != nil {
		return err
	}
	return p.db.Set(dbKey(k.Key), stored, pebble.Sync)
}

func (p *PebbleView) Update(k keylet.Keylet, data []byte) error {
	return p.Insert(k, data)
}

func (p *PebbleView) Erase(k keylet.Keylet) error {
	if p.db == nil {
		return ErrClosed
	}
	return p.db.Delete(dbKey(k.Key), pebble.Sync)
}

func (p *PebbleView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	if p.db == nil {
		return ErrClosed
	}
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{statePrefix},
		UpperBound: []byte{statePrefix + 1},
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for valid := iter.First(); valid; valid = iter.Next() {
		var key [32]byte
		copy(key[:], iter.Key()[1:])
		data, err := p.compressor.Decompress(iter.Value())
		if err != nil {
			return err
		}
		if !fn(key, data) {
			break
		}
	}
	return iter.Error()
}

// Close closes the underlying database.
func (p *PebbleView) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
