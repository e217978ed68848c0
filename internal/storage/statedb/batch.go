package statedb

import (
	"fmt"

	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
	"github.com/cockroachdb/pebble"
)

// BatchOpType identifies a batch write.
type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// BatchOp is one write of an atomic batch. Data is unused for deletes.
type BatchOp struct {
	Type   BatchOpType
	Keylet keylet.Keylet
	Data   []byte
}

// Batcher is implemented by views that apply a set of writes all at once:
// after ApplyBatch returns either every op is visible or none is.
type Batcher interface {
	ApplyBatch(ops []BatchOp) error
}

var (
	_ Batcher = (*MemoryView)(nil)
	_ Batcher = (*PebbleView)(nil)
	_ Batcher = (*CachedView)(nil)
)

func (m *MemoryView) ApplyBatch(ops []BatchOp) error {
	for _, op := range ops {
		if op.Type != BatchPut && op.Type != BatchDelete {
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		if op.Type == BatchDelete {
			delete(m.data, op.Keylet.Key)
			continue
		}
		m.data[op.Keylet.Key] = copyBytes(op.Data)
	}
	return nil
}

func (p *PebbleView) ApplyBatch(ops []BatchOp) error {
	if p.db == nil {
		return ErrClosed
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			stored, err := p.compressor.Compress(op.Data)
			if err != nil {
				return err
			}
			if err := batch.Set(dbKey(op.Keylet.Key), stored, nil); err != nil {
				return err
			}
		case BatchDelete:
			if err := batch.Delete(dbKey(op.Keylet.Key), nil); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}

	return batch.Commit(pebble.Sync)
}

// ApplyBatch forwards the batch to the wrapped view. A view without batch
// support gets the writes one at a time. Touched keys are evicted when the
// batch fails.
func (c *CachedView) ApplyBatch(ops []BatchOp) error {
	var err error
	if b, ok := c.view.(Batcher); ok {
		err = b.ApplyBatch(ops)
	} else {
		err = applySequentially(c.view, ops)
	}
	if err != nil {
		for _, op := range ops {
			c.cache.Remove(op.Keylet.Key)
		}
		return err
	}

	for _, op := range ops {
		if op.Type == BatchDelete {
			c.cache.Remove(op.Keylet.Key)
			continue
		}
		c.cache.Add(op.Keylet.Key, copyBytes(op.Data))
	}
	return nil
}

func applySequentially(view View, ops []BatchOp) error {
	for _, op := range ops {
		var err error
		switch op.Type {
		case BatchPut:
			err = view.Insert(op.Keylet, op.Data)
		case BatchDelete:
			err = view.Erase(op.Keylet)
		default:
			err = fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
