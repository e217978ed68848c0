package statedb

import (
	"bytes"
	"sort"
	"sync"

	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
)

// MemoryView keeps state entries in a map. Iteration is in key order so that
// replays are deterministic.
type MemoryView struct {
	mu   sync.RWMutex
	data map[[32]byte][]byte
}

// NewMemoryView creates an empty in-memory view.
func NewMemoryView() *MemoryView {
	return &MemoryView{data: make(map[[32]byte][]byte)}
}

func (m *MemoryView) Read(k keylet.Keylet) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[k.Key]
	if !ok {
		return nil, nil
	}
	return copyBytes(data), nil
}

func (m *MemoryView) Exists(k keylet.Keylet) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[k.Key]
	return ok, nil
}

func (m *MemoryView) Insert(k keylet.Keylet, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[k.Key] = copyBytes(data)
	return nil
}

func (m *MemoryView) Update(k keylet.Keylet, data []byte) error {
	return m.Insert(k, data)
}

func (m *MemoryView) Erase(k keylet.Keylet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, k.Key)
	return nil
}

func (m *MemoryView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	m.mu.RLock()
	keys := make([][32]byte, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	m.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})

	for _, key := range keys {
		m.mu.RLock()
		data, ok := m.data[key]
		m.mu.RUnlock()
		if !ok {
			continue
		}
		if !fn(key, copyBytes(data)) {
			return nil
		}
	}
	return nil
}

// Len returns the number of entries.
func (m *MemoryView) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
