package tx

import (
	"bytes"
	"errors"
	"sort"

	"github.com/LeJamon/goHederad/internal/core/ledger/entry"
	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
	"github.com/LeJamon/goHederad/internal/storage/statedb"
)

// ErrSavepointMismatch is returned when a savepoint is committed into a view
// other than its parent.
var ErrSavepointMismatch = errors.New("savepoint parent mismatch")

// Sandbox provides isolated, reversible state changes. It wraps either a
// durable LedgerView (root sandbox) or another Sandbox (child), tracking
// modifications without touching the layer below until Apply.
type Sandbox struct {
	// parent is the parent Sandbox (nil for root sandbox)
	parent *Sandbox

	// view is the underlying ledger view (used only for root sandbox)
	view LedgerView

	modifications map[[32]byte][]byte
	insertions    map[[32]byte][]byte
	deletions     map[[32]byte]bool

	// types remembers the entry type of every touched key
	types map[[32]byte]entry.Type
}

// NewSandbox creates a new root Sandbox wrapping the given LedgerView
func NewSandbox(view LedgerView) *Sandbox {
	return &Sandbox{
		view:          view,
		modifications: make(map[[32]byte][]byte),
		insertions:    make(map[[32]byte][]byte),
		deletions:     make(map[[32]byte]bool),
		types:         make(map[[32]byte]entry.Type),
	}
}

// NewChildSandbox creates a child Sandbox on top of a parent.
// Changes are pushed to the parent when Apply() is called.
func NewChildSandbox(parent *Sandbox) *Sandbox {
	s := NewSandbox(nil)
	s.parent = parent
	return s
}

// Parent returns the sandbox this one was opened on, or nil for a root.
func (s *Sandbox) Parent() *Sandbox {
	return s.parent
}

// Read reads a ledger entry from the sandbox or the layers below it
func (s *Sandbox) Read(k keylet.Keylet) ([]byte, error) {
	key := k.Key
	if s.deletions[key] {
		return nil, nil
	}
	if data, ok := s.modifications[key]; ok {
		return data, nil
	}
	if data, ok := s.insertions[key]; ok {
		return data, nil
	}
	if s.parent != nil {
		return s.parent.Read(k)
	}
	if s.view != nil {
		return s.view.Read(k)
	}
	return nil, nil
}

// Exists checks if a ledger entry exists in the sandbox or the layers below it
func (s *Sandbox) Exists(k keylet.Keylet) (bool, error) {
	key := k.Key
	if s.deletions[key] {
		return false, nil
	}
	if _, ok := s.modifications[key]; ok {
		return true, nil
	}
	if _, ok := s.insertions[key]; ok {
		return true, nil
	}
	if s.parent != nil {
		return s.parent.Exists(k)
	}
	if s.view != nil {
		return s.view.Exists(k)
	}
	return false, nil
}

// Insert adds a new ledger entry to the sandbox
func (s *Sandbox) Insert(k keylet.Keylet, data []byte) error {
	key := k.Key
	s.types[key] = k.Type
	if s.deletions[key] {
		// Re-creating an entry erased in this sandbox overwrites what lies below.
		delete(s.deletions, key)
		s.modifications[key] = copyBytes(data)
		return nil
	}
	s.insertions[key] = copyBytes(data)
	return nil
}

// Update modifies an existing ledger entry in the sandbox
func (s *Sandbox) Update(k keylet.Keylet, data []byte) error {
	key := k.Key
	s.types[key] = k.Type
	if _, ok := s.insertions[key]; ok {
		s.insertions[key] = copyBytes(data)
		return nil
	}
	delete(s.deletions, key)
	s.modifications[key] = copyBytes(data)
	return nil
}

// Erase marks a ledger entry for deletion
func (s *Sandbox) Erase(k keylet.Keylet) error {
	key := k.Key
	s.types[key] = k.Type
	if _, inserted := s.insertions[key]; inserted {
		delete(s.insertions, key)
		return nil
	}
	delete(s.modifications, key)
	s.deletions[key] = true
	return nil
}

// ForEach iterates over all state entries visible from this sandbox
func (s *Sandbox) ForEach(fn func(key [32]byte, data []byte) bool) error {
	visited := make(map[[32]byte]bool)

	for _, layer := range []map[[32]byte][]byte{s.insertions, s.modifications} {
		for _, key := range sortedKeys(layer) {
			if s.deletions[key] || visited[key] {
				continue
			}
			visited[key] = true
			if !fn(key, layer[key]) {
				return nil
			}
		}
	}

	below := func(key [32]byte, data []byte) bool {
		if s.deletions[key] || visited[key] {
			return true
		}
		return fn(key, data)
	}
	if s.parent != nil {
		return s.parent.ForEach(below)
	}
	if s.view != nil {
		return s.view.ForEach(below)
	}
	return nil
}

// Apply merges this sandbox's changes into its parent.
func (s *Sandbox) Apply(to *Sandbox) error {
	if s.parent != to || to == nil {
		return ErrSavepointMismatch
	}

	for key := range s.deletions {
		to.types[key] = s.types[key]
		if _, inserted := to.insertions[key]; inserted {
			delete(to.insertions, key)
			continue
		}
		delete(to.modifications, key)
		to.deletions[key] = true
	}

	for key, data := range s.insertions {
		to.types[key] = s.types[key]
		if to.deletions[key] {
			delete(to.deletions, key)
			to.modifications[key] = data
			continue
		}
		to.insertions[key] = data
	}

	for key, data := range s.modifications {
		to.types[key] = s.types[key]
		if _, inserted := to.insertions[key]; inserted {
			to.insertions[key] = data
			continue
		}
		delete(to.deletions, key)
		to.modifications[key] = data
	}

	s.Discard()
	return nil
}

// ApplyToView writes a root sandbox's changes into its underlying view in
// key order. Views implementing statedb.Batcher receive them as one batch.
func (s *Sandbox) ApplyToView() error {
	if s.parent != nil || s.view == nil {
		return ErrSavepointMismatch
	}

	if batcher, ok := s.view.(statedb.Batcher); ok {
		if err := batcher.ApplyBatch(s.batchOps()); err != nil {
			return err
		}
		s.Discard()
		return nil
	}

	for _, key := range sortedKeySet(s.deletions) {
		if err := s.view.Erase(keylet.Keylet{Type: s.types[key], Key: key}); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(s.insertions) {
		if err := s.view.Insert(keylet.Keylet{Type: s.types[key], Key: key}, s.insertions[key]); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(s.modifications) {
		if err := s.view.Update(keylet.Keylet{Type: s.types[key], Key: key}, s.modifications[key]); err != nil {
			return err
		}
	}

	s.Discard()
	return nil
}

func (s *Sandbox) batchOps() []statedb.BatchOp {
	ops := make([]statedb.BatchOp, 0, s.Changes())
	for _, key := range sortedKeySet(s.deletions) {
		ops = append(ops, statedb.BatchOp{
			Type:   statedb.BatchDelete,
			Keylet: keylet.Keylet{Type: s.types[key], Key: key},
		})
	}
	for _, changes := range []map[[32]byte][]byte{s.insertions, s.modifications} {
		for _, key := range sortedKeys(changes) {
			ops = append(ops, statedb.BatchOp{
				Type:   statedb.BatchPut,
				Keylet: keylet.Keylet{Type: s.types[key], Key: key},
				Data:   changes[key],
			})
		}
	}
	return ops
}

// Discard drops every change held by this sandbox.
func (s *Sandbox) Discard() {
	s.modifications = make(map[[32]byte][]byte)
	s.insertions = make(map[[32]byte][]byte)
	s.deletions = make(map[[32]byte]bool)
	s.types = make(map[[32]byte]entry.Type)
}

// Changes returns the number of pending inserts, updates and erases.
func (s *Sandbox) Changes() int {
	return len(s.insertions) + len(s.modifications) + len(s.deletions)
}

func sortedKeys(m map[[32]byte][]byte) [][32]byte {
	keys := make([][32]byte, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })
	return keys
}

func sortedKeySet(m map[[32]byte]bool) [][32]byte {
	keys := make([][32]byte, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })
	return keys
}

func copyBytes(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

// SavepointStack is the revertible transaction scope. The bottom savepoint
// wraps the durable view; every Begin opens a child that can be committed
// into the savepoint below it or rolled back on its own.
type SavepointStack struct {
	stack []*Sandbox
}

// NewSavepointStack opens the base savepoint over view.
func NewSavepointStack(view LedgerView) *SavepointStack {
	return &SavepointStack{stack: []*Sandbox{NewSandbox(view)}}
}

// Current returns the innermost savepoint.
func (s *SavepointStack) Current() *Sandbox {
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of open savepoints, including the base.
func (s *SavepointStack) Depth() int {
	return len(s.stack)
}

// Begin opens a nested savepoint and returns it.
func (s *SavepointStack) Begin() *Sandbox {
	child := NewChildSandbox(s.Current())
	s.stack = append(s.stack, child)
	return child
}

// Commit merges the innermost nested savepoint into the one below it.
func (s *SavepointStack) Commit() error {
	if len(s.stack) < 2 {
		return ErrSavepointMismatch
	}
	top := s.Current()
	s.stack = s.stack[:len(s.stack)-1]
	return top.Apply(s.Current())
}

// Rollback discards the innermost nested savepoint.
func (s *SavepointStack) Rollback() error {
	if len(s.stack) < 2 {
		return ErrSavepointMismatch
	}
	s.Current().Discard()
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// CommitAll flushes the base savepoint into the durable view. Every nested
// savepoint must have been closed.
func (s *SavepointStack) CommitAll() error {
	if len(s.stack) != 1 {
		return ErrSavepointMismatch
	}
	return s.stack[0].ApplyToView()
}

// RollbackAll discards every savepoint, leaving the durable view untouched.
func (s *SavepointStack) RollbackAll() {
	for len(s.stack) > 1 {
		s.Current().Discard()
		s.stack = s.stack[:len(s.stack)-1]
	}
	s.stack[0].Discard()
}
