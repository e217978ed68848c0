package statedb

import (
	"fmt"

	"github.com/LeJamon/goHederad/internal/core/ledger/keylet"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedView keeps recently read entries of a slower view in an LRU cache.
// Writes go through to the underlying view and refresh the cache.
type CachedView struct {
	view  View
	cache *lru.Cache[[32]byte, []byte]

	hits   uint64
	misses uint64
}

// NewCachedView wraps view with a cache holding up to size entries.
func NewCachedView(view View, size int) (*CachedView, error) {
	if size <= 0 {
		size = 4096
	}
	cache, err := lru.New[[32]byte, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create state cache: %w", err)
	}
	return &CachedView{view: view, cache: cache}, nil
}

func (c *CachedView) Read(k keylet.Keylet) ([]byte, error) {
	if data, ok := c.cache.Get(k.Key); ok {
		c.hits++
		return copyBytes(data), nil
	}
	c.misses++
	data, err := c.view.Read(k)
	if err != nil || data == nil {
		return data, err
	}
	c.cache.Add(k.Key, copyBytes(data))
	return data, nil
}

func (c *CachedView) Exists(k keylet.Keylet) (bool, error) {
	if c.cache.Contains(k.Key) {
		return true, nil
	}
	return c.view.Exists(k)
}

func (c *CachedView) Insert(k keylet.Keylet, data []byte) error {
	if err := c.view.Insert(k, data); err != nil {
		c.cache.Remove(k.Key)
		return err
	}
	c.cache.Add(k.Key, copyBytes(data))
	return nil
}

func (c *CachedView) Update(k keylet.Keylet, data []byte) error {
	if err := c.view.Update(k, data); err != nil {
		c.cache.Remove(k.Key)
		return err
	}
	c.cache.Add(k.Key, copyBytes(data))
	return nil
}

func (c *CachedView) Erase(k keylet.Keylet) error {
	c.cache.Remove(k.Key)
	return c.view.Erase(k)
}

func (c *CachedView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	return c.view.ForEach(fn)
}

// Stats returns cache hit and miss counts.
func (c *CachedView) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}
