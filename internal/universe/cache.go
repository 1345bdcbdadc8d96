// Package universe caches the set of symbols tradable on the futures market.
package universe

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// SymbolLister fetches the current futures symbol list.
type SymbolLister interface {
	FetchFuturesSymbols(ctx context.Context) ([]string, error)
}

// Cache holds the tradable futures symbol set. It starts empty, so every
// membership check fails until the first successful refresh; a failed refresh
// keeps the previous set.
type Cache struct {
	lister SymbolLister

	mu      sync.RWMutex
	symbols map[string]struct{}
}

// New creates an empty cache backed by lister.
func New(lister SymbolLister) *Cache {
	return &Cache{
		lister:  lister,
		symbols: make(map[string]struct{}),
	}
}

// Refresh fetches the symbol list and atomically replaces the cached set.
// On error the previous set is retained and the error returned for the
// caller to log; refresh failures are never fatal.
func (c *Cache) Refresh(ctx context.Context) error {
	symbols, err := c.lister.FetchFuturesSymbols(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh symbol universe: %w", err)
	}

	set := lo.SliceToMap(symbols, func(s string) (string, struct{}) {
		return s, struct{}{}
	})

	c.mu.Lock()
	c.symbols = set
	c.mu.Unlock()
	return nil
}

// Contains reports whether symbol was present in the most recent successful
// refresh.
func (c *Cache) Contains(symbol string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.symbols[symbol]
	return ok
}

// Size returns the number of cached symbols.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.symbols)
}
