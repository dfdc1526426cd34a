package universe

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockScreener/internal/model"
)

// Cache wraps a Provider with a TTL so a scan never re-fetches the universe
// more often than the refresh cadence allows. It satisfies Provider itself, so
// callers always receive a plain snapshot and never touch cache internals.
type Cache struct {
	mu        sync.Mutex
	provider  Provider
	ttl       time.Duration
	stateFile string
	symbols   []model.Symbol
	expiresAt time.Time

	now func() time.Time
}

// NewCache creates a cache over provider. When stateFile is non-empty, a
// previously persisted snapshot from the same provider is reused until it
// expires, so restarts don't trigger an immediate refresh.
func NewCache(provider Provider, ttl time.Duration, stateFile string) (*Cache, error) {
	c := &Cache{
		provider:  provider,
		ttl:       ttl,
		stateFile: stateFile,
		now:       time.Now,
	}
	if stateFile != "" {
		state, err := loadState(stateFile)
		if err != nil {
			return nil, fmt.Errorf("load universe state: %w", err)
		}
		if state.Source == provider.Name() && len(state.Symbols) > 0 {
			c.symbols = state.Symbols
			c.expiresAt = state.ExpiresAt
		}
	}
	return c, nil
}

func (c *Cache) Name() string { return c.provider.Name() }

// Symbols returns the cached universe, refreshing from the provider when the
// snapshot has expired. A failed refresh falls back to a stale snapshot if one
// exists; with nothing cached the error is surfaced to the caller.
func (c *Cache) Symbols(ctx context.Context) ([]model.Symbol, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.symbols) > 0 && c.now().Before(c.expiresAt) {
		return append([]model.Symbol(nil), c.symbols...), nil
	}

	symbols, err := c.provider.Symbols(ctx)
	if err != nil {
		if len(c.symbols) > 0 {
			log.Printf("[WARN] universe refresh failed, serving stale snapshot of %d symbols: %v", len(c.symbols), err)
			return append([]model.Symbol(nil), c.symbols...), nil
		}
		return nil, fmt.Errorf("refresh universe: %w", err)
	}

	c.symbols = symbols
	c.expiresAt = c.now().Add(c.ttl)
	c.persist()
	return append([]model.Symbol(nil), c.symbols...), nil
}

// Refresh forces a fetch from the underlying provider regardless of expiry.
func (c *Cache) Refresh(ctx context.Context) error {
	symbols, err := c.provider.Symbols(ctx)
	if err != nil {
		return fmt.Errorf("refresh universe: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.symbols = symbols
	c.expiresAt = c.now().Add(c.ttl)
	c.persist()
	return nil
}

// ExpiresAt returns when the current snapshot becomes stale.
func (c *Cache) ExpiresAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiresAt
}

// Size returns the number of cached symbols.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.symbols)
}

func (c *Cache) persist() {
	if c.stateFile == "" {
		return
	}
	state := &cacheState{
		Source:    c.provider.Name(),
		Symbols:   c.symbols,
		ExpiresAt: c.expiresAt,
	}
	if err := saveState(c.stateFile, state); err != nil {
		log.Printf("[ERROR] save universe state: %v", err)
	}
}
