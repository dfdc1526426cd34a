package universe

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"StockScreener/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider counts calls and can be told to fail.
type fakeProvider struct {
	calls   int
	fail    bool
	symbols []model.Symbol
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Symbols(_ context.Context) ([]model.Symbol, error) {
	p.calls++
	if p.fail {
		return nil, errors.New("provider down")
	}
	return p.symbols, nil
}

func twoSymbols() []model.Symbol {
	return []model.Symbol{
		{ID: "2330", Category: "semiconductors"},
		{ID: "2317", Category: "electronics"},
	}
}

func TestCache_ServesWithinTTL(t *testing.T) {
	p := &fakeProvider{symbols: twoSymbols()}
	c, err := NewCache(p, time.Hour, "")
	require.NoError(t, err)

	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first, err := c.Symbols(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, p.calls)

	now = now.Add(30 * time.Minute)
	_, err = c.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls, "second call within TTL must hit the cache")

	now = now.Add(31 * time.Minute)
	_, err = c.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls, "expired snapshot must trigger a refresh")
}

func TestCache_StaleFallbackOnRefreshFailure(t *testing.T) {
	p := &fakeProvider{symbols: twoSymbols()}
	c, err := NewCache(p, time.Hour, "")
	require.NoError(t, err)

	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err = c.Symbols(context.Background())
	require.NoError(t, err)

	p.fail = true
	now = now.Add(2 * time.Hour)
	stale, err := c.Symbols(context.Background())
	require.NoError(t, err, "stale snapshot should be served when refresh fails")
	assert.Len(t, stale, 2)
}

func TestCache_ErrorWithNothingCached(t *testing.T) {
	p := &fakeProvider{fail: true}
	c, err := NewCache(p, time.Hour, "")
	require.NoError(t, err)

	_, err = c.Symbols(context.Background())
	assert.Error(t, err)
}

func TestCache_SnapshotSurvivesRestart(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "universe_state.json")
	p := &fakeProvider{symbols: twoSymbols()}

	c, err := NewCache(p, time.Hour, stateFile)
	require.NoError(t, err)
	_, err = c.Symbols(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, p.calls)

	// A fresh cache over the same state file reuses the snapshot.
	restarted, err := NewCache(p, time.Hour, stateFile)
	require.NoError(t, err)
	assert.Equal(t, 2, restarted.Size())

	_, err = restarted.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls, "restart must not trigger a refresh before expiry")
}

func TestCache_RefreshForcesFetch(t *testing.T) {
	p := &fakeProvider{symbols: twoSymbols()}
	c, err := NewCache(p, time.Hour, "")
	require.NoError(t, err)

	_, err = c.Symbols(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 2, p.calls)
	assert.False(t, c.ExpiresAt().IsZero())
}

func TestDedupe(t *testing.T) {
	in := []model.Symbol{
		{ID: "2330"}, {ID: "2317"}, {ID: "2330"}, {ID: ""}, {ID: "1101"},
	}
	out := Dedupe(in)
	require.Len(t, out, 3)
	assert.Equal(t, "2330", out[0].ID)
	assert.Equal(t, "2317", out[1].ID)
	assert.Equal(t, "1101", out[2].ID)
}

func TestFilterByCategory(t *testing.T) {
	syms := twoSymbols()
	assert.Len(t, FilterByCategory(syms, ""), 2)
	filtered := FilterByCategory(syms, "semiconductors")
	require.Len(t, filtered, 1)
	assert.Equal(t, "2330", filtered[0].ID)
	assert.Empty(t, FilterByCategory(syms, "banking"))
}

func TestCategories(t *testing.T) {
	syms := append(twoSymbols(), model.Symbol{ID: "2454", Category: "semiconductors"})
	assert.Equal(t, []string{"semiconductors", "electronics"}, Categories(syms))
}
