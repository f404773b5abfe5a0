// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"log/slog"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
)

// Snapshot cache keys, one per loaded table.
const (
	CacheKeyDeals         = "deals"
	CacheKeyTransactions  = "transactions"
	CacheKeyMCADeals      = "mca_deals"
	CacheKeyGeneralLedger = "general_ledger"
)

// SnapshotCacheKeys lists every snapshot key, for full invalidation.
var SnapshotCacheKeys = []string{
	CacheKeyDeals,
	CacheKeyTransactions,
	CacheKeyMCADeals,
	CacheKeyGeneralLedger,
}

// cachedRecordLoader wraps a RecordLoader with a read-through snapshot cache.
// Cache failures degrade to a source load; they never fail the request.
type cachedRecordLoader struct {
	source adapter.RecordLoader
	cache  adapter.SnapshotCache
}

// NewCachedRecordLoader creates a new cached record loader instance.
func NewCachedRecordLoader(source adapter.RecordLoader, cache adapter.SnapshotCache) adapter.RecordLoader {
	return &cachedRecordLoader{
		source: source,
		cache:  cache,
	}
}

// LoadDeals retrieves the CRM deal snapshot through the cache.
func (l *cachedRecordLoader) LoadDeals(ctx context.Context) ([]entity.Deal, error) {
	return loadThrough(ctx, l, CacheKeyDeals, l.source.LoadDeals)
}

// LoadTransactions retrieves the transaction ledger through the cache.
func (l *cachedRecordLoader) LoadTransactions(ctx context.Context) ([]entity.Transaction, error) {
	return loadThrough(ctx, l, CacheKeyTransactions, l.source.LoadTransactions)
}

// LoadMCADeals retrieves the servicing-system snapshot through the cache.
func (l *cachedRecordLoader) LoadMCADeals(ctx context.Context) ([]entity.MCADeal, error) {
	return loadThrough(ctx, l, CacheKeyMCADeals, l.source.LoadMCADeals)
}

// LoadGeneralLedger retrieves the general-ledger lines through the cache.
func (l *cachedRecordLoader) LoadGeneralLedger(ctx context.Context) ([]entity.GeneralLedgerEntry, error) {
	return loadThrough(ctx, l, CacheKeyGeneralLedger, l.source.LoadGeneralLedger)
}

// loadThrough reads key from the cache, falling back to load on a miss and
// populating the cache with the result.
func loadThrough[T any](
	ctx context.Context,
	l *cachedRecordLoader,
	key string,
	load func(context.Context) ([]T, error),
) ([]T, error) {
	var cached []T
	hit, err := l.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("snapshot cache read failed, loading from source", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	records, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, records); err != nil {
		slog.Warn("snapshot cache write failed", "key", key, "error", err)
	}
	return records, nil
}
