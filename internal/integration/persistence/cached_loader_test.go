// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// countingLoader records how often each table was loaded from source.
type countingLoader struct {
	dealLoads int
	txnLoads  int
}

func (c *countingLoader) LoadDeals(_ context.Context) ([]entity.Deal, error) {
	c.dealLoads++
	return []entity.Deal{{LoanID: "L1", CustomerName: "Acme Corp", IsClosedWon: true}}, nil
}

func (c *countingLoader) LoadTransactions(_ context.Context) ([]entity.Transaction, error) {
	c.txnLoads++
	return []entity.Transaction{
		{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: decimal.NewFromInt(100)},
	}, nil
}

func (c *countingLoader) LoadMCADeals(_ context.Context) ([]entity.MCADeal, error) {
	return nil, nil
}

func (c *countingLoader) LoadGeneralLedger(_ context.Context) ([]entity.GeneralLedgerEntry, error) {
	return nil, nil
}

func TestCachedRecordLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("serves repeat loads from the cache", func(t *testing.T) {
		_, client := openTestCache(t)
		source := &countingLoader{}
		loader := NewCachedRecordLoader(source, NewRedisSnapshotCache(client, time.Hour))

		first, err := loader.LoadDeals(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := loader.LoadDeals(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if source.dealLoads != 1 {
			t.Errorf("expected 1 source load, got %d", source.dealLoads)
		}
		if len(first) != 1 || len(second) != 1 || second[0].LoanID != "L1" {
			t.Errorf("expected identical records from cache, got %v and %v", first, second)
		}
	})

	t.Run("cached transactions survive the round trip", func(t *testing.T) {
		_, client := openTestCache(t)
		source := &countingLoader{}
		loader := NewCachedRecordLoader(source, NewRedisSnapshotCache(client, time.Hour))

		if _, err := loader.LoadTransactions(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		txns, err := loader.LoadTransactions(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if source.txnLoads != 1 {
			t.Errorf("expected 1 source load, got %d", source.txnLoads)
		}
		if !txns[0].Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected amount 100 from cache, got %s", txns[0].Amount)
		}
		if txns[0].Type != entity.TransactionTypePayment {
			t.Errorf("expected Payment type from cache, got %s", txns[0].Type)
		}
	})

	t.Run("invalidation forces a reload from source", func(t *testing.T) {
		_, client := openTestCache(t)
		cache := NewRedisSnapshotCache(client, time.Hour)
		source := &countingLoader{}
		loader := NewCachedRecordLoader(source, cache)

		if _, err := loader.LoadDeals(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := cache.Invalidate(ctx, SnapshotCacheKeys...); err != nil {
			t.Fatalf("expected no error on invalidate, got %v", err)
		}
		if _, err := loader.LoadDeals(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if source.dealLoads != 2 {
			t.Errorf("expected 2 source loads after invalidation, got %d", source.dealLoads)
		}
	})
}
