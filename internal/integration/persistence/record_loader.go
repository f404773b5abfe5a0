// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
	"github.com/mca-analytics/backend/internal/integration/persistence/model"
)

// recordLoader implements the adapter.RecordLoader interface.
// Every query is capped at the configured pagination ceiling; the engines
// treat a result sitting exactly at the cap as possibly truncated.
type recordLoader struct {
	db      *gorm.DB
	ceiling int
}

// NewRecordLoader creates a new record loader instance.
func NewRecordLoader(db *gorm.DB, cfg valueobject.EngineConfig) adapter.RecordLoader {
	return &recordLoader{
		db:      db,
		ceiling: cfg.PaginationCeiling,
	}
}

// LoadDeals retrieves the CRM deal snapshot.
func (r *recordLoader) LoadDeals(ctx context.Context) ([]entity.Deal, error) {
	var dealModels []model.DealModel
	result := r.db.WithContext(ctx).
		Order("date_created DESC").
		Limit(r.ceiling).
		Find(&dealModels)
	if result.Error != nil {
		return nil, result.Error
	}

	deals := make([]entity.Deal, len(dealModels))
	for i := range dealModels {
		deals[i] = dealModels[i].ToEntity()
	}
	return deals, nil
}

// LoadTransactions retrieves the payments-system transaction ledger.
func (r *recordLoader) LoadTransactions(ctx context.Context) ([]entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Order("txn_date DESC").
		Limit(r.ceiling).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	txns := make([]entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		txns[i] = transactionModels[i].ToEntity()
	}
	return txns, nil
}

// LoadMCADeals retrieves the servicing-system deal snapshot.
func (r *recordLoader) LoadMCADeals(ctx context.Context) ([]entity.MCADeal, error) {
	var mcaModels []model.MCADealModel
	result := r.db.WithContext(ctx).
		Order("funded_date DESC").
		Limit(r.ceiling).
		Find(&mcaModels)
	if result.Error != nil {
		return nil, result.Error
	}

	mcaDeals := make([]entity.MCADeal, len(mcaModels))
	for i := range mcaModels {
		mcaDeals[i] = mcaModels[i].ToEntity()
	}
	return mcaDeals, nil
}

// LoadGeneralLedger retrieves the accounting general-ledger lines.
func (r *recordLoader) LoadGeneralLedger(ctx context.Context) ([]entity.GeneralLedgerEntry, error) {
	var ledgerModels []model.GeneralLedgerModel
	result := r.db.WithContext(ctx).
		Order("txn_date DESC").
		Limit(r.ceiling).
		Find(&ledgerModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]entity.GeneralLedgerEntry, len(ledgerModels))
	for i := range ledgerModels {
		entries[i] = ledgerModels[i].ToEntity()
	}
	return entries, nil
}
