// Package reconciliation contains the loan/customer reconciliation use cases.
package reconciliation

import (
	"context"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// stubLoader returns fixed snapshots, or an injected error per table.
type stubLoader struct {
	deals []entity.Deal
	txns  []entity.Transaction
	mca   []entity.MCADeal
	gl    []entity.GeneralLedgerEntry

	dealsErr error
	txnsErr  error
	mcaErr   error
	glErr    error
}

func (s *stubLoader) LoadDeals(_ context.Context) ([]entity.Deal, error) {
	return s.deals, s.dealsErr
}

func (s *stubLoader) LoadTransactions(_ context.Context) ([]entity.Transaction, error) {
	return s.txns, s.txnsErr
}

func (s *stubLoader) LoadMCADeals(_ context.Context) ([]entity.MCADeal, error) {
	return s.mca, s.mcaErr
}

func (s *stubLoader) LoadGeneralLedger(_ context.Context) ([]entity.GeneralLedgerEntry, error) {
	return s.gl, s.glErr
}
