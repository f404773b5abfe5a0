// Package forecast contains the cash flow forecasting use cases.
package forecast

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

type stubLoader struct {
	deals []entity.Deal
	txns  []entity.Transaction
}

func (s *stubLoader) LoadDeals(_ context.Context) ([]entity.Deal, error) { return s.deals, nil }

func (s *stubLoader) LoadTransactions(_ context.Context) ([]entity.Transaction, error) {
	return s.txns, nil
}

func (s *stubLoader) LoadMCADeals(_ context.Context) ([]entity.MCADeal, error) { return nil, nil }

func (s *stubLoader) LoadGeneralLedger(_ context.Context) ([]entity.GeneralLedgerEntry, error) {
	return nil, nil
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
