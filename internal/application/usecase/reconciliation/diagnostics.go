// Package reconciliation contains the loan/customer reconciliation use cases.
package reconciliation

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// TypeBreakdown is the ledger volume within one transaction type.
type TypeBreakdown struct {
	Type        entity.TransactionType
	TotalAmount decimal.Decimal
	Count       int
}

// AmountCount pairs a money total with the number of rows behind it.
type AmountCount struct {
	Amount decimal.Decimal
	Count  int
}

// CustomerVolume is one entry of the top-customers diagnostic.
type CustomerVolume struct {
	CustomerName  string
	TotalPayments decimal.Decimal
}

// Diagnostics exposes the counters computed alongside the deal/transaction
// join so the quality of the reconciliation can be inspected.
type Diagnostics struct {
	RawTransactionCount int
	RawDealCount        int
	ClosedWonDealCount  int
	GeneralLedgerCount  int

	// Volume before and after restricting to inflow types; the difference is
	// what type filtering discards (invoices, bills, and so on).
	TotalTransactionAmount decimal.Decimal
	InflowTypesAmount      decimal.Decimal
	FilteringLoss          decimal.Decimal

	TransactionTypes []TypeBreakdown

	// Inflow transactions split by loan id presence.
	WithLoanID    AmountCount
	WithoutLoanID AmountCount

	UniqueDealLoanIDs        int
	UniqueTransactionLoanIDs int
	OverlappingLoanIDs       int
	OverlapRate              float64 // percent of deal loan ids with matching payments

	TopCustomers []CustomerVolume

	// DataVolumeLimitSuspected is set when the raw transaction count equals
	// the loader's pagination ceiling: the snapshot may be an undercount and
	// downstream totals must be flagged, not silently trusted.
	DataVolumeLimitSuspected bool

	NoData bool
}

// GetDiagnosticsUseCase computes the reconciliation diagnostics record.
type GetDiagnosticsUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
}

// NewGetDiagnosticsUseCase creates a new GetDiagnosticsUseCase instance.
func NewGetDiagnosticsUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *GetDiagnosticsUseCase {
	return &GetDiagnosticsUseCase{
		loader: loader,
		cfg:    cfg,
	}
}

// Execute rebuilds the diagnostics from the current snapshots. A defective
// or empty table zeroes its own counters without failing the rest.
func (uc *GetDiagnosticsUseCase) Execute(ctx context.Context) (*Diagnostics, error) {
	deals, err := uc.loader.LoadDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	txns, err := uc.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// General ledger is informational only; a load failure must not block
	// the join diagnostics.
	glCount := 0
	if gl, err := uc.loader.LoadGeneralLedger(ctx); err == nil {
		glCount = len(gl)
	}

	diag := &Diagnostics{
		RawTransactionCount:      len(txns),
		RawDealCount:             len(deals),
		GeneralLedgerCount:       glCount,
		NoData:                   len(txns) == 0 && len(deals) == 0,
		DataVolumeLimitSuspected: uc.cfg.PaginationCeiling > 0 && len(txns) == uc.cfg.PaginationCeiling,
	}

	dealLoanIDs := make(map[string]struct{})
	for _, deal := range deals {
		if deal.IsClosedWon {
			diag.ClosedWonDealCount++
		}
		if deal.HasLoanID() {
			dealLoanIDs[deal.NormalizedLoanID()] = struct{}{}
		}
	}
	diag.UniqueDealLoanIDs = len(dealLoanIDs)

	typeTotals := make(map[entity.TransactionType]*TypeBreakdown)
	txnLoanIDs := make(map[string]struct{})
	customerTotals := make(map[string]decimal.Decimal)

	for _, txn := range txns {
		amount := txn.AbsAmount()
		diag.TotalTransactionAmount = diag.TotalTransactionAmount.Add(amount)

		tb, ok := typeTotals[txn.Type]
		if !ok {
			tb = &TypeBreakdown{Type: txn.Type}
			typeTotals[txn.Type] = tb
		}
		tb.TotalAmount = tb.TotalAmount.Add(amount)
		tb.Count++

		// The loan-id split below only covers inflow-type transactions:
		// outflows never attribute to a loan, so counting them would
		// inflate WithoutLoanID with rows that can never match.
		if !txn.Type.IsInflow() {
			continue
		}
		diag.InflowTypesAmount = diag.InflowTypesAmount.Add(amount)

		customer := normalizeCustomer(txn.CustomerName)
		customerTotals[customer] = customerTotals[customer].Add(amount)

		if txn.HasLoanID() {
			txnLoanIDs[txn.NormalizedLoanID()] = struct{}{}
			diag.WithLoanID.Amount = diag.WithLoanID.Amount.Add(amount)
			diag.WithLoanID.Count++
		} else {
			diag.WithoutLoanID.Amount = diag.WithoutLoanID.Amount.Add(amount)
			diag.WithoutLoanID.Count++
		}
	}

	diag.FilteringLoss = diag.TotalTransactionAmount.Sub(diag.InflowTypesAmount)
	diag.UniqueTransactionLoanIDs = len(txnLoanIDs)

	for id := range dealLoanIDs {
		if _, ok := txnLoanIDs[id]; ok {
			diag.OverlappingLoanIDs++
		}
	}
	if diag.UniqueDealLoanIDs > 0 {
		diag.OverlapRate = float64(diag.OverlappingLoanIDs) / float64(diag.UniqueDealLoanIDs) * 100
	}

	diag.TransactionTypes = make([]TypeBreakdown, 0, len(typeTotals))
	for _, tb := range typeTotals {
		diag.TransactionTypes = append(diag.TransactionTypes, *tb)
	}
	sort.Slice(diag.TransactionTypes, func(i, j int) bool {
		return diag.TransactionTypes[i].TotalAmount.GreaterThan(diag.TransactionTypes[j].TotalAmount)
	})

	diag.TopCustomers = topCustomers(customerTotals, uc.cfg.TopCustomerCount)

	return diag, nil
}

// topCustomers returns the n largest customers by inflow volume.
func topCustomers(totals map[string]decimal.Decimal, n int) []CustomerVolume {
	ranked := make([]CustomerVolume, 0, len(totals))
	for name, total := range totals {
		ranked = append(ranked, CustomerVolume{CustomerName: name, TotalPayments: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalPayments.Equal(ranked[j].TotalPayments) {
			return ranked[i].TotalPayments.GreaterThan(ranked[j].TotalPayments)
		}
		return ranked[i].CustomerName < ranked[j].CustomerName
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
