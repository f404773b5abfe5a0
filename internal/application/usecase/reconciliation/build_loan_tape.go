// Package reconciliation contains the loan/customer reconciliation use cases.
package reconciliation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// LoanTapeSummary contains portfolio-level totals across the unified records.
type LoanTapeSummary struct {
	TotalLoans             int
	LoansWithPayments      int
	TotalParticipation     decimal.Decimal
	TotalExpectedReturn    decimal.Decimal
	TotalRTRAmount         decimal.Decimal
	TotalUnattributed      decimal.Decimal
	AvgRTRPercentage       float64
	PortfolioRTRPercentage float64 // total RTR / total participation
	RealizedVsExpected     float64 // total RTR / total expected return
}

// BuildLoanTapeOutput is the result of a full reconciliation pass.
type BuildLoanTapeOutput struct {
	Records []entity.UnifiedLoanRecord
	Summary LoanTapeSummary

	// NoData is set when there are no closed-won deals to reconcile. The
	// caller should render guidance instead of an empty table.
	NoData bool

	// PossiblyIncomplete is set when the raw transaction count sits exactly
	// at the loader's pagination ceiling; totals may undercount.
	PossiblyIncomplete bool
}

// BuildLoanTapeUseCase joins closed-won deals to payment transactions and
// derives the unified loan/customer table.
type BuildLoanTapeUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
	now    func() time.Time
}

// NewBuildLoanTapeUseCase creates a new BuildLoanTapeUseCase instance.
func NewBuildLoanTapeUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *BuildLoanTapeUseCase {
	return &BuildLoanTapeUseCase{
		loader: loader,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Execute rebuilds the unified loan record set from the current snapshots.
// The output is always a full rebuild; nothing is mutated in place.
func (uc *BuildLoanTapeUseCase) Execute(ctx context.Context) (*BuildLoanTapeOutput, error) {
	deals, err := uc.loader.LoadDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	txns, err := uc.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	wonDeals := filterClosedWon(deals)
	if len(wonDeals) == 0 {
		return &BuildLoanTapeOutput{NoData: true}, nil
	}

	loans, customers := aggregatePayments(txns)

	records := make([]entity.UnifiedLoanRecord, 0, len(wonDeals))
	for _, deal := range wonDeals {
		records = append(records, uc.buildRecord(deal, loans, customers))
	}

	// Largest exposure first; loan id breaks ties for a stable ordering.
	sort.Slice(records, func(i, j int) bool {
		if !records[i].ParticipationAmount.Equal(records[j].ParticipationAmount) {
			return records[i].ParticipationAmount.GreaterThan(records[j].ParticipationAmount)
		}
		return records[i].LoanID < records[j].LoanID
	})

	return &BuildLoanTapeOutput{
		Records:            records,
		Summary:            summarize(records),
		PossiblyIncomplete: uc.cfg.PaginationCeiling > 0 && len(txns) == uc.cfg.PaginationCeiling,
	}, nil
}

// buildRecord derives one unified record for a closed-won deal. A deal whose
// loan id is missing or unmatched still produces a row, with zero attributed
// payments.
func (uc *BuildLoanTapeUseCase) buildRecord(
	deal entity.Deal,
	loans map[string]*loanStats,
	customers map[string]*customerStats,
) entity.UnifiedLoanRecord {
	record := entity.UnifiedLoanRecord{
		LoanID:              deal.NormalizedLoanID(),
		DealName:            normalizeCustomer(deal.CustomerName),
		QBOCustomer:         normalizeCustomer(deal.CustomerName),
		ParticipationAmount: deal.Participation(),
		ExpectedReturn:      deal.ExpectedReturn(),
		TIB:                 deal.TIB,
		FICO:                deal.FICO,
	}
	if deal.FactorRate != nil {
		record.FactorRate = *deal.FactorRate
	}

	// Primary join: exact loan id equality. The empty sentinel never matches.
	if ls, ok := loans[record.LoanID]; ok && record.LoanID != "" {
		record.RTRAmount = ls.total
		record.LoanPaymentCount = ls.count
		record.QBOCustomer = ls.customer
		if !ls.lastPayment.IsZero() {
			days := int(uc.now().Sub(ls.lastPayment).Hours() / 24)
			record.DaysSinceLastPayment = &days
		}
	}

	// Customer-level totals cover every ledger customer whose payments landed
	// on this loan, falling back to the deal name when the loan id never
	// matched. Every attributed payment is inside some contributor's total,
	// so attribution can never exceed the customer payments.
	contributors := map[string]struct{}{record.QBOCustomer: {}}
	if ls, ok := loans[record.LoanID]; ok && record.LoanID != "" {
		for name := range ls.customers {
			contributors[name] = struct{}{}
		}
	}

	activeLoans := make(map[string]struct{})
	for name := range contributors {
		cs, ok := customers[name]
		if !ok {
			continue
		}
		record.TotalCustomerPayments = record.TotalCustomerPayments.Add(cs.total)
		record.CustomerPaymentCount += cs.count
		record.UnattributedCount += cs.unattributedCount
		for id := range cs.loanIDs {
			activeLoans[id] = struct{}{}
		}
	}
	record.CustomerActiveLoans = len(activeLoans)

	unattributed := record.TotalCustomerPayments.Sub(record.RTRAmount)
	if unattributed.IsNegative() {
		unattributed = decimal.Zero
	}
	record.UnattributedAmount = unattributed

	record.RTRPercentage = percentOf(record.RTRAmount, record.ExpectedReturn)
	record.AttributionPercentage = percentOf(record.RTRAmount, record.TotalCustomerPayments)

	return record
}

// summarize folds the record set into portfolio-level totals.
func summarize(records []entity.UnifiedLoanRecord) LoanTapeSummary {
	summary := LoanTapeSummary{TotalLoans: len(records)}

	var rtrPctSum float64
	for _, record := range records {
		summary.TotalParticipation = summary.TotalParticipation.Add(record.ParticipationAmount)
		summary.TotalExpectedReturn = summary.TotalExpectedReturn.Add(record.ExpectedReturn)
		summary.TotalRTRAmount = summary.TotalRTRAmount.Add(record.RTRAmount)
		summary.TotalUnattributed = summary.TotalUnattributed.Add(record.UnattributedAmount)
		rtrPctSum += record.RTRPercentage
		if record.HasPayments() {
			summary.LoansWithPayments++
		}
	}

	if len(records) > 0 {
		summary.AvgRTRPercentage = rtrPctSum / float64(len(records))
	}
	summary.PortfolioRTRPercentage = percentOf(summary.TotalRTRAmount, summary.TotalParticipation)
	summary.RealizedVsExpected = percentOf(summary.TotalRTRAmount, summary.TotalExpectedReturn)

	return summary
}
