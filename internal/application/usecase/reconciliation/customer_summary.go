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

// GetCustomerSummaryOutput is the per-customer payment rollup.
type GetCustomerSummaryOutput struct {
	Summaries []entity.CustomerPaymentSummary

	// TotalUnattributed and CustomersWithUnattributed drive the attention
	// banner in the presentation layer.
	TotalUnattributed         decimal.Decimal
	CustomersWithUnattributed int

	NoData             bool
	PossiblyIncomplete bool
}

// GetCustomerSummaryUseCase aggregates inflow transactions per customer,
// independently of loan attribution, so payments without a loan id are
// still accounted for.
type GetCustomerSummaryUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
}

// NewGetCustomerSummaryUseCase creates a new GetCustomerSummaryUseCase instance.
func NewGetCustomerSummaryUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *GetCustomerSummaryUseCase {
	return &GetCustomerSummaryUseCase{
		loader: loader,
		cfg:    cfg,
	}
}

// Execute builds the customer payment summary from the current snapshot.
func (uc *GetCustomerSummaryUseCase) Execute(ctx context.Context) (*GetCustomerSummaryOutput, error) {
	txns, err := uc.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(txns) == 0 {
		return &GetCustomerSummaryOutput{NoData: true}, nil
	}

	_, customers := aggregatePayments(txns)

	output := &GetCustomerSummaryOutput{
		Summaries:          make([]entity.CustomerPaymentSummary, 0, len(customers)),
		PossiblyIncomplete: uc.cfg.PaginationCeiling > 0 && len(txns) == uc.cfg.PaginationCeiling,
	}

	for name, cs := range customers {
		output.Summaries = append(output.Summaries, entity.CustomerPaymentSummary{
			CustomerName:       name,
			TotalPayments:      cs.total,
			PaymentCount:       cs.count,
			UniqueLoans:        len(cs.loanIDs),
			UnattributedAmount: cs.unattributedAmount,
			UnattributedCount:  cs.unattributedCount,
		})

		output.TotalUnattributed = output.TotalUnattributed.Add(cs.unattributedAmount)
		if cs.unattributedAmount.IsPositive() {
			output.CustomersWithUnattributed++
		}
	}

	if len(output.Summaries) == 0 {
		output.NoData = true
		return output, nil
	}

	sort.Slice(output.Summaries, func(i, j int) bool {
		if !output.Summaries[i].TotalPayments.Equal(output.Summaries[j].TotalPayments) {
			return output.Summaries[i].TotalPayments.GreaterThan(output.Summaries[j].TotalPayments)
		}
		return output.Summaries[i].CustomerName < output.Summaries[j].CustomerName
	})

	return output, nil
}
