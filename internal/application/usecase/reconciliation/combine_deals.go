// Package reconciliation contains the loan/customer reconciliation use cases.
package reconciliation

import (
	"context"
	"fmt"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
)

// CombineDealsOutput is the result of joining CRM deals to servicing records.
type CombineDealsOutput struct {
	Combined       []entity.CombinedDeal
	MatchedCount   int
	UnmatchedCount int // deals with a loan id but no servicing record
	SkippedNoID    int // deals dropped for missing loan id
	NoData         bool
}

// CombineDealsUseCase inner-joins CRM deals to the servicing system on
// loan id = deal number. Deals without a loan id cannot participate and are
// dropped up front.
type CombineDealsUseCase struct {
	loader adapter.RecordLoader
}

// NewCombineDealsUseCase creates a new CombineDealsUseCase instance.
func NewCombineDealsUseCase(loader adapter.RecordLoader) *CombineDealsUseCase {
	return &CombineDealsUseCase{loader: loader}
}

// Execute joins the two deal sources on the shared business key.
func (uc *CombineDealsUseCase) Execute(ctx context.Context) (*CombineDealsOutput, error) {
	deals, err := uc.loader.LoadDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	mcaDeals, err := uc.loader.LoadMCADeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mca deals: %w", err)
	}

	if len(deals) == 0 || len(mcaDeals) == 0 {
		return &CombineDealsOutput{NoData: true}, nil
	}

	byDealNumber := make(map[string]entity.MCADeal, len(mcaDeals))
	for _, mca := range mcaDeals {
		if number := mca.NormalizedDealNumber(); number != "" {
			byDealNumber[number] = mca
		}
	}

	output := &CombineDealsOutput{}
	for _, deal := range deals {
		if !deal.HasLoanID() {
			output.SkippedNoID++
			continue
		}
		mca, ok := byDealNumber[deal.NormalizedLoanID()]
		if !ok {
			output.UnmatchedCount++
			continue
		}
		output.Combined = append(output.Combined, entity.CombinedDeal{Deal: deal, MCADeal: mca})
		output.MatchedCount++
	}

	return output, nil
}
