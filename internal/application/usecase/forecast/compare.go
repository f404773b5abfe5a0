// Package forecast contains the cash flow forecasting use cases.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// CompareScenariosInput re-runs a projection with percentage adjustments
// applied to the resolved deployment and inflow rates.
type CompareScenariosInput struct {
	ProjectCashFlowInput

	DeploymentChangePercent int // -50..50
	InflowChangePercent     int // -50..50
}

// CompareScenariosOutput pairs the baseline scenario with the adjusted one
// and the deltas between them.
type CompareScenariosOutput struct {
	Baseline ProjectCashFlowOutput
	Adjusted ProjectCashFlowOutput

	// RunwayDeltaPeriods is nil when either scenario has no finite runway.
	RunwayDeltaPeriods *float64
	// RunwayEndDeltaDays is nil unless both scenarios end.
	RunwayEndDeltaDays *int
	EndingCashDelta    decimal.Decimal
}

// CompareScenariosUseCase runs the baseline projection and an adjusted
// variant of it in a single pass over the same snapshot.
type CompareScenariosUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
	now    func() time.Time
}

// NewCompareScenariosUseCase creates a new CompareScenariosUseCase instance.
func NewCompareScenariosUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *CompareScenariosUseCase {
	return &CompareScenariosUseCase{
		loader: loader,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Execute projects the baseline and adjusted scenarios and computes deltas.
func (uc *CompareScenariosUseCase) Execute(ctx context.Context, input CompareScenariosInput) (*CompareScenariosOutput, error) {
	if err := validateInput(input.ProjectCashFlowInput); err != nil {
		return nil, err
	}

	deals, err := uc.loader.LoadDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}
	txns, err := uc.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	baseline := computeBaseline(deals, txns, uc.cfg)
	if baseline.DealCount == 0 {
		return &CompareScenariosOutput{
			Baseline: ProjectCashFlowOutput{NoData: true},
			Adjusted: ProjectCashFlowOutput{NoData: true},
		}, nil
	}
	if baseline.InsufficientHistory {
		degraded := ProjectCashFlowOutput{Baseline: baseline, InsufficientHistory: true}
		return &CompareScenariosOutput{Baseline: degraded, Adjusted: degraded}, nil
	}

	projector := &ProjectCashFlowUseCase{loader: uc.loader, cfg: uc.cfg, now: uc.now}
	deploymentRate, inflowRate := projector.resolveRates(baseline, input.ProjectCashFlowInput)

	start := uc.now()
	base := project(start, baseline, input.ProjectCashFlowInput, deploymentRate, inflowRate)
	adjusted := project(
		start,
		baseline,
		input.ProjectCashFlowInput,
		valueobject.AdjustRate(deploymentRate, input.DeploymentChangePercent),
		valueobject.AdjustRate(inflowRate, input.InflowChangePercent),
	)

	output := &CompareScenariosOutput{
		Baseline:        base,
		Adjusted:        adjusted,
		EndingCashDelta: adjusted.EndingCash.Sub(base.EndingCash),
	}

	if base.Runway.Status == RunwayLimited && adjusted.Runway.Status == RunwayLimited {
		delta := adjusted.Runway.Periods - base.Runway.Periods
		output.RunwayDeltaPeriods = &delta

		days := int(adjusted.Runway.EndsAt.Sub(*base.Runway.EndsAt).Hours() / 24)
		output.RunwayEndDeltaDays = &days
	}

	return output, nil
}
