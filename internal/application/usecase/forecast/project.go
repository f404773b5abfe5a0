// Package forecast contains the cash flow forecasting use cases.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
	domainerror "github.com/mca-analytics/backend/internal/domain/error"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// RunwayStatus classifies the runway outcome of a scenario.
type RunwayStatus string

const (
	// RunwayIndefinite means steady-state net flow is non-negative.
	RunwayIndefinite RunwayStatus = "indefinite"
	// RunwayLimited means cash reaches the minimum after Periods periods.
	RunwayLimited RunwayStatus = "limited"
	// RunwayBelowMinimum means there is no usable cash above the reserve now.
	RunwayBelowMinimum RunwayStatus = "below_minimum"
)

// RunwayResult is the time-to-minimum-reserve estimate at the unthrottled
// steady-state burn rate.
type RunwayResult struct {
	Status  RunwayStatus
	Periods float64    // meaningful only when Status is RunwayLimited
	EndsAt  *time.Time // nil unless Status is RunwayLimited
}

// ProjectCashFlowInput holds the scenario parameters for one projection run.
type ProjectCashFlowInput struct {
	StartingCash     decimal.Decimal
	MinCashThreshold decimal.Decimal
	Unit             valueobject.PeriodUnit
	Horizon          int // number of future periods

	DeploymentMethod     valueobject.DeploymentMethod
	TargetDealsPerPeriod float64          // lever method only
	AvgParticipation     *decimal.Decimal // lever method; nil falls back to historical average

	InflowMethod     valueobject.InflowMethod
	CustomInflowRate decimal.Decimal

	OpexPerPeriod decimal.Decimal
}

// ProjectCashFlowOutput is one full scenario projection.
type ProjectCashFlowOutput struct {
	Baseline BaselineRates

	DeploymentRate   decimal.Decimal
	InflowRate       decimal.Decimal
	OpexRate         decimal.Decimal
	NetFlowPerPeriod decimal.Decimal // unthrottled steady-state net flow

	Periods             []entity.ForecastPeriod
	Runway              RunwayResult
	EndingCash          decimal.Decimal
	BreakEvenDeployment decimal.Decimal // max deployment for a neutral flow
	MinimumBreached     bool            // some projected period fell below the reserve

	// InsufficientHistory means the observed span was too short to estimate
	// rates; Baseline is populated but no projection was produced.
	InsufficientHistory bool

	// NoData means there is no funded deal history to forecast from.
	NoData bool
}

// ProjectCashFlowUseCase projects the forward cash position under a scenario.
// One parameterized projector serves every loan-tape source; scenario
// variants differ only in their resolved rates.
type ProjectCashFlowUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
	now    func() time.Time
}

// NewProjectCashFlowUseCase creates a new ProjectCashFlowUseCase instance.
func NewProjectCashFlowUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *ProjectCashFlowUseCase {
	return &ProjectCashFlowUseCase{
		loader: loader,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Execute runs a full scenario projection from the current snapshots.
func (uc *ProjectCashFlowUseCase) Execute(ctx context.Context, input ProjectCashFlowInput) (*ProjectCashFlowOutput, error) {
	if err := validateInput(input); err != nil {
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
		return &ProjectCashFlowOutput{NoData: true}, nil
	}
	if baseline.InsufficientHistory {
		return &ProjectCashFlowOutput{Baseline: baseline, InsufficientHistory: true}, nil
	}

	deploymentRate, inflowRate := uc.resolveRates(baseline, input)
	output := project(uc.now(), baseline, input, deploymentRate, inflowRate)
	return &output, nil
}

// resolveRates turns the scenario knobs into concrete per-period rates.
func (uc *ProjectCashFlowUseCase) resolveRates(baseline BaselineRates, input ProjectCashFlowInput) (deployment, inflow decimal.Decimal) {
	avgParticipation := baseline.AvgDealSize
	if input.AvgParticipation != nil {
		avgParticipation = *input.AvgParticipation
	}

	deployment = valueobject.ResolveDeploymentRate(
		input.DeploymentMethod,
		baseline.DeploymentRate(input.Unit),
		input.TargetDealsPerPeriod,
		avgParticipation,
	)

	// Without repayment history the model must not invent inflows.
	if baseline.HasPaymentData {
		inflow = valueobject.ResolveInflowRate(input.InflowMethod, baseline.InflowRate(input.Unit), input.CustomInflowRate)
	}
	return deployment, inflow
}

// project runs the period loop for already-resolved rates. Shared with the
// scenario comparison so the projection logic exists exactly once.
func project(
	start time.Time,
	baseline BaselineRates,
	input ProjectCashFlowInput,
	deploymentRate, inflowRate decimal.Decimal,
) ProjectCashFlowOutput {
	output := ProjectCashFlowOutput{
		Baseline:         baseline,
		DeploymentRate:   deploymentRate,
		InflowRate:       inflowRate,
		OpexRate:         input.OpexPerPeriod,
		NetFlowPerPeriod: inflowRate.Sub(deploymentRate).Sub(input.OpexPerPeriod),
	}

	output.BreakEvenDeployment = inflowRate.Sub(input.OpexPerPeriod)
	if output.BreakEvenDeployment.IsNegative() {
		output.BreakEvenDeployment = decimal.Zero
	}

	// Period zero anchors the series at the current position.
	output.Periods = make([]entity.ForecastPeriod, 0, input.Horizon+1)
	output.Periods = append(output.Periods, entity.ForecastPeriod{
		Date:         start,
		CashPosition: input.StartingCash,
	})

	currentCash := input.StartingCash
	for i := 1; i <= input.Horizon; i++ {
		deployment := deploymentRate

		// The cash floor throttles deployment only; inflows and opex pass
		// through unmodified.
		if currentCash.Sub(deployment).Sub(input.OpexPerPeriod).LessThan(input.MinCashThreshold) {
			deployment = currentCash.Sub(input.MinCashThreshold).Sub(input.OpexPerPeriod)
			if deployment.IsNegative() {
				deployment = decimal.Zero
			}
		}

		netFlow := inflowRate.Sub(deployment).Sub(input.OpexPerPeriod)
		currentCash = currentCash.Add(netFlow)

		output.Periods = append(output.Periods, entity.ForecastPeriod{
			Date:         periodDate(start, input.Unit, i),
			CashPosition: currentCash,
			Deployment:   deployment,
			Inflows:      inflowRate,
			Opex:         input.OpexPerPeriod,
			NetFlow:      netFlow,
		})

		if currentCash.LessThan(input.MinCashThreshold) {
			output.MinimumBreached = true
		}
	}

	output.EndingCash = currentCash
	output.Runway = computeRunway(start, input, output.NetFlowPerPeriod)
	return output
}

// computeRunway estimates periods until the minimum reserve at the
// unthrottled burn rate.
func computeRunway(start time.Time, input ProjectCashFlowInput, netFlow decimal.Decimal) RunwayResult {
	if !netFlow.IsNegative() {
		return RunwayResult{Status: RunwayIndefinite}
	}

	usable := input.StartingCash.Sub(input.MinCashThreshold)
	if !usable.IsPositive() {
		return RunwayResult{Status: RunwayBelowMinimum}
	}

	periods, _ := usable.Div(netFlow.Abs()).Float64()
	endsAt := runwayEndDate(start, input.Unit, periods)
	return RunwayResult{
		Status:  RunwayLimited,
		Periods: periods,
		EndsAt:  &endsAt,
	}
}

// periodDate returns the date of the i-th future period.
func periodDate(start time.Time, unit valueobject.PeriodUnit, i int) time.Time {
	if unit == valueobject.PeriodUnitMonthly {
		return start.AddDate(0, i, 0)
	}
	return start.AddDate(0, 0, i*valueobject.DaysPerWeek)
}

// runwayEndDate converts a fractional period count into a calendar date.
func runwayEndDate(start time.Time, unit valueobject.PeriodUnit, periods float64) time.Time {
	days := periods * valueobject.DaysPerWeek
	if unit == valueobject.PeriodUnitMonthly {
		days = periods * valueobject.DaysPerMonth
	}
	return start.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// validateInput rejects scenario parameters the projector cannot honor.
func validateInput(input ProjectCashFlowInput) error {
	if !input.Unit.Valid() {
		return domainerror.NewForecastError(
			domainerror.ErrCodeInvalidPeriodUnit,
			"period unit must be: weekly or monthly",
			domainerror.ErrInvalidPeriodUnit,
		)
	}
	if input.Horizon <= 0 {
		return domainerror.NewForecastError(
			domainerror.ErrCodeInvalidHorizon,
			"forecast horizon must be positive",
			domainerror.ErrInvalidHorizon,
		)
	}
	if input.StartingCash.IsNegative() {
		return domainerror.NewForecastError(
			domainerror.ErrCodeNegativeStartingCash,
			"starting cash must not be negative",
			domainerror.ErrNegativeStartingCash,
		)
	}
	return nil
}
