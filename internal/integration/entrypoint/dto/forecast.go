// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/usecase/forecast"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// ProjectCashFlowRequest represents the request body for a cash flow projection.
type ProjectCashFlowRequest struct {
	StartingCash     float64 `json:"starting_cash" binding:"required"`
	MinCashThreshold float64 `json:"min_cash_threshold"`
	Unit             string  `json:"unit" binding:"required"`
	Horizon          int     `json:"horizon" binding:"required"`

	DeploymentMethod     string   `json:"deployment_method"`
	TargetDealsPerPeriod float64  `json:"target_deals_per_period"`
	AvgParticipation     *float64 `json:"avg_participation"`

	InflowMethod     string  `json:"inflow_method"`
	CustomInflowRate float64 `json:"custom_inflow_rate"`

	OpexPerPeriod float64 `json:"opex_per_period"`
}

// ToInput converts the request into the use case input.
func (r ProjectCashFlowRequest) ToInput() forecast.ProjectCashFlowInput {
	input := forecast.ProjectCashFlowInput{
		StartingCash:         decimal.NewFromFloat(r.StartingCash),
		MinCashThreshold:     decimal.NewFromFloat(r.MinCashThreshold),
		Unit:                 valueobject.PeriodUnit(r.Unit),
		Horizon:              r.Horizon,
		DeploymentMethod:     valueobject.DeploymentMethod(r.DeploymentMethod),
		TargetDealsPerPeriod: r.TargetDealsPerPeriod,
		InflowMethod:         valueobject.InflowMethod(r.InflowMethod),
		CustomInflowRate:     decimal.NewFromFloat(r.CustomInflowRate),
		OpexPerPeriod:        decimal.NewFromFloat(r.OpexPerPeriod),
	}
	if r.DeploymentMethod == "" {
		input.DeploymentMethod = valueobject.DeploymentHistorical
	}
	if r.InflowMethod == "" {
		input.InflowMethod = valueobject.InflowHistorical
	}
	if r.AvgParticipation != nil {
		participation := decimal.NewFromFloat(*r.AvgParticipation)
		input.AvgParticipation = &participation
	}
	return input
}

// CompareScenariosRequest represents the request body for a scenario comparison.
type CompareScenariosRequest struct {
	ProjectCashFlowRequest

	DeploymentChangePercent int `json:"deployment_change_percent"`
	InflowChangePercent     int `json:"inflow_change_percent"`
}

// ToInput converts the request into the use case input.
func (r CompareScenariosRequest) ToInput() forecast.CompareScenariosInput {
	return forecast.CompareScenariosInput{
		ProjectCashFlowInput:    r.ProjectCashFlowRequest.ToInput(),
		DeploymentChangePercent: r.DeploymentChangePercent,
		InflowChangePercent:     r.InflowChangePercent,
	}
}

// BaselineRatesResponse represents the historical rates a forecast starts from.
type BaselineRatesResponse struct {
	DealCount          int `json:"deal_count"`
	DeploymentSpanDays int `json:"deployment_span_days"`
	InflowSpanDays     int `json:"inflow_span_days"`

	TotalDeployed float64 `json:"total_deployed"`
	TotalInflows  float64 `json:"total_inflows"`

	WeeklyDeploymentRate  float64 `json:"weekly_deployment_rate"`
	MonthlyDeploymentRate float64 `json:"monthly_deployment_rate"`
	WeeklyInflowRate      float64 `json:"weekly_inflow_rate"`
	MonthlyInflowRate     float64 `json:"monthly_inflow_rate"`

	AvgDealSize    float64 `json:"avg_deal_size"`
	MedianDealSize float64 `json:"median_deal_size"`
	DealsPerWeek   float64 `json:"deals_per_week"`
	DealsPerMonth  float64 `json:"deals_per_month"`

	HasPaymentData      bool `json:"has_payment_data"`
	InsufficientHistory bool `json:"insufficient_history"`
}

// ToBaselineRatesResponse converts BaselineRates to its DTO.
func ToBaselineRatesResponse(baseline forecast.BaselineRates) BaselineRatesResponse {
	totalDeployed, _ := baseline.TotalDeployed.Float64()
	totalInflows, _ := baseline.TotalInflows.Float64()
	weeklyDeployment, _ := baseline.WeeklyDeploymentRate.Float64()
	monthlyDeployment, _ := baseline.MonthlyDeploymentRate.Float64()
	weeklyInflow, _ := baseline.WeeklyInflowRate.Float64()
	monthlyInflow, _ := baseline.MonthlyInflowRate.Float64()
	avgDealSize, _ := baseline.AvgDealSize.Float64()
	medianDealSize, _ := baseline.MedianDealSize.Float64()

	return BaselineRatesResponse{
		DealCount:             baseline.DealCount,
		DeploymentSpanDays:    baseline.DeploymentSpanDays,
		InflowSpanDays:        baseline.InflowSpanDays,
		TotalDeployed:         totalDeployed,
		TotalInflows:          totalInflows,
		WeeklyDeploymentRate:  weeklyDeployment,
		MonthlyDeploymentRate: monthlyDeployment,
		WeeklyInflowRate:      weeklyInflow,
		MonthlyInflowRate:     monthlyInflow,
		AvgDealSize:           avgDealSize,
		MedianDealSize:        medianDealSize,
		DealsPerWeek:          baseline.DealsPerWeek,
		DealsPerMonth:         baseline.DealsPerMonth,
		HasPaymentData:        baseline.HasPaymentData,
		InsufficientHistory:   baseline.InsufficientHistory,
	}
}

// ForecastPeriodResponse represents one projected period.
type ForecastPeriodResponse struct {
	Date         time.Time `json:"date"`
	CashPosition float64   `json:"cash_position"`
	Deployment   float64   `json:"deployment"`
	Inflows      float64   `json:"inflows"`
	Opex         float64   `json:"opex"`
	NetFlow      float64   `json:"net_flow"`
}

// RunwayResponse represents the time-to-minimum-reserve estimate.
type RunwayResponse struct {
	Status  string     `json:"status"`
	Periods float64    `json:"periods,omitempty"`
	EndsAt  *time.Time `json:"ends_at,omitempty"`
}

// ForecastResponse represents the response for the cash flow projection API.
type ForecastResponse struct {
	Baseline BaselineRatesResponse `json:"baseline"`

	DeploymentRate   float64 `json:"deployment_rate"`
	InflowRate       float64 `json:"inflow_rate"`
	OpexRate         float64 `json:"opex_rate"`
	NetFlowPerPeriod float64 `json:"net_flow_per_period"`

	Periods             []ForecastPeriodResponse `json:"periods"`
	Runway              RunwayResponse           `json:"runway"`
	EndingCash          float64                  `json:"ending_cash"`
	BreakEvenDeployment float64                  `json:"break_even_deployment"`
	MinimumBreached     bool                     `json:"minimum_breached"`

	InsufficientHistory bool `json:"insufficient_history"`
	NoData              bool `json:"no_data"`
}

// ToForecastResponse converts a ProjectCashFlowOutput to ForecastResponse DTO.
func ToForecastResponse(output forecast.ProjectCashFlowOutput) ForecastResponse {
	periods := make([]ForecastPeriodResponse, len(output.Periods))
	for i, period := range output.Periods {
		cash, _ := period.CashPosition.Float64()
		deployment, _ := period.Deployment.Float64()
		inflows, _ := period.Inflows.Float64()
		opex, _ := period.Opex.Float64()
		netFlow, _ := period.NetFlow.Float64()
		periods[i] = ForecastPeriodResponse{
			Date:         period.Date,
			CashPosition: cash,
			Deployment:   deployment,
			Inflows:      inflows,
			Opex:         opex,
			NetFlow:      netFlow,
		}
	}

	deploymentRate, _ := output.DeploymentRate.Float64()
	inflowRate, _ := output.InflowRate.Float64()
	opexRate, _ := output.OpexRate.Float64()
	netFlow, _ := output.NetFlowPerPeriod.Float64()
	endingCash, _ := output.EndingCash.Float64()
	breakEven, _ := output.BreakEvenDeployment.Float64()

	return ForecastResponse{
		Baseline:         ToBaselineRatesResponse(output.Baseline),
		DeploymentRate:   deploymentRate,
		InflowRate:       inflowRate,
		OpexRate:         opexRate,
		NetFlowPerPeriod: netFlow,
		Periods:          periods,
		Runway: RunwayResponse{
			Status:  string(output.Runway.Status),
			Periods: output.Runway.Periods,
			EndsAt:  output.Runway.EndsAt,
		},
		EndingCash:          endingCash,
		BreakEvenDeployment: breakEven,
		MinimumBreached:     output.MinimumBreached,
		InsufficientHistory: output.InsufficientHistory,
		NoData:              output.NoData,
	}
}

// CompareScenariosResponse represents the response for the scenario comparison API.
type CompareScenariosResponse struct {
	Baseline ForecastResponse `json:"baseline"`
	Adjusted ForecastResponse `json:"adjusted"`

	RunwayDeltaPeriods *float64 `json:"runway_delta_periods"`
	RunwayEndDeltaDays *int     `json:"runway_end_delta_days"`
	EndingCashDelta    float64  `json:"ending_cash_delta"`
}

// ToCompareScenariosResponse converts a CompareScenariosOutput to its DTO.
func ToCompareScenariosResponse(output *forecast.CompareScenariosOutput) CompareScenariosResponse {
	endingCashDelta, _ := output.EndingCashDelta.Float64()
	return CompareScenariosResponse{
		Baseline:           ToForecastResponse(output.Baseline),
		Adjusted:           ToForecastResponse(output.Adjusted),
		RunwayDeltaPeriods: output.RunwayDeltaPeriods,
		RunwayEndDeltaDays: output.RunwayEndDeltaDays,
		EndingCashDelta:    endingCashDelta,
	}
}

// DailyCashFlowResponse represents one day of observed cash movement.
type DailyCashFlowResponse struct {
	Date             time.Time `json:"date"`
	NetCashFlow      float64   `json:"net_cash_flow"`
	CumulativeFlow   float64   `json:"cumulative_flow"`
	TransactionCount int       `json:"transaction_count"`
}

// CashActivityResponse represents the response for the cash activity API.
type CashActivityResponse struct {
	Days []DailyCashFlowResponse `json:"days"`

	AvgDailyFlow    float64 `json:"avg_daily_flow"`
	Volatility      float64 `json:"volatility"`
	PositiveDays    int     `json:"positive_days"`
	TotalDays       int     `json:"total_days"`
	CurrentPosition float64 `json:"current_position"`
	Recent7DayAvg   float64 `json:"recent_7day_avg"`

	NoData             bool `json:"no_data"`
	PossiblyIncomplete bool `json:"possibly_incomplete"`
}

// ToCashActivityResponse converts a CashActivityOutput to CashActivityResponse DTO.
func ToCashActivityResponse(output *forecast.CashActivityOutput) CashActivityResponse {
	days := make([]DailyCashFlowResponse, len(output.Days))
	for i, day := range output.Days {
		net, _ := day.NetCashFlow.Float64()
		cumulative, _ := day.CumulativeFlow.Float64()
		days[i] = DailyCashFlowResponse{
			Date:             day.Date,
			NetCashFlow:      net,
			CumulativeFlow:   cumulative,
			TransactionCount: day.TransactionCount,
		}
	}

	avgDaily, _ := output.AvgDailyFlow.Float64()
	current, _ := output.CurrentPosition.Float64()
	recent, _ := output.Recent7DayAvg.Float64()

	return CashActivityResponse{
		Days:               days,
		AvgDailyFlow:       avgDaily,
		Volatility:         output.Volatility,
		PositiveDays:       output.PositiveDays,
		TotalDays:          output.TotalDays,
		CurrentPosition:    current,
		Recent7DayAvg:      recent,
		NoData:             output.NoData,
		PossiblyIncomplete: output.PossiblyIncomplete,
	}
}
