// Package valueobject contains domain value objects for the MCA analytics system.
package valueobject

import (
	"github.com/shopspring/decimal"
)

// PeriodUnit is the granularity of a cash flow forecast.
type PeriodUnit string

const (
	PeriodUnitWeekly  PeriodUnit = "weekly"
	PeriodUnitMonthly PeriodUnit = "monthly"
)

// DaysPerMonth is the average month length used to convert daily spans into
// monthly rates.
const DaysPerMonth = 30.44

// DaysPerWeek is the week length used to convert daily spans into weekly rates.
const DaysPerWeek = 7

// Valid reports whether the unit is one of the supported granularities.
func (u PeriodUnit) Valid() bool {
	return u == PeriodUnitWeekly || u == PeriodUnitMonthly
}

// DeploymentMethod selects how the scenario's capital deployment rate is derived.
type DeploymentMethod string

const (
	DeploymentHistorical   DeploymentMethod = "historical"
	DeploymentConservative DeploymentMethod = "conservative" // 75% of historical
	DeploymentAggressive   DeploymentMethod = "aggressive"   // 125% of historical
	DeploymentLever        DeploymentMethod = "lever"        // deals/period x avg participation
)

// InflowMethod selects how the scenario's repayment inflow rate is derived.
type InflowMethod string

const (
	InflowHistorical   InflowMethod = "historical"
	InflowConservative InflowMethod = "conservative" // 75% of historical
	InflowOptimistic   InflowMethod = "optimistic"   // 125% of historical
	InflowCustom       InflowMethod = "custom"
)

var (
	conservativeMultiplier = decimal.NewFromFloat(0.75)
	aggressiveMultiplier   = decimal.NewFromFloat(1.25)
)

// ResolveDeploymentRate turns a deployment method into a per-period rate.
// The lever method ignores history entirely: rate = target deals per period
// x average participation per deal.
func ResolveDeploymentRate(
	method DeploymentMethod,
	historical decimal.Decimal,
	targetDealsPerPeriod float64,
	avgParticipation decimal.Decimal,
) decimal.Decimal {
	switch method {
	case DeploymentConservative:
		return historical.Mul(conservativeMultiplier)
	case DeploymentAggressive:
		return historical.Mul(aggressiveMultiplier)
	case DeploymentLever:
		return avgParticipation.Mul(decimal.NewFromFloat(targetDealsPerPeriod))
	}
	return historical
}

// ResolveInflowRate turns an inflow method into a per-period rate.
func ResolveInflowRate(method InflowMethod, historical, custom decimal.Decimal) decimal.Decimal {
	switch method {
	case InflowConservative:
		return historical.Mul(conservativeMultiplier)
	case InflowOptimistic:
		return historical.Mul(aggressiveMultiplier)
	case InflowCustom:
		return custom
	}
	return historical
}

// AdjustRate applies a signed percentage change to a per-period rate, used by
// the scenario comparison.
func AdjustRate(rate decimal.Decimal, changePercent int) decimal.Decimal {
	multiplier := decimal.NewFromInt(100 + int64(changePercent)).Div(decimal.NewFromInt(100))
	return rate.Mul(multiplier)
}
