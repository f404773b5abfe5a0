// Package forecast contains the cash flow forecasting use cases: baseline
// rate estimation from deal and payment history, scenario projection, and
// historical cash activity analysis.
package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// BaselineRates are the observed deployment and repayment rates derived from
// history, the inputs every scenario starts from.
type BaselineRates struct {
	DealCount          int
	DeploymentSpanDays int
	InflowSpanDays     int

	TotalDeployed decimal.Decimal
	TotalInflows  decimal.Decimal

	WeeklyDeploymentRate  decimal.Decimal
	MonthlyDeploymentRate decimal.Decimal
	WeeklyInflowRate      decimal.Decimal
	MonthlyInflowRate     decimal.Decimal

	AvgDealSize    decimal.Decimal
	MedianDealSize decimal.Decimal
	DealsPerWeek   float64
	DealsPerMonth  float64

	// HasPaymentData distinguishes "no repayment history" from a zero rate.
	HasPaymentData bool

	// InsufficientHistory is set when the observed span is below the
	// configured minimum; a single-point rate would mislead more than help.
	InsufficientHistory bool
}

// DeploymentRate returns the historical deployment rate in the given unit.
func (b BaselineRates) DeploymentRate(unit valueobject.PeriodUnit) decimal.Decimal {
	if unit == valueobject.PeriodUnitMonthly {
		return b.MonthlyDeploymentRate
	}
	return b.WeeklyDeploymentRate
}

// InflowRate returns the historical inflow rate in the given unit.
func (b BaselineRates) InflowRate(unit valueobject.PeriodUnit) decimal.Decimal {
	if unit == valueobject.PeriodUnitMonthly {
		return b.MonthlyInflowRate
	}
	return b.WeeklyInflowRate
}

// DealsPerPeriod returns the historical deal cadence in the given unit.
func (b BaselineRates) DealsPerPeriod(unit valueobject.PeriodUnit) float64 {
	if unit == valueobject.PeriodUnitMonthly {
		return b.DealsPerMonth
	}
	return b.DealsPerWeek
}

// computeBaseline derives the historical rates from closed-won deals
// (deployment outflows) and inflow-type transactions (repayments). House
// accounts are not borrower repayments and are excluded from inflows.
func computeBaseline(deals []entity.Deal, txns []entity.Transaction, cfg valueobject.EngineConfig) BaselineRates {
	baseline := BaselineRates{}

	var dealDates []time.Time
	var dealAmounts []decimal.Decimal
	for _, deal := range deals {
		if !deal.IsClosedWon || deal.DateCreated.IsZero() {
			continue
		}
		dealDates = append(dealDates, deal.DateCreated)
		amount := deal.Participation()
		dealAmounts = append(dealAmounts, amount)
		baseline.TotalDeployed = baseline.TotalDeployed.Add(amount)
	}
	baseline.DealCount = len(dealDates)

	if baseline.DealCount > 0 {
		baseline.DeploymentSpanDays = spanDays(dealDates)
		baseline.WeeklyDeploymentRate = ratePerWeek(baseline.TotalDeployed, baseline.DeploymentSpanDays)
		baseline.MonthlyDeploymentRate = ratePerMonth(baseline.TotalDeployed, baseline.DeploymentSpanDays)
		baseline.AvgDealSize = baseline.TotalDeployed.Div(decimal.NewFromInt(int64(baseline.DealCount)))
		baseline.MedianDealSize = median(dealAmounts)
		baseline.DealsPerWeek = countPerUnit(baseline.DealCount, baseline.DeploymentSpanDays, valueobject.DaysPerWeek)
		baseline.DealsPerMonth = countPerUnit(baseline.DealCount, baseline.DeploymentSpanDays, valueobject.DaysPerMonth)
	}

	var inflowDates []time.Time
	for _, txn := range txns {
		if !txn.Type.IsInflow() || txn.TxnDate.IsZero() {
			continue
		}
		if cfg.IsHouseAccount(txn.CustomerName) {
			continue
		}
		inflowDates = append(inflowDates, txn.TxnDate)
		baseline.TotalInflows = baseline.TotalInflows.Add(txn.AbsAmount())
	}

	if len(inflowDates) > 0 {
		baseline.HasPaymentData = true
		baseline.InflowSpanDays = spanDays(inflowDates)
		baseline.WeeklyInflowRate = ratePerWeek(baseline.TotalInflows, baseline.InflowSpanDays)
		baseline.MonthlyInflowRate = ratePerMonth(baseline.TotalInflows, baseline.InflowSpanDays)
	}

	observedSpan := baseline.DeploymentSpanDays
	if baseline.InflowSpanDays > observedSpan {
		observedSpan = baseline.InflowSpanDays
	}
	baseline.InsufficientHistory = observedSpan < cfg.MinHistoryDays

	return baseline
}

// spanDays returns the inclusive day span covered by the dates.
func spanDays(dates []time.Time) int {
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return int(max.Sub(min).Hours()/24) + 1
}

// ratePerWeek converts a total observed over spanDays into a weekly rate.
// A degenerate span yields the total itself rather than dividing by zero.
func ratePerWeek(total decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return total
	}
	return total.Mul(decimal.NewFromInt(valueobject.DaysPerWeek)).Div(decimal.NewFromInt(int64(days)))
}

// ratePerMonth converts a total observed over spanDays into a monthly rate.
func ratePerMonth(total decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return total
	}
	return total.Mul(decimal.NewFromFloat(valueobject.DaysPerMonth)).Div(decimal.NewFromInt(int64(days)))
}

// countPerUnit converts an event count over spanDays into a per-unit cadence.
func countPerUnit(count, days int, daysPerUnit float64) float64 {
	if days <= 0 {
		return float64(count)
	}
	return float64(count) * daysPerUnit / float64(days)
}

// median returns the middle participation amount.
func median(amounts []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
