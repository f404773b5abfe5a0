// Package forecast contains the cash flow forecasting use cases.
package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// CashActivityOutput is the observed daily cash movement series with its
// summary statistics.
type CashActivityOutput struct {
	Days []entity.DailyCashFlow

	AvgDailyFlow    decimal.Decimal
	Volatility      float64 // standard deviation of daily net flow
	PositiveDays    int
	TotalDays       int
	CurrentPosition decimal.Decimal // ending cumulative flow
	Recent7DayAvg   decimal.Decimal

	NoData             bool
	PossiblyIncomplete bool
}

// AnalyzeCashActivityUseCase derives the historical daily net cash flow
// series from the transaction ledger: inflow types count positive, outflow
// types negative, everything else is neutral.
type AnalyzeCashActivityUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
}

// NewAnalyzeCashActivityUseCase creates a new AnalyzeCashActivityUseCase instance.
func NewAnalyzeCashActivityUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *AnalyzeCashActivityUseCase {
	return &AnalyzeCashActivityUseCase{
		loader: loader,
		cfg:    cfg,
	}
}

// Execute rebuilds the daily series from the current snapshot.
func (uc *AnalyzeCashActivityUseCase) Execute(ctx context.Context) (*CashActivityOutput, error) {
	txns, err := uc.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	type dayAgg struct {
		net   decimal.Decimal
		count int
	}
	byDay := make(map[time.Time]*dayAgg)
	for _, txn := range txns {
		if txn.TxnDate.IsZero() {
			continue
		}
		day := txn.TxnDate.Truncate(24 * time.Hour)
		agg, ok := byDay[day]
		if !ok {
			agg = &dayAgg{}
			byDay[day] = agg
		}
		agg.net = agg.net.Add(txn.CashImpact())
		agg.count++
	}

	if len(byDay) == 0 {
		return &CashActivityOutput{NoData: true}, nil
	}

	days := make([]entity.DailyCashFlow, 0, len(byDay))
	for day, agg := range byDay {
		days = append(days, entity.DailyCashFlow{
			Date:             day,
			NetCashFlow:      agg.net,
			TransactionCount: agg.count,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	output := &CashActivityOutput{
		Days:               days,
		TotalDays:          len(days),
		PossiblyIncomplete: uc.cfg.PaginationCeiling > 0 && len(txns) == uc.cfg.PaginationCeiling,
	}

	cumulative := decimal.Zero
	totalNet := decimal.Zero
	for i := range days {
		cumulative = cumulative.Add(days[i].NetCashFlow)
		days[i].CumulativeFlow = cumulative
		totalNet = totalNet.Add(days[i].NetCashFlow)
		if days[i].NetCashFlow.IsPositive() {
			output.PositiveDays++
		}
	}
	output.CurrentPosition = cumulative
	output.AvgDailyFlow = totalNet.Div(decimal.NewFromInt(int64(len(days))))
	output.Volatility = stddev(days)
	output.Recent7DayAvg = recentAverage(days, 7)

	return output, nil
}

// stddev computes the population standard deviation of the daily net flows.
func stddev(days []entity.DailyCashFlow) float64 {
	if len(days) < 2 {
		return 0
	}
	var sum float64
	values := make([]float64, len(days))
	for i, d := range days {
		values[i], _ = d.NetCashFlow.Float64()
		sum += values[i]
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

// recentAverage returns the mean daily flow of the trailing n days.
func recentAverage(days []entity.DailyCashFlow, n int) decimal.Decimal {
	if len(days) == 0 {
		return decimal.Zero
	}
	if len(days) < n {
		n = len(days)
	}
	total := decimal.Zero
	for _, d := range days[len(days)-n:] {
		total = total.Add(d.NetCashFlow)
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}
