// Package analytics contains the portfolio analytics use case: customer
// transaction velocity, volume concentration, and cohort performance.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

const (
	topVelocityCustomers = 15
	topVolumeCustomers   = 20
	concentrationCutoff  = 10
)

// CustomerVelocity measures engagement intensity for one customer: the
// average transaction volume per active month.
type CustomerVelocity struct {
	CustomerName     string
	MonthsActive     int
	AvgMonthlyVolume decimal.Decimal
}

// CustomerVolume is one customer's share of total transaction volume.
type CustomerVolume struct {
	CustomerName     string
	TotalVolume      decimal.Decimal
	TransactionCount int
	AvgTransaction   decimal.Decimal
	VolumePercentage float64
}

// ConcentrationSummary captures how much of the book sits with the
// largest customers.
type ConcentrationSummary struct {
	Top10Percentage float64
	Top20Percentage float64
	ActiveCustomers int
}

// CohortBenchmarks are the portfolio-wide averages each cohort is
// measured against.
type CohortBenchmarks struct {
	AvgCustomerValue decimal.Decimal
	AvgValuePerMonth decimal.Decimal
	AvgTransactions  float64
}

// CohortPerformance aggregates the customers acquired in one quarter and
// compares them to the portfolio benchmarks.
type CohortPerformance struct {
	Quarter             string
	CustomerCount       int
	AvgTotalValue       decimal.Decimal
	MedianTotalValue    decimal.Decimal
	CohortTotalValue    decimal.Decimal
	AvgValuePerMonth    decimal.Decimal
	MedianValuePerMonth decimal.Decimal
	AvgAgeMonths        float64
	AvgTransactions     float64

	// Percentage deltas against the benchmarks, signed.
	ValueVsBenchmark      float64
	EfficiencyVsBenchmark float64
	ActivityVsBenchmark   float64
}

// PortfolioAnalyticsOutput is the result of an analytics pass.
type PortfolioAnalyticsOutput struct {
	Velocity      []CustomerVelocity
	TopCustomers  []CustomerVolume
	Concentration ConcentrationSummary
	Cohorts       []CohortPerformance
	Benchmarks    CohortBenchmarks

	NoData             bool
	PossiblyIncomplete bool
}

// PortfolioAnalyticsUseCase computes the advanced portfolio views from the
// transaction ledger. House accounts are internal money movement and are
// excluded before any customer-level aggregation.
type PortfolioAnalyticsUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
	now    func() time.Time
}

// NewPortfolioAnalyticsUseCase creates a new PortfolioAnalyticsUseCase instance.
func NewPortfolioAnalyticsUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *PortfolioAnalyticsUseCase {
	return &PortfolioAnalyticsUseCase{
		loader: loader,
		cfg:    cfg,
		now:    time.Now,
	}
}

// customerStats accumulates one customer's lifecycle across the ledger.
// Dated fields stay zero when the customer only has undated rows; such
// customers count for concentration but not for velocity or cohorts.
type customerStats struct {
	total decimal.Decimal
	count int

	first   time.Time
	last    time.Time
	monthly map[string]decimal.Decimal
}

// Execute runs the full analytics pass over the transaction ledger.
func (uc *PortfolioAnalyticsUseCase) Execute(ctx context.Context) (*PortfolioAnalyticsOutput, error) {
	txns, err := uc.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	stats := make(map[string]*customerStats)
	for _, txn := range txns {
		customer := strings.TrimSpace(txn.CustomerName)
		if customer == "" || uc.cfg.IsHouseAccount(customer) {
			continue
		}

		cs, ok := stats[customer]
		if !ok {
			cs = &customerStats{monthly: make(map[string]decimal.Decimal)}
			stats[customer] = cs
		}

		amount := txn.AbsAmount()
		cs.total = cs.total.Add(amount)
		cs.count++

		if txn.TxnDate.IsZero() {
			continue
		}
		month := txn.TxnDate.Format("2006-01")
		cs.monthly[month] = cs.monthly[month].Add(amount)
		if cs.first.IsZero() || txn.TxnDate.Before(cs.first) {
			cs.first = txn.TxnDate
		}
		if txn.TxnDate.After(cs.last) {
			cs.last = txn.TxnDate
		}
	}

	if len(stats) == 0 {
		return &PortfolioAnalyticsOutput{NoData: true}, nil
	}

	output := &PortfolioAnalyticsOutput{
		PossiblyIncomplete: uc.cfg.PaginationCeiling > 0 && len(txns) == uc.cfg.PaginationCeiling,
	}
	output.Velocity = uc.rankVelocity(stats)
	output.TopCustomers, output.Concentration = uc.analyzeConcentration(stats)
	output.Cohorts, output.Benchmarks = uc.analyzeCohorts(stats)

	return output, nil
}

// rankVelocity returns the customers with the highest average monthly
// transaction volume.
func (uc *PortfolioAnalyticsUseCase) rankVelocity(stats map[string]*customerStats) []CustomerVelocity {
	velocities := make([]CustomerVelocity, 0, len(stats))
	for name, cs := range stats {
		if len(cs.monthly) == 0 {
			continue
		}
		monthlySum := decimal.Zero
		for _, v := range cs.monthly {
			monthlySum = monthlySum.Add(v)
		}
		velocities = append(velocities, CustomerVelocity{
			CustomerName:     name,
			MonthsActive:     len(cs.monthly),
			AvgMonthlyVolume: monthlySum.Div(decimal.NewFromInt(int64(len(cs.monthly)))),
		})
	}

	sort.Slice(velocities, func(i, j int) bool {
		cmp := velocities[i].AvgMonthlyVolume.Cmp(velocities[j].AvgMonthlyVolume)
		if cmp != 0 {
			return cmp > 0
		}
		return velocities[i].CustomerName < velocities[j].CustomerName
	})

	if len(velocities) > topVelocityCustomers {
		velocities = velocities[:topVelocityCustomers]
	}
	return velocities
}

// analyzeConcentration ranks customers by total volume and measures how
// much of the book the largest ones hold.
func (uc *PortfolioAnalyticsUseCase) analyzeConcentration(stats map[string]*customerStats) ([]CustomerVolume, ConcentrationSummary) {
	grandTotal := decimal.Zero
	for _, cs := range stats {
		grandTotal = grandTotal.Add(cs.total)
	}

	volumes := make([]CustomerVolume, 0, len(stats))
	for name, cs := range stats {
		cv := CustomerVolume{
			CustomerName:     name,
			TotalVolume:      cs.total,
			TransactionCount: cs.count,
		}
		if cs.count > 0 {
			cv.AvgTransaction = cs.total.Div(decimal.NewFromInt(int64(cs.count)))
		}
		if grandTotal.IsPositive() {
			cv.VolumePercentage, _ = cs.total.Div(grandTotal).Mul(decimal.NewFromInt(100)).Float64()
		}
		volumes = append(volumes, cv)
	}

	sort.Slice(volumes, func(i, j int) bool {
		cmp := volumes[i].TotalVolume.Cmp(volumes[j].TotalVolume)
		if cmp != 0 {
			return cmp > 0
		}
		return volumes[i].CustomerName < volumes[j].CustomerName
	})

	summary := ConcentrationSummary{ActiveCustomers: len(volumes)}
	for i, cv := range volumes {
		if i < concentrationCutoff {
			summary.Top10Percentage += cv.VolumePercentage
		}
		if i < topVolumeCustomers {
			summary.Top20Percentage += cv.VolumePercentage
		}
	}

	if len(volumes) > topVolumeCustomers {
		volumes = volumes[:topVolumeCustomers]
	}
	return volumes, summary
}

// analyzeCohorts groups customers by first-transaction quarter and
// compares each cohort's value, efficiency, and activity against the
// portfolio averages.
func (uc *PortfolioAnalyticsUseCase) analyzeCohorts(stats map[string]*customerStats) ([]CohortPerformance, CohortBenchmarks) {
	type cohortKey struct {
		year    int
		quarter int
	}
	type cohortAccum struct {
		totals        []decimal.Decimal
		perMonth      []decimal.Decimal
		ageMonthsSum  float64
		txnCountSum   int
		customerCount int
	}

	now := uc.now()
	cohorts := make(map[cohortKey]*cohortAccum)

	var benchmark CohortBenchmarks
	var benchmarkPerMonthSum decimal.Decimal
	dated := 0

	for _, cs := range stats {
		if cs.first.IsZero() {
			continue
		}
		dated++

		ageMonths := now.Sub(cs.first).Hours() / 24 / 30
		valuePerMonth := cs.total
		if ageMonths > 0 {
			valuePerMonth = cs.total.Div(decimal.NewFromFloat(ageMonths))
		}

		key := cohortKey{year: cs.first.Year(), quarter: (int(cs.first.Month())-1)/3 + 1}
		ca, ok := cohorts[key]
		if !ok {
			ca = &cohortAccum{}
			cohorts[key] = ca
		}
		ca.totals = append(ca.totals, cs.total)
		ca.perMonth = append(ca.perMonth, valuePerMonth)
		ca.ageMonthsSum += ageMonths
		ca.txnCountSum += cs.count
		ca.customerCount++

		benchmark.AvgCustomerValue = benchmark.AvgCustomerValue.Add(cs.total)
		benchmarkPerMonthSum = benchmarkPerMonthSum.Add(valuePerMonth)
		benchmark.AvgTransactions += float64(cs.count)
	}

	if dated == 0 {
		return nil, CohortBenchmarks{}
	}

	n := decimal.NewFromInt(int64(dated))
	benchmark.AvgCustomerValue = benchmark.AvgCustomerValue.Div(n)
	benchmark.AvgValuePerMonth = benchmarkPerMonthSum.Div(n)
	benchmark.AvgTransactions /= float64(dated)

	keys := make([]cohortKey, 0, len(cohorts))
	for key := range cohorts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].quarter < keys[j].quarter
	})

	performances := make([]CohortPerformance, 0, len(keys))
	for _, key := range keys {
		ca := cohorts[key]
		count := decimal.NewFromInt(int64(ca.customerCount))

		perf := CohortPerformance{
			Quarter:             fmt.Sprintf("%dQ%d", key.year, key.quarter),
			CustomerCount:       ca.customerCount,
			MedianTotalValue:    median(ca.totals),
			MedianValuePerMonth: median(ca.perMonth),
			AvgAgeMonths:        ca.ageMonthsSum / float64(ca.customerCount),
			AvgTransactions:     float64(ca.txnCountSum) / float64(ca.customerCount),
		}
		for _, v := range ca.totals {
			perf.CohortTotalValue = perf.CohortTotalValue.Add(v)
		}
		perf.AvgTotalValue = perf.CohortTotalValue.Div(count)
		perMonthSum := decimal.Zero
		for _, v := range ca.perMonth {
			perMonthSum = perMonthSum.Add(v)
		}
		perf.AvgValuePerMonth = perMonthSum.Div(count)

		perf.ValueVsBenchmark = vsBenchmark(perf.AvgTotalValue, benchmark.AvgCustomerValue)
		perf.EfficiencyVsBenchmark = vsBenchmark(perf.AvgValuePerMonth, benchmark.AvgValuePerMonth)
		if benchmark.AvgTransactions > 0 {
			perf.ActivityVsBenchmark = (perf.AvgTransactions/benchmark.AvgTransactions - 1) * 100
		}

		performances = append(performances, perf)
	}

	return performances, benchmark
}

// vsBenchmark returns the signed percentage delta of value against the
// benchmark, zero when the benchmark is not positive.
func vsBenchmark(value, benchmark decimal.Decimal) float64 {
	if !benchmark.IsPositive() {
		return 0
	}
	delta, _ := value.Div(benchmark).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Float64()
	return delta
}

// median returns the middle value of the set, averaging the two middle
// values for even counts. The input slice is sorted in place.
func median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return values[mid-1].Add(values[mid]).Div(decimal.NewFromInt(2))
}
