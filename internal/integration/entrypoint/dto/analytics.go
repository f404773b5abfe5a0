// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/mca-analytics/backend/internal/application/usecase/analytics"
)

// CustomerVelocityResponse represents one customer's engagement intensity.
type CustomerVelocityResponse struct {
	CustomerName     string  `json:"customer_name"`
	MonthsActive     int     `json:"months_active"`
	AvgMonthlyVolume float64 `json:"avg_monthly_volume"`
}

// CustomerVolumeResponse represents one customer's share of transaction volume.
type CustomerVolumeResponse struct {
	CustomerName     string  `json:"customer_name"`
	TotalVolume      float64 `json:"total_volume"`
	TransactionCount int     `json:"transaction_count"`
	AvgTransaction   float64 `json:"avg_transaction"`
	VolumePercentage float64 `json:"volume_percentage"`
}

// ConcentrationResponse represents the volume concentration metrics.
type ConcentrationResponse struct {
	Top10Percentage float64 `json:"top_10_percentage"`
	Top20Percentage float64 `json:"top_20_percentage"`
	ActiveCustomers int     `json:"active_customers"`
}

// CohortResponse represents one quarterly acquisition cohort.
type CohortResponse struct {
	Quarter               string  `json:"quarter"`
	CustomerCount         int     `json:"customer_count"`
	AvgTotalValue         float64 `json:"avg_total_value"`
	MedianTotalValue      float64 `json:"median_total_value"`
	CohortTotalValue      float64 `json:"cohort_total_value"`
	AvgValuePerMonth      float64 `json:"avg_value_per_month"`
	MedianValuePerMonth   float64 `json:"median_value_per_month"`
	AvgAgeMonths          float64 `json:"avg_age_months"`
	AvgTransactions       float64 `json:"avg_transactions"`
	ValueVsBenchmark      float64 `json:"value_vs_benchmark"`
	EfficiencyVsBenchmark float64 `json:"efficiency_vs_benchmark"`
	ActivityVsBenchmark   float64 `json:"activity_vs_benchmark"`
}

// CohortBenchmarksResponse represents the portfolio-wide benchmarks.
type CohortBenchmarksResponse struct {
	AvgCustomerValue float64 `json:"avg_customer_value"`
	AvgValuePerMonth float64 `json:"avg_value_per_month"`
	AvgTransactions  float64 `json:"avg_transactions"`
}

// PortfolioAnalyticsResponse represents the response for the analytics API.
type PortfolioAnalyticsResponse struct {
	Velocity           []CustomerVelocityResponse `json:"velocity"`
	TopCustomers       []CustomerVolumeResponse   `json:"top_customers"`
	Concentration      ConcentrationResponse      `json:"concentration"`
	Cohorts            []CohortResponse           `json:"cohorts"`
	Benchmarks         CohortBenchmarksResponse   `json:"benchmarks"`
	NoData             bool                       `json:"no_data"`
	PossiblyIncomplete bool                       `json:"possibly_incomplete"`
}

// ToPortfolioAnalyticsResponse converts a PortfolioAnalyticsOutput to its DTO.
func ToPortfolioAnalyticsResponse(output *analytics.PortfolioAnalyticsOutput) PortfolioAnalyticsResponse {
	velocity := make([]CustomerVelocityResponse, len(output.Velocity))
	for i, v := range output.Velocity {
		avgMonthly, _ := v.AvgMonthlyVolume.Float64()
		velocity[i] = CustomerVelocityResponse{
			CustomerName:     v.CustomerName,
			MonthsActive:     v.MonthsActive,
			AvgMonthlyVolume: avgMonthly,
		}
	}

	topCustomers := make([]CustomerVolumeResponse, len(output.TopCustomers))
	for i, cv := range output.TopCustomers {
		total, _ := cv.TotalVolume.Float64()
		avg, _ := cv.AvgTransaction.Float64()
		topCustomers[i] = CustomerVolumeResponse{
			CustomerName:     cv.CustomerName,
			TotalVolume:      total,
			TransactionCount: cv.TransactionCount,
			AvgTransaction:   avg,
			VolumePercentage: cv.VolumePercentage,
		}
	}

	cohorts := make([]CohortResponse, len(output.Cohorts))
	for i, c := range output.Cohorts {
		avgTotal, _ := c.AvgTotalValue.Float64()
		medianTotal, _ := c.MedianTotalValue.Float64()
		cohortTotal, _ := c.CohortTotalValue.Float64()
		avgPerMonth, _ := c.AvgValuePerMonth.Float64()
		medianPerMonth, _ := c.MedianValuePerMonth.Float64()
		cohorts[i] = CohortResponse{
			Quarter:               c.Quarter,
			CustomerCount:         c.CustomerCount,
			AvgTotalValue:         avgTotal,
			MedianTotalValue:      medianTotal,
			CohortTotalValue:      cohortTotal,
			AvgValuePerMonth:      avgPerMonth,
			MedianValuePerMonth:   medianPerMonth,
			AvgAgeMonths:          c.AvgAgeMonths,
			AvgTransactions:       c.AvgTransactions,
			ValueVsBenchmark:      c.ValueVsBenchmark,
			EfficiencyVsBenchmark: c.EfficiencyVsBenchmark,
			ActivityVsBenchmark:   c.ActivityVsBenchmark,
		}
	}

	benchmarkValue, _ := output.Benchmarks.AvgCustomerValue.Float64()
	benchmarkPerMonth, _ := output.Benchmarks.AvgValuePerMonth.Float64()
	return PortfolioAnalyticsResponse{
		Velocity:     velocity,
		TopCustomers: topCustomers,
		Concentration: ConcentrationResponse{
			Top10Percentage: output.Concentration.Top10Percentage,
			Top20Percentage: output.Concentration.Top20Percentage,
			ActiveCustomers: output.Concentration.ActiveCustomers,
		},
		Cohorts: cohorts,
		Benchmarks: CohortBenchmarksResponse{
			AvgCustomerValue: benchmarkValue,
			AvgValuePerMonth: benchmarkPerMonth,
			AvgTransactions:  output.Benchmarks.AvgTransactions,
		},
		NoData:             output.NoData,
		PossiblyIncomplete: output.PossiblyIncomplete,
	}
}
