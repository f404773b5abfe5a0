// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/mca-analytics/backend/internal/application/usecase/risk"
)

// RiskProfileResponse represents one scored customer in the response.
type RiskProfileResponse struct {
	CustomerName       string  `json:"customer_name"`
	InvoiceTotal       float64 `json:"invoice_total"`
	PaymentTotal       float64 `json:"payment_total"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	PaymentRatio       float64 `json:"payment_ratio"`
	RiskScore          float64 `json:"risk_score"`
	Category           string  `json:"category"`
}

// RiskSummaryResponse represents the portfolio risk summary.
type RiskSummaryResponse struct {
	HighRiskCount      int     `json:"high_risk_count"`
	HighRiskPercentage float64 `json:"high_risk_percentage"`
	AvgPaymentRatio    float64 `json:"avg_payment_ratio"`
	AvgRiskScore       float64 `json:"avg_risk_score"`
	TotalOutstanding   float64 `json:"total_outstanding"`
}

// RiskResponse represents the response for the risk scoring API.
type RiskResponse struct {
	Profiles           []RiskProfileResponse `json:"profiles"`
	Summary            RiskSummaryResponse   `json:"summary"`
	NoData             bool                  `json:"no_data"`
	PossiblyIncomplete bool                  `json:"possibly_incomplete"`
}

// ToRiskResponse converts a ScoreCustomersOutput to RiskResponse DTO.
func ToRiskResponse(output *risk.ScoreCustomersOutput) RiskResponse {
	profiles := make([]RiskProfileResponse, len(output.Profiles))
	for i, profile := range output.Profiles {
		invoices, _ := profile.InvoiceTotal.Float64()
		payments, _ := profile.PaymentTotal.Float64()
		outstanding, _ := profile.OutstandingBalance.Float64()
		profiles[i] = RiskProfileResponse{
			CustomerName:       profile.CustomerName,
			InvoiceTotal:       invoices,
			PaymentTotal:       payments,
			OutstandingBalance: outstanding,
			PaymentRatio:       profile.PaymentRatio,
			RiskScore:          profile.RiskScore,
			Category:           string(profile.Category),
		}
	}

	totalOutstanding, _ := output.Summary.TotalOutstanding.Float64()
	return RiskResponse{
		Profiles: profiles,
		Summary: RiskSummaryResponse{
			HighRiskCount:      output.Summary.HighRiskCount,
			HighRiskPercentage: output.Summary.HighRiskPercentage,
			AvgPaymentRatio:    output.Summary.AvgPaymentRatio,
			AvgRiskScore:       output.Summary.AvgRiskScore,
			TotalOutstanding:   totalOutstanding,
		},
		NoData:             output.NoData,
		PossiblyIncomplete: output.PossiblyIncomplete,
	}
}
