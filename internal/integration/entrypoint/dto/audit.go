// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/mca-analytics/backend/internal/application/usecase/audit"
)

// AuditDealResponse represents one deal flagged by the audit.
type AuditDealResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	DateCreated  time.Time `json:"date_created"`
	Amount       *float64  `json:"amount"`
}

// FieldCompletenessResponse represents completeness of one critical field.
type FieldCompletenessResponse struct {
	Field          string  `json:"field"`
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percent"`
}

// RecentActivityResponse represents the trailing 30 days of deal flow.
type RecentActivityResponse struct {
	DealCount      int     `json:"deal_count"`
	WonCount       int     `json:"won_count"`
	MissingLoanIDs int     `json:"missing_loan_ids"`
	ClosePercent   float64 `json:"close_percent"`
}

// FreshnessResponse represents how current the deal feed is.
type FreshnessResponse struct {
	LatestDealDate    time.Time `json:"latest_deal_date"`
	DaysSinceLastDeal int       `json:"days_since_last_deal"`
	Stale             bool      `json:"stale"`
}

// AuditResponse represents the response for the data audit API.
type AuditResponse struct {
	TotalWonDeals        int                 `json:"total_won_deals"`
	MissingLoanIDCount   int                 `json:"missing_loan_id_count"`
	MissingLoanIDPercent float64             `json:"missing_loan_id_percent"`
	DealsMissingLoanID   []AuditDealResponse `json:"deals_missing_loan_id"`
	DuplicateLoanIDs     int                 `json:"duplicate_loan_ids"`

	CriticalFields []FieldCompletenessResponse `json:"critical_fields"`
	Recent         RecentActivityResponse      `json:"recent"`
	Freshness      FreshnessResponse           `json:"freshness"`

	NoData bool `json:"no_data"`
}

// ToAuditResponse converts a RunAuditOutput to AuditResponse DTO.
func ToAuditResponse(output *audit.RunAuditOutput) AuditResponse {
	flagged := make([]AuditDealResponse, len(output.DealsMissingLoanID))
	for i, deal := range output.DealsMissingLoanID {
		entry := AuditDealResponse{
			ID:           deal.ID.String(),
			CustomerName: deal.CustomerName,
			DateCreated:  deal.DateCreated,
		}
		if deal.Amount != nil {
			amount, _ := deal.Amount.Float64()
			entry.Amount = &amount
		}
		flagged[i] = entry
	}

	fields := make([]FieldCompletenessResponse, len(output.CriticalFields))
	for i, field := range output.CriticalFields {
		fields[i] = FieldCompletenessResponse{
			Field:          field.Field,
			MissingCount:   field.MissingCount,
			MissingPercent: field.MissingPercent,
		}
	}

	return AuditResponse{
		TotalWonDeals:        output.TotalWonDeals,
		MissingLoanIDCount:   output.MissingLoanIDCount,
		MissingLoanIDPercent: output.MissingLoanIDPercent,
		DealsMissingLoanID:   flagged,
		DuplicateLoanIDs:     output.DuplicateLoanIDs,
		CriticalFields:       fields,
		Recent: RecentActivityResponse{
			DealCount:      output.Recent.DealCount,
			WonCount:       output.Recent.WonCount,
			MissingLoanIDs: output.Recent.MissingLoanIDs,
			ClosePercent:   output.Recent.ClosePercent,
		},
		Freshness: FreshnessResponse{
			LatestDealDate:    output.Freshness.LatestDealDate,
			DaysSinceLastDeal: output.Freshness.DaysSinceLastDeal,
			Stale:             output.Freshness.Stale,
		},
		NoData: output.NoData,
	}
}
