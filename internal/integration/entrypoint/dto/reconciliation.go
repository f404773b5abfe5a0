// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/mca-analytics/backend/internal/application/usecase/reconciliation"
	"github.com/mca-analytics/backend/internal/domain/entity"
)

// LoanRecordResponse represents one unified loan record in the response.
type LoanRecordResponse struct {
	LoanID                string   `json:"loan_id"`
	DealName              string   `json:"deal_name"`
	QBOCustomer           string   `json:"qbo_customer"`
	FactorRate            float64  `json:"factor_rate"`
	ParticipationAmount   float64  `json:"participation_amount"`
	ExpectedReturn        float64  `json:"expected_return"`
	RTRAmount             float64  `json:"rtr_amount"`
	RTRPercentage         float64  `json:"rtr_percentage"`
	TotalCustomerPayments float64  `json:"total_customer_payments"`
	AttributionPercentage float64  `json:"attribution_percentage"`
	UnattributedAmount    float64  `json:"unattributed_amount"`
	LoanPaymentCount      int      `json:"loan_payment_count"`
	CustomerPaymentCount  int      `json:"customer_payment_count"`
	CustomerActiveLoans   int      `json:"customer_active_loans"`
	UnattributedCount     int      `json:"unattributed_count"`
	DaysSinceLastPayment  *int     `json:"days_since_last_payment"`
	TIB                   *float64 `json:"tib"`
	FICO                  *float64 `json:"fico"`
}

// LoanTapeSummaryResponse represents the portfolio summary in the response.
type LoanTapeSummaryResponse struct {
	TotalLoans             int     `json:"total_loans"`
	LoansWithPayments      int     `json:"loans_with_payments"`
	TotalParticipation     float64 `json:"total_participation"`
	TotalExpectedReturn    float64 `json:"total_expected_return"`
	TotalRTRAmount         float64 `json:"total_rtr_amount"`
	TotalUnattributed      float64 `json:"total_unattributed"`
	AvgRTRPercentage       float64 `json:"avg_rtr_percentage"`
	PortfolioRTRPercentage float64 `json:"portfolio_rtr_percentage"`
	RealizedVsExpected     float64 `json:"realized_vs_expected"`
}

// LoanTapeResponse represents the response for the loan tape API.
type LoanTapeResponse struct {
	Records            []LoanRecordResponse    `json:"records"`
	Summary            LoanTapeSummaryResponse `json:"summary"`
	NoData             bool                    `json:"no_data"`
	PossiblyIncomplete bool                    `json:"possibly_incomplete"`
}

// ToLoanTapeResponse converts a BuildLoanTapeOutput to LoanTapeResponse DTO.
func ToLoanTapeResponse(output *reconciliation.BuildLoanTapeOutput) LoanTapeResponse {
	records := make([]LoanRecordResponse, len(output.Records))
	for i, record := range output.Records {
		records[i] = toLoanRecordResponse(record)
	}

	summary := output.Summary
	totalParticipation, _ := summary.TotalParticipation.Float64()
	totalExpectedReturn, _ := summary.TotalExpectedReturn.Float64()
	totalRTR, _ := summary.TotalRTRAmount.Float64()
	totalUnattributed, _ := summary.TotalUnattributed.Float64()

	return LoanTapeResponse{
		Records: records,
		Summary: LoanTapeSummaryResponse{
			TotalLoans:             summary.TotalLoans,
			LoansWithPayments:      summary.LoansWithPayments,
			TotalParticipation:     totalParticipation,
			TotalExpectedReturn:    totalExpectedReturn,
			TotalRTRAmount:         totalRTR,
			TotalUnattributed:      totalUnattributed,
			AvgRTRPercentage:       summary.AvgRTRPercentage,
			PortfolioRTRPercentage: summary.PortfolioRTRPercentage,
			RealizedVsExpected:     summary.RealizedVsExpected,
		},
		NoData:             output.NoData,
		PossiblyIncomplete: output.PossiblyIncomplete,
	}
}

func toLoanRecordResponse(record entity.UnifiedLoanRecord) LoanRecordResponse {
	factorRate, _ := record.FactorRate.Float64()
	participation, _ := record.ParticipationAmount.Float64()
	expectedReturn, _ := record.ExpectedReturn.Float64()
	rtrAmount, _ := record.RTRAmount.Float64()
	customerPayments, _ := record.TotalCustomerPayments.Float64()
	unattributed, _ := record.UnattributedAmount.Float64()

	return LoanRecordResponse{
		LoanID:                record.LoanID,
		DealName:              record.DealName,
		QBOCustomer:           record.QBOCustomer,
		FactorRate:            factorRate,
		ParticipationAmount:   participation,
		ExpectedReturn:        expectedReturn,
		RTRAmount:             rtrAmount,
		RTRPercentage:         record.RTRPercentage,
		TotalCustomerPayments: customerPayments,
		AttributionPercentage: record.AttributionPercentage,
		UnattributedAmount:    unattributed,
		LoanPaymentCount:      record.LoanPaymentCount,
		CustomerPaymentCount:  record.CustomerPaymentCount,
		CustomerActiveLoans:   record.CustomerActiveLoans,
		UnattributedCount:     record.UnattributedCount,
		DaysSinceLastPayment:  record.DaysSinceLastPayment,
		TIB:                   record.TIB,
		FICO:                  record.FICO,
	}
}

// CustomerSummaryResponse represents one customer rollup in the response.
type CustomerSummaryResponse struct {
	CustomerName       string  `json:"customer_name"`
	TotalPayments      float64 `json:"total_payments"`
	PaymentCount       int     `json:"payment_count"`
	UniqueLoans        int     `json:"unique_loans"`
	UnattributedAmount float64 `json:"unattributed_amount"`
	UnattributedCount  int     `json:"unattributed_count"`
}

// CustomerSummariesResponse represents the response for the customer summary API.
type CustomerSummariesResponse struct {
	Customers                 []CustomerSummaryResponse `json:"customers"`
	TotalUnattributed         float64                   `json:"total_unattributed"`
	CustomersWithUnattributed int                       `json:"customers_with_unattributed"`
	NoData                    bool                      `json:"no_data"`
	PossiblyIncomplete        bool                      `json:"possibly_incomplete"`
}

// ToCustomerSummariesResponse converts a GetCustomerSummaryOutput to its DTO.
func ToCustomerSummariesResponse(output *reconciliation.GetCustomerSummaryOutput) CustomerSummariesResponse {
	customers := make([]CustomerSummaryResponse, len(output.Summaries))
	for i, summary := range output.Summaries {
		totalPayments, _ := summary.TotalPayments.Float64()
		unattributed, _ := summary.UnattributedAmount.Float64()
		customers[i] = CustomerSummaryResponse{
			CustomerName:       summary.CustomerName,
			TotalPayments:      totalPayments,
			PaymentCount:       summary.PaymentCount,
			UniqueLoans:        summary.UniqueLoans,
			UnattributedAmount: unattributed,
			UnattributedCount:  summary.UnattributedCount,
		}
	}

	totalUnattributed, _ := output.TotalUnattributed.Float64()
	return CustomerSummariesResponse{
		Customers:                 customers,
		TotalUnattributed:         totalUnattributed,
		CustomersWithUnattributed: output.CustomersWithUnattributed,
		NoData:                    output.NoData,
		PossiblyIncomplete:        output.PossiblyIncomplete,
	}
}

// TypeBreakdownResponse represents one transaction type in the diagnostics.
type TypeBreakdownResponse struct {
	Type        string  `json:"type"`
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
}

// AmountCountResponse pairs a money total with a row count.
type AmountCountResponse struct {
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// TopCustomerVolumeResponse represents one top-customer entry.
type TopCustomerVolumeResponse struct {
	CustomerName  string  `json:"customer_name"`
	TotalPayments float64 `json:"total_payments"`
}

// DiagnosticsResponse represents the response for the diagnostics API.
type DiagnosticsResponse struct {
	RawTransactionCount      int                      `json:"raw_transaction_count"`
	RawDealCount             int                      `json:"raw_deal_count"`
	ClosedWonDealCount       int                      `json:"closed_won_deal_count"`
	GeneralLedgerCount       int                      `json:"general_ledger_count"`
	TotalTransactionAmount   float64                  `json:"total_transaction_amount"`
	InflowTypesAmount        float64                  `json:"inflow_types_amount"`
	FilteringLoss            float64                  `json:"filtering_loss"`
	TransactionTypes         []TypeBreakdownResponse  `json:"transaction_types"`
	WithLoanID               AmountCountResponse      `json:"with_loan_id"`
	WithoutLoanID            AmountCountResponse      `json:"without_loan_id"`
	UniqueDealLoanIDs        int                      `json:"unique_deal_loan_ids"`
	UniqueTransactionLoanIDs int                      `json:"unique_transaction_loan_ids"`
	OverlappingLoanIDs       int                      `json:"overlapping_loan_ids"`
	OverlapRate              float64                  `json:"overlap_rate"`
	TopCustomers             []TopCustomerVolumeResponse `json:"top_customers"`
	DataVolumeLimitSuspected bool                     `json:"data_volume_limit_suspected"`
	NoData                   bool                     `json:"no_data"`
}

// ToDiagnosticsResponse converts a Diagnostics record to its DTO.
func ToDiagnosticsResponse(diag *reconciliation.Diagnostics) DiagnosticsResponse {
	types := make([]TypeBreakdownResponse, len(diag.TransactionTypes))
	for i, tb := range diag.TransactionTypes {
		amount, _ := tb.TotalAmount.Float64()
		types[i] = TypeBreakdownResponse{
			Type:        string(tb.Type),
			TotalAmount: amount,
			Count:       tb.Count,
		}
	}

	topCustomers := make([]TopCustomerVolumeResponse, len(diag.TopCustomers))
	for i, cv := range diag.TopCustomers {
		total, _ := cv.TotalPayments.Float64()
		topCustomers[i] = TopCustomerVolumeResponse{
			CustomerName:  cv.CustomerName,
			TotalPayments: total,
		}
	}

	totalAmount, _ := diag.TotalTransactionAmount.Float64()
	inflowAmount, _ := diag.InflowTypesAmount.Float64()
	filteringLoss, _ := diag.FilteringLoss.Float64()
	withAmount, _ := diag.WithLoanID.Amount.Float64()
	withoutAmount, _ := diag.WithoutLoanID.Amount.Float64()

	return DiagnosticsResponse{
		RawTransactionCount:      diag.RawTransactionCount,
		RawDealCount:             diag.RawDealCount,
		ClosedWonDealCount:       diag.ClosedWonDealCount,
		GeneralLedgerCount:       diag.GeneralLedgerCount,
		TotalTransactionAmount:   totalAmount,
		InflowTypesAmount:        inflowAmount,
		FilteringLoss:            filteringLoss,
		TransactionTypes:         types,
		WithLoanID:               AmountCountResponse{Amount: withAmount, Count: diag.WithLoanID.Count},
		WithoutLoanID:            AmountCountResponse{Amount: withoutAmount, Count: diag.WithoutLoanID.Count},
		UniqueDealLoanIDs:        diag.UniqueDealLoanIDs,
		UniqueTransactionLoanIDs: diag.UniqueTransactionLoanIDs,
		OverlappingLoanIDs:       diag.OverlappingLoanIDs,
		OverlapRate:              diag.OverlapRate,
		TopCustomers:             topCustomers,
		DataVolumeLimitSuspected: diag.DataVolumeLimitSuspected,
		NoData:                   diag.NoData,
	}
}

// CombinedDealResponse represents one CRM deal joined to its servicing record.
type CombinedDealResponse struct {
	LoanID            string     `json:"loan_id"`
	CustomerName      string     `json:"customer_name"`
	BusinessName      string     `json:"business_name"`
	ParticipationAmt  float64    `json:"participation_amount"`
	TotalFundedAmount *float64   `json:"total_funded_amount"`
	PaybackAmount     *float64   `json:"payback_amount"`
	FundedDate        *time.Time `json:"funded_date"`
}

// CombinedDealsResponse represents the response for the combined deals API.
type CombinedDealsResponse struct {
	Deals          []CombinedDealResponse `json:"deals"`
	MatchedCount   int                    `json:"matched_count"`
	UnmatchedCount int                    `json:"unmatched_count"`
	SkippedNoID    int                    `json:"skipped_no_id"`
	NoData         bool                   `json:"no_data"`
}

// ToCombinedDealsResponse converts a CombineDealsOutput to its DTO.
func ToCombinedDealsResponse(output *reconciliation.CombineDealsOutput) CombinedDealsResponse {
	deals := make([]CombinedDealResponse, len(output.Combined))
	for i, combined := range output.Combined {
		participation, _ := combined.Deal.Participation().Float64()
		resp := CombinedDealResponse{
			LoanID:           combined.Deal.NormalizedLoanID(),
			CustomerName:     combined.Deal.CustomerName,
			BusinessName:     combined.MCADeal.BusinessName,
			ParticipationAmt: participation,
			FundedDate:       combined.MCADeal.FundedDate,
		}
		if combined.MCADeal.TotalFundedAmount != nil {
			funded, _ := combined.MCADeal.TotalFundedAmount.Float64()
			resp.TotalFundedAmount = &funded
		}
		if combined.MCADeal.PaybackAmount != nil {
			payback, _ := combined.MCADeal.PaybackAmount.Float64()
			resp.PaybackAmount = &payback
		}
		deals[i] = resp
	}

	return CombinedDealsResponse{
		Deals:          deals,
		MatchedCount:   output.MatchedCount,
		UnmatchedCount: output.UnmatchedCount,
		SkippedNoID:    output.SkippedNoID,
		NoData:         output.NoData,
	}
}
