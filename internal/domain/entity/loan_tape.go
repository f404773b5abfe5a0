// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// UnifiedLoanRecord is one row of the unified loan/customer table: a
// closed-won deal joined against the payment transactions attributed to it.
// Percentage fields are expressed in percent units (41.7 means 41.7%).
type UnifiedLoanRecord struct {
	LoanID                string
	DealName              string
	QBOCustomer           string
	FactorRate            decimal.Decimal
	ParticipationAmount   decimal.Decimal
	ExpectedReturn        decimal.Decimal
	RTRAmount             decimal.Decimal // payments collected against this loan
	RTRPercentage         float64         // RTRAmount / ExpectedReturn
	TotalCustomerPayments decimal.Decimal
	AttributionPercentage float64 // RTRAmount / TotalCustomerPayments
	UnattributedAmount    decimal.Decimal
	LoanPaymentCount      int
	CustomerPaymentCount  int
	CustomerActiveLoans   int // distinct loan ids seen on the customer's payments
	UnattributedCount     int
	DaysSinceLastPayment  *int // nil when the loan has never received a payment
	TIB                   *float64
	FICO                  *float64
}

// HasPayments reports whether any payment was attributed to the loan.
func (r UnifiedLoanRecord) HasPayments() bool {
	return r.RTRAmount.IsPositive()
}

// CustomerPaymentSummary aggregates all inflow transactions for one customer,
// independently of whether they could be attributed to a loan.
type CustomerPaymentSummary struct {
	CustomerName       string
	TotalPayments      decimal.Decimal
	PaymentCount       int
	UniqueLoans        int
	UnattributedAmount decimal.Decimal
	UnattributedCount  int
}

// CombinedDeal is a CRM deal enriched with the matching servicing-system
// record, joined on loan id against the servicer's deal number.
type CombinedDeal struct {
	Deal    Deal
	MCADeal MCADeal
}
