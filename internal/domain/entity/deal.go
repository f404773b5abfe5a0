// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deal represents one loan origination/participation record sourced from the CRM.
// Underwriting and economics fields are nullable at the source; derived values
// default to zero when the backing field is absent.
type Deal struct {
	ID            uuid.UUID
	LoanID        string // business key for reconciliation; empty means unassigned
	CustomerName  string
	DateCreated   time.Time
	Amount        *decimal.Decimal // participation principal
	FactorRate    *decimal.Decimal
	LoanTerm      *int // months
	IsClosedWon   bool
	PartnerSource string
	Commission    *decimal.Decimal
	TIB           *float64 // time in business, months
	FICO          *float64
}

// NormalizedLoanID returns the trimmed loan id. Empty string is the
// missing sentinel and must never be matched against another empty id.
func (d Deal) NormalizedLoanID() string {
	return strings.TrimSpace(d.LoanID)
}

// HasLoanID reports whether the deal carries a usable loan id.
func (d Deal) HasLoanID() bool {
	return d.NormalizedLoanID() != ""
}

// Participation returns the participation principal, zero when absent.
func (d Deal) Participation() decimal.Decimal {
	if d.Amount == nil {
		return decimal.Zero
	}
	return *d.Amount
}

// ExpectedReturn returns participation x factor rate, the total amount owed
// against this participation. Zero when either input is absent.
func (d Deal) ExpectedReturn() decimal.Decimal {
	if d.Amount == nil || d.FactorRate == nil {
		return decimal.Zero
	}
	return d.Amount.Mul(*d.FactorRate)
}
