// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MCADeal represents one record from the MCA servicing system. Its
// DealNumber corresponds to the CRM deal's loan id.
type MCADeal struct {
	ID                uuid.UUID
	DealNumber        string
	BusinessName      string
	TotalFundedAmount *decimal.Decimal
	PaybackAmount     *decimal.Decimal
	FundedDate        *time.Time
}

// NormalizedDealNumber returns the trimmed deal number, empty when missing.
func (m MCADeal) NormalizedDealNumber() string {
	return strings.TrimSpace(m.DealNumber)
}

// GeneralLedgerEntry represents one general-ledger line from the accounting
// system. Loaded alongside the transaction ledger; currently only counted in
// diagnostics.
type GeneralLedgerEntry struct {
	ID      uuid.UUID
	TxnDate time.Time
	TxnType string
	Name    string
	Amount  decimal.Decimal
}
