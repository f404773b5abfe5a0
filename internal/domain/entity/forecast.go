// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastPeriod is one step of a cash projection. The identities
// NetFlow = Inflows - Deployment - Opex and
// CashPosition = previous CashPosition + NetFlow hold exactly.
type ForecastPeriod struct {
	Date         time.Time
	CashPosition decimal.Decimal
	Deployment   decimal.Decimal
	Inflows      decimal.Decimal
	Opex         decimal.Decimal
	NetFlow      decimal.Decimal
}

// DailyCashFlow is one day of observed net cash movement derived from the
// transaction ledger.
type DailyCashFlow struct {
	Date             time.Time
	NetCashFlow      decimal.Decimal
	CumulativeFlow   decimal.Decimal
	TransactionCount int
}
