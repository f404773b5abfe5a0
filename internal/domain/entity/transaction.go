// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the ledger category of a payments-system transaction.
type TransactionType string

const (
	TransactionTypeInvoice    TransactionType = "Invoice"
	TransactionTypePayment    TransactionType = "Payment"
	TransactionTypeBill       TransactionType = "Bill"
	TransactionTypeCreditMemo TransactionType = "Credit Memo"
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeReceipt    TransactionType = "Receipt"
	TransactionTypeExpense    TransactionType = "Expense"
)

// IsInflow reports whether the type represents cash coming in.
func (t TransactionType) IsInflow() bool {
	switch t {
	case TransactionTypePayment, TransactionTypeDeposit, TransactionTypeReceipt:
		return true
	}
	return false
}

// IsOutflow reports whether the type represents cash going out.
func (t TransactionType) IsOutflow() bool {
	switch t {
	case TransactionTypeInvoice, TransactionTypeBill, TransactionTypeExpense:
		return true
	}
	return false
}

// Transaction represents one ledger line from the payments system.
// Amounts arrive signed or unsigned depending on the source export; all
// aggregation works on absolute values.
type Transaction struct {
	ID           uuid.UUID
	LoanID       string // frequently absent; absence drives unattributed accounting
	CustomerName string
	Type         TransactionType
	Amount       decimal.Decimal
	TxnDate      time.Time
}

// NormalizedLoanID returns the trimmed loan id, empty when unattributed.
func (t Transaction) NormalizedLoanID() string {
	return strings.TrimSpace(t.LoanID)
}

// HasLoanID reports whether the transaction is attributed to a loan.
func (t Transaction) HasLoanID() bool {
	return t.NormalizedLoanID() != ""
}

// AbsAmount returns the magnitude of the transaction amount.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// CashImpact returns the signed cash effect of the transaction: positive for
// inflow types, negative for outflow types, zero for everything else.
func (t Transaction) CashImpact() decimal.Decimal {
	switch {
	case t.Type.IsInflow():
		return t.Amount.Abs()
	case t.Type.IsOutflow():
		return t.Amount.Abs().Neg()
	}
	return decimal.Zero
}
