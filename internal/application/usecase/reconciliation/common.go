// Package reconciliation contains the loan/customer reconciliation use cases:
// joining CRM deals against payment transactions, customer payment
// aggregation, and the join diagnostics.
package reconciliation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// normalizeCustomer trims the customer name used as the fallback join key.
func normalizeCustomer(name string) string {
	return strings.TrimSpace(name)
}

// loanStats accumulates the inflow transactions attributed to one loan id.
// Payments on one loan can arrive under more than one ledger customer name;
// customers keeps every contributor so downstream totals cover all of them.
type loanStats struct {
	total       decimal.Decimal
	count       int
	customer    string // first-seen ledger customer, used for display
	customers   map[string]struct{}
	lastPayment time.Time
}

// customerStats accumulates all inflow transactions for one customer,
// regardless of loan attribution.
type customerStats struct {
	total              decimal.Decimal
	count              int
	loanIDs            map[string]struct{}
	unattributedAmount decimal.Decimal
	unattributedCount  int
}

// aggregatePayments walks the transaction ledger once and builds both sides
// of the reconciliation: per-loan and per-customer inflow aggregates. Only
// inflow-type transactions (Payment, Deposit, Receipt) participate; amounts
// are absolute values.
func aggregatePayments(txns []entity.Transaction) (map[string]*loanStats, map[string]*customerStats) {
	loans := make(map[string]*loanStats)
	customers := make(map[string]*customerStats)

	for _, txn := range txns {
		if !txn.Type.IsInflow() {
			continue
		}

		amount := txn.AbsAmount()
		customer := normalizeCustomer(txn.CustomerName)
		loanID := txn.NormalizedLoanID()

		cs, ok := customers[customer]
		if !ok {
			cs = &customerStats{loanIDs: make(map[string]struct{})}
			customers[customer] = cs
		}
		cs.total = cs.total.Add(amount)
		cs.count++

		if loanID == "" {
			cs.unattributedAmount = cs.unattributedAmount.Add(amount)
			cs.unattributedCount++
			continue
		}
		cs.loanIDs[loanID] = struct{}{}

		ls, ok := loans[loanID]
		if !ok {
			ls = &loanStats{customer: customer, customers: make(map[string]struct{})}
			loans[loanID] = ls
		}
		ls.customers[customer] = struct{}{}
		ls.total = ls.total.Add(amount)
		ls.count++
		if txn.TxnDate.After(ls.lastPayment) {
			ls.lastPayment = txn.TxnDate
		}
	}

	return loans, customers
}

// filterClosedWon returns the deals with capital at risk. Deals that have not
// closed won are excluded from reconciliation entirely.
func filterClosedWon(deals []entity.Deal) []entity.Deal {
	won := make([]entity.Deal, 0, len(deals))
	for _, deal := range deals {
		if deal.IsClosedWon {
			won = append(won, deal)
		}
	}
	return won
}

// percentOf returns numerator/denominator as a percentage, 0 when the
// denominator is not positive. Ratios never raise and never propagate NaN.
func percentOf(numerator, denominator decimal.Decimal) float64 {
	if !denominator.IsPositive() {
		return 0
	}
	pct, _ := numerator.Div(denominator).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
