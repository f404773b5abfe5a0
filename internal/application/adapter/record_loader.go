// Package adapter defines the ports the application layer depends on.
package adapter

import (
	"context"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

// RecordLoader supplies the raw snapshot tables the engines compute from.
// Implementations are expected to cap each query at the configured
// pagination ceiling; the engines detect a snapshot sitting exactly at the
// cap and flag downstream totals as possibly incomplete.
type RecordLoader interface {
	// LoadDeals returns the CRM deal records.
	LoadDeals(ctx context.Context) ([]entity.Deal, error)

	// LoadTransactions returns the payments-system transaction ledger.
	LoadTransactions(ctx context.Context) ([]entity.Transaction, error)

	// LoadMCADeals returns the servicing-system deal records.
	LoadMCADeals(ctx context.Context) ([]entity.MCADeal, error)

	// LoadGeneralLedger returns the accounting general-ledger lines.
	LoadGeneralLedger(ctx context.Context) ([]entity.GeneralLedgerEntry, error)
}
