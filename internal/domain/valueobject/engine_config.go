// Package valueobject contains domain value objects for the MCA analytics system.
package valueobject

// EngineConfig contains the tuning knobs shared by the reconciliation,
// risk, and forecasting engines.
type EngineConfig struct {
	// PaginationCeiling is the loader's per-table row cap. A snapshot whose
	// raw row count equals the ceiling is suspected truncated and all
	// downstream totals must be flagged possibly incomplete.
	PaginationCeiling int

	// HouseAccounts are internal clearing entities that appear as customers
	// in the ledger but are not genuine borrowers. Excluded from risk
	// scoring and inflow baselines.
	HouseAccounts []string

	// TopCustomerCount bounds the top-customers diagnostic list.
	TopCustomerCount int

	// MinHistoryDays is the minimum observed span required before rate
	// estimation is considered meaningful.
	MinHistoryDays int

	// StaleDataDays is the audit threshold for flagging a feed as stale.
	StaleDataDays int
}

// DefaultEngineConfig returns the production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		PaginationCeiling: 1000,
		HouseAccounts:     []string{"CSL", "VEEM"},
		TopCustomerCount:  10,
		MinHistoryDays:    30,
		StaleDataDays:     7,
	}
}

// IsHouseAccount reports whether the customer name belongs to an internal
// clearing entity.
func (c EngineConfig) IsHouseAccount(customerName string) bool {
	for _, name := range c.HouseAccounts {
		if name == customerName {
			return true
		}
	}
	return false
}
