// Package audit contains the data-quality audit use case for deal records.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// FieldCompleteness reports how often a critical deal field is missing
// among closed-won deals.
type FieldCompleteness struct {
	Field          string
	MissingCount   int
	MissingPercent float64
}

// RecentActivity summarizes the trailing 30 days of deal flow.
type RecentActivity struct {
	DealCount      int
	WonCount       int
	MissingLoanIDs int
	ClosePercent   float64
}

// Freshness reports how current the deal feed is.
type Freshness struct {
	LatestDealDate    time.Time
	DaysSinceLastDeal int
	Stale             bool
}

// RunAuditOutput is the full data-quality report over the deal snapshot.
type RunAuditOutput struct {
	TotalWonDeals        int
	MissingLoanIDCount   int
	MissingLoanIDPercent float64
	DealsMissingLoanID   []entity.Deal

	// DuplicateLoanIDs counts populated loan ids shared by more than one
	// deal. Loan ids must be unique across won deals; duplicates are a
	// data-quality defect to surface, not a domain state.
	DuplicateLoanIDs int

	CriticalFields []FieldCompleteness
	Recent         RecentActivity
	Freshness      Freshness

	NoData bool
}

// RunAuditUseCase runs the quality-assurance checks over the deal snapshot.
type RunAuditUseCase struct {
	loader adapter.RecordLoader
	cfg    valueobject.EngineConfig
	now    func() time.Time
}

// NewRunAuditUseCase creates a new RunAuditUseCase instance.
func NewRunAuditUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *RunAuditUseCase {
	return &RunAuditUseCase{
		loader: loader,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Execute recomputes the audit report from the current snapshot.
func (uc *RunAuditUseCase) Execute(ctx context.Context) (*RunAuditOutput, error) {
	deals, err := uc.loader.LoadDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	if len(deals) == 0 {
		return &RunAuditOutput{NoData: true}, nil
	}

	output := &RunAuditOutput{}

	var wonDeals []entity.Deal
	seenLoanIDs := make(map[string]int)
	for _, deal := range deals {
		if id := deal.NormalizedLoanID(); id != "" {
			seenLoanIDs[id]++
		}
		if deal.IsClosedWon {
			wonDeals = append(wonDeals, deal)
		}
	}
	output.TotalWonDeals = len(wonDeals)

	for _, count := range seenLoanIDs {
		if count > 1 {
			output.DuplicateLoanIDs += count - 1
		}
	}

	for _, deal := range wonDeals {
		if !deal.HasLoanID() {
			output.MissingLoanIDCount++
			output.DealsMissingLoanID = append(output.DealsMissingLoanID, deal)
		}
	}
	if len(wonDeals) > 0 {
		output.MissingLoanIDPercent = float64(output.MissingLoanIDCount) / float64(len(wonDeals)) * 100
	}

	output.CriticalFields = criticalFieldCompleteness(wonDeals)
	output.Recent = uc.recentActivity(deals)
	output.Freshness = uc.freshness(deals)

	return output, nil
}

// criticalFieldCompleteness checks the fields a won deal cannot be serviced
// without.
func criticalFieldCompleteness(wonDeals []entity.Deal) []FieldCompleteness {
	checks := []struct {
		field   string
		missing func(entity.Deal) bool
	}{
		{"amount", func(d entity.Deal) bool { return d.Amount == nil }},
		{"factor_rate", func(d entity.Deal) bool { return d.FactorRate == nil }},
		{"loan_term", func(d entity.Deal) bool { return d.LoanTerm == nil }},
		{"commission", func(d entity.Deal) bool { return d.Commission == nil }},
	}

	results := make([]FieldCompleteness, 0, len(checks))
	for _, check := range checks {
		fc := FieldCompleteness{Field: check.field}
		for _, deal := range wonDeals {
			if check.missing(deal) {
				fc.MissingCount++
			}
		}
		if len(wonDeals) > 0 {
			fc.MissingPercent = float64(fc.MissingCount) / float64(len(wonDeals)) * 100
		}
		results = append(results, fc)
	}
	return results
}

// recentActivity summarizes the trailing 30 days of deal flow.
func (uc *RunAuditUseCase) recentActivity(deals []entity.Deal) RecentActivity {
	cutoff := uc.now().AddDate(0, 0, -30)

	activity := RecentActivity{}
	for _, deal := range deals {
		if deal.DateCreated.Before(cutoff) {
			continue
		}
		activity.DealCount++
		if !deal.IsClosedWon {
			continue
		}
		activity.WonCount++
		if !deal.HasLoanID() {
			activity.MissingLoanIDs++
		}
	}
	if activity.DealCount > 0 {
		activity.ClosePercent = float64(activity.WonCount) / float64(activity.DealCount) * 100
	}
	return activity
}

// freshness reports staleness of the deal feed.
func (uc *RunAuditUseCase) freshness(deals []entity.Deal) Freshness {
	var latest time.Time
	for _, deal := range deals {
		if deal.DateCreated.After(latest) {
			latest = deal.DateCreated
		}
	}
	if latest.IsZero() {
		return Freshness{Stale: true}
	}

	days := int(uc.now().Sub(latest).Hours() / 24)
	return Freshness{
		LatestDealDate:    latest,
		DaysSinceLastDeal: days,
		Stale:             days > uc.cfg.StaleDataDays,
	}
}
