// Package reconciliation contains the loan/customer reconciliation use cases.
package reconciliation

import (
	"context"
	"testing"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

func TestCombineDealsUseCase_Execute(t *testing.T) {
	t.Run("inner-joins deals to servicing records on loan id", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "D-100", CustomerName: "Acme Corp", IsClosedWon: true},
				{LoanID: "D-200", CustomerName: "Beta LLC", IsClosedWon: true},
				{LoanID: "", CustomerName: "No ID Inc", IsClosedWon: true},
			},
			mca: []entity.MCADeal{
				{DealNumber: "D-100", BusinessName: "Acme Corp"},
				{DealNumber: "D-999", BusinessName: "Unrelated"},
			},
		}

		output, err := NewCombineDealsUseCase(loader).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if output.MatchedCount != 1 {
			t.Errorf("expected 1 match, got %d", output.MatchedCount)
		}
		if output.UnmatchedCount != 1 {
			t.Errorf("expected 1 unmatched deal, got %d", output.UnmatchedCount)
		}
		if output.SkippedNoID != 1 {
			t.Errorf("expected 1 skipped deal, got %d", output.SkippedNoID)
		}
		if len(output.Combined) != 1 {
			t.Fatalf("expected 1 combined record, got %d", len(output.Combined))
		}
		if output.Combined[0].MCADeal.BusinessName != "Acme Corp" {
			t.Errorf("expected Acme Corp servicing record, got %s", output.Combined[0].MCADeal.BusinessName)
		}
	})

	t.Run("trims loan ids before matching", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{{LoanID: " D-100 ", IsClosedWon: true}},
			mca:   []entity.MCADeal{{DealNumber: "D-100"}},
		}

		output, err := NewCombineDealsUseCase(loader).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.MatchedCount != 1 {
			t.Errorf("expected 1 match after trimming, got %d", output.MatchedCount)
		}
	})

	t.Run("flags no data when either side is empty", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{{LoanID: "D-100"}},
		}

		output, err := NewCombineDealsUseCase(loader).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.NoData {
			t.Error("expected NoData to be set")
		}
	})
}
