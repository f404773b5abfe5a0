// Package reconciliation contains the loan/customer reconciliation use cases.
package reconciliation

import (
	"context"
	"testing"

	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

func TestGetCustomerSummaryUseCase_Execute(t *testing.T) {
	cfg := valueobject.DefaultEngineConfig()

	t.Run("aggregates inflows per customer", func(t *testing.T) {
		loader := &stubLoader{
			txns: []entity.Transaction{
				{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(3000)},
				{LoanID: "L2", CustomerName: "Acme Corp", Type: entity.TransactionTypeReceipt, Amount: dec(2000)},
				{CustomerName: "Acme Corp", Type: entity.TransactionTypeDeposit, Amount: dec(500)},
				{CustomerName: "Beta LLC", Type: entity.TransactionTypePayment, Amount: dec(1000)},
				{CustomerName: "Beta LLC", Type: entity.TransactionTypeInvoice, Amount: dec(9999)},
			},
		}

		output, err := NewGetCustomerSummaryUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Summaries) != 2 {
			t.Fatalf("expected 2 customers, got %d", len(output.Summaries))
		}

		acme := output.Summaries[0]
		if acme.CustomerName != "Acme Corp" {
			t.Fatalf("expected Acme Corp first, got %s", acme.CustomerName)
		}
		if !acme.TotalPayments.Equal(dec(5500)) {
			t.Errorf("expected total payments 5500, got %s", acme.TotalPayments)
		}
		if acme.PaymentCount != 3 {
			t.Errorf("expected 3 payments, got %d", acme.PaymentCount)
		}
		if acme.UniqueLoans != 2 {
			t.Errorf("expected 2 unique loans, got %d", acme.UniqueLoans)
		}
		if !acme.UnattributedAmount.Equal(dec(500)) {
			t.Errorf("expected unattributed 500, got %s", acme.UnattributedAmount)
		}
		if acme.UnattributedCount != 1 {
			t.Errorf("expected 1 unattributed payment, got %d", acme.UnattributedCount)
		}

		beta := output.Summaries[1]
		if !beta.TotalPayments.Equal(dec(1000)) {
			t.Errorf("expected invoice volume excluded, got %s", beta.TotalPayments)
		}
	})

	t.Run("totals unattributed volume across customers", func(t *testing.T) {
		loader := &stubLoader{
			txns: []entity.Transaction{
				{CustomerName: "A", Type: entity.TransactionTypePayment, Amount: dec(100)},
				{CustomerName: "B", Type: entity.TransactionTypePayment, Amount: dec(200)},
				{LoanID: "L1", CustomerName: "C", Type: entity.TransactionTypePayment, Amount: dec(300)},
			},
		}

		output, err := NewGetCustomerSummaryUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.TotalUnattributed.Equal(dec(300)) {
			t.Errorf("expected total unattributed 300, got %s", output.TotalUnattributed)
		}
		if output.CustomersWithUnattributed != 2 {
			t.Errorf("expected 2 customers with unattributed volume, got %d", output.CustomersWithUnattributed)
		}
	})

	t.Run("flags no data on an empty ledger", func(t *testing.T) {
		output, err := NewGetCustomerSummaryUseCase(&stubLoader{}, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.NoData {
			t.Error("expected NoData to be set")
		}
	})
}
