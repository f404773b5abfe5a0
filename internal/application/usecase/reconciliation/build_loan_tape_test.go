// Package reconciliation contains the loan/customer reconciliation use cases.
package reconciliation

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestBuildLoanTapeUseCase_Execute(t *testing.T) {
	cfg := valueobject.DefaultEngineConfig()

	t.Run("joins payments to a closed-won deal on loan id", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L1", CustomerName: "Acme Corp", Amount: decPtr(10000), FactorRate: decPtr(1.2), IsClosedWon: true},
			},
			txns: []entity.Transaction{
				{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(-3000)},
				{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(-2000)},
			},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(output.Records))
		}

		record := output.Records[0]
		if !record.RTRAmount.Equal(dec(5000)) {
			t.Errorf("expected rtr amount 5000, got %s", record.RTRAmount)
		}
		if !record.ExpectedReturn.Equal(dec(12000)) {
			t.Errorf("expected expected return 12000, got %s", record.ExpectedReturn)
		}
		if math.Abs(record.RTRPercentage-41.6666666) > 0.001 {
			t.Errorf("expected rtr percentage near 41.67, got %f", record.RTRPercentage)
		}
		if record.LoanPaymentCount != 2 {
			t.Errorf("expected 2 loan payments, got %d", record.LoanPaymentCount)
		}
	})

	t.Run("attribution never exceeds customer payments", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L1", CustomerName: "Acme Corp", Amount: decPtr(10000), FactorRate: decPtr(1.2), IsClosedWon: true},
			},
			txns: []entity.Transaction{
				{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(3000)},
				{CustomerName: "Acme Corp", Type: entity.TransactionTypeDeposit, Amount: dec(1500)},
			},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		record := output.Records[0]
		if record.RTRAmount.GreaterThan(record.TotalCustomerPayments) {
			t.Errorf("rtr %s exceeds customer payments %s", record.RTRAmount, record.TotalCustomerPayments)
		}
		if record.UnattributedAmount.IsNegative() {
			t.Errorf("expected non-negative unattributed amount, got %s", record.UnattributedAmount)
		}
		if !record.UnattributedAmount.Equal(dec(1500)) {
			t.Errorf("expected unattributed 1500, got %s", record.UnattributedAmount)
		}
		if record.AttributionPercentage > 100 {
			t.Errorf("expected attribution percentage <= 100, got %f", record.AttributionPercentage)
		}
	})

	t.Run("payments split across ledger customers stay within the bound", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L1", CustomerName: "Acme Corp", Amount: decPtr(10000), FactorRate: decPtr(1.2), IsClosedWon: true},
			},
			txns: []entity.Transaction{
				{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(3000)},
				{LoanID: "L1", CustomerName: "Acme Holdings", Type: entity.TransactionTypePayment, Amount: dec(2000)},
			},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		record := output.Records[0]
		if !record.RTRAmount.Equal(dec(5000)) {
			t.Errorf("expected rtr 5000, got %s", record.RTRAmount)
		}
		if !record.TotalCustomerPayments.Equal(dec(5000)) {
			t.Errorf("expected customer payments 5000, got %s", record.TotalCustomerPayments)
		}
		if record.RTRAmount.GreaterThan(record.TotalCustomerPayments) {
			t.Errorf("rtr %s exceeds customer payments %s", record.RTRAmount, record.TotalCustomerPayments)
		}
		if record.AttributionPercentage > 100 {
			t.Errorf("expected attribution percentage <= 100, got %f", record.AttributionPercentage)
		}
		if record.CustomerPaymentCount != 2 {
			t.Errorf("expected 2 customer payments, got %d", record.CustomerPaymentCount)
		}
		if !record.UnattributedAmount.IsZero() {
			t.Errorf("expected zero unattributed, got %s", record.UnattributedAmount)
		}
	})

	t.Run("empty loan id never matches unattributed transactions", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "  ", CustomerName: "Acme Corp", Amount: decPtr(10000), IsClosedWon: true},
			},
			txns: []entity.Transaction{
				{LoanID: "", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(4000)},
			},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		record := output.Records[0]
		if !record.RTRAmount.IsZero() {
			t.Errorf("expected zero rtr for missing loan id, got %s", record.RTRAmount)
		}
		if !record.TotalCustomerPayments.Equal(dec(4000)) {
			t.Errorf("expected customer payments 4000, got %s", record.TotalCustomerPayments)
		}
		if !record.UnattributedAmount.Equal(dec(4000)) {
			t.Errorf("expected unattributed 4000, got %s", record.UnattributedAmount)
		}
	})

	t.Run("ratios are zero when denominators are zero", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L9", CustomerName: "No Rate LLC", IsClosedWon: true},
			},
			txns: []entity.Transaction{},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		record := output.Records[0]
		if record.RTRPercentage != 0 {
			t.Errorf("expected zero rtr percentage, got %f", record.RTRPercentage)
		}
		if record.AttributionPercentage != 0 {
			t.Errorf("expected zero attribution percentage, got %f", record.AttributionPercentage)
		}
		if math.IsNaN(record.RTRPercentage) || math.IsNaN(record.AttributionPercentage) {
			t.Error("expected no NaN in percentage fields")
		}
	})

	t.Run("excludes deals that are not closed won", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L1", CustomerName: "Won Inc", Amount: decPtr(5000), IsClosedWon: true},
				{LoanID: "L2", CustomerName: "Lost Inc", Amount: decPtr(9000), IsClosedWon: false},
			},
			txns: []entity.Transaction{},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(output.Records))
		}
		if output.Records[0].LoanID != "L1" {
			t.Errorf("expected loan L1, got %s", output.Records[0].LoanID)
		}
	})

	t.Run("flags no data when there are no closed-won deals", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{{LoanID: "L2", IsClosedWon: false}},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.NoData {
			t.Error("expected NoData to be set")
		}
	})

	t.Run("flags possibly incomplete at the pagination ceiling", func(t *testing.T) {
		smallCfg := cfg
		smallCfg.PaginationCeiling = 3

		txns := make([]entity.Transaction, 3)
		for i := range txns {
			txns[i] = entity.Transaction{CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(100)}
		}
		loader := &stubLoader{
			deals: []entity.Deal{{LoanID: "L1", CustomerName: "Acme Corp", IsClosedWon: true}},
			txns:  txns,
		}

		output, err := NewBuildLoanTapeUseCase(loader, smallCfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.PossiblyIncomplete {
			t.Error("expected PossiblyIncomplete at the pagination ceiling")
		}
	})

	t.Run("orders records by participation descending", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L1", Amount: decPtr(1000), IsClosedWon: true},
				{LoanID: "L2", Amount: decPtr(9000), IsClosedWon: true},
				{LoanID: "L3", Amount: decPtr(5000), IsClosedWon: true},
			},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got := []string{output.Records[0].LoanID, output.Records[1].LoanID, output.Records[2].LoanID}
		want := []string{"L2", "L3", "L1"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("expected order %v, got %v", want, got)
				break
			}
		}
	})

	t.Run("computes days since last payment", func(t *testing.T) {
		now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L1", CustomerName: "Acme Corp", IsClosedWon: true},
			},
			txns: []entity.Transaction{
				{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(100), TxnDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
				{LoanID: "L1", CustomerName: "Acme Corp", Type: entity.TransactionTypePayment, Amount: dec(100), TxnDate: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)},
			},
		}

		uc := NewBuildLoanTapeUseCase(loader, cfg)
		uc.now = func() time.Time { return now }

		output, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		record := output.Records[0]
		if record.DaysSinceLastPayment == nil {
			t.Fatal("expected days since last payment to be set")
		}
		if *record.DaysSinceLastPayment != 10 {
			t.Errorf("expected 10 days since last payment, got %d", *record.DaysSinceLastPayment)
		}
	})

	t.Run("summary totals reconcile with the records", func(t *testing.T) {
		loader := &stubLoader{
			deals: []entity.Deal{
				{LoanID: "L1", CustomerName: "A", Amount: decPtr(10000), FactorRate: decPtr(1.2), IsClosedWon: true},
				{LoanID: "L2", CustomerName: "B", Amount: decPtr(20000), FactorRate: decPtr(1.5), IsClosedWon: true},
			},
			txns: []entity.Transaction{
				{LoanID: "L1", CustomerName: "A", Type: entity.TransactionTypePayment, Amount: dec(5000)},
			},
		}

		output, err := NewBuildLoanTapeUseCase(loader, cfg).Execute(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		summary := output.Summary
		if summary.TotalLoans != 2 {
			t.Errorf("expected 2 loans, got %d", summary.TotalLoans)
		}
		if summary.LoansWithPayments != 1 {
			t.Errorf("expected 1 loan with payments, got %d", summary.LoansWithPayments)
		}
		if !summary.TotalParticipation.Equal(dec(30000)) {
			t.Errorf("expected total participation 30000, got %s", summary.TotalParticipation)
		}
		if !summary.TotalExpectedReturn.Equal(dec(42000)) {
			t.Errorf("expected total expected return 42000, got %s", summary.TotalExpectedReturn)
		}
		if !summary.TotalRTRAmount.Equal(dec(5000)) {
			t.Errorf("expected total rtr 5000, got %s", summary.TotalRTRAmount)
		}
	})
}
