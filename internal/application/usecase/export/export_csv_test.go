// Package export renders analytics outputs as downloadable CSV documents.
package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/domain/entity"
)

func newUseCase() *ExportCSVUseCase {
	uc := NewExportCSVUseCase()
	uc.now = func() time.Time { return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC) }
	return uc
}

func parseCSV(t *testing.T, content []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("expected parseable csv, got %v", err)
	}
	return rows
}

func TestExportCSVUseCase_LoanTape(t *testing.T) {
	days := 12
	records := []entity.UnifiedLoanRecord{
		{
			LoanID:                "L1",
			DealName:              "Acme Corp",
			QBOCustomer:           "Acme Corp",
			FactorRate:            decimal.NewFromFloat(1.2),
			ParticipationAmount:   decimal.NewFromInt(10000),
			ExpectedReturn:        decimal.NewFromInt(12000),
			RTRAmount:             decimal.NewFromInt(5000),
			RTRPercentage:         41.666666,
			TotalCustomerPayments: decimal.NewFromInt(5000),
			AttributionPercentage: 100,
			LoanPaymentCount:      2,
			DaysSinceLastPayment:  &days,
		},
		{
			LoanID:   "L2",
			DealName: "No Payments LLC",
		},
	}

	doc, err := newUseCase().LoanTape(records)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if doc.Filename != "loan_tape_20240615.csv" {
		t.Errorf("expected date-stamped filename, got %s", doc.Filename)
	}

	rows := parseCSV(t, doc.Content)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "loan_id" {
		t.Errorf("expected loan_id header, got %s", rows[0][0])
	}

	first := rows[1]
	if first[0] != "L1" {
		t.Errorf("expected loan L1, got %s", first[0])
	}
	if first[6] != "5000.00" {
		t.Errorf("expected rtr amount 5000.00, got %s", first[6])
	}
	if first[7] != "41.67" {
		t.Errorf("expected rtr percentage 41.67, got %s", first[7])
	}
	if first[14] != "12" {
		t.Errorf("expected days since last payment 12, got %s", first[14])
	}

	// Absent optional fields render as empty cells, not zeros.
	second := rows[2]
	if second[14] != "" {
		t.Errorf("expected empty days since last payment, got %q", second[14])
	}
}

func TestExportCSVUseCase_Forecast(t *testing.T) {
	periods := []entity.ForecastPeriod{
		{
			Date:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			CashPosition: decimal.NewFromInt(500000),
		},
		{
			Date:         time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
			CashPosition: decimal.NewFromInt(499500),
			Deployment:   decimal.NewFromInt(10000),
			Inflows:      decimal.NewFromInt(12000),
			Opex:         decimal.NewFromInt(2500),
			NetFlow:      decimal.NewFromInt(-500),
		},
	}

	doc, err := newUseCase().Forecast(periods)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if doc.Filename != "cash_flow_forecast_20240615.csv" {
		t.Errorf("expected date-stamped filename, got %s", doc.Filename)
	}

	rows := parseCSV(t, doc.Content)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "2024-06-01" {
		t.Errorf("expected ISO date, got %s", rows[1][0])
	}
	if rows[2][5] != "-500.00" {
		t.Errorf("expected net flow -500.00, got %s", rows[2][5])
	}
}

func TestExportCSVUseCase_CustomerSummary(t *testing.T) {
	summaries := []entity.CustomerPaymentSummary{
		{
			CustomerName:       "Acme Corp",
			TotalPayments:      decimal.NewFromInt(5500),
			PaymentCount:       3,
			UniqueLoans:        2,
			UnattributedAmount: decimal.NewFromInt(500),
			UnattributedCount:  1,
		},
	}

	doc, err := newUseCase().CustomerSummary(summaries)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rows := parseCSV(t, doc.Content)
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d", len(rows))
	}
	if rows[1][0] != "Acme Corp" || rows[1][1] != "5500.00" {
		t.Errorf("unexpected row %v", rows[1])
	}
}
