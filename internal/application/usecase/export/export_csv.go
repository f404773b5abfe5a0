// Package export renders analytics outputs as downloadable CSV documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/mca-analytics/backend/internal/application/usecase/forecast"
	"github.com/mca-analytics/backend/internal/application/usecase/reconciliation"
	"github.com/mca-analytics/backend/internal/domain/entity"
)

// Document is a rendered CSV payload plus its suggested filename.
type Document struct {
	Filename string
	Content  []byte
}

// ExportCSVUseCase renders CSV documents with date-stamped filenames.
type ExportCSVUseCase struct {
	now func() time.Time
}

// NewExportCSVUseCase creates a new ExportCSVUseCase instance.
func NewExportCSVUseCase() *ExportCSVUseCase {
	return &ExportCSVUseCase{now: time.Now}
}

func (uc *ExportCSVUseCase) stamp(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, uc.now().Format("20060102"))
}

// LoanTape renders the unified loan tape as CSV.
func (uc *ExportCSVUseCase) LoanTape(records []entity.UnifiedLoanRecord) (*Document, error) {
	header := []string{
		"loan_id", "deal_name", "qbo_customer", "factor_rate",
		"participation_amount", "expected_return", "rtr_amount", "rtr_percentage",
		"total_customer_payments", "attribution_percentage", "unattributed_amount",
		"loan_payment_count", "customer_payment_count", "customer_active_loans",
		"days_since_last_payment",
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.LoanID,
			r.DealName,
			r.QBOCustomer,
			r.FactorRate.String(),
			r.ParticipationAmount.StringFixed(2),
			r.ExpectedReturn.StringFixed(2),
			r.RTRAmount.StringFixed(2),
			floatField(r.RTRPercentage),
			r.TotalCustomerPayments.StringFixed(2),
			floatField(r.AttributionPercentage),
			r.UnattributedAmount.StringFixed(2),
			strconv.Itoa(r.LoanPaymentCount),
			strconv.Itoa(r.CustomerPaymentCount),
			strconv.Itoa(r.CustomerActiveLoans),
			intPtrField(r.DaysSinceLastPayment),
		})
	}

	return uc.render("loan_tape", header, rows)
}

// CustomerSummary renders per-customer payment rollups as CSV.
func (uc *ExportCSVUseCase) CustomerSummary(summaries []entity.CustomerPaymentSummary) (*Document, error) {
	header := []string{
		"customer", "total_payments", "payment_count",
		"unique_loans", "unattributed_amount", "unattributed_count",
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.CustomerName,
			s.TotalPayments.StringFixed(2),
			strconv.Itoa(s.PaymentCount),
			strconv.Itoa(s.UniqueLoans),
			s.UnattributedAmount.StringFixed(2),
			strconv.Itoa(s.UnattributedCount),
		})
	}

	return uc.render("customer_summary", header, rows)
}

// Forecast renders a cash flow projection as CSV, one row per period.
func (uc *ExportCSVUseCase) Forecast(periods []entity.ForecastPeriod) (*Document, error) {
	header := []string{
		"date", "cash_position", "deployment", "inflows", "opex", "net_flow",
	}

	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, []string{
			p.Date.Format("2006-01-02"),
			p.CashPosition.StringFixed(2),
			p.Deployment.StringFixed(2),
			p.Inflows.StringFixed(2),
			p.Opex.StringFixed(2),
			p.NetFlow.StringFixed(2),
		})
	}

	return uc.render("cash_flow_forecast", header, rows)
}

// Diagnostics renders the transaction type breakdown as CSV.
func (uc *ExportCSVUseCase) Diagnostics(diag *reconciliation.Diagnostics) (*Document, error) {
	header := []string{"transaction_type", "count", "total_amount"}

	rows := make([][]string, 0, len(diag.TransactionTypes))
	for _, tb := range diag.TransactionTypes {
		rows = append(rows, []string{
			string(tb.Type),
			strconv.Itoa(tb.Count),
			tb.TotalAmount.StringFixed(2),
		})
	}

	return uc.render("reconciliation_diagnostics", header, rows)
}

// Baseline renders the computed baseline rates as CSV key/value rows.
func (uc *ExportCSVUseCase) Baseline(baseline forecast.BaselineRates) (*Document, error) {
	header := []string{"metric", "value"}

	rows := [][]string{
		{"deal_count", strconv.Itoa(baseline.DealCount)},
		{"deployment_span_days", strconv.Itoa(baseline.DeploymentSpanDays)},
		{"inflow_span_days", strconv.Itoa(baseline.InflowSpanDays)},
		{"total_deployed", baseline.TotalDeployed.StringFixed(2)},
		{"total_inflows", baseline.TotalInflows.StringFixed(2)},
		{"weekly_deployment_rate", baseline.WeeklyDeploymentRate.StringFixed(2)},
		{"monthly_deployment_rate", baseline.MonthlyDeploymentRate.StringFixed(2)},
		{"weekly_inflow_rate", baseline.WeeklyInflowRate.StringFixed(2)},
		{"monthly_inflow_rate", baseline.MonthlyInflowRate.StringFixed(2)},
		{"avg_deal_size", baseline.AvgDealSize.StringFixed(2)},
		{"median_deal_size", baseline.MedianDealSize.StringFixed(2)},
		{"deals_per_week", floatField(baseline.DealsPerWeek)},
		{"deals_per_month", floatField(baseline.DealsPerMonth)},
	}

	return uc.render("forecast_baseline", header, rows)
}

func (uc *ExportCSVUseCase) render(prefix string, header []string, rows [][]string) (*Document, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}

	return &Document{
		Filename: uc.stamp(prefix),
		Content:  buf.Bytes(),
	}, nil
}

func floatField(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func intPtrField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
