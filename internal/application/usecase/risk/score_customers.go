// Package risk contains the customer risk scoring use case.
package risk

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

// CustomerRiskProfile is the scored payment behavior of one customer.
type CustomerRiskProfile struct {
	CustomerName       string
	InvoiceTotal       decimal.Decimal
	PaymentTotal       decimal.Decimal
	OutstandingBalance decimal.Decimal // invoices - payments
	PaymentRatio       float64         // payments / invoices, 0 when no invoices
	RiskScore          float64
	Category           valueobject.RiskCategory
}

// RiskSummary contains portfolio-level risk metrics.
type RiskSummary struct {
	HighRiskCount      int
	HighRiskPercentage float64
	AvgPaymentRatio    float64
	AvgRiskScore       float64
	TotalOutstanding   decimal.Decimal
}

// ScoreCustomersOutput is the result of a risk scoring pass.
type ScoreCustomersOutput struct {
	Profiles []CustomerRiskProfile
	Summary  RiskSummary

	NoData             bool
	PossiblyIncomplete bool
}

// ScoreCustomersUseCase computes a weighted risk score per customer from
// invoice and payment volume. House accounts are not genuine borrowers and
// are excluded from the customer universe before scoring.
type ScoreCustomersUseCase struct {
	loader  adapter.RecordLoader
	cfg     valueobject.EngineConfig
	weights valueobject.RiskWeights
}

// NewScoreCustomersUseCase creates a new ScoreCustomersUseCase instance.
func NewScoreCustomersUseCase(loader adapter.RecordLoader, cfg valueobject.EngineConfig) *ScoreCustomersUseCase {
	return &ScoreCustomersUseCase{
		loader:  loader,
		cfg:     cfg,
		weights: valueobject.DefaultRiskWeights(),
	}
}

// customerVolumes pivots invoice and payment volume for one customer.
type customerVolumes struct {
	invoices decimal.Decimal
	payments decimal.Decimal
}

// Execute scores every customer with invoice or payment activity.
func (uc *ScoreCustomersUseCase) Execute(ctx context.Context) (*ScoreCustomersOutput, error) {
	txns, err := uc.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(txns) == 0 {
		return &ScoreCustomersOutput{NoData: true}, nil
	}

	volumes := uc.pivotVolumes(txns)
	if len(volumes) == 0 {
		return &ScoreCustomersOutput{NoData: true}, nil
	}

	// Relative balance is normalized against the largest invoice book.
	maxInvoices := decimal.Zero
	for _, v := range volumes {
		if v.invoices.GreaterThan(maxInvoices) {
			maxInvoices = v.invoices
		}
	}

	output := &ScoreCustomersOutput{
		Profiles:           make([]CustomerRiskProfile, 0, len(volumes)),
		PossiblyIncomplete: uc.cfg.PaginationCeiling > 0 && len(txns) == uc.cfg.PaginationCeiling,
	}

	var ratioSum, scoreSum float64
	for name, v := range volumes {
		profile := uc.scoreCustomer(name, v, maxInvoices)
		output.Profiles = append(output.Profiles, profile)

		ratioSum += profile.PaymentRatio
		scoreSum += profile.RiskScore
		output.Summary.TotalOutstanding = output.Summary.TotalOutstanding.Add(profile.OutstandingBalance)
		if profile.Category == valueobject.RiskCategoryHigh {
			output.Summary.HighRiskCount++
		}
	}

	count := float64(len(output.Profiles))
	output.Summary.AvgPaymentRatio = ratioSum / count
	output.Summary.AvgRiskScore = scoreSum / count
	output.Summary.HighRiskPercentage = float64(output.Summary.HighRiskCount) / count * 100

	sort.Slice(output.Profiles, func(i, j int) bool {
		if output.Profiles[i].RiskScore != output.Profiles[j].RiskScore {
			return output.Profiles[i].RiskScore > output.Profiles[j].RiskScore
		}
		return output.Profiles[i].CustomerName < output.Profiles[j].CustomerName
	})

	return output, nil
}

// pivotVolumes aggregates absolute invoice and payment volume per customer.
// Only Invoice and Payment rows feed the risk model.
func (uc *ScoreCustomersUseCase) pivotVolumes(txns []entity.Transaction) map[string]*customerVolumes {
	volumes := make(map[string]*customerVolumes)
	for _, txn := range txns {
		if txn.Type != entity.TransactionTypeInvoice && txn.Type != entity.TransactionTypePayment {
			continue
		}
		customer := strings.TrimSpace(txn.CustomerName)
		if customer == "" || uc.cfg.IsHouseAccount(customer) {
			continue
		}

		v, ok := volumes[customer]
		if !ok {
			v = &customerVolumes{}
			volumes[customer] = v
		}
		if txn.Type == entity.TransactionTypeInvoice {
			v.invoices = v.invoices.Add(txn.AbsAmount())
		} else {
			v.payments = v.payments.Add(txn.AbsAmount())
		}
	}
	return volumes
}

// scoreCustomer applies the published scoring formula to one customer.
func (uc *ScoreCustomersUseCase) scoreCustomer(name string, v *customerVolumes, maxInvoices decimal.Decimal) CustomerRiskProfile {
	profile := CustomerRiskProfile{
		CustomerName:       name,
		InvoiceTotal:       v.invoices,
		PaymentTotal:       v.payments,
		OutstandingBalance: v.invoices.Sub(v.payments),
	}

	if v.invoices.IsPositive() {
		profile.PaymentRatio, _ = v.payments.Div(v.invoices).Float64()
	}

	relativeBalance := 0.0
	if maxInvoices.IsPositive() {
		relativeBalance, _ = profile.OutstandingBalance.Div(maxInvoices).Float64()
	}

	profile.RiskScore = uc.weights.Score(profile.PaymentRatio, relativeBalance)
	profile.Category = valueobject.CategorizeRisk(profile.RiskScore)

	return profile
}
