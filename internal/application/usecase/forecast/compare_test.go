// Package forecast contains the cash flow forecasting use cases.
package forecast

import (
	"context"
	"testing"

	"github.com/mca-analytics/backend/internal/domain/entity"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
)

func TestCompareScenariosUseCase_Execute(t *testing.T) {
	cfg := valueobject.DefaultEngineConfig()

	history := &stubLoader{
		deals: []entity.Deal{
			{IsClosedWon: true, DateCreated: day(2024, 1, 1), Amount: decPtr(10000)},
			{IsClosedWon: true, DateCreated: day(2024, 3, 10), Amount: decPtr(10000)},
		},
		txns: []entity.Transaction{
			{Type: entity.TransactionTypePayment, TxnDate: day(2024, 1, 5), Amount: dec(2000), CustomerName: "A"},
			{Type: entity.TransactionTypePayment, TxnDate: day(2024, 2, 20), Amount: dec(2000), CustomerName: "A"},
		},
	}

	baseInput := ProjectCashFlowInput{
		StartingCash:         dec(500000),
		MinCashThreshold:     dec(100000),
		Unit:                 valueobject.PeriodUnitWeekly,
		Horizon:              26,
		DeploymentMethod:     valueobject.DeploymentLever,
		TargetDealsPerPeriod: 2,
		AvgParticipation:     decPtr(5000),
		InflowMethod:         valueobject.InflowCustom,
		CustomInflowRate:     dec(12000),
		OpexPerPeriod:        dec(2500),
	}

	t.Run("applies independent rate adjustments", func(t *testing.T) {
		input := CompareScenariosInput{
			ProjectCashFlowInput:    baseInput,
			DeploymentChangePercent: 10,
			InflowChangePercent:     -5,
		}

		output, err := NewCompareScenariosUseCase(history, cfg).Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !output.Baseline.DeploymentRate.Equal(dec(10000)) {
			t.Errorf("expected baseline deployment 10000, got %s", output.Baseline.DeploymentRate)
		}
		if !output.Adjusted.DeploymentRate.Equal(dec(11000)) {
			t.Errorf("expected adjusted deployment 11000, got %s", output.Adjusted.DeploymentRate)
		}
		if !output.Adjusted.InflowRate.Equal(dec(11400)) {
			t.Errorf("expected adjusted inflow 11400, got %s", output.Adjusted.InflowRate)
		}

		// Baseline burns 500/week, adjusted burns 2100/week.
		if !output.Baseline.NetFlowPerPeriod.Equal(dec(-500)) {
			t.Errorf("expected baseline net flow -500, got %s", output.Baseline.NetFlowPerPeriod)
		}
		if !output.Adjusted.NetFlowPerPeriod.Equal(dec(-2100)) {
			t.Errorf("expected adjusted net flow -2100, got %s", output.Adjusted.NetFlowPerPeriod)
		}

		wantDelta := dec(26 * (-2100 + 500))
		if !output.EndingCashDelta.Equal(wantDelta) {
			t.Errorf("expected ending cash delta %s, got %s", wantDelta, output.EndingCashDelta)
		}

		if output.RunwayDeltaPeriods == nil {
			t.Fatal("expected a runway delta for two limited runways")
		}
		if *output.RunwayDeltaPeriods >= 0 {
			t.Errorf("expected a shorter adjusted runway, got delta %f", *output.RunwayDeltaPeriods)
		}
	})

	t.Run("zero adjustments reproduce the baseline", func(t *testing.T) {
		input := CompareScenariosInput{ProjectCashFlowInput: baseInput}

		output, err := NewCompareScenariosUseCase(history, cfg).Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.EndingCashDelta.IsZero() {
			t.Errorf("expected zero ending cash delta, got %s", output.EndingCashDelta)
		}
		if !output.Adjusted.EndingCash.Equal(output.Baseline.EndingCash) {
			t.Errorf("expected identical scenarios, got %s vs %s", output.Adjusted.EndingCash, output.Baseline.EndingCash)
		}
	})

	t.Run("omits runway delta when a scenario is indefinite", func(t *testing.T) {
		input := CompareScenariosInput{
			ProjectCashFlowInput: baseInput,
			InflowChangePercent:  50,
		}

		output, err := NewCompareScenariosUseCase(history, cfg).Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Adjusted.Runway.Status != RunwayIndefinite {
			t.Fatalf("expected indefinite adjusted runway, got %s", output.Adjusted.Runway.Status)
		}
		if output.RunwayDeltaPeriods != nil {
			t.Error("expected no runway delta when one scenario is indefinite")
		}
	})

	t.Run("propagates no data to both scenarios", func(t *testing.T) {
		input := CompareScenariosInput{ProjectCashFlowInput: baseInput}

		output, err := NewCompareScenariosUseCase(&stubLoader{}, cfg).Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Baseline.NoData || !output.Adjusted.NoData {
			t.Error("expected NoData on both scenarios")
		}
	})
}
