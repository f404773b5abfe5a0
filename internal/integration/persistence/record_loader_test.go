// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mca-analytics/backend/internal/domain/valueobject"
	"github.com/mca-analytics/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.DealModel{},
		&model.TransactionModel{},
		&model.MCADealModel{},
		&model.GeneralLedgerModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestRecordLoader_LoadDeals(t *testing.T) {
	db := openTestDB(t)
	cfg := valueobject.DefaultEngineConfig()

	amount := decimal.NewFromInt(10000)
	factorRate := decimal.NewFromFloat(1.2)
	seed := model.DealModel{
		ID:           uuid.New(),
		LoanID:       "L1",
		CustomerName: "Acme Corp",
		DateCreated:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:       &amount,
		FactorRate:   &factorRate,
		IsClosedWon:  true,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed deal: %v", err)
	}

	deals, err := NewRecordLoader(db, cfg).LoadDeals(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(deals) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(deals))
	}

	deal := deals[0]
	if deal.LoanID != "L1" {
		t.Errorf("expected loan id L1, got %s", deal.LoanID)
	}
	if deal.Amount == nil || !deal.Amount.Equal(amount) {
		t.Errorf("expected amount 10000, got %v", deal.Amount)
	}
	if !deal.IsClosedWon {
		t.Error("expected closed-won flag to survive the round trip")
	}
}

func TestRecordLoader_LoadTransactions(t *testing.T) {
	db := openTestDB(t)

	t.Run("maps rows to entities", func(t *testing.T) {
		seed := model.TransactionModel{
			ID:           uuid.New(),
			LoanID:       "L1",
			CustomerName: "Acme Corp",
			Type:         "Payment",
			Amount:       decimal.NewFromInt(-3000),
			TxnDate:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&seed).Error; err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}

		txns, err := NewRecordLoader(db, valueobject.DefaultEngineConfig()).LoadTransactions(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(txns) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txns))
		}
		if !txns[0].Type.IsInflow() {
			t.Errorf("expected a Payment row to map to an inflow type, got %s", txns[0].Type)
		}
	})

	t.Run("caps results at the pagination ceiling", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			seed := model.TransactionModel{
				ID:           uuid.New(),
				CustomerName: "Bulk",
				Type:         "Payment",
				Amount:       decimal.NewFromInt(1),
			}
			if err := db.Create(&seed).Error; err != nil {
				t.Fatalf("failed to seed transaction: %v", err)
			}
		}

		cfg := valueobject.DefaultEngineConfig()
		cfg.PaginationCeiling = 3

		txns, err := NewRecordLoader(db, cfg).LoadTransactions(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(txns) != 3 {
			t.Errorf("expected the ceiling of 3 rows, got %d", len(txns))
		}
	})
}

func TestRecordLoader_LoadMCADeals(t *testing.T) {
	db := openTestDB(t)

	funded := decimal.NewFromInt(50000)
	fundedDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := model.MCADealModel{
		ID:                uuid.New(),
		DealNumber:        "D-100",
		BusinessName:      "Acme Corp",
		TotalFundedAmount: &funded,
		FundedDate:        &fundedDate,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed mca deal: %v", err)
	}

	mcaDeals, err := NewRecordLoader(db, valueobject.DefaultEngineConfig()).LoadMCADeals(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mcaDeals) != 1 {
		t.Fatalf("expected 1 servicing record, got %d", len(mcaDeals))
	}
	if mcaDeals[0].DealNumber != "D-100" {
		t.Errorf("expected deal number D-100, got %s", mcaDeals[0].DealNumber)
	}
}
