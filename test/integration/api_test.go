// Package integration exercises the HTTP API end to end against an
// in-memory database and cache.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mca-analytics/backend/config"
	"github.com/mca-analytics/backend/internal/infra/dependency"
	"github.com/mca-analytics/backend/internal/integration/persistence/model"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// newTestServer wires the full stack against sqlite and miniredis and
// returns the configured engine.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.DealModel{},
		&model.TransactionModel{},
		&model.MCADealModel{},
		&model.GeneralLedgerModel{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	cfg := config.Load()
	cfg.Server.Environment = "test"

	injector := dependency.NewInjector(cfg, db, redisClient)
	return injector.Router.Setup("test"), db
}

// seedPortfolio inserts a small but complete portfolio: two funded deals
// spanning ten weeks and the payments made against them.
func seedPortfolio(t *testing.T, db *gorm.DB) {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deals := []model.DealModel{
		{
			ID:           uuid.New(),
			LoanID:       "L-100",
			CustomerName: "Acme Corp",
			DateCreated:  start,
			Amount:       decPtr(50000),
			FactorRate:   decPtr(1.4),
			IsClosedWon:  true,
		},
		{
			ID:           uuid.New(),
			LoanID:       "L-200",
			CustomerName: "Globex LLC",
			DateCreated:  start.AddDate(0, 0, 69),
			Amount:       decPtr(30000),
			FactorRate:   decPtr(1.3),
			IsClosedWon:  true,
		},
	}
	if err := db.Create(&deals).Error; err != nil {
		t.Fatalf("failed to seed deals: %v", err)
	}

	txns := []model.TransactionModel{
		{ID: uuid.New(), LoanID: "L-100", CustomerName: "Acme Corp", Type: "Invoice", Amount: dec(70000), TxnDate: start.AddDate(0, 0, 7)},
		{ID: uuid.New(), LoanID: "L-100", CustomerName: "Acme Corp", Type: "Payment", Amount: dec(20000), TxnDate: start.AddDate(0, 0, 14)},
		{ID: uuid.New(), LoanID: "L-200", CustomerName: "Globex LLC", Type: "Invoice", Amount: dec(39000), TxnDate: start.AddDate(0, 0, 70)},
		{ID: uuid.New(), LoanID: "L-200", CustomerName: "Globex LLC", Type: "Payment", Amount: dec(5000), TxnDate: start.AddDate(0, 0, 77)},
	}
	if err := db.Create(&txns).Error; err != nil {
		t.Fatalf("failed to seed transactions: %v", err)
	}
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestAPI(t *testing.T) {
	engine, db := newTestServer(t)
	seedPortfolio(t, db)

	t.Run("health reports connected dependencies", func(t *testing.T) {
		recorder := doRequest(t, engine, http.MethodGet, "/health", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		payload := decodeJSON(t, recorder)
		if payload["status"] != "ok" {
			t.Errorf("expected status ok, got %v", payload["status"])
		}
		if payload["database"] != "connected" {
			t.Errorf("expected database connected, got %v", payload["database"])
		}
		if payload["cache"] != "connected" {
			t.Errorf("expected cache connected, got %v", payload["cache"])
		}
	})

	t.Run("loan tape joins deals to payments", func(t *testing.T) {
		recorder := doRequest(t, engine, http.MethodGet, "/api/v1/reconciliation/loan-tape", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		payload := decodeJSON(t, recorder)
		records, ok := payload["records"].([]any)
		if !ok {
			t.Fatalf("expected records array, got %T", payload["records"])
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("loan tape export returns csv attachment", func(t *testing.T) {
		recorder := doRequest(t, engine, http.MethodGet, "/api/v1/reconciliation/loan-tape/export", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		if contentType := recorder.Header().Get("Content-Type"); contentType != "text/csv" {
			t.Errorf("expected content type text/csv, got %q", contentType)
		}
		disposition := recorder.Header().Get("Content-Disposition")
		if !strings.Contains(disposition, "loan_tape_") {
			t.Errorf("expected loan_tape filename in disposition, got %q", disposition)
		}
		if !strings.Contains(recorder.Body.String(), "L-100") {
			t.Errorf("expected L-100 row in export, got %q", recorder.Body.String())
		}
	})

	t.Run("risk scores every customer", func(t *testing.T) {
		recorder := doRequest(t, engine, http.MethodGet, "/api/v1/risk/customers", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		payload := decodeJSON(t, recorder)
		profiles, ok := payload["profiles"].([]any)
		if !ok {
			t.Fatalf("expected profiles array, got %T", payload["profiles"])
		}
		if len(profiles) != 2 {
			t.Fatalf("expected 2 profiles, got %d", len(profiles))
		}
	})

	t.Run("portfolio analytics covers concentration and cohorts", func(t *testing.T) {
		recorder := doRequest(t, engine, http.MethodGet, "/api/v1/analytics/portfolio", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		payload := decodeJSON(t, recorder)
		concentration, ok := payload["concentration"].(map[string]any)
		if !ok {
			t.Fatalf("expected concentration object, got %T", payload["concentration"])
		}
		active, ok := concentration["active_customers"].(float64)
		if !ok || active != 2 {
			t.Errorf("expected 2 active customers, got %v", concentration["active_customers"])
		}
		if _, ok := payload["cohorts"].([]any); !ok {
			t.Fatalf("expected cohorts array, got %T", payload["cohorts"])
		}
	})

	t.Run("forecast projects the requested horizon", func(t *testing.T) {
		body := map[string]any{
			"starting_cash":      100000,
			"min_cash_threshold": 10000,
			"unit":               "weekly",
			"horizon":            12,
		}
		recorder := doRequest(t, engine, http.MethodPost, "/api/v1/forecast", body)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		payload := decodeJSON(t, recorder)
		periods, ok := payload["periods"].([]any)
		if !ok {
			t.Fatalf("expected periods array, got %T", payload["periods"])
		}
		// Period zero plus the requested horizon.
		if len(periods) != 13 {
			t.Fatalf("expected 13 periods, got %d", len(periods))
		}
		runway, ok := payload["runway"].(map[string]any)
		if !ok {
			t.Fatalf("expected runway object, got %T", payload["runway"])
		}
		if runway["status"] == "" {
			t.Error("expected a runway status")
		}
	})

	t.Run("forecast rejects an unknown period unit", func(t *testing.T) {
		body := map[string]any{
			"starting_cash": 100000,
			"unit":          "daily",
			"horizon":       12,
		}
		recorder := doRequest(t, engine, http.MethodPost, "/api/v1/forecast", body)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", recorder.Code)
		}
		payload := decodeJSON(t, recorder)
		if payload["code"] != "FCT-010001" {
			t.Errorf("expected code FCT-010001, got %v", payload["code"])
		}
	})

	t.Run("scenario comparison returns both projections", func(t *testing.T) {
		body := map[string]any{
			"starting_cash":             100000,
			"min_cash_threshold":        10000,
			"unit":                      "weekly",
			"horizon":                   12,
			"deployment_change_percent": 10,
			"inflow_change_percent":     -5,
		}
		recorder := doRequest(t, engine, http.MethodPost, "/api/v1/forecast/compare", body)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		payload := decodeJSON(t, recorder)
		if _, ok := payload["baseline"].(map[string]any); !ok {
			t.Errorf("expected baseline scenario, got %T", payload["baseline"])
		}
		if _, ok := payload["adjusted"].(map[string]any); !ok {
			t.Errorf("expected adjusted scenario, got %T", payload["adjusted"])
		}
	})

	t.Run("audit reports complete loan ids", func(t *testing.T) {
		recorder := doRequest(t, engine, http.MethodGet, "/api/v1/audit", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		payload := decodeJSON(t, recorder)
		if got := payload["total_won_deals"].(float64); got != 2 {
			t.Errorf("expected 2 won deals, got %v", got)
		}
		if got := payload["missing_loan_id_count"].(float64); got != 0 {
			t.Errorf("expected 0 missing loan ids, got %v", got)
		}
	})

	t.Run("cache invalidation succeeds", func(t *testing.T) {
		recorder := doRequest(t, engine, http.MethodDelete, "/api/v1/cache", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
	})

	t.Run("cache serves repeat loads after invalidation", func(t *testing.T) {
		first := doRequest(t, engine, http.MethodGet, "/api/v1/reconciliation/diagnostics", nil)
		second := doRequest(t, engine, http.MethodGet, "/api/v1/reconciliation/diagnostics", nil)
		if first.Code != http.StatusOK || second.Code != http.StatusOK {
			t.Fatalf("expected status 200 on both, got %d and %d", first.Code, second.Code)
		}
		if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
			t.Error("expected identical diagnostics from cached snapshot")
		}
	})
}
