// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mca-analytics/backend/config"
	"github.com/mca-analytics/backend/internal/application/adapter"
	"github.com/mca-analytics/backend/internal/application/usecase/analytics"
	"github.com/mca-analytics/backend/internal/application/usecase/audit"
	"github.com/mca-analytics/backend/internal/application/usecase/export"
	"github.com/mca-analytics/backend/internal/application/usecase/forecast"
	"github.com/mca-analytics/backend/internal/application/usecase/reconciliation"
	"github.com/mca-analytics/backend/internal/application/usecase/risk"
	"github.com/mca-analytics/backend/internal/infra/server/router"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/controller"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/middleware"
	"github.com/mca-analytics/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case snapshots load straight from the
// database on every request.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	engineCfg := cfg.ToEngineConfig()

	// Create record loader, cached when Redis is available
	var loader adapter.RecordLoader = persistence.NewRecordLoader(db, engineCfg)
	var snapshotCache adapter.SnapshotCache
	if redisClient != nil {
		snapshotCache = persistence.NewRedisSnapshotCache(redisClient, cfg.Cache.TTL)
		loader = persistence.NewCachedRecordLoader(loader, snapshotCache)
	}

	// Create reconciliation use cases
	buildLoanTapeUseCase := reconciliation.NewBuildLoanTapeUseCase(loader, engineCfg)
	getCustomerSummaryUseCase := reconciliation.NewGetCustomerSummaryUseCase(loader, engineCfg)
	getDiagnosticsUseCase := reconciliation.NewGetDiagnosticsUseCase(loader, engineCfg)
	combineDealsUseCase := reconciliation.NewCombineDealsUseCase(loader)

	// Create risk and forecast use cases
	scoreCustomersUseCase := risk.NewScoreCustomersUseCase(loader, engineCfg)
	portfolioAnalyticsUseCase := analytics.NewPortfolioAnalyticsUseCase(loader, engineCfg)
	projectCashFlowUseCase := forecast.NewProjectCashFlowUseCase(loader, engineCfg)
	compareScenariosUseCase := forecast.NewCompareScenariosUseCase(loader, engineCfg)
	analyzeCashActivityUseCase := forecast.NewAnalyzeCashActivityUseCase(loader, engineCfg)

	// Create audit and export use cases
	runAuditUseCase := audit.NewRunAuditUseCase(loader, engineCfg)
	exportCSVUseCase := export.NewExportCSVUseCase()

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			if redisClient == nil {
				return false
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	reconciliationController := controller.NewReconciliationController(
		buildLoanTapeUseCase,
		getCustomerSummaryUseCase,
		getDiagnosticsUseCase,
		combineDealsUseCase,
		exportCSVUseCase,
	)

	riskController := controller.NewRiskController(scoreCustomersUseCase)
	analyticsController := controller.NewAnalyticsController(portfolioAnalyticsUseCase)

	forecastController := controller.NewForecastController(
		projectCashFlowUseCase,
		compareScenariosUseCase,
		analyzeCashActivityUseCase,
		exportCSVUseCase,
	)

	auditController := controller.NewAuditController(runAuditUseCase)

	var cacheController *controller.CacheController
	if snapshotCache != nil {
		cacheController = controller.NewCacheController(snapshotCache)
	}

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var forecastRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		forecastRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		forecastRateLimiter = middleware.NewRateLimiter()
	}

	// Create router
	r := router.NewRouter(
		healthController,
		reconciliationController,
		riskController,
		analyticsController,
		forecastController,
		auditController,
		cacheController,
		forecastRateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
