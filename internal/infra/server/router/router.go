// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mca-analytics/backend/internal/integration/entrypoint/controller"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	reconciliationController *controller.ReconciliationController
	riskController           *controller.RiskController
	analyticsController      *controller.AnalyticsController
	forecastController       *controller.ForecastController
	auditController          *controller.AuditController
	cacheController          *controller.CacheController
	forecastRateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	reconciliationController *controller.ReconciliationController,
	riskController *controller.RiskController,
	analyticsController *controller.AnalyticsController,
	forecastController *controller.ForecastController,
	auditController *controller.AuditController,
	cacheController *controller.CacheController,
	forecastRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:         healthController,
		reconciliationController: reconciliationController,
		riskController:           riskController,
		analyticsController:      analyticsController,
		forecastController:       forecastController,
		auditController:          auditController,
		cacheController:          cacheController,
		forecastRateLimiter:      forecastRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Reconciliation routes
		if r.reconciliationController != nil {
			reconciliation := v1.Group("/reconciliation")
			{
				reconciliation.GET("/loan-tape", r.reconciliationController.GetLoanTape)
				reconciliation.GET("/loan-tape/export", r.reconciliationController.ExportLoanTape)
				reconciliation.GET("/customers/summary", r.reconciliationController.GetCustomerSummary)
				reconciliation.GET("/customers/summary/export", r.reconciliationController.ExportCustomerSummary)
				reconciliation.GET("/diagnostics", r.reconciliationController.GetDiagnostics)
				reconciliation.GET("/diagnostics/export", r.reconciliationController.ExportDiagnostics)
				reconciliation.GET("/combined-deals", r.reconciliationController.GetCombinedDeals)
			}
		}

		// Risk scoring routes
		if r.riskController != nil {
			risk := v1.Group("/risk")
			{
				risk.GET("/customers", r.riskController.GetRiskScores)
			}
		}

		// Portfolio analytics routes
		if r.analyticsController != nil {
			analytics := v1.Group("/analytics")
			{
				analytics.GET("/portfolio", r.analyticsController.GetPortfolioAnalytics)
			}
		}

		// Forecast routes (rate limited, projections are the expensive path)
		if r.forecastController != nil {
			forecast := v1.Group("/forecast")
			if r.forecastRateLimiter != nil {
				forecast.Use(r.forecastRateLimiter.Middleware())
			}
			{
				forecast.POST("", r.forecastController.ProjectCashFlow)
				forecast.POST("/compare", r.forecastController.CompareScenarios)
				forecast.POST("/export", r.forecastController.ExportForecast)
				forecast.GET("/baseline/export", r.forecastController.ExportBaseline)
				forecast.GET("/cash-activity", r.forecastController.GetCashActivity)
			}
		}

		// Audit routes
		if r.auditController != nil {
			audit := v1.Group("/audit")
			{
				audit.GET("", r.auditController.GetAudit)
			}
		}

		// Cache management routes
		if r.cacheController != nil {
			v1.DELETE("/cache", r.cacheController.InvalidateCache)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
