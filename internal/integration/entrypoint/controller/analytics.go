// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mca-analytics/backend/internal/application/usecase/analytics"
	domainerror "github.com/mca-analytics/backend/internal/domain/error"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles portfolio analytics endpoints.
type AnalyticsController struct {
	portfolioAnalyticsUseCase *analytics.PortfolioAnalyticsUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(portfolioAnalyticsUseCase *analytics.PortfolioAnalyticsUseCase) *AnalyticsController {
	return &AnalyticsController{
		portfolioAnalyticsUseCase: portfolioAnalyticsUseCase,
	}
}

// GetPortfolioAnalytics handles GET /analytics/portfolio requests.
func (c *AnalyticsController) GetPortfolioAnalytics(ctx *gin.Context) {
	output, err := c.portfolioAnalyticsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeInternal))
		return
	}

	response := dto.ToPortfolioAnalyticsResponse(output)
	ctx.JSON(http.StatusOK, response)
}
