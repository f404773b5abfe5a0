// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mca-analytics/backend/internal/application/usecase/risk"
	domainerror "github.com/mca-analytics/backend/internal/domain/error"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/dto"
)

// RiskController handles risk scoring endpoints.
type RiskController struct {
	scoreCustomersUseCase *risk.ScoreCustomersUseCase
}

// NewRiskController creates a new risk controller instance.
func NewRiskController(scoreCustomersUseCase *risk.ScoreCustomersUseCase) *RiskController {
	return &RiskController{
		scoreCustomersUseCase: scoreCustomersUseCase,
	}
}

// GetRiskScores handles GET /risk/customers requests.
func (c *RiskController) GetRiskScores(ctx *gin.Context) {
	output, err := c.scoreCustomersUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeInternal))
		return
	}

	response := dto.ToRiskResponse(output)
	ctx.JSON(http.StatusOK, response)
}
