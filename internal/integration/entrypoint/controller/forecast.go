// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mca-analytics/backend/internal/application/usecase/export"
	"github.com/mca-analytics/backend/internal/application/usecase/forecast"
	domainerror "github.com/mca-analytics/backend/internal/domain/error"
	"github.com/mca-analytics/backend/internal/domain/valueobject"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/dto"
)

// ForecastController handles cash flow forecasting endpoints.
type ForecastController struct {
	projectCashFlowUseCase     *forecast.ProjectCashFlowUseCase
	compareScenariosUseCase    *forecast.CompareScenariosUseCase
	analyzeCashActivityUseCase *forecast.AnalyzeCashActivityUseCase
	exportCSVUseCase           *export.ExportCSVUseCase
}

// NewForecastController creates a new forecast controller instance.
func NewForecastController(
	projectCashFlowUseCase *forecast.ProjectCashFlowUseCase,
	compareScenariosUseCase *forecast.CompareScenariosUseCase,
	analyzeCashActivityUseCase *forecast.AnalyzeCashActivityUseCase,
	exportCSVUseCase *export.ExportCSVUseCase,
) *ForecastController {
	return &ForecastController{
		projectCashFlowUseCase:     projectCashFlowUseCase,
		compareScenariosUseCase:    compareScenariosUseCase,
		analyzeCashActivityUseCase: analyzeCashActivityUseCase,
		exportCSVUseCase:           exportCSVUseCase,
	}
}

// ProjectCashFlow handles POST /forecast requests.
func (c *ForecastController) ProjectCashFlow(ctx *gin.Context) {
	var request dto.ProjectCashFlowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidRequest),
		})
		return
	}

	output, err := c.projectCashFlowUseCase.Execute(ctx.Request.Context(), request.ToInput())
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	response := dto.ToForecastResponse(*output)
	ctx.JSON(http.StatusOK, response)
}

// CompareScenarios handles POST /forecast/compare requests.
func (c *ForecastController) CompareScenarios(ctx *gin.Context) {
	var request dto.CompareScenariosRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidRequest),
		})
		return
	}

	output, err := c.compareScenariosUseCase.Execute(ctx.Request.Context(), request.ToInput())
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	response := dto.ToCompareScenariosResponse(output)
	ctx.JSON(http.StatusOK, response)
}

// ExportForecast handles POST /forecast/export requests.
// It projects the scenario and returns the period series as a CSV download.
func (c *ForecastController) ExportForecast(ctx *gin.Context) {
	var request dto.ProjectCashFlowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidRequest),
		})
		return
	}

	output, err := c.projectCashFlowUseCase.Execute(ctx.Request.Context(), request.ToInput())
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	doc, err := c.exportCSVUseCase.Forecast(output.Periods)
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeForecastInternal))
		return
	}

	writeCSV(ctx, doc)
}

// ExportBaseline handles GET /forecast/baseline/export requests.
// The baseline rates are scenario-independent, so a neutral projection is
// enough to derive them.
func (c *ForecastController) ExportBaseline(ctx *gin.Context) {
	input := forecast.ProjectCashFlowInput{
		Unit:             valueobject.PeriodUnitWeekly,
		Horizon:          1,
		DeploymentMethod: valueobject.DeploymentHistorical,
		InflowMethod:     valueobject.InflowHistorical,
	}

	output, err := c.projectCashFlowUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	doc, err := c.exportCSVUseCase.Baseline(output.Baseline)
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeForecastInternal))
		return
	}

	writeCSV(ctx, doc)
}

// GetCashActivity handles GET /forecast/cash-activity requests.
func (c *ForecastController) GetCashActivity(ctx *gin.Context) {
	output, err := c.analyzeCashActivityUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeForecastInternal))
		return
	}

	response := dto.ToCashActivityResponse(output)
	ctx.JSON(http.StatusOK, response)
}

// handleForecastError maps forecast errors to HTTP responses.
func (c *ForecastController) handleForecastError(ctx *gin.Context, err error) {
	var fctErr *domainerror.ForecastError
	if errors.As(err, &fctErr) {
		statusCode := http.StatusBadRequest
		if fctErr.Code == domainerror.ErrCodeForecastInternal {
			statusCode = http.StatusInternalServerError
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: fctErr.Message,
			Code:  string(fctErr.Code),
		})
		return
	}

	handleInternalError(ctx, string(domainerror.ErrCodeForecastInternal))
}
