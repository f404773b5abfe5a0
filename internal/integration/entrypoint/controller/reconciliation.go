// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mca-analytics/backend/internal/application/usecase/export"
	"github.com/mca-analytics/backend/internal/application/usecase/reconciliation"
	domainerror "github.com/mca-analytics/backend/internal/domain/error"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/dto"
)

// ReconciliationController handles reconciliation endpoints.
type ReconciliationController struct {
	buildLoanTapeUseCase      *reconciliation.BuildLoanTapeUseCase
	getCustomerSummaryUseCase *reconciliation.GetCustomerSummaryUseCase
	getDiagnosticsUseCase     *reconciliation.GetDiagnosticsUseCase
	combineDealsUseCase       *reconciliation.CombineDealsUseCase
	exportCSVUseCase          *export.ExportCSVUseCase
}

// NewReconciliationController creates a new reconciliation controller instance.
func NewReconciliationController(
	buildLoanTapeUseCase *reconciliation.BuildLoanTapeUseCase,
	getCustomerSummaryUseCase *reconciliation.GetCustomerSummaryUseCase,
	getDiagnosticsUseCase *reconciliation.GetDiagnosticsUseCase,
	combineDealsUseCase *reconciliation.CombineDealsUseCase,
	exportCSVUseCase *export.ExportCSVUseCase,
) *ReconciliationController {
	return &ReconciliationController{
		buildLoanTapeUseCase:      buildLoanTapeUseCase,
		getCustomerSummaryUseCase: getCustomerSummaryUseCase,
		getDiagnosticsUseCase:     getDiagnosticsUseCase,
		combineDealsUseCase:       combineDealsUseCase,
		exportCSVUseCase:          exportCSVUseCase,
	}
}

// GetLoanTape handles GET /reconciliation/loan-tape requests.
func (c *ReconciliationController) GetLoanTape(ctx *gin.Context) {
	output, err := c.buildLoanTapeUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	response := dto.ToLoanTapeResponse(output)
	ctx.JSON(http.StatusOK, response)
}

// ExportLoanTape handles GET /reconciliation/loan-tape/export requests.
// It returns the loan tape as a CSV download.
func (c *ReconciliationController) ExportLoanTape(ctx *gin.Context) {
	output, err := c.buildLoanTapeUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	doc, err := c.exportCSVUseCase.LoanTape(output.Records)
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	writeCSV(ctx, doc)
}

// GetCustomerSummary handles GET /reconciliation/customers/summary requests.
func (c *ReconciliationController) GetCustomerSummary(ctx *gin.Context) {
	output, err := c.getCustomerSummaryUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	response := dto.ToCustomerSummariesResponse(output)
	ctx.JSON(http.StatusOK, response)
}

// ExportCustomerSummary handles GET /reconciliation/customers/summary/export requests.
func (c *ReconciliationController) ExportCustomerSummary(ctx *gin.Context) {
	output, err := c.getCustomerSummaryUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	doc, err := c.exportCSVUseCase.CustomerSummary(output.Summaries)
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	writeCSV(ctx, doc)
}

// GetDiagnostics handles GET /reconciliation/diagnostics requests.
func (c *ReconciliationController) GetDiagnostics(ctx *gin.Context) {
	diag, err := c.getDiagnosticsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	response := dto.ToDiagnosticsResponse(diag)
	ctx.JSON(http.StatusOK, response)
}

// ExportDiagnostics handles GET /reconciliation/diagnostics/export requests.
func (c *ReconciliationController) ExportDiagnostics(ctx *gin.Context) {
	diag, err := c.getDiagnosticsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	doc, err := c.exportCSVUseCase.Diagnostics(diag)
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	writeCSV(ctx, doc)
}

// GetCombinedDeals handles GET /reconciliation/combined-deals requests.
func (c *ReconciliationController) GetCombinedDeals(ctx *gin.Context) {
	output, err := c.combineDealsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeReconciliationInternal))
		return
	}

	response := dto.ToCombinedDealsResponse(output)
	ctx.JSON(http.StatusOK, response)
}

// writeCSV sends an exported document as a file download.
func writeCSV(ctx *gin.Context, doc *export.Document) {
	ctx.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	ctx.Data(http.StatusOK, "text/csv", doc.Content)
}

// handleInternalError returns a generic server error with the given code.
func handleInternalError(ctx *gin.Context, code string) {
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  code,
	})
}
