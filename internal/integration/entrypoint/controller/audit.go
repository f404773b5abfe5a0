// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mca-analytics/backend/internal/application/usecase/audit"
	domainerror "github.com/mca-analytics/backend/internal/domain/error"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/dto"
)

// AuditController handles data-quality audit endpoints.
type AuditController struct {
	runAuditUseCase *audit.RunAuditUseCase
}

// NewAuditController creates a new audit controller instance.
func NewAuditController(runAuditUseCase *audit.RunAuditUseCase) *AuditController {
	return &AuditController{
		runAuditUseCase: runAuditUseCase,
	}
}

// GetAudit handles GET /audit requests.
func (c *AuditController) GetAudit(ctx *gin.Context) {
	output, err := c.runAuditUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeInternal))
		return
	}

	response := dto.ToAuditResponse(output)
	ctx.JSON(http.StatusOK, response)
}
