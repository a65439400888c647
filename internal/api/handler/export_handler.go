package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/service"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/response"
)

// ExportHandler serves the report-export endpoints.
type ExportHandler struct {
	exportService service.ExportService
	logger        *zap.Logger
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportService service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exportService: exportService, logger: logger}
}

// ExportProposals handles GET /api/v1/export/proposals. Streams an .xlsx
// report of proposals, optionally filtered by status.
func (h *ExportHandler) ExportProposals(c *gin.Context) {
	status := c.Query("status")

	buf, filename, err := h.exportService.ExportProposals(c.Request.Context(), status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoProposals):
			response.NotFound(c, 30002, err.Error())
		case errors.Is(err, service.ErrExportGenerateFail):
			h.logger.Error("export generation failed", zap.Error(err))
			response.InternalError(c)
		default:
			h.logger.Error("export failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
