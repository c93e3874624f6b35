package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthmon/internal/service"
)

// ExportHandler serves dashboard data downloads.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /api/v1/export
// @Summary Export dashboard data
// @Description Download the caller's visible districts, stats, critical alerts and recent reports. When archiving is enabled the X-Export-Location header carries a presigned URL of the archived copy.
// @Tags export
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format" Enums(json, xlsx) default(json)
// @Success 200 {file} file "Export document"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 403 {object} ErrorResponseBody "Role cannot export"
// @Security BearerAuth
// @Router /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	result, err := h.exportService.Export(c.Request.Context(), user, c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Artifact.Filename))
	if result.Location != "" {
		c.Header("X-Export-Location", result.Location)
	}
	c.Data(http.StatusOK, result.Artifact.ContentType, result.Artifact.Body)
}
