package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthmon/internal/domain"
	"healthmon/internal/intake"
	"healthmon/internal/service"
)

// ReportHandler handles symptom and water quality report endpoints.
type ReportHandler struct {
	intakeService service.IntakeService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(intakeService service.IntakeService) *ReportHandler {
	return &ReportHandler{intakeService: intakeService}
}

// SubmitHealth handles POST /api/v1/reports/health
// @Summary Submit a symptom report
// @Description File a patient symptom report. Reports with a critical symptom are flagged and raise an alert.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body intake.SymptomFields true "Symptom report form"
// @Success 201 {object} Response{data=service.HealthSubmission} "Report submitted"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid fields"
// @Failure 403 {object} ErrorResponseBody "Role cannot submit reports"
// @Failure 504 {object} ErrorResponseBody "Submission timed out"
// @Security BearerAuth
// @Router /reports/health [post]
func (h *ReportHandler) SubmitHealth(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var fields intake.SymptomFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sub, err := h.intakeService.SubmitHealthReport(c.Request.Context(), user, fields)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sub)
}

// SubmitWater handles POST /api/v1/reports/water
// @Summary Submit a water quality test
// @Description File a water test. Readings outside safe limits are flagged and raise an alert.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body intake.WaterFields true "Water quality form"
// @Success 201 {object} Response{data=service.WaterSubmission} "Test submitted"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid fields"
// @Failure 403 {object} ErrorResponseBody "Role cannot submit reports"
// @Security BearerAuth
// @Router /reports/water [post]
func (h *ReportHandler) SubmitWater(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var fields intake.WaterFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sub, err := h.intakeService.SubmitWaterReport(c.Request.Context(), user, fields)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sub)
}

// ListHealth handles GET /api/v1/reports/health
// @Summary List symptom reports
// @Description Field workers see their own reports, officers their district, admins everything
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=[]domain.HealthReport,meta=ListMeta} "Symptom reports"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /reports/health [get]
func (h *ReportHandler) ListHealth(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reports, err := h.intakeService.ListHealthReports(c.Request.Context(), user)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, reports, len(reports))
}

// ListWater handles GET /api/v1/reports/water
// @Summary List water quality tests
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=[]domain.WaterQualityReport,meta=ListMeta} "Water tests"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /reports/water [get]
func (h *ReportHandler) ListWater(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reports, err := h.intakeService.ListWaterReports(c.Request.Context(), user)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, reports, len(reports))
}

// Symptoms handles GET /api/v1/symptoms
// @Summary Symptom catalog
// @Description The fixed list of symptoms, with the critical ones marked
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=[]domain.Symptom} "Symptom catalog"
// @Security BearerAuth
// @Router /symptoms [get]
func (h *ReportHandler) Symptoms(c *gin.Context) {
	RespondOK(c, domain.SymptomCatalog)
}
