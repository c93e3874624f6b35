package handler

import (
	"github.com/gin-gonic/gin"

	"healthmon/internal/service"
)

// DashboardHandler serves the role specific dashboard.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles GET /api/v1/dashboard
// @Summary Dashboard
// @Description The caller's dashboard panel, capabilities and localized labels
// @Tags dashboard
// @Produce json
// @Param lang query string false "Language" Enums(en, hi, as)
// @Success 200 {object} Response{data=service.DashboardView} "Dashboard"
// @Failure 400 {object} ErrorResponseBody "Unsupported language"
// @Failure 403 {object} ErrorResponseBody "Role has no dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	lang, err := queryLanguage(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	view, err := h.dashboardService.Get(c.Request.Context(), user, lang)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}
