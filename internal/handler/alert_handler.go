package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"healthmon/internal/domain"
	"healthmon/internal/notify"
	"healthmon/internal/service"
)

// AlertHandler handles alert listing, lifecycle and live stream endpoints.
type AlertHandler struct {
	alertService service.AlertService
	stream       http.Handler
}

// NewAlertHandler creates a new AlertHandler. stream upgrades the request to
// the live alert websocket.
func NewAlertHandler(alertService service.AlertService, stream http.Handler) *AlertHandler {
	return &AlertHandler{alertService: alertService, stream: stream}
}

// List handles GET /api/v1/alerts
// @Summary List alerts
// @Description Alerts visible to the caller, optionally filtered by status
// @Tags alerts
// @Produce json
// @Param status query string false "Alert status" Enums(active, acknowledged, resolved)
// @Success 200 {object} Response{data=[]domain.Alert,meta=ListMeta} "Alerts"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Security BearerAuth
// @Router /alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	alerts, err := h.alertService.List(c.Request.Context(), user, domain.AlertStatus(c.Query("status")))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, alerts, len(alerts))
}

// Acknowledge handles POST /api/v1/alerts/:id/acknowledge
// @Summary Acknowledge an alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} Response{data=domain.Alert} "Alert acknowledged"
// @Failure 403 {object} ErrorResponseBody "Alert outside the caller's district"
// @Failure 404 {object} ErrorResponseBody "Alert not found"
// @Failure 409 {object} ErrorResponseBody "Alert already acknowledged or resolved"
// @Security BearerAuth
// @Router /alerts/{id}/acknowledge [post]
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	h.advance(c, h.alertService.Acknowledge)
}

// Resolve handles POST /api/v1/alerts/:id/resolve
// @Summary Resolve an alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} Response{data=domain.Alert} "Alert resolved"
// @Failure 403 {object} ErrorResponseBody "Alert outside the caller's district"
// @Failure 404 {object} ErrorResponseBody "Alert not found"
// @Failure 409 {object} ErrorResponseBody "Alert already resolved"
// @Security BearerAuth
// @Router /alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *gin.Context) {
	h.advance(c, h.alertService.Resolve)
}

func (h *AlertHandler) advance(c *gin.Context, fn func(context.Context, *domain.User, uuid.UUID) (*domain.Alert, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid alert ID")
		return
	}
	alert, err := fn(c.Request.Context(), user, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, alert)
}

// Stream handles GET /api/v1/alerts/stream
// @Summary Live alert stream
// @Description Websocket upgrade. Each new or updated alert is pushed as {"type":"alert","data":{...}}. Browsers pass the token as access_token.
// @Tags alerts
// @Param access_token query string false "Access token when no Authorization header can be set"
// @Success 101 "Switching protocols"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /alerts/stream [get]
func (h *AlertHandler) Stream(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.stream.ServeHTTP(c.Writer, c.Request.WithContext(notify.WithUser(c.Request.Context(), user)))
}
