package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"healthmon/internal/domain"
	"healthmon/internal/service"
)

// VillageHandler handles the village risk map endpoints.
type VillageHandler struct {
	riskMap service.RiskMapService
}

// NewVillageHandler creates a new VillageHandler.
func NewVillageHandler(riskMap service.RiskMapService) *VillageHandler {
	return &VillageHandler{riskMap: riskMap}
}

func villageFilter(c *gin.Context) service.VillageFilter {
	return service.VillageFilter{
		District: c.Query("district"),
		Risk:     domain.RiskLevel(c.Query("risk")),
	}
}

// List handles GET /api/v1/villages
// @Summary List villages
// @Description List villages, optionally narrowed by district and recorded risk level
// @Tags villages
// @Produce json
// @Param district query string false "District name"
// @Param risk query string false "Risk level" Enums(low, medium, high, critical)
// @Success 200 {object} Response{data=[]domain.Village,meta=ListMeta} "Villages"
// @Failure 400 {object} ErrorResponseBody "Invalid risk level"
// @Security BearerAuth
// @Router /villages [get]
func (h *VillageHandler) List(c *gin.Context) {
	villages, err := h.riskMap.ListVillages(c.Request.Context(), villageFilter(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, villages, len(villages))
}

// Get handles GET /api/v1/villages/:id
// @Summary Village detail
// @Description The selected village with its effective risk level and reports
// @Tags villages
// @Produce json
// @Param id path string true "Village ID"
// @Success 200 {object} Response{data=service.VillageDetail} "Village detail"
// @Failure 400 {object} ErrorResponseBody "Invalid village ID"
// @Failure 404 {object} ErrorResponseBody "Village not found"
// @Security BearerAuth
// @Router /villages/{id} [get]
func (h *VillageHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid village ID")
		return
	}
	detail, err := h.riskMap.SelectVillage(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

// Markers handles GET /api/v1/map/markers
// @Summary Risk map markers
// @Description One marker per village with the classifier's risk level, color and localized labels
// @Tags villages
// @Produce json
// @Param district query string false "District name"
// @Param risk query string false "Effective risk level" Enums(low, medium, high, critical)
// @Param lang query string false "Language" Enums(en, hi, as)
// @Success 200 {object} Response{data=service.MarkerSet} "Markers"
// @Failure 400 {object} ErrorResponseBody "Invalid risk level or language"
// @Security BearerAuth
// @Router /map/markers [get]
func (h *VillageHandler) Markers(c *gin.Context) {
	lang, err := queryLanguage(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	set, err := h.riskMap.Markers(c.Request.Context(), villageFilter(c), lang)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, set)
}
