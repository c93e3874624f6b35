package handler

import (
	"github.com/gin-gonic/gin"

	"healthmon/internal/i18n"
)

// I18nHandler serves the UI string catalogs.
type I18nHandler struct{}

// NewI18nHandler creates a new I18nHandler.
func NewI18nHandler() *I18nHandler {
	return &I18nHandler{}
}

// Catalog handles GET /api/v1/i18n/:lang
// @Summary UI string catalog
// @Description Every translated key for the language. Keys missing from a catalog are not filled from another language.
// @Tags i18n
// @Produce json
// @Param lang path string true "Language" Enums(en, hi, as)
// @Success 200 {object} Response{data=map[string]string} "Catalog"
// @Failure 400 {object} ErrorResponseBody "Unsupported language"
// @Router /i18n/{lang} [get]
func (h *I18nHandler) Catalog(c *gin.Context) {
	lang, err := i18n.ParseLanguage(c.Param("lang"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, i18n.Catalog(lang))
}
