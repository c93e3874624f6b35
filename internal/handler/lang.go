package handler

import (
	"github.com/gin-gonic/gin"

	"healthmon/internal/i18n"
)

// queryLanguage reads ?lang=, defaulting to English when absent.
func queryLanguage(c *gin.Context) (i18n.Language, error) {
	raw := c.Query("lang")
	if raw == "" {
		return i18n.Default, nil
	}
	return i18n.ParseLanguage(raw)
}
