package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"healthmon/internal/config"
	"healthmon/internal/middleware"
)

func limitedEngine(cfg config.RateLimitConfig) *gin.Engine {
	r := gin.New()
	r.POST("/login", middleware.RateLimit(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func post(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", http.NoBody)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_PerIP(t *testing.T) {
	r := limitedEngine(config.RateLimitConfig{Requests: 2, Window: time.Hour})

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2"))
}

func TestRateLimit_Disabled(t *testing.T) {
	r := limitedEngine(config.RateLimitConfig{})
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, post(r, "10.0.0.1"))
	}
}
