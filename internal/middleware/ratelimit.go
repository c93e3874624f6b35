package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"healthmon/internal/config"
)

// RateLimit returns middleware allowing cfg.Requests requests per cfg.Window
// for each client IP. Limiters for idle clients are evicted after a few
// windows. A non-positive Requests disables limiting.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	every := rate.Every(cfg.Window / time.Duration(cfg.Requests))
	limiters := cache.New(3*cfg.Window, cfg.Window)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		var limiter *rate.Limiter
		if v, ok := limiters.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(every, cfg.Requests)
			if err := limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
				// Lost a race with another request from the same IP.
				if v, ok := limiters.Get(ip); ok {
					limiter = v.(*rate.Limiter)
				}
			}
		}
		limiters.SetDefault(ip, limiter)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   gin.H{"code": "RATE_LIMITED", "message": "too many requests, try again later"},
			})
			return
		}
		c.Next()
	}
}
