package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CORSConfig represents CORS configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig allows the browser app to send identity and share-token headers
// and to read pagination, rate limit and download headers. No origins means any origin.
func DefaultCORSConfig(origins ...string) CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			"Accept",
			"Content-Type",
			HeaderRequestID,
			HeaderUserID,
			HeaderUserName,
			HeaderShareToken,
		},
		ExposeHeaders: []string{
			HeaderRequestID,
			"X-Total-Count",
			"Retry-After",
			"Content-Disposition",
		},
		MaxAge: 3600,
	}
}

// CORS answers preflights itself and decorates every other response from an allowed origin.
// Requests from other origins pass through without CORS headers so the browser blocks them.
func CORS(config CORSConfig) gin.HandlerFunc {
	anyOrigin := lo.Contains(config.AllowOrigins, "*")
	methods := strings.Join(config.AllowMethods, ", ")
	headers := strings.Join(config.AllowHeaders, ", ")
	expose := strings.Join(config.ExposeHeaders, ", ")
	maxAge := ""
	if config.MaxAge > 0 {
		maxAge = strconv.Itoa(config.MaxAge)
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		preflight := c.Request.Method == http.MethodOptions

		switch {
		case anyOrigin && !config.AllowCredentials:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && (anyOrigin || lo.Contains(config.AllowOrigins, origin)):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			if config.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		default:
			if preflight {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		if expose != "" {
			c.Header("Access-Control-Expose-Headers", expose)
		}

		if !preflight {
			c.Next()
			return
		}

		if methods != "" {
			c.Header("Access-Control-Allow-Methods", methods)
		}
		if headers != "" {
			c.Header("Access-Control-Allow-Headers", headers)
		}
		if maxAge != "" {
			c.Header("Access-Control-Max-Age", maxAge)
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
