package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dwern/portfolio-chat/internal/config"
	"github.com/dwern/portfolio-chat/internal/observability"
)

// RequestID tags every request with a request_id, echoed in the X-Request-ID
// header and carried in the request context for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger emits one structured line per completed request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.LoggerFromContext(c.Request.Context()).Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client", clientKey(c),
		)
	}
}

// CORS answers preflight requests and mirrors the caller's origin. The origin
// check below decides whether the request is actually served.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// OriginCheck rejects requests whose Origin and Referer both fail to match a
// trusted source. Trusted sources are localhost, the configured site URL and
// deploy-preview hosts ending in the preview suffix. Requests with neither
// header are rejected; browsers always send at least one on cross-origin
// fetches, so the remaining traffic is scripted.
func OriginCheck(site config.SiteConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if site.DisableOriginCheck {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		referer := c.GetHeader("Referer")
		if trustedSource(origin, site) || trustedSource(referer, site) {
			c.Next()
			return
		}

		observability.LoggerFromContext(c.Request.Context()).Warn("unauthorized origin",
			"origin", origin,
			"referer", referer,
		)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized request origin"})
	}
}

func trustedSource(value string, site config.SiteConfig) bool {
	if value == "" {
		return false
	}
	if strings.Contains(value, "localhost") || strings.Contains(value, "127.0.0.1") {
		return true
	}
	if site.URL != "" && strings.Contains(value, site.URL) {
		return true
	}
	if site.PreviewSuffix != "" && strings.Contains(value, site.PreviewSuffix) {
		return true
	}
	return false
}

// RateLimit enforces the fixed-window limiter per client address.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(clientKey(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please wait a moment.",
			})
			return
		}
		c.Next()
	}
}

// clientKey identifies the caller for rate limiting. Proxy headers take
// precedence over the socket address so limits follow the real client behind
// a load balancer.
func clientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
