package service

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/relay/service/config"
)

const defaultPreviewSuffix = ".vercel.app"

// originMiddleware enforces the relay's cross-origin policy. Requests with
// no Origin header pass (curl, server-to-server). Disallowed origins get an
// explicit 403 with an error body plus a warn log, so a misconfigured
// frontend shows up in the logs instead of failing silently.
func originMiddleware(cfg config.Cors) gin.HandlerFunc {
	suffix := cfg.PreviewSuffix
	if suffix == "" {
		suffix = defaultPreviewSuffix
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if !originAllowed(cfg.AllowedOrigins, suffix, origin) {
			xzap.WithContext(c.Request.Context()).Warn("origin rejected",
				zap.String("origin", origin), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "origin not allowed: " + origin})
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originAllowed(allowList []string, previewSuffix, origin string) bool {
	for _, allowed := range allowList {
		if origin == allowed {
			return true
		}
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return true
	}
	// Preview deployments live on throwaway subdomains of one hosting
	// provider; match the suffix but never the bare apex.
	if strings.HasSuffix(host, previewSuffix) && host != strings.TrimPrefix(previewSuffix, ".") {
		return true
	}
	return false
}
