package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hadoop-cluster-backend/internal/pkg/metrics"
)

// InstallMiddlewares adds request ids, zap access logs, panic recovery and
// CORS for the UI origins.
func InstallMiddlewares(r *gin.Engine, accessLog *zap.Logger, allowOrigins []string) {
	r.Use(requestid.New())
	r.ContextWithFallback = true

	// RFC3339 UTC 访问日志
	r.Use(ginzap.Ginzap(accessLog, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(accessLog, true))

	// CORS 配置
	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	r.Use(cors.New(config))
}

// RegisterSystemRoutes adds /health and /metrics.
func RegisterSystemRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
