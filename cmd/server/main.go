package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hadoop-cluster-backend/internal/app"
	"hadoop-cluster-backend/internal/config"
	"hadoop-cluster-backend/internal/handler"
	"hadoop-cluster-backend/internal/pkg/logger"
	"hadoop-cluster-backend/internal/router"
)

func main() {
	cfg := config.LoadConfig()

	// 初始化日志
	appLogger := logger.NewLogger(cfg.Logging)
	accessLog, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create access logger:", err)
	}
	defer accessLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化服务
	application, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize: %v", err)
	}
	defer application.Close()

	// 初始化处理器
	clusterHandler := handler.NewClusterHandler(application.ClusterService, appLogger, cfg.Server.AllowOrigins, cfg.Server.MaxUploadMB)

	// 设置 Gin 模式
	gin.SetMode(gin.ReleaseMode)

	// 创建路由
	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	// 中间件
	router.InstallMiddlewares(r, accessLog, cfg.Server.AllowOrigins)

	// 注册路由
	router.RegisterRoutes(r, clusterHandler)

	// 健康检查
	router.RegisterSystemRoutes(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	appLogger.Infof("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Fatalf("Failed to start server: %v", err)
	}
	appLogger.Info("Server stopped")
}
