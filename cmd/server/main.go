package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pjsekai-tools/mysekai-furniture-backend/api"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/backup"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/config"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/health"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/shutdown"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/startup"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/lifecycle"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// .env是可选的，用于本地开发时覆盖配置
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("加载配置失败: " + err.Error())
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Production); err != nil {
		panic("初始化日志失败: " + err.Error())
	}
	defer logger.Sync()

	if err := database.InitDB(cfg.Database.Sqlite); err != nil {
		logger.L.Fatal("初始化SQLite失败", zap.Error(err))
	}
	if err := database.InitRedis(cfg.Database.Redis); err != nil {
		logger.L.Fatal("初始化Redis失败", zap.Error(err))
	}

	// 阻塞式获取初始Run ID，之后的健康检查据此判断Redis是否重启过
	if err := health.InitializeRunID(); err != nil {
		logger.L.Fatal("获取Redis Run ID失败", zap.Error(err))
	}

	// 执行应用首次启动初始化流程（迁移、种子数据、缓存预热）
	if err := startup.InitializeApplication(cfg.Data.Dir); err != nil {
		logger.L.Fatal("应用初始化失败，无法启动", zap.Error(err))
	}

	// 后台服务统一由生命周期管理器协调退出
	manager := lifecycle.NewManager()

	// 阻塞式执行一次启动后健康检查，再异步启动持续检查器
	health.PerformCheck()
	healthHandle, err := manager.NewServiceHandle("redis-health-checker")
	if err != nil {
		logger.L.Fatal("注册健康检查器失败", zap.Error(err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	backupHandle, err := manager.NewServiceHandle("sqlite-backup")
	if err != nil {
		logger.L.Fatal("注册备份调度器失败", zap.Error(err))
	}
	go backup.StartBackupScheduler(backupHandle, cfg.Data.Dir)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		logger.L.Info("服务器已准备就绪", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 阻塞等待停机信号，协调器负责完成整个停机流程
	coordinator := shutdown.NewCoordinator(manager, cfg.Data.Dir)
	coordinator.ListenForSignalsAndShutdown(server)
}
