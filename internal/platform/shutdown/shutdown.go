package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/backup"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/lifecycle"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	httpShutdownTimeout = 15 * time.Second
	serviceWaitTimeout  = 30 * time.Second
)

// Coordinator 负责编排应用程序的优雅停机流程。
// 它接收外部创建的生命周期管理器，并使用它来协调后台服务的退出。
type Coordinator struct {
	manager *lifecycle.Manager
	dataDir string
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator(manager *lifecycle.Manager, dataDir string) *Coordinator {
	return &Coordinator{
		manager: manager,
		dataDir: dataDir,
	}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
// 流程：关闭HTTP服务器 → 广播停机信号并等待后台服务退出 → 执行最终备份。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.L.Info("收到关闭信号，开始优雅停机...")

	// 关闭HTTP服务器，允许正在进行的请求完成
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("服务器关闭错误", zap.Error(err))
	} else {
		logger.L.Info("服务器已关闭")
	}

	c.manager.Shutdown()
	if remaining := c.manager.WaitWithTimeout(serviceWaitTimeout); len(remaining) > 0 {
		logger.L.Warn("部分后台服务未能在超时前退出", zap.Strings("services", remaining))
	} else {
		logger.L.Info("所有后台服务已退出")
	}

	// 停机前留下一份最终备份
	if err := backup.CreateBackup(c.dataDir); err != nil {
		logger.L.Error("最终备份失败", zap.Error(err))
	}

	logger.L.Info("优雅停机完成")
}
