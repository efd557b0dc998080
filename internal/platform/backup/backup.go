package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/metadata"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/lifecycle"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	backupInterval = 1 * time.Hour // 定时备份频率
	maxBackupsKept = 24
)

var backupMutex sync.Mutex // 避免定时备份和停机备份重入

// StartBackupScheduler 启动一个后台Goroutine来定期备份SQLite数据库。
// 它通过lifecycle.Handle管理自己的生命周期。
func StartBackupScheduler(handle *lifecycle.Handle, dataDir string) {
	defer handle.Close()
	logger.L.Info("数据库备份调度器已启动")

	for {
		// 使用可中断的休眠代替ticker，停机信号能立刻唤醒循环退出
		if err := handle.Sleep(backupInterval); err != nil {
			logger.L.Info("备份调度器: 休眠被中断，正在关闭...")
			return
		}

		if err := CreateBackup(dataDir); err != nil {
			logger.L.Error("备份调度器: 定时备份失败", zap.Error(err))
		}
	}
}

// CreateBackup 使用VACUUM INTO对SQLite执行一次在线备份，
// 并把完成时间写入metadata表。超出保留数量的旧备份会被清理。
func CreateBackup(dataDir string) error {
	backupMutex.Lock()
	defer backupMutex.Unlock()

	backupDir := filepath.Join(dataDir, "backups")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("无法创建备份目录: %w", err)
	}

	now := time.Now()
	target := filepath.Join(backupDir, fmt.Sprintf("mysekai-%s.db", now.UTC().Format("20060102-150405")))
	if err := database.DB.Exec("VACUUM INTO ?", target).Error; err != nil {
		return fmt.Errorf("VACUUM INTO备份失败: %w", err)
	}

	if err := metadata.SetLastBackupAt(database.DB, now); err != nil {
		return fmt.Errorf("无法记录备份时间: %w", err)
	}

	if err := pruneOldBackups(backupDir); err != nil {
		// 清理失败不影响本次备份的结果
		logger.L.Warn("清理旧备份失败", zap.Error(err))
	}

	logger.L.Info("数据库备份完成", zap.String("path", target))
	return nil
}

// pruneOldBackups 删除超出保留数量的最旧备份。
// 备份文件名含UTC时间戳，按名称排序即按时间排序。
func pruneOldBackups(backupDir string) error {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".db" {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= maxBackupsKept {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-maxBackupsKept] {
		if err := os.Remove(filepath.Join(backupDir, name)); err != nil {
			return err
		}
	}
	return nil
}
