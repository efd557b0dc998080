package startup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/character"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/collection"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/event"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/furniture"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/metadata"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/user"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 目录模块先于用户状态模块初始化，保证外键引用的业务ID已经就位。
func InitializeApplication(dataDir string) error {
	logger.L.Info("开始应用初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := character.PrimeDB(dataDir); err != nil {
		return err
	}
	if err := furniture.PrimeDB(dataDir); err != nil {
		return err
	}
	if err := collection.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := event.PrimeCachedDB(dataDir); err != nil {
		return err
	}
	if err := recordDatasetVersion(dataDir); err != nil {
		return err
	}

	logger.L.Info("应用初始化完成")
	return nil
}

// recordDatasetVersion 比对资产目录与数据库中的种子数据集版本。
// 种子数据只在空表时导入，版本不一致说明数据库里还是旧数据集，提示运维重建。
func recordDatasetVersion(dataDir string) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, "version.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("无法读取数据集版本文件: %w", err)
	}
	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("无法解析数据集版本文件: %w", err)
	}

	stored, err := metadata.GetSeedDatasetVersion(database.DB)
	if err != nil {
		return err
	}
	if stored == "" {
		return metadata.SetSeedDatasetVersion(database.DB, manifest.Version)
	}
	if stored != manifest.Version {
		logger.L.Warn("数据库中的种子数据集落后于资产目录",
			zap.String("stored", stored), zap.String("assets", manifest.Version))
	}
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数。
// 健康检查器在检测到Redis重启后调用它，把SQLite中的数据重新预热进Redis。
func RebuildCache() error {
	logger.L.Info("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}
	if err := event.WarmupCache(); err != nil {
		return err
	}

	rebuiltAt := time.Now().UTC().Format(time.RFC3339)
	if err := database.RDB.Set(database.Ctx, metadata.LastCacheRebuildKey, rebuiltAt, 0).Err(); err != nil {
		return fmt.Errorf("无法记录缓存重建时间: %w", err)
	}

	logger.L.Info("缓存热重建完成")
	return nil
}
