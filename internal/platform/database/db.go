package database

import (
	"fmt"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/config"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB 是一个全局的GORM数据库实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 初始化SQLite数据库连接
func InitDB(cfg config.SqliteConfig) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		// 目录数据是读多写少的，SQL日志只在排查问题时有用
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("无法连接到SQLite数据库 %s: %w", cfg.Path, err)
	}

	logger.L.Info("SQLite数据库连接成功", zap.String("path", cfg.Path))
	return nil
}

// InitTestDB 为测试初始化一个独立的内存数据库。
// cache=shared保证同一个连接池内的多个连接看到同一份数据。
func InitTestDB() error {
	var err error
	DB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("无法创建内存数据库: %w", err)
	}
	return nil
}
