package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L 是全局日志记录器实例，在InitLogger成功后可供全项目使用
var L *zap.Logger

// InitLogger 初始化全局zap日志记录器。
// level可以是"debug"、"info"、"warn"、"error"；production决定输出JSON格式还是控制台格式。
func InitLogger(level string, production bool) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel // 解析失败时默认为Info级别
		fmt.Fprintf(os.Stderr, "无效的日志级别 '%s'，使用默认级别 'info'。错误: %v\n", level, err)
	}

	var err error
	if production {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
		L, err = cfg.Build()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
		L, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("无法初始化zap日志记录器: %w", err)
	}

	L.Info("日志记录器初始化成功", zap.String("level", zapLevel.String()), zap.Bool("production", production))
	return nil
}

// Sync 刷新缓冲中的日志条目，应在进程退出前调用。
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}

// InitForTest 为测试提供一个静默的记录器，避免测试输出被日志淹没。
func InitForTest() {
	L = zap.NewNop()
}
