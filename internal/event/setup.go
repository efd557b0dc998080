package event

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

// --- 种子文件的JSON结构 ---

type seedBorder struct {
	Rank       int       `json:"rank"`
	Points     int64     `json:"points"`
	CapturedAt time.Time `json:"capturedAt"`
}

type seedEvent struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	StartAt time.Time    `json:"startAt"`
	EndAt   time.Time    `json:"endAt"`
	Borders []seedBorder `json:"borders"`
}

// PrimeCachedDB 负责初始化event模块：迁移表结构、导入种子数据并预热榜线缓存
func PrimeCachedDB(dataDir string) error {
	if err := database.DB.AutoMigrate(&Event{}, &EventBorder{}); err != nil {
		return fmt.Errorf("无法迁移event表: %w", err)
	}
	if err := seedEvents(dataDir); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}

func seedEvents(dataDir string) error {
	var count int64
	if err := database.DB.Model(&Event{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法检查event表: %w", err)
	}
	if count > 0 {
		return nil // 已有数据，跳过种子导入
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "events.json"))
	if err != nil {
		// 活动数据是可选的种子文件
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("无法读取活动种子文件: %w", err)
	}
	var events []seedEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return fmt.Errorf("无法解析活动种子文件: %w", err)
	}

	borderCount := 0
	for _, e := range events {
		record := Event{EventID: e.ID, Name: e.Name, StartAt: e.StartAt, EndAt: e.EndAt}
		if err := database.DB.Create(&record).Error; err != nil {
			return fmt.Errorf("无法写入活动 %s: %w", e.ID, err)
		}
		for _, border := range e.Borders {
			row := EventBorder{
				EventID:    e.ID,
				Rank:       border.Rank,
				Points:     border.Points,
				CapturedAt: border.CapturedAt,
			}
			if err := database.DB.Create(&row).Error; err != nil {
				return fmt.Errorf("无法写入活动 %s 的榜线记录: %w", e.ID, err)
			}
			borderCount++
		}
	}

	logger.L.Info("活动种子数据导入完成", zap.Int("events", len(events)), zap.Int("borders", borderCount))
	return nil
}
