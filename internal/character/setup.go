package character

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

// --- 种子文件的JSON结构 ---

type seedCharacter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Short string `json:"short"`
	Color string `json:"color"`
}

type seedUnit struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Characters []seedCharacter `json:"characters"`
}

// PrimeDB 负责初始化character模块的数据库表，并在表为空时写入种子数据
func PrimeDB(dataDir string) error {
	if err := database.DB.AutoMigrate(&Unit{}, &Character{}); err != nil {
		return fmt.Errorf("无法迁移character表: %w", err)
	}

	var count int64
	if err := database.DB.Model(&Unit{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法检查unit表: %w", err)
	}
	if count > 0 {
		return nil // 已有数据，跳过种子导入
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "units.json"))
	if err != nil {
		return fmt.Errorf("无法读取组合种子文件: %w", err)
	}
	var units []seedUnit
	if err := json.Unmarshal(raw, &units); err != nil {
		return fmt.Errorf("无法解析组合种子文件: %w", err)
	}

	total := 0
	for _, u := range units {
		unit := Unit{Code: u.Code, Name: u.Name, Color: u.Color}
		if err := database.DB.Create(&unit).Error; err != nil {
			return fmt.Errorf("无法写入组合 %s: %w", u.Code, err)
		}
		for _, ch := range u.Characters {
			record := Character{
				CharacterID: ch.ID,
				Name:        ch.Name,
				Short:       ch.Short,
				Color:       ch.Color,
				UnitCode:    u.Code,
			}
			if err := database.DB.Create(&record).Error; err != nil {
				return fmt.Errorf("无法写入角色 %s: %w", ch.ID, err)
			}
			total++
		}
	}

	logger.L.Info("角色目录种子数据导入完成", zap.Int("units", len(units)), zap.Int("characters", total))
	return nil
}
