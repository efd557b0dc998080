package furniture

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

type seedReaction struct {
	ID         string   `json:"id"`
	Characters []string `json:"characters"`
}

type seedFurniture struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	GroupID   string         `json:"groupId"`
	Reactions []seedReaction `json:"reactions"`
}

type seedTag struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Furnitures []seedFurniture `json:"furnitures"`
}

type seedGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type seedExclusion struct {
	CombinationID string   `json:"combinationId"`
	GroupID       string   `json:"groupId"`
	Characters    []string `json:"characters"`
}

// PrimeDB 负责初始化furniture模块的数据库表，并在表为空时写入种子数据
func PrimeDB(dataDir string) error {
	err := database.DB.AutoMigrate(
		&FurnitureTag{},
		&FurnitureGroup{},
		&Furniture{},
		&FurnitureReaction{},
		&ReactionCharacter{},
		&FurnitureGroupExcludedCharacter{},
	)
	if err != nil {
		return fmt.Errorf("无法迁移furniture表: %w", err)
	}

	var count int64
	if err := database.DB.Model(&FurnitureTag{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法检查furniture_tag表: %w", err)
	}
	if count > 0 {
		return nil // 已有数据，跳过种子导入
	}

	if err := seedGroups(dataDir); err != nil {
		return err
	}
	if err := seedCatalog(dataDir); err != nil {
		return err
	}
	if err := seedExclusions(dataDir); err != nil {
		return err
	}
	return nil
}

func seedGroups(dataDir string) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, "furniture_groups.json"))
	if err != nil {
		return fmt.Errorf("无法读取家具组种子文件: %w", err)
	}
	var groups []seedGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return fmt.Errorf("无法解析家具组种子文件: %w", err)
	}
	for _, g := range groups {
		record := FurnitureGroup{GroupID: g.ID, Name: g.Name}
		if err := database.DB.Create(&record).Error; err != nil {
			return fmt.Errorf("无法写入家具组 %s: %w", g.ID, err)
		}
	}
	return nil
}

func seedCatalog(dataDir string) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, "furnitures.json"))
	if err != nil {
		return fmt.Errorf("无法读取家具种子文件: %w", err)
	}
	var tags []seedTag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("无法解析家具种子文件: %w", err)
	}

	furnitureCount, reactionCount := 0, 0
	for _, tag := range tags {
		tagRecord := FurnitureTag{TagID: tag.ID, Name: tag.Name}
		if err := database.DB.Create(&tagRecord).Error; err != nil {
			return fmt.Errorf("无法写入家具分类 %s: %w", tag.ID, err)
		}
		for _, f := range tag.Furnitures {
			furnitureRecord := Furniture{
				FurnitureID: f.ID,
				Name:        f.Name,
				TagID:       tag.ID,
				GroupID:     f.GroupID,
			}
			if err := database.DB.Create(&furnitureRecord).Error; err != nil {
				return fmt.Errorf("无法写入家具 %s: %w", f.ID, err)
			}
			furnitureCount++
			for _, reaction := range f.Reactions {
				reactionRecord := FurnitureReaction{
					ReactionID:  reaction.ID,
					FurnitureID: f.ID,
				}
				if err := database.DB.Create(&reactionRecord).Error; err != nil {
					return fmt.Errorf("无法写入反应 %s: %w", reaction.ID, err)
				}
				reactionCount++
				for _, characterID := range reaction.Characters {
					member := ReactionCharacter{ReactionID: reaction.ID, CharacterID: characterID}
					if err := database.DB.Create(&member).Error; err != nil {
						return fmt.Errorf("无法写入反应组合成员 %s/%s: %w", reaction.ID, characterID, err)
					}
				}
			}
		}
	}

	logger.L.Info("家具目录种子数据导入完成",
		zap.Int("tags", len(tags)),
		zap.Int("furnitures", furnitureCount),
		zap.Int("reactions", reactionCount))
	return nil
}

func seedExclusions(dataDir string) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, "group_exclusions.json"))
	if err != nil {
		// 排除组合是可选的种子文件
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("无法读取排除组合种子文件: %w", err)
	}
	var exclusions []seedExclusion
	if err := json.Unmarshal(raw, &exclusions); err != nil {
		return fmt.Errorf("无法解析排除组合种子文件: %w", err)
	}
	for _, exclusion := range exclusions {
		for _, characterID := range exclusion.Characters {
			row := FurnitureGroupExcludedCharacter{
				CombinationID: exclusion.CombinationID,
				GroupID:       exclusion.GroupID,
				CharacterID:   characterID,
			}
			if err := database.DB.Create(&row).Error; err != nil {
				return fmt.Errorf("无法写入排除组合 %s: %w", exclusion.CombinationID, err)
			}
		}
	}
	return nil
}
