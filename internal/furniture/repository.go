package furniture

import (
	"errors"
	"fmt"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"gorm.io/gorm"
)

// 目录数据的只读查询。目录在启动时种入SQLite，请求期内不会变化，
// 每次请求重新加载所需的行并在内存中组装。

// LoadTags 按目录写入顺序返回所有家具分类。
func LoadTags() ([]FurnitureTag, error) {
	var tags []FurnitureTag
	if err := database.DB.Order("id asc").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("无法查询家具分类: %w", err)
	}
	return tags, nil
}

// LoadGroups 返回所有家具组。
func LoadGroups() ([]FurnitureGroup, error) {
	var groups []FurnitureGroup
	if err := database.DB.Order("id asc").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("无法查询家具组: %w", err)
	}
	return groups, nil
}

// LoadFurnitures 按目录写入顺序返回家具。
// nameQuery非空时在查询边界处做大小写不敏感的名称子串过滤。
func LoadFurnitures(nameQuery string) ([]Furniture, error) {
	var furnitures []Furniture
	query := database.DB.Order("id asc")
	if nameQuery != "" {
		// SQLite的LIKE对ASCII大小写不敏感，lower()兜底
		query = query.Where("lower(name) LIKE lower(?)", "%"+nameQuery+"%")
	}
	if err := query.Find(&furnitures).Error; err != nil {
		return nil, fmt.Errorf("无法查询家具: %w", err)
	}
	return furnitures, nil
}

// LoadReactions 返回所有反应行。
func LoadReactions() ([]FurnitureReaction, error) {
	var reactions []FurnitureReaction
	if err := database.DB.Order("id asc").Find(&reactions).Error; err != nil {
		return nil, fmt.Errorf("无法查询反应: %w", err)
	}
	return reactions, nil
}

// LoadReactionCharacters 返回所有反应的组合成员行。
func LoadReactionCharacters() ([]ReactionCharacter, error) {
	var rows []ReactionCharacter
	if err := database.DB.Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("无法查询反应组合成员: %w", err)
	}
	return rows, nil
}

// LoadExclusionRows 返回所有排除组合成员行，已转换为引擎的输入行格式。
func LoadExclusionRows() ([]ExclusionRow, error) {
	var rows []FurnitureGroupExcludedCharacter
	if err := database.DB.Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("无法查询排除组合: %w", err)
	}
	result := make([]ExclusionRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, ExclusionRow{
			CombinationID: row.CombinationID,
			GroupID:       row.GroupID,
			CharacterID:   row.CharacterID,
		})
	}
	return result, nil
}

// ReactionExists 判断一条反应是否存在于目录中。
func ReactionExists(reactionID string) (bool, error) {
	var reaction FurnitureReaction
	err := database.DB.Where("reaction_id = ?", reactionID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("无法查询反应 %s: %w", reactionID, err)
	}
	return true, nil
}

// FurnitureExists 判断一件家具是否存在于目录中。
func FurnitureExists(furnitureID string) (bool, error) {
	var f Furniture
	err := database.DB.Where("furniture_id = ?", furnitureID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("无法查询家具 %s: %w", furnitureID, err)
	}
	return true, nil
}
