package character

import (
	"errors"
	"fmt"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"gorm.io/gorm"
)

// GetUnitByCode 根据业务ID查询单个组合。未找到时返回 (nil, nil)。
func GetUnitByCode(code string) (*Unit, error) {
	var unit Unit
	err := database.DB.Where("code = ?", code).First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询组合 %s: %w", code, err)
	}
	return &unit, nil
}

// ListUnits 按照目录写入顺序返回所有组合。
func ListUnits() ([]Unit, error) {
	var units []Unit
	if err := database.DB.Order("id asc").Find(&units).Error; err != nil {
		return nil, fmt.Errorf("无法查询组合列表: %w", err)
	}
	return units, nil
}

// ListCharactersByUnitCode 返回某个组合下的全部角色。
func ListCharactersByUnitCode(unitCode string) ([]Character, error) {
	var characters []Character
	err := database.DB.Where("unit_code = ?", unitCode).Order("id asc").Find(&characters).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询组合 %s 的角色: %w", unitCode, err)
	}
	return characters, nil
}

// ListAllCharacters 返回目录中全部角色。
func ListAllCharacters() ([]Character, error) {
	var characters []Character
	if err := database.DB.Order("id asc").Find(&characters).Error; err != nil {
		return nil, fmt.Errorf("无法查询角色列表: %w", err)
	}
	return characters, nil
}
