package collection

import (
	"errors"
	"fmt"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"gorm.io/gorm"
)

// GetCheckedReactionIDs 返回用户直接勾选的全部反应ID。
func GetCheckedReactionIDs(userID string) ([]string, error) {
	var ids []string
	err := database.DB.Model(&UserReactionCheck{}).
		Where("user_id = ?", userID).
		Pluck("reaction_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询用户 %s 的勾选记录: %w", userID, err)
	}
	return ids, nil
}

// CheckReaction 幂等地写入一条勾选记录。
// 重复勾选同一条反应不报错，勾选集合保持不变。
func CheckReaction(userID, reactionID string) error {
	record := UserReactionCheck{UserID: userID, ReactionID: reactionID}
	err := database.DB.
		Where("user_id = ? AND reaction_id = ?", userID, reactionID).
		FirstOrCreate(&record).Error
	if err != nil {
		// 并发下FirstOrCreate可能和另一次相同写入撞上唯一索引，同样视为成功
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("无法写入勾选记录: %w", err)
	}
	return nil
}

// UncheckReaction 幂等地删除一条勾选记录。
// 取消一条本就未勾选的反应不报错。
func UncheckReaction(userID, reactionID string) error {
	err := database.DB.
		Where("user_id = ? AND reaction_id = ?", userID, reactionID).
		Delete(&UserReactionCheck{}).Error
	if err != nil {
		return fmt.Errorf("无法删除勾选记录: %w", err)
	}
	return nil
}

// GetOwnedFurnitureIDs 返回用户标记为持有的全部家具ID。
func GetOwnedFurnitureIDs(userID string) ([]string, error) {
	var ids []string
	err := database.DB.Model(&UserFurniture{}).
		Where("user_id = ?", userID).
		Pluck("furniture_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询用户 %s 的持有记录: %w", userID, err)
	}
	return ids, nil
}

// OwnFurniture 幂等地写入一条持有记录。
func OwnFurniture(userID, furnitureID string) error {
	record := UserFurniture{UserID: userID, FurnitureID: furnitureID}
	err := database.DB.
		Where("user_id = ? AND furniture_id = ?", userID, furnitureID).
		FirstOrCreate(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("无法写入持有记录: %w", err)
	}
	return nil
}

// UnownFurniture 幂等地删除一条持有记录。
func UnownFurniture(userID, furnitureID string) error {
	err := database.DB.
		Where("user_id = ? AND furniture_id = ?", userID, furnitureID).
		Delete(&UserFurniture{}).Error
	if err != nil {
		return fmt.Errorf("无法删除持有记录: %w", err)
	}
	return nil
}
