package user

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"gorm.io/gorm"
)

// CreateProvisionalUser 生成一个临时的、尚未持久化的新用户UUID。
// 这个UUID将被设置到cookie中，但此时尚未被持久化。
func CreateProvisionalUser() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidUUID 校验一个字符串是否是合法的UUID格式。
func IsValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// IsUserActivated 检查一个给定的UUID是否已经被持久化。
// 它只查询Redis缓存，以获得最高性能。
func IsUserActivated(uuidStr string) (bool, error) {
	if uuidStr == "" {
		return false, nil
	}
	exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, uuidStr).Result()
	if err != nil {
		return false, fmt.Errorf("检查Redis用户缓存时出错: %w", err)
	}
	return exists, nil
}

// ActivateUser 将一个临时的UUID正式持久化到数据库和缓存中。
// 用户第一次勾选反应或标记持有时调用。
// 如果缓存写入失败，数据库写入将被回滚。
func ActivateUser(uuidStr string) error {
	activated, err := IsUserActivated(uuidStr)
	if err != nil {
		return err
	}
	if activated {
		return nil // 用户已存在，无需操作
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("无法开始数据库事务: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	newUser := User{UUID: uuidStr}
	if err := tx.Create(&newUser).Error; err != nil {
		tx.Rollback()
		// 记录已存在不是一个真正的错误
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("无法在SQLite中创建新用户: %w", err)
	}

	if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, uuidStr).Err(); err != nil {
		// Redis写入失败时回滚SQLite的写入，保证数据一致性
		tx.Rollback()
		return fmt.Errorf("无法将新用户 %s 添加到Redis缓存: %w", uuidStr, err)
	}

	return tx.Commit().Error
}
