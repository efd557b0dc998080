package metadata

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetValue 从metadata表读取指定键的值，键不存在时返回空字符串。
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue 以upsert的方式写入一个键值对。
func SetValue(db *gorm.DB, key, value string) error {
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// GetSeedDatasetVersion 返回已导入的种子数据集版本，从未导入时为空字符串。
func GetSeedDatasetVersion(db *gorm.DB) (string, error) {
	return GetValue(db, SeedDatasetVersionKey)
}

// SetSeedDatasetVersion 记录已导入的种子数据集版本。
func SetSeedDatasetVersion(db *gorm.DB, version string) error {
	return SetValue(db, SeedDatasetVersionKey, version)
}

// GetLastBackupAt 返回上次备份完成的时间，从未备份时返回零值。
func GetLastBackupAt(db *gorm.DB) (time.Time, error) {
	valueStr, err := GetValue(db, LastBackupAtKey)
	if err != nil {
		return time.Time{}, err
	}
	if valueStr == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, valueStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析元数据 '%s' 的值: %w", LastBackupAtKey, err)
	}
	return t, nil
}

// SetLastBackupAt 记录上次备份完成的时间。
func SetLastBackupAt(db *gorm.DB, t time.Time) error {
	return SetValue(db, LastBackupAtKey, t.UTC().Format(time.RFC3339))
}
