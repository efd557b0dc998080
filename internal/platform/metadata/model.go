package metadata

import "gorm.io/gorm"

// Metadata 是存储系统元数据的键值对表。
type Metadata struct {
	gorm.Model

	// Key 是元数据的唯一键，例如 "seed_dataset_version"
	Key string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	Value string `gorm:"type:varchar(255)"`
}
