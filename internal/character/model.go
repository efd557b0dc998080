package character

import "gorm.io/gorm"

// Unit 定义了数据库中组合（乐队/团体）的数据结构
type Unit struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Code 是组合在游戏中的唯一字符串ID, 例如 "leo_need"
	// 我们将使用它作为业务逻辑中的主键
	Code string `gorm:"uniqueIndex;not null" json:"code"`

	// Name 是组合的显示名称, 例如 "Leo/need"
	Name string `json:"name"`

	// Color 是组合的主题色, 例如 "#4455DD"
	Color string `json:"color"`
}

// Character 定义了数据库中角色的数据结构
type Character struct {
	gorm.Model

	// CharacterID 是角色在游戏中的唯一字符串ID, 例如 "ichika"
	CharacterID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是角色的全名, 例如 "星乃一歌"
	Name string `json:"name"`

	// Short 是角色的简称, 用于反应组合的紧凑显示, 例如 "一歌"
	Short string `json:"short"`

	// Color 是角色的形象色
	Color string `json:"color"`

	// UnitCode 是角色所属组合的业务ID, 一个角色最多属于一个组合
	UnitCode string `gorm:"index" json:"unitCode"`
}
