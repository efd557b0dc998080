package furniture

import "gorm.io/gorm"

// FurnitureTag 定义了家具的分类（房间/系列），目录树的第一层
type FurnitureTag struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// TagID 是分类在游戏中的唯一字符串ID, 例如 "living"
	TagID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是分类的显示名称, 例如 "リビング"
	Name string `json:"name"`
}

// FurnitureGroup 定义了家具组：一组外观不同但反应勾选状态共享的家具
// 例如同一款沙发的五个地区配色变体
type FurnitureGroup struct {
	gorm.Model

	// GroupID 是家具组的唯一字符串ID
	GroupID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是家具组的显示名称
	Name string `json:"name"`
}

// Furniture 定义了单件家具
type Furniture struct {
	gorm.Model

	// FurnitureID 是家具在游戏中的唯一字符串ID
	FurnitureID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是家具的显示名称
	Name string `json:"name"`

	// TagID 是家具所属分类的业务ID，每件家具恰好属于一个分类
	TagID string `gorm:"index" json:"tagId"`

	// GroupID 是家具所属家具组的业务ID，空字符串表示不属于任何组
	GroupID string `gorm:"index" json:"groupId"`
}

// FurnitureReaction 定义了家具的一条反应：
// 只有当所需角色组合全部到场时，家具才会触发这条反应
type FurnitureReaction struct {
	gorm.Model

	// ReactionID 是反应的唯一字符串ID
	ReactionID string `gorm:"uniqueIndex;not null" json:"id"`

	// FurnitureID 是反应所属家具的业务ID
	FurnitureID string `gorm:"index" json:"furnitureId"`
}

// ReactionCharacter 是反应所需角色组合的一行成员记录
// 同一个ReactionID下的所有行共同构成一个无序的角色ID集合
type ReactionCharacter struct {
	gorm.Model

	ReactionID  string `gorm:"index;not null" json:"reactionId"`
	CharacterID string `gorm:"not null" json:"characterId"`
}

// FurnitureGroupExcludedCharacter 定义了家具组的排除组合成员行。
// 同一个CombinationID下的所有行共同构成一个被排除的角色ID集合：
// 该组合在组内不参与勾选状态共享，每件家具各自独立记录。
// 不变量：同一个CombinationID的所有行必须指向同一个GroupID。
type FurnitureGroupExcludedCharacter struct {
	gorm.Model

	// CombinationID 标识一个排除组合，行按它聚合
	CombinationID string `gorm:"index;not null" json:"combinationId"`

	// GroupID 是排除组合所作用的家具组业务ID
	GroupID string `gorm:"index;not null" json:"groupId"`

	CharacterID string `gorm:"not null" json:"characterId"`
}
