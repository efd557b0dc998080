package collection

import "time"

// UserReactionCheck 记录一个(用户, 反应)事实：该用户已明确勾选这条反应。
// 这是引擎读取的唯一每用户可变状态，只由显式的勾选/取消操作写入，从不被推断写入。
// 组内传播得到的"视为已勾选"只存在于单次请求的计算结果中。
// 不使用软删除：取消勾选后同一(用户, 反应)必须可以再次勾选。
type UserReactionCheck struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string `gorm:"uniqueIndex:idx_user_reaction;not null"`
	ReactionID string `gorm:"uniqueIndex:idx_user_reaction;not null"`
	CreatedAt  time.Time
}

// UserFurniture 记录一个(用户, 家具)持有事实，与反应勾选相互独立，
// 只用于ownedOnly过滤。
type UserFurniture struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"uniqueIndex:idx_user_furniture;not null"`
	FurnitureID string `gorm:"uniqueIndex:idx_user_furniture;not null"`
	CreatedAt   time.Time
}
