package user

import "time"

// User 定义了用户在SQLite数据库中的持久化模型。
// 用户在第一次产生写操作（勾选/持有）时才会被持久化，
// 纯浏览的访客只存在于Cookie里。
type User struct {
	// UUID 是用户的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
