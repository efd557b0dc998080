package event

import (
	"time"

	"gorm.io/gorm"
)

// Event 定义了数据库中活动的数据结构
type Event struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// EventID 是活动的唯一字符串ID, 例如 "event_087"
	EventID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是活动的显示名称
	Name string `json:"name"`

	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// EventBorder 是一次榜线采样：某个时间点上某条名次线的活动点数。
// 同一活动同一名次线会随时间累积多条记录，用于绘制榜线走势图。
type EventBorder struct {
	gorm.Model

	// EventID 是所属活动的业务ID
	EventID string `gorm:"index" json:"eventId"`

	// Rank 是名次线, 例如 100 表示T100榜线
	Rank int `gorm:"index" json:"rank"`

	// Points 是该名次线当时的活动点数
	Points int64 `json:"points"`

	// CapturedAt 是采样时间
	CapturedAt time.Time `json:"capturedAt"`
}
