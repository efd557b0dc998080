package event

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GetEventByID 根据业务ID查询单个活动。未找到时返回 (nil, nil)。
func GetEventByID(eventID string) (*Event, error) {
	var record Event
	err := database.DB.Where("event_id = ?", eventID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询活动 %s: %w", eventID, err)
	}
	return &record, nil
}

// ListEvents 按开始时间倒序返回所有活动。
func ListEvents() ([]Event, error) {
	var events []Event
	if err := database.DB.Order("start_at desc").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("无法查询活动列表: %w", err)
	}
	return events, nil
}

// ListBorderHistory 按采样时间顺序返回某个活动的全部榜线记录。
func ListBorderHistory(eventID string) ([]EventBorder, error) {
	var borders []EventBorder
	err := database.DB.Where("event_id = ?", eventID).
		Order("captured_at asc").Order("rank asc").
		Find(&borders).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询活动 %s 的榜线历史: %w", eventID, err)
	}
	return borders, nil
}

// BorderLine 是Redis中一条当前榜线。
type BorderLine struct {
	Rank   int   `json:"rank"`
	Points int64 `json:"points"`
}

// GetCurrentBorder 从Redis读取某个活动的当前榜线，按名次升序。
func GetCurrentBorder(eventID string) ([]BorderLine, error) {
	entries, err := database.RDB.ZRangeWithScores(database.Ctx, BorderKey(eventID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis获取活动 %s 的榜线: %w", eventID, err)
	}

	lines := make([]BorderLine, 0, len(entries))
	for _, entry := range entries {
		label, _ := entry.Member.(string)
		var rank int
		if _, err := fmt.Sscanf(label, "T%d", &rank); err != nil {
			continue
		}
		lines = append(lines, BorderLine{Rank: rank, Points: int64(entry.Score)})
	}
	// Sorted Set按点数排序，输出需要按名次线升序
	sort.Slice(lines, func(i, j int) bool { return lines[i].Rank < lines[j].Rank })
	return lines, nil
}

// WarmupCache 把每个活动每条名次线的最新采样预热到Redis的Sorted Set中。
func WarmupCache() error {
	events, err := ListEvents()
	if err != nil {
		return err
	}

	pipe := database.RDB.Pipeline()
	for _, record := range events {
		borders, err := ListBorderHistory(record.EventID)
		if err != nil {
			return err
		}

		// 同一名次线取时间最靠后的采样
		latest := make(map[int]EventBorder, len(borders))
		for _, border := range borders {
			current, ok := latest[border.Rank]
			if !ok || border.CapturedAt.After(current.CapturedAt) {
				latest[border.Rank] = border
			}
		}

		key := BorderKey(record.EventID)
		pipe.Del(database.Ctx, key)
		for rank, border := range latest {
			pipe.ZAdd(database.Ctx, key, redis.Z{
				Score:  float64(border.Points),
				Member: fmt.Sprintf("T%d", rank),
			})
		}
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热活动榜线到Redis失败: %w", err)
	}
	return nil
}
