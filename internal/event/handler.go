package event

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
)

// --- API请求/响应模型 ---

type CalculatorRequestBody struct {
	Score        int64 `json:"score" binding:"min=0"`
	BonusPercent int   `json:"bonusPercent" binding:"min=0"`
	Boost        int   `json:"boost" binding:"required,min=1"`
	Plays        int   `json:"plays" binding:"min=0"`
	TargetPoint  int64 `json:"targetPoint" binding:"min=0"`
}

type BorderHistoryPoint struct {
	Rank       int       `json:"rank"`
	Points     int64     `json:"points"`
	CapturedAt time.Time `json:"capturedAt"`
}

type BorderResponse struct {
	EventID string               `json:"eventId"`
	Name    string               `json:"name"`
	Current []BorderLine         `json:"current"`
	History []BorderHistoryPoint `json:"history"`
}

// --- 控制器函数 ---

// CalculateEventPoints 执行一次活动点数试算
func CalculateEventPoints(c *gin.Context) {
	var body CalculatorRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	result, err := CalculatePoints(CalculatorInput{
		Score:        body.Score,
		BonusPercent: body.BonusPercent,
		Boost:        body.Boost,
		Plays:        body.Plays,
		TargetPoint:  body.TargetPoint,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEventBorder 返回某个活动的当前榜线和榜线走势数据
func GetEventBorder(c *gin.Context) {
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
		return
	}

	eventID := c.Param("id")
	record, err := GetEventByID(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的活动"})
		return
	}

	current, err := GetCurrentBorder(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取榜线数据失败"})
		return
	}
	historyRows, err := ListBorderHistory(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取榜线历史失败"})
		return
	}

	history := make([]BorderHistoryPoint, 0, len(historyRows))
	for _, border := range historyRows {
		history = append(history, BorderHistoryPoint{
			Rank:       border.Rank,
			Points:     border.Points,
			CapturedAt: border.CapturedAt,
		})
	}

	c.JSON(http.StatusOK, BorderResponse{
		EventID: record.EventID,
		Name:    record.Name,
		Current: current,
		History: history,
	})
}

// GetEvents 返回全部活动，按开始时间倒序
func GetEvents(c *gin.Context) {
	events, err := ListEvents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取活动列表失败"})
		return
	}
	c.JSON(http.StatusOK, events)
}
