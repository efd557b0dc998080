package furniture

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/collection"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/user"
)

// parseBoolQuery 解析"true"/"1"风格的布尔查询参数，缺省为false。
func parseBoolQuery(c *gin.Context, name string) bool {
	value, ok := c.GetQuery(name)
	if !ok {
		return false
	}
	if value == "" {
		return true // ?hideCompleted 不带值时视为开启
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

// parseCharacterFilter 解析角色过滤参数。
// 同时支持重复参数(?chara=a&chara=b)和逗号分隔(?chara=a,b)。
func parseCharacterFilter(c *gin.Context) []string {
	var ids []string
	for _, raw := range c.QueryArray("chara") {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// --- 控制器函数 ---

// GetFurnitureCatalog 返回某个组合的完整家具反应目录树，
// 并带上当前用户每条反应的勾选状态。
func GetFurnitureCatalog(c *gin.Context) {
	unitCode := c.Query("unit")
	if unitCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少unit参数"})
		return
	}

	query := ListQuery{
		UnitCode:           unitCode,
		FilterCharacterIDs: parseCharacterFilter(c),
		NameQuery:          c.Query("q"),
		HideCompleted:      parseBoolQuery(c, "hideCompleted"),
		OwnedOnly:          parseBoolQuery(c, "ownedOnly"),
		UserID:             user.CurrentUserID(c),
	}

	tree, err := BuildCatalogTree(query)
	if err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取家具目录失败"})
		return
	}
	c.JSON(http.StatusOK, tree)
}

// requireUser 取出当前用户ID并保证其已持久化；失败时直接写出响应。
func requireUser(c *gin.Context) (string, bool) {
	userID := user.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少用户标识"})
		return "", false
	}
	if err := user.ActivateUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法记录用户"})
		return "", false
	}
	return userID, true
}

// CheckReaction 幂等地把一条反应标记为已勾选
func CheckReaction(c *gin.Context) {
	reactionID := c.Param("id")
	exists, err := ReactionExists(reactionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的反应"})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := collection.CheckReaction(userID, reactionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入勾选记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checked": true})
}

// UncheckReaction 幂等地取消一条反应的勾选
func UncheckReaction(c *gin.Context) {
	reactionID := c.Param("id")
	exists, err := ReactionExists(reactionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的反应"})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := collection.UncheckReaction(userID, reactionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除勾选记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checked": false})
}

// OwnFurniture 幂等地把一件家具标记为持有
func OwnFurniture(c *gin.Context) {
	furnitureID := c.Param("id")
	exists, err := FurnitureExists(furnitureID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的家具"})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := collection.OwnFurniture(userID, furnitureID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入持有记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owned": true})
}

// UnownFurniture 幂等地取消一件家具的持有标记
func UnownFurniture(c *gin.Context) {
	furnitureID := c.Param("id")
	exists, err := FurnitureExists(furnitureID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的家具"})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := collection.UnownFurniture(userID, furnitureID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除持有记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owned": false})
}
