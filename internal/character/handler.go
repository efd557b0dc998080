package character

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type CharacterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Short string `json:"short"`
	Color string `json:"color"`
}

type UnitResponse struct {
	Code       string              `json:"code"`
	Name       string              `json:"name"`
	Color      string              `json:"color"`
	Characters []CharacterResponse `json:"characters"`
}

func formatCharacter(c Character) CharacterResponse {
	return CharacterResponse{
		ID:    c.CharacterID,
		Name:  c.Name,
		Short: c.Short,
		Color: c.Color,
	}
}

// --- 控制器函数 ---

// GetUnits 返回全部组合及各自的角色，用于前端筛选器
func GetUnits(c *gin.Context) {
	units, err := ListUnits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取组合列表失败"})
		return
	}

	responses := make([]UnitResponse, 0, len(units))
	for _, unit := range units {
		characters, err := ListCharactersByUnitCode(unit.Code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "获取角色列表失败"})
			return
		}
		resp := UnitResponse{
			Code:       unit.Code,
			Name:       unit.Name,
			Color:      unit.Color,
			Characters: make([]CharacterResponse, 0, len(characters)),
		}
		for _, ch := range characters {
			resp.Characters = append(resp.Characters, formatCharacter(ch))
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// GetUnitCharacters 返回指定组合的角色列表
func GetUnitCharacters(c *gin.Context) {
	code := c.Param("code")
	unit, err := GetUnitByCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if unit == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的组合"})
		return
	}

	characters, err := ListCharactersByUnitCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取角色列表失败"})
		return
	}

	responses := make([]CharacterResponse, 0, len(characters))
	for _, ch := range characters {
		responses = append(responses, formatCharacter(ch))
	}
	c.JSON(http.StatusOK, responses)
}
