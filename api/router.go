package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/character"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/event"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/furniture"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/user"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 组合与角色目录
		api.GET("/units", character.GetUnits)
		api.GET("/units/:code/characters", character.GetUnitCharacters)

		// 家具反应目录（读接口对匿名开放，勾选状态按匿名解析）
		api.GET("/furnitures",
			user.EnsureUserCookieMiddleware(), user.LoadUserMiddleware(),
			furniture.GetFurnitureCatalog)

		// 勾选/持有状态的幂等写接口
		api.PUT("/reactions/:id/check", user.LoadUserMiddleware(), furniture.CheckReaction)
		api.DELETE("/reactions/:id/check", user.LoadUserMiddleware(), furniture.UncheckReaction)
		api.PUT("/furnitures/:id/owned", user.LoadUserMiddleware(), furniture.OwnFurniture)
		api.DELETE("/furnitures/:id/owned", user.LoadUserMiddleware(), furniture.UnownFurniture)

		// 活动：点数试算与榜线
		api.GET("/events", event.GetEvents)
		api.POST("/events/calculator", event.CalculateEventPoints)
		api.GET("/events/:id/border", event.GetEventBorder)
	}
}
