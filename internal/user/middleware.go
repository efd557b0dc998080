package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	CookieName   = "user-id"
	CookieMaxAge = 365 * 24 * 60 * 60
	UserIDKey    = "userID"
)

// EnsureUserCookieMiddleware 确保用户的浏览器中有一个格式正确的user-id cookie。
// 如果没有或格式不正确，它会生成一个新的临时ID并设置cookie。
func EnsureUserCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := c.Cookie(CookieName)

		// 如果Cookie不存在，或存在但格式不正确，则分发一个新的
		if err != nil || !IsValidUUID(userID) {
			if err != nil && err != http.ErrNoCookie {
				logger.L.Warn("检测到无效的用户Cookie", zap.String("value", userID), zap.Error(err))
			}
			provisionalUserID, err := CreateProvisionalUser()
			if err != nil {
				logger.L.Error("创建临时用户ID时发生错误", zap.Error(err))
			} else {
				c.SetCookie(CookieName, provisionalUserID, CookieMaxAge, "/", "", false, true)
				c.Set(UserIDKey, provisionalUserID)
			}
		}

		c.Next()
	}
}

// LoadUserMiddleware 读取cookie并将其值放入Gin上下文中。
// 没有合法cookie的请求按匿名处理，上下文中的用户ID为空字符串。
func LoadUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// EnsureUserCookieMiddleware可能在同一个请求里刚分发了新ID，
		// 此时请求的Cookie头里还没有它，不要覆盖
		if existing, ok := c.Get(UserIDKey); ok {
			if id, _ := existing.(string); id != "" {
				c.Next()
				return
			}
		}
		userID, _ := c.Cookie(CookieName)
		if !IsValidUUID(userID) {
			userID = ""
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 从Gin上下文中取出已解析的用户ID，匿名时返回空字符串。
func CurrentUserID(c *gin.Context) string {
	value, ok := c.Get(UserIDKey)
	if !ok {
		return ""
	}
	userID, _ := value.(string)
	return userID
}
