package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/novahub/pkg/internal/auth"
	"github.com/yeisme/novahub/pkg/internal/model"
	"github.com/yeisme/novahub/pkg/internal/service"
)

// CurrentUserKey gin 上下文中已解析身份的键.
const CurrentUserKey = "currentUser"

// SessionMiddleware 解析会话 Cookie 并把身份挂到 gin 上下文.
// 缺 Cookie、令牌无效/过期、档案缺失或后端瞬时失败一律按匿名处理：
// 身份解析对下游永远不是错误，只有"有"或"没有".
func SessionMiddleware(sessions *auth.SessionManager, cookieName, emailDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()

			return
		}

		userID, err := sessions.Validate(token)
		if err != nil {
			c.Next()

			return
		}

		svc := service.NewAuthService(c.Request.Context(), emailDomain)
		if user := svc.ResolveUser(c.Request.Context(), userID); user != nil {
			c.Set(CurrentUserKey, user)
		}

		c.Next()
	}
}

// CurrentUser 从 gin 上下文取已解析身份，匿名时返回 nil.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}

	return nil
}
