// Package handle 实现 HTTP 请求处理器：目录浏览、上传下载、账号与管理操作.
package handle

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/novahub/pkg/configs"
	"github.com/yeisme/novahub/pkg/internal/auth"
)

// flashCookieName 一次性提示消息的 Cookie 名（登录/注册失败等）.
const flashCookieName = "novahub_flash"

// flashMaxAge 提示消息的存活秒数.
const flashMaxAge = 30

// Handlers 持有处理器依赖：会话管理器与鉴权配置. 启动时显式构造注入，
// 不使用隐式全局.
type Handlers struct {
	sessions *auth.SessionManager
	authCfg  configs.AuthConfig
}

// New 构造 Handlers.
func New(sessions *auth.SessionManager, authCfg configs.AuthConfig) *Handlers {
	return &Handlers{
		sessions: sessions,
		authCfg:  authCfg,
	}
}

// setSessionCookie 签发会话 Cookie.
func (h *Handlers) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.authCfg.CookieName, token, maxAge, "/", "", h.authCfg.CookieSecure, true)
}

// clearSessionCookie 清除会话 Cookie.
func (h *Handlers) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.authCfg.CookieName, "", -1, "/", "", h.authCfg.CookieSecure, true)
}

// flash 写入一次性提示消息，前端读取后即失效.
func flash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, url.QueryEscape(message), flashMaxAge, "/", "", false, false)
}

// popFlash 读取并清除提示消息.
func popFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return ""
	}

	c.SetCookie(flashCookieName, "", -1, "/", "", false, false)

	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}

	return msg
}

// redirectHome 表单类路由统一跳回首页.
func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}
