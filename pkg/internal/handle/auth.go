package handle

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/novahub/pkg/internal/service"
	"github.com/yeisme/novahub/pkg/log"
	"github.com/yeisme/novahub/pkg/middleware"
)

// Register 处理注册. 表单字段 username/password；无论成败都跳回首页，
// 失败原因通过 flash 提示（不是 HTTP 错误码）.
func (h *Handlers) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	svc := service.NewAuthService(c.Request.Context(), h.authCfg.EmailDomain)

	user, err := svc.Register(c.Request.Context(), username, password)
	if err != nil {
		log.Logger().Warn().Err(err).Str("username", username).Msg("register failed")
		flash(c, "Register error: "+err.Error())
		redirectHome(c)

		return
	}

	// 注册成功直接建立会话
	token, expiresAt, err := h.sessions.Issue(user.ID)
	if err != nil {
		log.Logger().Error().Err(err).Msg("issue session after register failed")
		flash(c, "Register succeeded, please log in")
		redirectHome(c)

		return
	}

	h.setSessionCookie(c, token, expiresAt)
	redirectHome(c)
}

// Login 处理登录. 凭证错误只产生 flash 提示并跳回首页.
func (h *Handlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	svc := service.NewAuthService(c.Request.Context(), h.authCfg.EmailDomain)

	user, err := svc.Login(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, service.ErrBadCredentials) {
			log.Logger().Warn().Err(err).Msg("login failed")
		}

		flash(c, "Login error")
		redirectHome(c)

		return
	}

	token, expiresAt, err := h.sessions.Issue(user.ID)
	if err != nil {
		log.Logger().Error().Err(err).Msg("issue session failed")
		flash(c, "Login error")
		redirectHome(c)

		return
	}

	h.setSessionCookie(c, token, expiresAt)
	redirectHome(c)
}

// Logout 清除会话并跳回首页.
func (h *Handlers) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	redirectHome(c)
}

// ChangeUsername 已登录用户修改自己的用户名.
func (h *Handlers) ChangeUsername(c *gin.Context) {
	user := middleware.CurrentUser(c)
	newUsername := c.PostForm("new_username")

	svc := service.NewCatalogService(c.Request.Context())

	if err := svc.ChangeUsername(c.Request.Context(), user, newUsername); err != nil {
		log.Logger().Warn().Err(err).Msg("change username failed")
		flash(c, "Rename error")
	}

	redirectHome(c)
}
