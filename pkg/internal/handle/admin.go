package handle

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/novahub/pkg/internal/service"
	"github.com/yeisme/novahub/pkg/log"
	"github.com/yeisme/novahub/pkg/middleware"
)

// AdminDeleteUser 管理员按用户名删除用户，不可逆. 非管理员调用
// 不产生任何状态变更，照常跳回首页（对调用方不区分成功与拒绝）.
func (h *Handlers) AdminDeleteUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	target := c.PostForm("target")

	svc := service.NewCatalogService(c.Request.Context())

	if err := svc.AdminDeleteUser(c.Request.Context(), user, target); err != nil {
		log.Logger().Error().Err(err).Str("target", target).Msg("admin delete user failed")
		flash(c, "Delete user error")
	}

	redirectHome(c)
}

// AdminChangeUsername 管理员按用户名改名. 非管理员同样是静默 no-op.
func (h *Handlers) AdminChangeUsername(c *gin.Context) {
	user := middleware.CurrentUser(c)
	target := c.PostForm("target")
	newUsername := c.PostForm("new_username")

	svc := service.NewCatalogService(c.Request.Context())

	if err := svc.AdminRename(c.Request.Context(), user, target, newUsername); err != nil {
		log.Logger().Error().Err(err).Str("target", target).Msg("admin rename failed")
		flash(c, "Rename error")
	}

	redirectHome(c)
}
