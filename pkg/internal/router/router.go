// Package router 管理路由配置，把路径绑定到 handle 提供的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/novahub/pkg/internal/handle"
)

// Register 注册全部路由. 路由面保持 hub 的既有形态：
// 表单类路由无论成败都跳回首页，API 类路由返回 JSON.
func Register(e *gin.Engine, h *handle.Handlers) {
	// 目录
	e.GET("/", h.Index)
	e.GET("/download/:filename", h.Download)
	e.POST("/upload", h.Upload)
	e.POST("/update_icon/:filename", h.UpdateIcon)
	e.POST("/delete/:filename", h.Delete)

	// 账号
	e.POST("/login", h.Login)
	e.POST("/register", h.Register)
	e.GET("/logout", h.Logout)
	e.POST("/change_username", h.ChangeUsername)

	// 管理
	adminRoutes := e.Group("/admin")
	{
		adminRoutes.POST("/delete_user", h.AdminDeleteUser)
		adminRoutes.POST("/change_username", h.AdminChangeUsername)
	}

	// 运维
	e.GET("/healthz", h.Health)
}
